package ledger

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/middleware"
	"github.com/agripoint/loyalty-api/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/points", h.PointHistory)
	r.Get("/coins", h.CoinHistory)
	return r
}

func (h *Handler) PointHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, CurrencyPoints)
}

func (h *Handler) CoinHistory(w http.ResponseWriter, r *http.Request) {
	h.history(w, r, CurrencyCoins)
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request, currency Currency) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "authentication required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	txs, total, err := h.service.History(r.Context(), memberID, currency, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	response.WithMeta(w, txs, response.Meta{
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: page*limit < total,
	})
}
