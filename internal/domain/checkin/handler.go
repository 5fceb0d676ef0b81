package checkin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/middleware"
	"github.com/agripoint/loyalty-api/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	status, err := h.svc.Status(r.Context(), memberID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, status)
}

func (h *Handler) Checkin(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	c, err := h.svc.Checkin(r.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrNotFound):
			response.Unauthorized(w, "unauthorized")
		case errors.Is(err, member.ErrNotApproved):
			response.Forbidden(w, "registration not yet approved")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, c)
}

// Routes returns the daily check-in routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.Status)
	r.Post("/", h.Checkin)
	return r
}
