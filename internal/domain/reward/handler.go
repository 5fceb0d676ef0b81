package reward

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/ledger"
	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/middleware"
	"github.com/agripoint/loyalty-api/internal/pkg/response"
	"github.com/agripoint/loyalty-api/internal/pkg/validator"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	items, err := h.svc.Catalog(r.Context(), memberID)
	if err != nil {
		if errors.Is(err, member.ErrNotFound) {
			response.NotFound(w, "member not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, items)
}

func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	rewardID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid reward id")
		return
	}

	var req RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	red, err := h.svc.Redeem(r.Context(), memberID, rewardID, req.ExpectedPoints, req.ShippingAddress, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "reward not found")
		case errors.Is(err, member.ErrNotFound):
			response.Unauthorized(w, "unauthorized")
		case errors.Is(err, member.ErrNotApproved):
			response.Forbidden(w, "registration not yet approved")
		case errors.Is(err, ErrNotActive):
			response.Conflict(w, "REWARD_NOT_ACTIVE", "reward is not active")
		case errors.Is(err, ErrIneligible):
			response.Forbidden(w, "reward is not available for your profile")
		case errors.Is(err, ErrPriceMismatch):
			response.Conflict(w, "PRICE_MISMATCH", "reward price has changed")
		case errors.Is(err, ledger.ErrInsufficientBalance):
			response.Conflict(w, "INSUFFICIENT_POINTS", "not enough points")
		case errors.Is(err, ErrOutOfStock):
			response.Conflict(w, "OUT_OF_STOCK", "reward is out of stock")
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, red)
}

func (h *Handler) MyRedemptions(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	reds, err := h.svc.MyRedemptions(r.Context(), memberID, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, reds)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	status := Status(r.URL.Query().Get("status"))

	reds, err := h.svc.ListRedemptions(r.Context(), status, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, reds)
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid redemption id")
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	red, err := h.svc.Transition(r.Context(), id, Status(req.Status), req.TrackingNumber)
	if err != nil {
		switch {
		case errors.Is(err, ErrRedemptionNotFound):
			response.NotFound(w, "redemption request not found")
		case errors.Is(err, ErrInvalidTransition):
			response.Conflict(w, "INVALID_TRANSITION", "status transition is not allowed")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, red)
}

// Routes returns the member-facing reward routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.Catalog)
	r.Post("/{id}/redeem", h.Redeem)
	r.Get("/redemptions", h.MyRedemptions)
	return r
}

// AdminRoutes returns the redemption fulfilment routes.
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)
	r.Get("/redemptions", h.AdminList)
	r.Patch("/redemptions/{id}/status", h.Transition)
	return r
}
