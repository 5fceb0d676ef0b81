package mission

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	views, err := h.svc.List(r.Context(), memberID)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, views)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	missionID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid mission id")
		return
	}

	var req CompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	c, err := h.svc.Complete(r.Context(), memberID, missionID, req.Proof)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotActive):
			response.NotFound(w, "mission not found")
		case errors.Is(err, ErrIneligible):
			response.Forbidden(w, "mission is not available for your profile")
		case errors.Is(err, member.ErrNotApproved):
			response.Forbidden(w, "registration not yet approved")
		case errors.Is(err, ErrInvalidProof):
			response.BadRequest(w, "mission proof is invalid")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, c)
}

// Routes returns the member-facing mission routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Post("/{id}/complete", h.Complete)
	return r
}
