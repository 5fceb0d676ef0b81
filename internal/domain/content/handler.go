package content

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

	views, err := h.svc.List(r.Context(), memberID, Kind(r.URL.Query().Get("kind")))
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, views)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	contentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid content id")
		return
	}

	detail, err := h.svc.Get(r.Context(), memberID, contentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotPublished):
			response.NotFound(w, "content item not found")
		case errors.Is(err, ErrIneligible):
			response.Forbidden(w, "content is not available for your profile")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, detail)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	contentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid content id")
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

	p, err := h.svc.Complete(r.Context(), memberID, contentID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotPublished):
			response.NotFound(w, "content item not found")
		case errors.Is(err, ErrIneligible):
			response.Forbidden(w, "content is not available for your profile")
		case errors.Is(err, member.ErrNotApproved):
			response.Forbidden(w, "registration not yet approved")
		case errors.Is(err, ErrValidationFailed):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, p)
}

// Routes returns the member-facing content routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/complete", h.Complete)
	return r
}
