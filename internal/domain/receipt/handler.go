package receipt

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/middleware"
	"github.com/agripoint/loyalty-api/internal/pkg/response"
	"github.com/agripoint/loyalty-api/internal/pkg/validator"
)

// maxUploadSize bounds receipt photo uploads (10 MiB).
const maxUploadSize = 10 << 20

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Submit accepts a multipart form: "image" (the photo), "store_name" and
// "amount" (whole currency units).
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "image file is required")
		return
	}
	defer file.Close()

	amount, _ := strconv.ParseInt(r.FormValue("amount"), 10, 64)
	if amount < 0 {
		response.BadRequest(w, "amount must not be negative")
		return
	}

	rec, err := h.svc.Submit(r.Context(), memberID, r.FormValue("store_name"), amount, file)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrNotApproved):
			response.Forbidden(w, "registration not yet approved")
		case errors.Is(err, ErrInvalidImage):
			response.BadRequest(w, "could not read receipt image")
		default:
			response.InternalError(w)
		}
		return
	}
	response.Created(w, rec)
}

func (h *Handler) MyReceipts(w http.ResponseWriter, r *http.Request) {
	memberID := middleware.GetMemberID(r.Context())
	if memberID == uuid.Nil {
		response.Unauthorized(w, "unauthorized")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	views, err := h.svc.MyReceipts(r.Context(), memberID, page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, views)
}

func (h *Handler) ReviewQueue(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	views, err := h.svc.ReviewQueue(r.Context(), page, limit)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, views)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "invalid receipt id")
		return
	}

	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON body")
		return
	}
	if fieldErrors := validator.Validate(req); fieldErrors != nil {
		response.ValidationError(w, fieldErrors)
		return
	}

	var rec *Receipt
	if approve {
		rec, err = h.svc.Approve(r.Context(), id, req.Points, req.Notes)
	} else {
		rec, err = h.svc.Reject(r.Context(), id, req.Notes)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.NotFound(w, "receipt not found")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Conflict(w, "ALREADY_REVIEWED", "receipt already reviewed")
		default:
			response.InternalError(w)
		}
		return
	}
	response.OK(w, rec)
}

// Routes returns the member-facing receipt routes.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Post("/", h.Submit)
	r.Get("/", h.MyReceipts)
	return r
}

// AdminRoutes returns the receipt review routes.
func (h *Handler) AdminRoutes(authMiddleware, adminOnly func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(adminOnly)
	r.Get("/", h.ReviewQueue)
	r.Post("/{id}/approve", h.Approve)
	r.Post("/{id}/reject", h.Reject)
	return r
}
