package tier

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agripoint/loyalty-api/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns the tier ladder for catalog/profile display.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}

	type tierView struct {
		Tier        string `json:"tier"`
		MinPoints   int64  `json:"min_points"`
		MaxPoints   *int64 `json:"max_points"`
		DisplayName string `json:"display_name"`
	}

	views := make([]tierView, 0, len(settings))
	for _, s := range settings {
		v := tierView{
			Tier:        string(s.Tier),
			MinPoints:   s.MinPoints,
			DisplayName: s.DisplayName,
		}
		if s.MaxPoints.Valid {
			max := s.MaxPoints.Int64
			v.MaxPoints = &max
		}
		views = append(views, v)
	}

	response.OK(w, views)
}

// Routes returns public tier routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}
