package tier

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository loads the tier ladder.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// List returns all tier settings ordered ascending by min_points.
func (r *Repository) List(ctx context.Context) ([]Setting, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	settings := make([]Setting, 0)
	err := r.db.SelectContext(ctx2, &settings, `
		SELECT tier, min_points, max_points, display_name
		FROM tier_settings
		ORDER BY min_points ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tier settings: %w", err)
	}
	return settings, nil
}
