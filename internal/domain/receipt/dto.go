package receipt

import (
	"time"

	"github.com/google/uuid"
)

// ReviewRequest is the admin decision payload.
type ReviewRequest struct {
	Points int64  `json:"points" validate:"min=0"`
	Notes  string `json:"notes" validate:"max=500"`
}

// ReceiptView is a receipt with its image resolved to a URL.
type ReceiptView struct {
	ID           uuid.UUID  `json:"id"`
	ProfileID    uuid.UUID  `json:"profile_id"`
	ImageURL     string     `json:"image_url"`
	StoreName    string     `json:"store_name"`
	Amount       int64      `json:"amount"`
	Status       Status     `json:"status"`
	PointsEarned int64      `json:"points_earned"`
	ReviewNotes  string     `json:"review_notes,omitempty"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toReceiptView(r *Receipt, imageURL string) ReceiptView {
	return ReceiptView{
		ID:           r.ID,
		ProfileID:    r.ProfileID,
		ImageURL:     imageURL,
		StoreName:    r.StoreName,
		Amount:       r.Amount,
		Status:       r.Status,
		PointsEarned: r.PointsEarned,
		ReviewNotes:  r.ReviewNotes,
		ReviewedAt:   r.ReviewedAt,
		CreatedAt:    r.CreatedAt,
	}
}
