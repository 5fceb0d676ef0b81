package receipt

import (
	"time"

	"github.com/google/uuid"
)

// Status is the receipt review state.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Receipt is a purchase receipt submitted for points (matches receipts
// table). PointsEarned is set on approval; the ledger row is written in
// the same transaction as the status flip.
type Receipt struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ProfileID    uuid.UUID  `db:"profile_id" json:"profile_id"`
	ImageKey     string     `db:"image_key" json:"-"`
	StoreName    string     `db:"store_name" json:"store_name"`
	Amount       int64      `db:"amount" json:"amount"`
	Status       Status     `db:"status" json:"status"`
	PointsEarned int64      `db:"points_earned" json:"points_earned"`
	ReviewNotes  string     `db:"review_notes" json:"review_notes,omitempty"`
	ReviewedAt   *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
