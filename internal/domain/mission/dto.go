package mission

import (
	"time"

	"github.com/google/uuid"
)

// CompleteRequest is the completion payload. Proof carries the scanned QR
// value for qr missions; manual missions may send it empty.
type CompleteRequest struct {
	Proof string `json:"proof" validate:"max=500"`
}

// MissionView is the listing row, with the award already resolved for the
// viewing member.
type MissionView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProofKind   ProofKind `json:"proof_kind"`
	Points      int64     `json:"points"`
	Coins       int64     `json:"coins"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
}

func toMissionView(m *Mission, award Award, completed bool) MissionView {
	return MissionView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		ProofKind:   m.ProofKind,
		Points:      award.Points,
		Coins:       award.Coins,
		IsCompleted: completed,
		CreatedAt:   m.CreatedAt,
	}
}
