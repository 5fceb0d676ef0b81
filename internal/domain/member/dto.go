package member

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=120"`
	MemberType  string `json:"member_type" validate:"required,member_type"`
	SubType     string `json:"sub_type" validate:"max=120"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ReviewRequest is the admin approval decision.
type ReviewRequest struct {
	Approved bool `json:"approved"`
}

// ProfileResponse is the member-facing profile view.
type ProfileResponse struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	DisplayName    string    `json:"display_name"`
	Tier           Tier      `json:"tier"`
	MemberType     Type      `json:"member_type"`
	MemberSubType  string    `json:"member_sub_type,omitempty"`
	ApprovalStatus string    `json:"approval_status"`
	TotalPoints    int64     `json:"total_points"`
	TotalCoins     int64     `json:"total_coins"`
	CreatedAt      time.Time `json:"created_at"`
}

// AuthResponse bundles a profile with issued tokens.
type AuthResponse struct {
	Member       ProfileResponse `json:"member"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

func toProfileResponse(m *Member, subType string) ProfileResponse {
	return ProfileResponse{
		ID:             m.ID,
		Email:          m.Email,
		DisplayName:    m.DisplayName,
		Tier:           m.Tier,
		MemberType:     m.MemberType,
		MemberSubType:  subType,
		ApprovalStatus: string(m.ApprovalStatus),
		TotalPoints:    m.TotalPoints,
		TotalCoins:     m.TotalCoins,
		CreatedAt:      m.CreatedAt,
	}
}
