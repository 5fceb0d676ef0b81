package member

import (
	"time"

	"github.com/google/uuid"
)

// Tier is the ordered membership level derived from cumulative points.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Rank returns the tier's position in the ladder, bronze lowest.
// Unknown tiers rank below bronze.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	}
	return 0
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t.Rank() > 0
}

// Type is the member's occupation category.
type Type string

const (
	TypeFarm            Type = "farm"
	TypeCompanyEmployee Type = "company_employee"
	TypeVeterinarian    Type = "veterinarian"
	TypeLivestockShop   Type = "livestock_shop"
	TypeGovernment      Type = "government"
	TypeOther           Type = "other"
)

// ApprovalStatus is the registration review state.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Member is a loyalty program member (matches member_profiles table).
// TotalPoints and TotalCoins are denormalized ledger sums; they are written
// only by the ledger primitives, never by this package.
type Member struct {
	ID             uuid.UUID      `db:"id"`
	Email          string         `db:"email"`
	PasswordHash   string         `db:"password_hash"`
	Role           string         `db:"role"`
	DisplayName    string         `db:"display_name"`
	Tier           Tier           `db:"tier"`
	MemberType     Type           `db:"member_type"`
	ApprovalStatus ApprovalStatus `db:"approval_status"`
	TotalPoints    int64          `db:"total_points"`
	TotalCoins     int64          `db:"total_coins"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

// IsApproved reports whether the member passed registration review.
func (m *Member) IsApproved() bool {
	return m.ApprovalStatus == ApprovalApproved
}

// Occupation is an occupation detail row. The member's sub-type is the
// sub_type of the occupation matching their member_type; it is derived,
// never stored on the profile.
type Occupation struct {
	ID         uuid.UUID `db:"id"`
	ProfileID  uuid.UUID `db:"profile_id"`
	MemberType Type      `db:"member_type"`
	SubType    string    `db:"sub_type"`
	CreatedAt  time.Time `db:"created_at"`
}
