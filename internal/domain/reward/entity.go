package reward

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

// TierPricing maps a tier to its override price, stored as JSONB.
// Tiers absent from the map fall back to the reward's flat PointsCost.
type TierPricing map[member.Tier]int64

func (p TierPricing) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal tier pricing: %w", err)
	}
	return string(b), nil
}

func (p *TierPricing) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*p = TierPricing{}
		return nil
	default:
		return fmt.Errorf("unsupported tier pricing type %T", src)
	}
	if len(b) == 0 {
		*p = TierPricing{}
		return nil
	}
	return json.Unmarshal(b, p)
}

// Reward is a redeemable catalog item (matches rewards table).
type Reward struct {
	ID             uuid.UUID       `db:"id"`
	Title          string          `db:"title"`
	Description    string          `db:"description"`
	ImageURL       string          `db:"image_url"`
	PointsCost     int64           `db:"points_cost"`
	TierPointsCost TierPricing     `db:"tier_points_cost"`
	StockQuantity  int             `db:"stock_quantity"`
	Targeting      targeting.Rules `db:"targeting"`
	IsActive       bool            `db:"is_active"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// Status is the redemption request lifecycle state. The ledger is touched
// only at creation; transitions afterward are administrative.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Redemption is a member's redemption request. PointsSpent snapshots the
// price actually charged and never changes, even if the reward is repriced.
type Redemption struct {
	ID              uuid.UUID `db:"id" json:"id"`
	ProfileID       uuid.UUID `db:"profile_id" json:"profile_id"`
	RewardID        uuid.UUID `db:"reward_id" json:"reward_id"`
	PointsSpent     int64     `db:"points_spent" json:"points_spent"`
	Status          Status    `db:"status" json:"status"`
	ShippingAddress string    `db:"shipping_address" json:"shipping_address"`
	Notes           string    `db:"notes" json:"notes,omitempty"`
	TrackingNumber  string    `db:"tracking_number" json:"tracking_number,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
