package reward

import (
	"time"

	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

// RedeemRequest is the redemption payload. ExpectedPoints guards against a
// stale catalog price; omit it to accept whatever the current price is.
type RedeemRequest struct {
	ExpectedPoints  *int64 `json:"expected_points"`
	ShippingAddress string `json:"shipping_address" validate:"required,max=500"`
	Notes           string `json:"notes" validate:"max=500"`
}

// TransitionRequest is the admin status-change payload.
type TransitionRequest struct {
	Status         string `json:"status" validate:"required,oneof=processing shipped completed cancelled"`
	TrackingNumber string `json:"tracking_number" validate:"max=120"`
}

// CatalogItem is the member-facing reward view, priced at the viewing
// member's tier. The price is advisory; Redeem re-derives it server-side.
type CatalogItem struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	EffectivePoints int64     `json:"effective_points"`
	InStock         bool      `json:"in_stock"`
	CreatedAt       time.Time `json:"created_at"`
}

func toCatalogItem(r *Reward, tier member.Tier) CatalogItem {
	return CatalogItem{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		EffectivePoints: EffectivePrice(r, tier),
		InStock:         r.StockQuantity > 0,
		CreatedAt:       r.CreatedAt,
	}
}
