package tier

import (
	"database/sql"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

// Setting is one rung of the tier ladder (matches tier_settings table).
// MaxPoints is NULL for the unbounded top tier. Rows are kept contiguous
// and non-overlapping by the administrator; Resolve only depends on
// MinPoints so a misconfigured gap cannot strand a member without a tier.
type Setting struct {
	Tier        member.Tier   `db:"tier" json:"tier"`
	MinPoints   int64         `db:"min_points" json:"min_points"`
	MaxPoints   sql.NullInt64 `db:"max_points" json:"-"`
	DisplayName string        `db:"display_name" json:"display_name"`
}
