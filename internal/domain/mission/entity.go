package mission

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

// ProofKind is how a mission completion is evidenced.
type ProofKind string

const (
	ProofQR     ProofKind = "qr"
	ProofManual ProofKind = "manual"
)

// OverrideKind tags an award-override rule variant.
type OverrideKind string

const (
	OverrideMemberType OverrideKind = "member_type"
	OverrideTier       OverrideKind = "tier"
)

// Override is an admin-defined exception to a mission's base award. A
// member_type rule may additionally pin a sub-type; a tier rule matches on
// tier alone. A matching override replaces the base award entirely, it is
// never summed with it.
type Override struct {
	Kind       OverrideKind `json:"kind"`
	MemberType member.Type  `json:"member_type,omitempty"`
	SubType    string       `json:"sub_type,omitempty"`
	Tier       member.Tier  `json:"tier,omitempty"`
	Points     int64        `json:"points"`
	Coins      int64        `json:"coins"`
}

// Overrides is the ordered override list, stored as JSONB.
type Overrides []Override

func (o Overrides) Value() (driver.Value, error) {
	if o == nil {
		return "[]", nil
	}
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal overrides: %w", err)
	}
	return string(b), nil
}

func (o *Overrides) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*o = Overrides{}
		return nil
	default:
		return fmt.Errorf("unsupported overrides type %T", src)
	}
	if len(b) == 0 {
		*o = Overrides{}
		return nil
	}
	return json.Unmarshal(b, o)
}

// Mission is a completable task (matches missions table).
type Mission struct {
	ID          uuid.UUID       `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	ProofKind   ProofKind       `db:"proof_kind"`
	QRCode      *string         `db:"qr_code"`
	PointsAward int64           `db:"points_award"`
	CoinsAward  int64           `db:"coins_award"`
	Overrides   Overrides       `db:"overrides"`
	Targeting   targeting.Rules `db:"targeting"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// Completion is a member's completion record (matches mission_completions
// table). At most one per (member, mission).
type Completion struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	ProfileID    uuid.UUID  `db:"profile_id" json:"profile_id"`
	MissionID    uuid.UUID  `db:"mission_id" json:"mission_id"`
	IsCompleted  bool       `db:"is_completed" json:"is_completed"`
	PointsEarned int64      `db:"points_earned" json:"points_earned"`
	CoinsEarned  int64      `db:"coins_earned" json:"coins_earned"`
	Proof        string     `db:"proof" json:"proof,omitempty"`
	CompletedAt  *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
