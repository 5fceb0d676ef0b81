package targeting

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

// Rules is the targeting allow-list attached to a reward, content item or
// mission, stored as one JSONB column. An empty (or absent) set means
// unrestricted for that dimension.
type Rules struct {
	// Tiers the item is visible to. Empty = all tiers.
	Tiers []member.Tier `json:"tiers,omitempty"`

	// MemberTypes the item is visible to. Empty = all types.
	MemberTypes []member.Type `json:"member_types,omitempty"`

	// SubTypes narrows specific member types to named sub-types. A type
	// absent from the map (or mapped to an empty list) is not narrowed.
	SubTypes map[member.Type][]string `json:"sub_types,omitempty"`
}

// Audience is the member snapshot a rule set is evaluated against.
// SubType is "" when the member has no resolvable sub-type.
type Audience struct {
	Tier       member.Tier
	MemberType member.Type
	SubType    string
}

// Matches reports whether the audience passes all three targeting checks.
// Each check independently defaults to allow when its rule set is empty.
//
// The sub-type check fails closed: when the member's type is pinned to
// specific sub-types and the member's own sub-type is unresolved, the
// member is denied rather than treated as matching everything.
func (r Rules) Matches(aud Audience) bool {
	if len(r.Tiers) > 0 && !containsTier(r.Tiers, aud.Tier) {
		return false
	}

	if len(r.MemberTypes) > 0 && !containsType(r.MemberTypes, aud.MemberType) {
		return false
	}

	if allowed, ok := r.SubTypes[aud.MemberType]; ok && len(allowed) > 0 {
		if aud.SubType == "" {
			return false
		}
		if !containsString(allowed, aud.SubType) {
			return false
		}
	}

	return true
}

// IsOpen reports whether the rule set restricts nothing.
func (r Rules) IsOpen() bool {
	if len(r.Tiers) > 0 || len(r.MemberTypes) > 0 {
		return false
	}
	for _, subs := range r.SubTypes {
		if len(subs) > 0 {
			return false
		}
	}
	return true
}

// Value implements driver.Valuer so sqlx can serialize Rules to JSONB.
func (r Rules) Value() (driver.Value, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal targeting rules: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so sqlx can deserialize JSONB to Rules.
func (r *Rules) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	case nil:
		*r = Rules{}
		return nil
	default:
		return fmt.Errorf("unsupported targeting rules type %T", src)
	}
	if len(b) == 0 {
		*r = Rules{}
		return nil
	}
	return json.Unmarshal(b, r)
}

func containsTier(list []member.Tier, t member.Tier) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsType(list []member.Type, t member.Type) bool {
	for _, v := range list {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
