package mission

import "github.com/agripoint/loyalty-api/internal/domain/targeting"

// Award is the points/coins pair a mission completion pays.
type Award struct {
	Points int64
	Coins  int64
}

// ResolveAward picks the award for a member: the first matching override,
// or the mission's base award when none matches.
//
// Member-type rules are evaluated before tier rules, each class in the
// order the overrides were defined. A member-type rule carrying a sub-type
// matches only that sub-type; an unresolved member sub-type never matches
// a sub-type-pinned rule.
func ResolveAward(m *Mission, aud targeting.Audience) Award {
	for _, ov := range m.Overrides {
		if ov.Kind != OverrideMemberType {
			continue
		}
		if ov.MemberType != aud.MemberType {
			continue
		}
		if ov.SubType != "" && (aud.SubType == "" || ov.SubType != aud.SubType) {
			continue
		}
		return Award{Points: ov.Points, Coins: ov.Coins}
	}

	for _, ov := range m.Overrides {
		if ov.Kind != OverrideTier {
			continue
		}
		if ov.Tier == aud.Tier {
			return Award{Points: ov.Points, Coins: ov.Coins}
		}
	}

	return Award{Points: m.PointsAward, Coins: m.CoinsAward}
}
