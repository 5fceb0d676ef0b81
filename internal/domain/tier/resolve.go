package tier

import (
	"sort"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

// Resolve returns the tier for a cumulative points total: the tier of the
// highest setting whose min_points threshold has been reached. The top
// tier's max_points is unbounded and never caps membership.
//
// Settings may arrive in any order; Resolve sorts a copy ascending by
// min_points. An empty ladder resolves to bronze.
func Resolve(totalPoints int64, settings []Setting) member.Tier {
	if len(settings) == 0 {
		return member.TierBronze
	}

	sorted := make([]Setting, len(settings))
	copy(sorted, settings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinPoints < sorted[j].MinPoints
	})

	resolved := sorted[0].Tier
	for _, s := range sorted {
		if s.MinPoints <= totalPoints {
			resolved = s.Tier
		}
	}
	return resolved
}
