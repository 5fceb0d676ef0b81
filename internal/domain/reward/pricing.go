package reward

import "github.com/agripoint/loyalty-api/internal/domain/member"

// EffectivePrice resolves the points price a member of the given tier pays
// for the reward: the tier-specific override when one is configured,
// otherwise the flat PointsCost. Prices are never blended across tiers.
//
// Display and charging must both call this with the same tier snapshot so
// the listed price and the charged price cannot diverge.
func EffectivePrice(r *Reward, tier member.Tier) int64 {
	if price, ok := r.TierPointsCost[tier]; ok {
		return price
	}
	return r.PointsCost
}
