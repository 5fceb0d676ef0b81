package reward_test

import (
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/reward"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name   string
		reward reward.Reward
		tier   member.Tier
		want   int64
	}{
		{
			name: "tier override applies",
			reward: reward.Reward{
				PointsCost:     500,
				TierPointsCost: reward.TierPricing{member.TierGold: 300},
			},
			tier: member.TierGold,
			want: 300,
		},
		{
			name: "no override falls back to flat cost",
			reward: reward.Reward{
				PointsCost:     500,
				TierPointsCost: reward.TierPricing{member.TierGold: 300},
			},
			tier: member.TierSilver,
			want: 500,
		},
		{
			name:   "empty pricing map",
			reward: reward.Reward{PointsCost: 250},
			tier:   member.TierPlatinum,
			want:   250,
		},
		{
			name: "zero override is a real price",
			reward: reward.Reward{
				PointsCost:     100,
				TierPointsCost: reward.TierPricing{member.TierPlatinum: 0},
			},
			tier: member.TierPlatinum,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reward.EffectivePrice(&tt.reward, tt.tier); got != tt.want {
				t.Fatalf("EffectivePrice() = %d, want %d", got, tt.want)
			}
		})
	}
}

// The price is always either a configured tier override or exactly the flat
// cost, never anything in between.
func TestEffectivePriceNeverBlends(t *testing.T) {
	rw := reward.Reward{
		PointsCost: 500,
		TierPointsCost: reward.TierPricing{
			member.TierGold:     300,
			member.TierPlatinum: 200,
		},
	}

	for _, tier := range []member.Tier{member.TierBronze, member.TierSilver, member.TierGold, member.TierPlatinum} {
		got := reward.EffectivePrice(&rw, tier)
		if override, ok := rw.TierPointsCost[tier]; ok {
			if got != override {
				t.Fatalf("tier %s: got %d, want override %d", tier, got, override)
			}
			continue
		}
		if got != rw.PointsCost {
			t.Fatalf("tier %s: got %d, want flat cost %d", tier, got, rw.PointsCost)
		}
	}
}
