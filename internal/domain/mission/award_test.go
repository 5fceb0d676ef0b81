package mission_test

import (
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/member"
	"github.com/agripoint/loyalty-api/internal/domain/mission"
	"github.com/agripoint/loyalty-api/internal/domain/targeting"
)

func TestResolveAward(t *testing.T) {
	m := &mission.Mission{
		PointsAward: 10,
		CoinsAward:  1,
		Overrides: mission.Overrides{
			{Kind: mission.OverrideMemberType, MemberType: member.TypeVeterinarian, SubType: "livestock", Points: 50, Coins: 5},
			{Kind: mission.OverrideMemberType, MemberType: member.TypeVeterinarian, Points: 30, Coins: 3},
			{Kind: mission.OverrideTier, Tier: member.TierGold, Points: 20, Coins: 2},
		},
	}

	tests := []struct {
		name string
		aud  targeting.Audience
		want mission.Award
	}{
		{
			name: "sub-type rule wins for matching vet",
			aud:  targeting.Audience{Tier: member.TierBronze, MemberType: member.TypeVeterinarian, SubType: "livestock"},
			want: mission.Award{Points: 50, Coins: 5},
		},
		{
			name: "vet with other sub-type falls to plain member-type rule",
			aud:  targeting.Audience{Tier: member.TierBronze, MemberType: member.TypeVeterinarian, SubType: "pets"},
			want: mission.Award{Points: 30, Coins: 3},
		},
		{
			name: "member-type rule beats tier rule even for gold",
			aud:  targeting.Audience{Tier: member.TierGold, MemberType: member.TypeVeterinarian, SubType: "pets"},
			want: mission.Award{Points: 30, Coins: 3},
		},
		{
			name: "tier rule applies when no member-type rule matches",
			aud:  targeting.Audience{Tier: member.TierGold, MemberType: member.TypeFarm},
			want: mission.Award{Points: 20, Coins: 2},
		},
		{
			name: "no match falls back to base award",
			aud:  targeting.Audience{Tier: member.TierBronze, MemberType: member.TypeFarm},
			want: mission.Award{Points: 10, Coins: 1},
		},
		{
			name: "unresolved sub-type never matches a pinned rule",
			aud:  targeting.Audience{Tier: member.TierBronze, MemberType: member.TypeVeterinarian, SubType: ""},
			want: mission.Award{Points: 30, Coins: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mission.ResolveAward(m, tt.aud); got != tt.want {
				t.Fatalf("ResolveAward() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// An override replaces the base award, never adds to it.
func TestOverrideReplacesBase(t *testing.T) {
	m := &mission.Mission{
		PointsAward: 100,
		CoinsAward:  10,
		Overrides: mission.Overrides{
			{Kind: mission.OverrideTier, Tier: member.TierSilver, Points: 5, Coins: 0},
		},
	}

	got := mission.ResolveAward(m, targeting.Audience{Tier: member.TierSilver, MemberType: member.TypeFarm})
	if got.Points != 5 || got.Coins != 0 {
		t.Fatalf("expected override {5 0} to replace base, got %+v", got)
	}
}

// Admin-entered order decides between two rules of the same class.
func TestOverrideOrderWithinClass(t *testing.T) {
	m := &mission.Mission{
		PointsAward: 10,
		Overrides: mission.Overrides{
			{Kind: mission.OverrideMemberType, MemberType: member.TypeFarm, Points: 40},
			{Kind: mission.OverrideMemberType, MemberType: member.TypeFarm, Points: 99},
		},
	}

	got := mission.ResolveAward(m, targeting.Audience{Tier: member.TierBronze, MemberType: member.TypeFarm})
	if got.Points != 40 {
		t.Fatalf("expected first matching rule (40), got %d", got.Points)
	}
}
