package tier

import (
	"database/sql"
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/member"
)

func ladder() []Setting {
	return []Setting{
		{Tier: member.TierBronze, MinPoints: 0, MaxPoints: sql.NullInt64{Int64: 100, Valid: true}},
		{Tier: member.TierSilver, MinPoints: 100, MaxPoints: sql.NullInt64{Int64: 500, Valid: true}},
		{Tier: member.TierGold, MinPoints: 500},
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		points int64
		want   member.Tier
	}{
		{"zero points", 0, member.TierBronze},
		{"below first threshold", 99, member.TierBronze},
		{"exact threshold", 100, member.TierSilver},
		{"mid range", 150, member.TierSilver},
		{"unbounded top tier", 500, member.TierGold},
		{"far past top threshold", 1_000_000, member.TierGold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.points, ladder())
			if got != tt.want {
				t.Fatalf("Resolve(%d) = %s, want %s", tt.points, got, tt.want)
			}
		})
	}
}

func TestResolveUnsortedInput(t *testing.T) {
	settings := []Setting{
		{Tier: member.TierGold, MinPoints: 500},
		{Tier: member.TierBronze, MinPoints: 0},
		{Tier: member.TierSilver, MinPoints: 100},
	}

	if got := Resolve(150, settings); got != member.TierSilver {
		t.Fatalf("Resolve(150) = %s, want silver", got)
	}
}

func TestResolveMonotonic(t *testing.T) {
	settings := ladder()
	prev := Resolve(0, settings)
	for points := int64(1); points <= 600; points++ {
		cur := Resolve(points, settings)
		if cur.Rank() < prev.Rank() {
			t.Fatalf("tier regressed from %s to %s at %d points", prev, cur, points)
		}
		prev = cur
	}
}

func TestResolveEmptyLadder(t *testing.T) {
	if got := Resolve(10_000, nil); got != member.TierBronze {
		t.Fatalf("Resolve with empty ladder = %s, want bronze", got)
	}
}
