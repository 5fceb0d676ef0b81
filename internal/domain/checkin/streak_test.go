package checkin_test

import (
	"testing"

	"github.com/agripoint/loyalty-api/internal/domain/checkin"
)

func TestNextStreak(t *testing.T) {
	tests := []struct {
		name            string
		hadYesterday    bool
		yesterdayStreak int
		want            int
	}{
		{"first ever check-in", false, 0, 1},
		{"missed a day resets", false, 6, 1},
		{"continues streak", true, 3, 4},
		{"continues past cycle length", true, 7, 8},
		{"garbage yesterday streak resets", true, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkin.NextStreak(tt.hadYesterday, tt.yesterdayStreak); got != tt.want {
				t.Fatalf("NextStreak(%v, %d) = %d, want %d", tt.hadYesterday, tt.yesterdayStreak, got, tt.want)
			}
		})
	}
}

func TestCycleDay(t *testing.T) {
	tests := []struct {
		streak, cycle, want int
	}{
		{1, 7, 1},
		{7, 7, 7},
		{8, 7, 1},
		{15, 7, 1},
		{10, 7, 3},
		{3, 0, 1},
	}

	for _, tt := range tests {
		if got := checkin.CycleDay(tt.streak, tt.cycle); got != tt.want {
			t.Fatalf("CycleDay(%d, %d) = %d, want %d", tt.streak, tt.cycle, got, tt.want)
		}
	}
}

func TestRewardFor(t *testing.T) {
	schedule := []checkin.RewardDay{
		{Day: 1, Points: 5},
		{Day: 2, Points: 5},
		{Day: 3, Points: 10},
		{Day: 4, Points: 10},
		{Day: 5, Points: 15},
		{Day: 6, Points: 15},
		{Day: 7, Points: 30, Coins: 5, IsBonus: true},
	}

	if got := checkin.RewardFor(7, schedule); !got.IsBonus || got.Points != 30 || got.Coins != 5 {
		t.Fatalf("expected bonus day reward, got %+v", got)
	}

	// Streak 8 wraps back to day 1.
	if got := checkin.RewardFor(8, schedule); got.Day != 1 || got.Points != 5 {
		t.Fatalf("expected wrap to day 1, got %+v", got)
	}

	// Streak 14 lands on the bonus day again.
	if got := checkin.RewardFor(14, schedule); !got.IsBonus {
		t.Fatalf("expected second-cycle bonus day, got %+v", got)
	}
}
