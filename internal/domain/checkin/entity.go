package checkin

import (
	"time"

	"github.com/google/uuid"
)

// RewardDay is one slot of the check-in reward cycle (matches
// checkin_rewards table). Days are 1-based; the streak wraps around the
// cycle length.
type RewardDay struct {
	Day     int   `db:"day" json:"day"`
	Points  int64 `db:"points" json:"points"`
	Coins   int64 `db:"coins" json:"coins"`
	IsBonus bool  `db:"is_bonus" json:"is_bonus"`
}

// Checkin is one member's check-in for one calendar day (matches
// daily_checkins table). At most one per (member, date).
type Checkin struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProfileID    uuid.UUID `db:"profile_id" json:"profile_id"`
	CheckinDate  time.Time `db:"checkin_date" json:"checkin_date"`
	StreakDay    int       `db:"streak_day" json:"streak_day"`
	PointsEarned int64     `db:"points_earned" json:"points_earned"`
	CoinsEarned  int64     `db:"coins_earned" json:"coins_earned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
