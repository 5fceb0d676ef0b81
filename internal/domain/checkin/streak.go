package checkin

// NextStreak returns the streak day for a new check-in given yesterday's
// streak, or 1 when yesterday has no check-in (hadYesterday false). A
// missed day always resets to 1.
func NextStreak(hadYesterday bool, yesterdayStreak int) int {
	if !hadYesterday || yesterdayStreak < 1 {
		return 1
	}
	return yesterdayStreak + 1
}

// CycleDay maps a streak day onto the reward cycle: streak 1 is cycle day
// 1, streak cycleLen+1 wraps back to 1.
func CycleDay(streak, cycleLen int) int {
	if cycleLen <= 0 {
		return 1
	}
	return ((streak - 1) % cycleLen) + 1
}

// RewardFor looks up the schedule slot a streak day pays. The schedule is
// the full cycle ordered by day; a missing slot pays nothing.
func RewardFor(streak int, schedule []RewardDay) RewardDay {
	day := CycleDay(streak, len(schedule))
	for _, r := range schedule {
		if r.Day == day {
			return r
		}
	}
	return RewardDay{Day: day}
}
