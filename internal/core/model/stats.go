package model

// Stats holds cumulative counters updated when a focus session completes
// naturally. The counters are independent of the session log.
type Stats struct {
	CompletedSessions int `json:"completedSessions"`
	TotalMinutes      int `json:"totalMinutes"`
	StreakCount       int `json:"streakCount"`
	DailyGoal         int `json:"dailyGoal"`
	WeeklyGoal        int `json:"weeklyGoal"`
}

// DefaultStats returns zeroed counters with the default goals.
func DefaultStats() Stats {
	return Stats{
		DailyGoal:  8,
		WeeklyGoal: 40,
	}
}
