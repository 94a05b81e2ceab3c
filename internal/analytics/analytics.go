// Package analytics derives progress views from the append-only session log.
// Every query recomputes from the log on demand; there is no cache to
// invalidate.
package analytics

import (
	"math"
	"time"

	"tomatick/internal/core/model"
)

// HistorySource provides the full ordered session log.
type HistorySource interface {
	History() []model.SessionRecord
}

// StatsSource provides the cumulative counters.
type StatsSource interface {
	Snapshot() model.Stats
}

// Config contains runtime options for Engine.
type Config struct {
	Now func() time.Time
}

// Engine answers analytics queries over the session log and stats snapshot.
type Engine struct {
	history HistorySource
	stats   StatsSource
	now     func() time.Time
}

// New creates an analytics engine over the given sources.
func New(history HistorySource, stats StatsSource, options Config) *Engine {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Engine{history: history, stats: stats, now: options.Now}
}

// GoalProgress reports completed focus sessions against a goal.
type GoalProgress struct {
	CompletedSessions int
	TotalMinutes      int
	Goal              int
	Progress          float64
	Remaining         int
}

// PatternDay is one day of the daily pattern, oldest first.
type PatternDay struct {
	Date     string
	Day      string
	Sessions int
	Minutes  int
}

// Insights combines today's and the week's progress with 30-day trends.
type Insights struct {
	Today                GoalProgress
	Week                 GoalProgress
	AverageDailySessions float64
	MostProductiveDay    string
	CurrentStreak        int
	LongestStreak        int
	TotalSessions        int
	TotalMinutes         int
	TotalHours           float64
}

// TypeStats counts completed versus interrupted sessions of one type.
type TypeStats struct {
	Completed    int
	Interrupted  int
	TotalMinutes int
}

// Breakdown groups TypeStats per session type.
type Breakdown struct {
	Focus      TypeStats
	ShortBreak TypeStats
	LongBreak  TypeStats
}

// TodayStats reports completed focus sessions for the current calendar day
// against the daily goal.
func (engine *Engine) TodayStats() GoalProgress {
	today := engine.now().Format(model.DateLayout)
	sessions, minutes := engine.countCompletedFocus(func(record model.SessionRecord) bool {
		return record.Date == today
	})
	return goalProgress(sessions, minutes, engine.stats.Snapshot().DailyGoal)
}

// WeekStats reports completed focus sessions for the trailing seven days
// against the weekly goal.
func (engine *Engine) WeekStats() GoalProgress {
	weekAgo := engine.now().AddDate(0, 0, -7).Format(model.DateLayout)
	sessions, minutes := engine.countCompletedFocus(func(record model.SessionRecord) bool {
		return record.Date >= weekAgo
	})
	return goalProgress(sessions, minutes, engine.stats.Snapshot().WeeklyGoal)
}

// DailyPattern returns one entry per day for the trailing window, oldest to
// newest, ending today. Each entry counts completed focus sessions that day.
func (engine *Engine) DailyPattern(days int) []PatternDay {
	pattern := make([]PatternDay, 0, days)
	now := engine.now()

	for offset := days - 1; offset >= 0; offset-- {
		day := now.AddDate(0, 0, -offset)
		date := day.Format(model.DateLayout)
		sessions, minutes := engine.countCompletedFocus(func(record model.SessionRecord) bool {
			return record.Date == date
		})
		pattern = append(pattern, PatternDay{
			Date:     date,
			Day:      day.Weekday().String()[:3],
			Sessions: sessions,
			Minutes:  minutes,
		})
	}
	return pattern
}

// ProductivityInsights combines today's and the week's progress with averages
// and streaks derived from the 30-day pattern. Cumulative totals come from
// the stats snapshot, not from the log.
func (engine *Engine) ProductivityInsights() Insights {
	pattern := engine.DailyPattern(30)

	var activeDays, activeSessions int
	for _, day := range pattern {
		if day.Sessions > 0 {
			activeDays++
			activeSessions += day.Sessions
		}
	}
	var averageDaily float64
	if activeDays > 0 {
		averageDaily = float64(activeSessions) / float64(activeDays)
	}

	currentStreak, longestStreak := streaks(pattern)
	snapshot := engine.stats.Snapshot()

	return Insights{
		Today:                engine.TodayStats(),
		Week:                 engine.WeekStats(),
		AverageDailySessions: roundOneDecimal(averageDaily),
		MostProductiveDay:    mostProductiveDay(pattern),
		CurrentStreak:        currentStreak,
		LongestStreak:        longestStreak,
		TotalSessions:        snapshot.CompletedSessions,
		TotalMinutes:         snapshot.TotalMinutes,
		TotalHours:           roundOneDecimal(float64(snapshot.TotalMinutes) / 60),
	}
}

// SessionTypeBreakdown tallies completed and interrupted sessions per type
// over the trailing window.
func (engine *Engine) SessionTypeBreakdown(days int) Breakdown {
	cutoff := engine.now().AddDate(0, 0, -days).Format(model.DateLayout)

	var breakdown Breakdown
	for _, record := range engine.history.History() {
		if record.Date < cutoff {
			continue
		}
		var entry *TypeStats
		switch record.Type {
		case model.ModeFocus:
			entry = &breakdown.Focus
		case model.ModeShortBreak:
			entry = &breakdown.ShortBreak
		case model.ModeLongBreak:
			entry = &breakdown.LongBreak
		default:
			continue
		}
		if record.Completed {
			entry.Completed++
		} else {
			entry.Interrupted++
		}
		entry.TotalMinutes += record.DurationMinutes
	}
	return breakdown
}

func (engine *Engine) countCompletedFocus(match func(model.SessionRecord) bool) (sessions, minutes int) {
	for _, record := range engine.history.History() {
		if record.Type != model.ModeFocus || !record.Completed || !match(record) {
			continue
		}
		sessions++
		minutes += record.DurationMinutes
	}
	return sessions, minutes
}

// mostProductiveDay finds the weekday with the highest mean session count
// across the pattern. Weekdays are considered in first-seen order, a strictly
// higher mean wins, and "Monday" is the answer when no day beats zero.
func mostProductiveDay(pattern []PatternDay) string {
	type dayTally struct {
		sessions int
		count    int
	}
	tallies := map[string]*dayTally{}
	var order []string
	for _, day := range pattern {
		tally, seen := tallies[day.Day]
		if !seen {
			tally = &dayTally{}
			tallies[day.Day] = tally
			order = append(order, day.Day)
		}
		tally.sessions += day.Sessions
		tally.count++
	}

	best := "Monday"
	var bestAverage float64
	for _, name := range order {
		tally := tallies[name]
		average := float64(tally.sessions) / float64(tally.count)
		if average > bestAverage {
			bestAverage = average
			best = name
		}
	}
	return best
}

// streaks scans the pattern newest-first, maintaining a running streak that
// resets on any zero-session day. The temp == current comparison reproduces
// the historical behavior exactly: the counters start equal and move in
// lockstep, so the reported current streak is whatever run the scan ends on,
// the one touching the oldest day of the window. The quirk is pinned by
// tests; do not "fix" it without migrating stored expectations.
func streaks(pattern []PatternDay) (current, longest int) {
	temp := 0
	for index := len(pattern) - 1; index >= 0; index-- {
		if pattern[index].Sessions > 0 {
			if temp == current {
				current++
			}
			temp++
			if temp > longest {
				longest = temp
			}
		} else {
			if temp == current {
				current = 0
			}
			temp = 0
		}
	}
	return current, longest
}

func goalProgress(sessions, minutes, goal int) GoalProgress {
	var progress float64
	if goal > 0 {
		progress = math.Min(float64(sessions)/float64(goal)*100, 100)
	}
	remaining := goal - sessions
	if remaining < 0 {
		remaining = 0
	}
	return GoalProgress{
		CompletedSessions: sessions,
		TotalMinutes:      minutes,
		Goal:              goal,
		Progress:          progress,
		Remaining:         remaining,
	}
}

func roundOneDecimal(value float64) float64 {
	return math.Round(value*10) / 10
}
