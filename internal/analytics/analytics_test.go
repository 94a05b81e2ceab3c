package analytics_test

import (
	"testing"
	"time"

	"tomatick/internal/analytics"
	"tomatick/internal/core/model"
)

// fixedNow is a Saturday; pattern weekday math in the tests derives from it.
var fixedNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

type fakeHistory []model.SessionRecord

func (history fakeHistory) History() []model.SessionRecord { return history }

type fakeStats model.Stats

func (stats fakeStats) Snapshot() model.Stats { return model.Stats(stats) }

func dateOffset(daysAgo int) string {
	return fixedNow.AddDate(0, 0, -daysAgo).Format(model.DateLayout)
}

func focusRecord(daysAgo, minutes int, completed bool) model.SessionRecord {
	return model.SessionRecord{
		Date:            dateOffset(daysAgo),
		Type:            model.ModeFocus,
		DurationMinutes: minutes,
		Completed:       completed,
	}
}

func newEngine(history fakeHistory, stats model.Stats) *analytics.Engine {
	return analytics.New(history, fakeStats(stats), analytics.Config{
		Now: func() time.Time { return fixedNow },
	})
}

func TestTodayStatsCountsOnlyCompletedFocusToday(t *testing.T) {
	history := fakeHistory{
		focusRecord(0, 25, true),
		focusRecord(0, 25, true),
		focusRecord(0, 10, false), // interrupted, excluded
		focusRecord(1, 25, true),  // yesterday, excluded
		{Date: dateOffset(0), Type: model.ModeShortBreak, DurationMinutes: 5, Completed: true},
	}
	engine := newEngine(history, model.Stats{DailyGoal: 8, WeeklyGoal: 40})

	today := engine.TodayStats()
	if today.CompletedSessions != 2 {
		t.Errorf("completed = %d, want 2", today.CompletedSessions)
	}
	if today.TotalMinutes != 50 {
		t.Errorf("minutes = %d, want 50", today.TotalMinutes)
	}
	if today.Progress != 25 {
		t.Errorf("progress = %v, want 25", today.Progress)
	}
	if today.Remaining != 6 {
		t.Errorf("remaining = %d, want 6", today.Remaining)
	}
}

func TestTodayProgressCapsAtHundred(t *testing.T) {
	history := fakeHistory{}
	for i := 0; i < 12; i++ {
		history = append(history, focusRecord(0, 25, true))
	}
	engine := newEngine(history, model.Stats{DailyGoal: 8})

	today := engine.TodayStats()
	if today.Progress != 100 {
		t.Errorf("progress = %v, want capped at 100", today.Progress)
	}
	if today.Remaining != 0 {
		t.Errorf("remaining = %d, want 0", today.Remaining)
	}
}

func TestWeekStatsLowerBoundIsInclusive(t *testing.T) {
	history := fakeHistory{
		focusRecord(7, 25, true), // exactly seven days ago counts
		focusRecord(8, 25, true), // outside the window
	}
	engine := newEngine(history, model.Stats{WeeklyGoal: 40})

	week := engine.WeekStats()
	if week.CompletedSessions != 1 {
		t.Errorf("completed = %d, want 1", week.CompletedSessions)
	}
	if week.TotalMinutes != 25 {
		t.Errorf("minutes = %d, want 25", week.TotalMinutes)
	}
}

func TestDailyPatternShape(t *testing.T) {
	engine := newEngine(fakeHistory{focusRecord(0, 25, true)}, model.Stats{})

	pattern := engine.DailyPattern(7)
	if len(pattern) != 7 {
		t.Fatalf("got %d entries, want 7", len(pattern))
	}
	if pattern[6].Date != dateOffset(0) {
		t.Errorf("last entry date = %q, want today %q", pattern[6].Date, dateOffset(0))
	}
	if pattern[0].Date != dateOffset(6) {
		t.Errorf("first entry date = %q, want %q", pattern[0].Date, dateOffset(6))
	}
	for i, day := range pattern[:6] {
		if day.Sessions != 0 {
			t.Errorf("entry %d sessions = %d, want 0", i, day.Sessions)
		}
	}
	if pattern[6].Sessions != 1 || pattern[6].Minutes != 25 {
		t.Errorf("today = %d sessions/%d min, want 1/25", pattern[6].Sessions, pattern[6].Minutes)
	}
	if pattern[6].Day != "Sat" {
		t.Errorf("today weekday = %q, want Sat", pattern[6].Day)
	}
}

func TestAverageDailySessionsExcludesEmptyDays(t *testing.T) {
	history := fakeHistory{}
	for i := 0; i < 2; i++ {
		history = append(history, focusRecord(10, 25, true))
	}
	for i := 0; i < 3; i++ {
		history = append(history, focusRecord(5, 25, true))
	}
	for i := 0; i < 4; i++ {
		history = append(history, focusRecord(2, 25, true))
	}
	engine := newEngine(history, model.Stats{DailyGoal: 8, WeeklyGoal: 40})

	insights := engine.ProductivityInsights()
	if insights.AverageDailySessions != 3.0 {
		t.Errorf("averageDailySessions = %v, want 3.0", insights.AverageDailySessions)
	}
}

func TestMostProductiveDayDefaultsToMonday(t *testing.T) {
	engine := newEngine(fakeHistory{}, model.Stats{})
	if got := engine.ProductivityInsights().MostProductiveDay; got != "Monday" {
		t.Errorf("mostProductiveDay = %q, want Monday default", got)
	}
}

func TestMostProductiveDayPicksHighestMean(t *testing.T) {
	history := fakeHistory{
		focusRecord(0, 25, true), // Saturday: 1 session
		focusRecord(1, 25, true), // Friday: 3 sessions
		focusRecord(1, 25, true),
		focusRecord(1, 25, true),
	}
	engine := newEngine(history, model.Stats{})

	if got := engine.ProductivityInsights().MostProductiveDay; got != "Fri" {
		t.Errorf("mostProductiveDay = %q, want Fri", got)
	}
}

func TestLongestStreakSpansGaps(t *testing.T) {
	history := fakeHistory{
		focusRecord(0, 25, true),
		focusRecord(1, 25, true),
		focusRecord(2, 25, true),
		// gap at 3 days ago
		focusRecord(4, 25, true),
		focusRecord(5, 25, true),
		focusRecord(6, 25, true),
		focusRecord(7, 25, true),
	}
	engine := newEngine(history, model.Stats{})

	insights := engine.ProductivityInsights()
	if insights.LongestStreak != 4 {
		t.Errorf("longestStreak = %d, want 4", insights.LongestStreak)
	}
	// Historical scan quirk: the two streak counters stay locked together,
	// so the reported current streak is the run touching the oldest day of
	// the 30-day window. With zero-session days there, it reads 0 even
	// though today has sessions. Pinned as documented behavior.
	if insights.CurrentStreak != 0 {
		t.Errorf("currentStreak = %d, want 0 (historical quirk)", insights.CurrentStreak)
	}
}

// Companion quirk case: a run touching the oldest edge of the window is the
// one reported as current, however stale it is.
func TestCurrentStreakQuirkReportsOldestRun(t *testing.T) {
	history := fakeHistory{
		focusRecord(28, 25, true),
		focusRecord(29, 25, true),
	}
	engine := newEngine(history, model.Stats{})

	insights := engine.ProductivityInsights()
	if insights.CurrentStreak != 2 {
		t.Errorf("currentStreak = %d, want 2 (historical quirk)", insights.CurrentStreak)
	}
	if insights.LongestStreak != 2 {
		t.Errorf("longestStreak = %d, want 2", insights.LongestStreak)
	}
}

func TestStreaksOverFullWindow(t *testing.T) {
	history := fakeHistory{}
	for day := 0; day < 30; day++ {
		history = append(history, focusRecord(day, 25, true))
	}
	engine := newEngine(history, model.Stats{})

	insights := engine.ProductivityInsights()
	if insights.CurrentStreak != 30 || insights.LongestStreak != 30 {
		t.Errorf("streaks = %d/%d, want 30/30", insights.CurrentStreak, insights.LongestStreak)
	}
}

func TestInsightsTotalsComeFromSnapshot(t *testing.T) {
	// One record in the log, deliberately diverging from the counters.
	engine := newEngine(fakeHistory{focusRecord(0, 25, true)},
		model.Stats{CompletedSessions: 42, TotalMinutes: 1050, DailyGoal: 8, WeeklyGoal: 40})

	insights := engine.ProductivityInsights()
	if insights.TotalSessions != 42 {
		t.Errorf("totalSessions = %d, want 42 (from snapshot, not log)", insights.TotalSessions)
	}
	if insights.TotalMinutes != 1050 {
		t.Errorf("totalMinutes = %d, want 1050", insights.TotalMinutes)
	}
	if insights.TotalHours != 17.5 {
		t.Errorf("totalHours = %v, want 17.5", insights.TotalHours)
	}
}

func TestSessionTypeBreakdown(t *testing.T) {
	history := fakeHistory{
		focusRecord(0, 25, true),
		focusRecord(1, 10, false),
		{Date: dateOffset(2), Type: model.ModeShortBreak, DurationMinutes: 5, Completed: true},
		{Date: dateOffset(3), Type: model.ModeLongBreak, DurationMinutes: 15, Completed: true},
		focusRecord(40, 25, true), // outside the 30-day window
	}
	engine := newEngine(history, model.Stats{})

	breakdown := engine.SessionTypeBreakdown(30)
	if breakdown.Focus.Completed != 1 || breakdown.Focus.Interrupted != 1 || breakdown.Focus.TotalMinutes != 35 {
		t.Errorf("focus = %+v, want 1 completed/1 interrupted/35 min", breakdown.Focus)
	}
	if breakdown.ShortBreak.Completed != 1 || breakdown.ShortBreak.TotalMinutes != 5 {
		t.Errorf("shortBreak = %+v, want 1 completed/5 min", breakdown.ShortBreak)
	}
	if breakdown.LongBreak.Completed != 1 || breakdown.LongBreak.TotalMinutes != 15 {
		t.Errorf("longBreak = %+v, want 1 completed/15 min", breakdown.LongBreak)
	}
}
