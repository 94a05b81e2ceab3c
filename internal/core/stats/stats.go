// Package stats maintains the cumulative focus-session counters and persists
// them as a whole snapshot after every change.
package stats

import (
	"sync"

	"tomatick/internal/core/model"
)

// Persister stores a full stats snapshot.
type Persister interface {
	SaveStats(stats model.Stats) error
}

// Aggregator owns the StatsSnapshot. Updates merge into the in-memory
// snapshot first and then persist the whole object; a persistence failure
// leaves the in-memory counters intact.
type Aggregator struct {
	mu        sync.Mutex
	snapshot  model.Stats
	persister Persister
}

// New creates an Aggregator seeded with a previously loaded snapshot.
func New(initial model.Stats, persister Persister) *Aggregator {
	return &Aggregator{snapshot: initial, persister: persister}
}

// Snapshot returns a copy of the current counters.
func (aggregator *Aggregator) Snapshot() model.Stats {
	aggregator.mu.Lock()
	defer aggregator.mu.Unlock()
	return aggregator.snapshot
}

// RecordCompletedFocus counts one naturally completed focus session.
func (aggregator *Aggregator) RecordCompletedFocus(minutes int) error {
	aggregator.mu.Lock()
	aggregator.snapshot.CompletedSessions++
	aggregator.snapshot.TotalMinutes += minutes
	aggregator.snapshot.StreakCount++
	snapshot := aggregator.snapshot
	aggregator.mu.Unlock()

	return aggregator.persist(snapshot)
}

// SetGoals updates the daily and weekly goals.
func (aggregator *Aggregator) SetGoals(daily, weekly int) error {
	aggregator.mu.Lock()
	if daily > 0 {
		aggregator.snapshot.DailyGoal = daily
	}
	if weekly > 0 {
		aggregator.snapshot.WeeklyGoal = weekly
	}
	snapshot := aggregator.snapshot
	aggregator.mu.Unlock()

	return aggregator.persist(snapshot)
}

// Reset zeroes the session counters while preserving the goals.
func (aggregator *Aggregator) Reset() error {
	aggregator.mu.Lock()
	aggregator.snapshot.CompletedSessions = 0
	aggregator.snapshot.TotalMinutes = 0
	aggregator.snapshot.StreakCount = 0
	snapshot := aggregator.snapshot
	aggregator.mu.Unlock()

	return aggregator.persist(snapshot)
}

// Replace swaps in a whole snapshot, used by data import.
func (aggregator *Aggregator) Replace(snapshot model.Stats) error {
	aggregator.mu.Lock()
	aggregator.snapshot = snapshot
	aggregator.mu.Unlock()

	return aggregator.persist(snapshot)
}

func (aggregator *Aggregator) persist(snapshot model.Stats) error {
	if aggregator.persister == nil {
		return nil
	}
	return aggregator.persister.SaveStats(snapshot)
}
