package model

import "time"

// DateLayout is the calendar-day format used throughout the session log.
const DateLayout = "2006-01-02"

// SessionRecord is one completed (or interrupted) interval in the session log.
// Records are immutable once appended; insertion order is completion order.
type SessionRecord struct {
	ID              int64      `json:"id"`
	Date            string     `json:"date"`
	Type            Mode       `json:"type"`
	DurationMinutes int        `json:"duration"`
	Completed       bool       `json:"completed"`
	Interruptions   int        `json:"interruptions"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	Timestamp       time.Time  `json:"timestamp"`
}
