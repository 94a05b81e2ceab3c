package timer

import (
	"time"

	"tomatick/internal/core/model"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventSessionComplete EventType = "session_complete"
)

// Event represents a Timer update for observers. Tick events carry the
// formatted countdown and tray tooltip; session-complete events carry the
// record that was appended to the log.
type Event struct {
	Type          EventType
	Mode          model.Mode
	SessionIndex  int
	TimeLeft      int
	Total         int
	Running       bool
	Paused        bool
	Progress      float64
	FormattedTime string
	Tooltip       string
	Record        *model.SessionRecord
	At            time.Time
}
