package model

import "fmt"

// Mode identifies the kind of interval the timer is counting down.
type Mode string

const (
	ModeFocus      Mode = "focus"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// ModeInfo carries display metadata for a mode.
type ModeInfo struct {
	Icon        string
	Title       string
	Description string
}

// InfoFor returns display metadata for the given mode. For focus sessions the
// description includes the position within the current long-break cycle.
func InfoFor(mode Mode, sessionIndex, sessionsBeforeLongBreak int) ModeInfo {
	switch mode {
	case ModeShortBreak:
		return ModeInfo{
			Icon:        "☕",
			Title:       "Short Break",
			Description: "Take a short break!",
		}
	case ModeLongBreak:
		return ModeInfo{
			Icon:        "🌟",
			Title:       "Long Break",
			Description: "Enjoy your long break!",
		}
	default:
		return ModeInfo{
			Icon:        "🎯",
			Title:       "Focus Session",
			Description: fmt.Sprintf("Session %d of %d", sessionIndex, sessionsBeforeLongBreak),
		}
	}
}
