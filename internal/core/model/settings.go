package model

import "fmt"

// Theme values accepted by the Theme setting.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Settings defines editable user preferences. Durations are whole minutes.
type Settings struct {
	FocusTime               int    `json:"focusTime"`
	ShortBreakTime          int    `json:"shortBreakTime"`
	LongBreakTime           int    `json:"longBreakTime"`
	SessionsBeforeLongBreak int    `json:"sessionsBeforeLongBreak"`
	AutoStartBreaks         bool   `json:"autoStartBreaks"`
	AutoStartPomodoros      bool   `json:"autoStartPomodoros"`
	AlwaysOnTop             bool   `json:"alwaysOnTop"`
	Theme                   string `json:"theme"`
	SoundEnabled            bool   `json:"soundEnabled"`
	NotificationsEnabled    bool   `json:"notificationsEnabled"`
	MinimizeToTray          bool   `json:"minimizeToTray"`
}

// DefaultSettings returns default settings for Tomatick.
func DefaultSettings() Settings {
	return Settings{
		FocusTime:               25,
		ShortBreakTime:          5,
		LongBreakTime:           15,
		SessionsBeforeLongBreak: 4,
		AutoStartBreaks:         false,
		AutoStartPomodoros:      false,
		AlwaysOnTop:             false,
		Theme:                   ThemeAuto,
		SoundEnabled:            true,
		NotificationsEnabled:    true,
		MinimizeToTray:          true,
	}
}

// FieldError describes a single rejected or clamped settings field.
type FieldError struct {
	Field   string
	Message string
}

func (fieldError FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fieldError.Field, fieldError.Message)
}

type intBound struct {
	min, max int
}

var settingsBounds = map[string]intBound{
	"focusTime":               {1, 120},
	"shortBreakTime":          {1, 60},
	"longBreakTime":           {1, 120},
	"sessionsBeforeLongBreak": {2, 20},
}

// Validate clamps out-of-range numeric fields and normalizes the theme value.
// It returns the validated copy together with one FieldError per adjusted
// field; an invalid field never rejects the whole settings update.
func (settings Settings) Validate() (Settings, []FieldError) {
	var violations []FieldError

	clamp := func(field string, value *int) {
		bound := settingsBounds[field]
		if *value < bound.min {
			violations = append(violations, FieldError{field, fmt.Sprintf("%d below minimum %d", *value, bound.min)})
			*value = bound.min
		} else if *value > bound.max {
			violations = append(violations, FieldError{field, fmt.Sprintf("%d above maximum %d", *value, bound.max)})
			*value = bound.max
		}
	}

	clamp("focusTime", &settings.FocusTime)
	clamp("shortBreakTime", &settings.ShortBreakTime)
	clamp("longBreakTime", &settings.LongBreakTime)
	clamp("sessionsBeforeLongBreak", &settings.SessionsBeforeLongBreak)

	switch settings.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		violations = append(violations, FieldError{"theme", fmt.Sprintf("unknown theme %q", settings.Theme)})
		settings.Theme = ThemeAuto
	}

	return settings, violations
}

// DurationSeconds returns the configured countdown length for a mode in seconds.
func (settings Settings) DurationSeconds(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakTime * 60
	case ModeLongBreak:
		return settings.LongBreakTime * 60
	default:
		return settings.FocusTime * 60
	}
}
