package model_test

import (
	"testing"

	"pgregory.net/rapid"

	"tomatick/internal/core/model"
)

func TestValidatePassesDefaults(t *testing.T) {
	validated, violations := model.DefaultSettings().Validate()
	if len(violations) != 0 {
		t.Fatalf("defaults produced violations: %+v", violations)
	}
	if validated != model.DefaultSettings() {
		t.Errorf("defaults changed by validation: %+v", validated)
	}
}

func TestValidateClampsOutOfRangeDurations(t *testing.T) {
	settings := model.DefaultSettings()
	settings.FocusTime = 0
	settings.ShortBreakTime = 600
	settings.LongBreakTime = -3
	settings.SessionsBeforeLongBreak = 1

	validated, violations := settings.Validate()
	if len(violations) != 4 {
		t.Fatalf("got %d violations, want 4: %+v", len(violations), violations)
	}
	if validated.FocusTime != 1 {
		t.Errorf("focusTime = %d, want clamped to 1", validated.FocusTime)
	}
	if validated.ShortBreakTime != 60 {
		t.Errorf("shortBreakTime = %d, want clamped to 60", validated.ShortBreakTime)
	}
	if validated.LongBreakTime != 1 {
		t.Errorf("longBreakTime = %d, want clamped to 1", validated.LongBreakTime)
	}
	if validated.SessionsBeforeLongBreak != 2 {
		t.Errorf("sessionsBeforeLongBreak = %d, want clamped to 2", validated.SessionsBeforeLongBreak)
	}
}

func TestValidateRejectsUnknownTheme(t *testing.T) {
	settings := model.DefaultSettings()
	settings.Theme = "sepia"

	validated, violations := settings.Validate()
	if len(violations) != 1 {
		t.Fatalf("got %d violations, want 1: %+v", len(violations), violations)
	}
	if validated.Theme != model.ThemeAuto {
		t.Errorf("theme = %q, want fallback %q", validated.Theme, model.ThemeAuto)
	}
}

func TestDurationSeconds(t *testing.T) {
	settings := model.DefaultSettings()

	cases := []struct {
		mode model.Mode
		want int
	}{
		{model.ModeFocus, 25 * 60},
		{model.ModeShortBreak, 5 * 60},
		{model.ModeLongBreak, 15 * 60},
	}
	for _, testCase := range cases {
		if got := settings.DurationSeconds(testCase.mode); got != testCase.want {
			t.Errorf("DurationSeconds(%s) = %d, want %d", testCase.mode, got, testCase.want)
		}
	}
}

// Property: whatever comes in, validated settings always land inside the
// documented bounds, and in-bounds values pass through untouched.
func TestValidateBoundsProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		settings := model.DefaultSettings()
		settings.FocusTime = rapid.IntRange(-1000, 1000).Draw(rt, "focus")
		settings.ShortBreakTime = rapid.IntRange(-1000, 1000).Draw(rt, "short")
		settings.LongBreakTime = rapid.IntRange(-1000, 1000).Draw(rt, "long")
		settings.SessionsBeforeLongBreak = rapid.IntRange(-1000, 1000).Draw(rt, "cycle")

		validated, _ := settings.Validate()

		bounds := []struct {
			name     string
			in, out  int
			min, max int
		}{
			{"focusTime", settings.FocusTime, validated.FocusTime, 1, 120},
			{"shortBreakTime", settings.ShortBreakTime, validated.ShortBreakTime, 1, 60},
			{"longBreakTime", settings.LongBreakTime, validated.LongBreakTime, 1, 120},
			{"sessionsBeforeLongBreak", settings.SessionsBeforeLongBreak, validated.SessionsBeforeLongBreak, 2, 20},
		}
		for _, field := range bounds {
			if field.out < field.min || field.out > field.max {
				rt.Fatalf("%s = %d, outside [%d, %d]", field.name, field.out, field.min, field.max)
			}
			if field.in >= field.min && field.in <= field.max && field.out != field.in {
				rt.Fatalf("%s = %d changed to %d despite being in bounds", field.name, field.in, field.out)
			}
		}
	})
}

func TestInfoForSessionCounting(t *testing.T) {
	info := model.InfoFor(model.ModeFocus, 3, 4)
	if info.Title != "Focus Session" {
		t.Errorf("title = %q, want Focus Session", info.Title)
	}
	if info.Description != "Session 3 of 4" {
		t.Errorf("description = %q, want Session 3 of 4", info.Description)
	}

	if model.InfoFor(model.ModeShortBreak, 1, 4).Title != "Short Break" {
		t.Error("short break title mismatch")
	}
	if model.InfoFor(model.ModeLongBreak, 4, 4).Title != "Long Break" {
		t.Error("long break title mismatch")
	}
}
