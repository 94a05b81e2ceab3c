package storage

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"tomatick/internal/core/model"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes            int    `yaml:"focus_minutes"`
	ShortBreakMinutes       int    `yaml:"short_break_minutes"`
	LongBreakMinutes        int    `yaml:"long_break_minutes"`
	SessionsBeforeLongBreak int    `yaml:"sessions_before_long_break"`
	AutoStartBreaks         *bool  `yaml:"auto_start_breaks"`
	AutoStartPomodoros      *bool  `yaml:"auto_start_pomodoros"`
	AlwaysOnTop             *bool  `yaml:"always_on_top"`
	Theme                   string `yaml:"theme"`
	SoundEnabled            *bool  `yaml:"sound_enabled"`
	NotificationsEnabled    *bool  `yaml:"notifications_enabled"`
	MinimizeToTray          *bool  `yaml:"minimize_to_tray"`
}

// DefaultDir returns the configuration directory for the given app name.
func DefaultDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName), nil
}

// LoadSettings reads user preferences from YAML in dir.
// If the settings file does not exist, default settings are returned.
func LoadSettings(dir string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(filepath.Join(dir, settingsFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	settings, violations := settings.Validate()
	for _, violation := range violations {
		log.Printf("settings: %v", violation)
	}
	return settings, nil
}

// SaveSettings writes user preferences to YAML in dir.
func SaveSettings(dir string, settings model.Settings) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:            settings.FocusTime,
		ShortBreakMinutes:       settings.ShortBreakTime,
		LongBreakMinutes:        settings.LongBreakTime,
		SessionsBeforeLongBreak: settings.SessionsBeforeLongBreak,
		AutoStartBreaks:         &settings.AutoStartBreaks,
		AutoStartPomodoros:      &settings.AutoStartPomodoros,
		AlwaysOnTop:             &settings.AlwaysOnTop,
		Theme:                   settings.Theme,
		SoundEnabled:            &settings.SoundEnabled,
		NotificationsEnabled:    &settings.NotificationsEnabled,
		MinimizeToTray:          &settings.MinimizeToTray,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, settingsFileName), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// Absent fields keep their defaults; bools use pointers so a missing key is
// distinguishable from an explicit false.
func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusTime = fileData.FocusMinutes
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakTime = fileData.ShortBreakMinutes
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakTime = fileData.LongBreakMinutes
	}
	if fileData.SessionsBeforeLongBreak > 0 {
		settings.SessionsBeforeLongBreak = fileData.SessionsBeforeLongBreak
	}
	if fileData.Theme != "" {
		settings.Theme = fileData.Theme
	}

	applyBool(&settings.AutoStartBreaks, fileData.AutoStartBreaks)
	applyBool(&settings.AutoStartPomodoros, fileData.AutoStartPomodoros)
	applyBool(&settings.AlwaysOnTop, fileData.AlwaysOnTop)
	applyBool(&settings.SoundEnabled, fileData.SoundEnabled)
	applyBool(&settings.NotificationsEnabled, fileData.NotificationsEnabled)
	applyBool(&settings.MinimizeToTray, fileData.MinimizeToTray)
}

func applyBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
