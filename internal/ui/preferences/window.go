package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"tomatick/internal/core/model"
)

// Window handles the settings UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	focusEntry    *widget.Entry
	shortEntry    *widget.Entry
	longEntry     *widget.Entry
	sessionsEntry *widget.Entry
	autoBreaks    *widget.Check
	autoFocus     *widget.Check
	alwaysOnTop   *widget.Check
	sound         *widget.Check
	notifications *widget.Check
	minimizeTray  *widget.Check
	themeSelect   *widget.Select
}

// New creates a settings window. onSave receives the edited settings; the
// caller is responsible for validation and persistence.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Tomatick Settings")

	focusEntry := widget.NewEntry()
	shortEntry := widget.NewEntry()
	longEntry := widget.NewEntry()
	sessionsEntry := widget.NewEntry()

	autoBreaks := widget.NewCheck("Auto-start breaks", nil)
	autoFocus := widget.NewCheck("Auto-start focus sessions", nil)
	alwaysOnTop := widget.NewCheck("Always on top", nil)
	sound := widget.NewCheck("Sound", nil)
	notifications := widget.NewCheck("Notifications", nil)
	minimizeTray := widget.NewCheck("Minimize to tray on close", nil)

	themeSelect := widget.NewSelect([]string{model.ThemeLight, model.ThemeDark, model.ThemeAuto}, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), focusEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), shortEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Sessions before long break"), sessionsEntry),
		widget.NewLabelWithStyle("Behavior", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autoBreaks,
		autoFocus,
		alwaysOnTop,
		sound,
		notifications,
		minimizeTray,
		container.NewHBox(widget.NewLabel("Theme"), themeSelect),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		focusEntry:    focusEntry,
		shortEntry:    shortEntry,
		longEntry:     longEntry,
		sessionsEntry: sessionsEntry,
		autoBreaks:    autoBreaks,
		autoFocus:     autoFocus,
		alwaysOnTop:   alwaysOnTop,
		sound:         sound,
		notifications: notifications,
		minimizeTray:  minimizeTray,
		themeSelect:   themeSelect,
	}
	prefs.applySettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.applySettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the window values, e.g. after a data import.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.applySettings(settings)
}

func (prefs *Window) applySettings(settings model.Settings) {
	prefs.focusEntry.SetText(fmt.Sprintf("%d", settings.FocusTime))
	prefs.shortEntry.SetText(fmt.Sprintf("%d", settings.ShortBreakTime))
	prefs.longEntry.SetText(fmt.Sprintf("%d", settings.LongBreakTime))
	prefs.sessionsEntry.SetText(fmt.Sprintf("%d", settings.SessionsBeforeLongBreak))
	prefs.autoBreaks.SetChecked(settings.AutoStartBreaks)
	prefs.autoFocus.SetChecked(settings.AutoStartPomodoros)
	prefs.alwaysOnTop.SetChecked(settings.AlwaysOnTop)
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notifications.SetChecked(settings.NotificationsEnabled)
	prefs.minimizeTray.SetChecked(settings.MinimizeToTray)
	prefs.themeSelect.SetSelected(settings.Theme)
}

func (prefs *Window) handleSave() {
	edited := prefs.settings
	edited.FocusTime = parseMinutes(prefs.focusEntry.Text, edited.FocusTime)
	edited.ShortBreakTime = parseMinutes(prefs.shortEntry.Text, edited.ShortBreakTime)
	edited.LongBreakTime = parseMinutes(prefs.longEntry.Text, edited.LongBreakTime)
	edited.SessionsBeforeLongBreak = parseMinutes(prefs.sessionsEntry.Text, edited.SessionsBeforeLongBreak)
	edited.AutoStartBreaks = prefs.autoBreaks.Checked
	edited.AutoStartPomodoros = prefs.autoFocus.Checked
	edited.AlwaysOnTop = prefs.alwaysOnTop.Checked
	edited.SoundEnabled = prefs.sound.Checked
	edited.NotificationsEnabled = prefs.notifications.Checked
	edited.MinimizeToTray = prefs.minimizeTray.Checked
	if prefs.themeSelect.Selected != "" {
		edited.Theme = prefs.themeSelect.Selected
	}

	prefs.settings = edited
	prefs.window.Hide()
	if prefs.onSave != nil {
		prefs.onSave(edited)
	}
}

func parseMinutes(text string, fallback int) int {
	value, err := strconv.Atoi(text)
	if err != nil {
		return fallback
	}
	return value
}
