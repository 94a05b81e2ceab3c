package mainwindow

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"tomatick/internal/analytics"
	"tomatick/internal/core/model"
	"tomatick/internal/core/timer"
)

// Window is the main timer view: mode header, countdown, progress bar,
// start/pause and reset controls, and today's goal progress.
type Window struct {
	window     fyne.Window
	visible    bool
	modeLabel  *widget.Label
	descLabel  *widget.Label
	timeLabel  *widget.Label
	progress   *widget.ProgressBar
	toggleBtn  *widget.Button
	todayLabel *widget.Label
}

// Config contains main window callbacks.
type Config struct {
	OnToggle func()
	OnReset  func()
	// OnClose runs when the user closes the window; return true to hide to
	// the tray instead of quitting.
	OnClose func() bool
}

// New creates the main timer window.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Tomatick")

	modeLabel := widget.NewLabelWithStyle("🎯 Focus Session", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	descLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	timeLabel := widget.NewLabelWithStyle("25:00", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	progress := widget.NewProgressBar()
	progress.Max = 100
	todayLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	toggleBtn := widget.NewButton("Start", func() {
		if config.OnToggle != nil {
			config.OnToggle()
		}
	})
	resetBtn := widget.NewButton("Reset", func() {
		if config.OnReset != nil {
			config.OnReset()
		}
	})

	window.SetContent(container.NewVBox(
		modeLabel,
		descLabel,
		timeLabel,
		progress,
		container.NewGridWithColumns(2, toggleBtn, resetBtn),
		todayLabel,
	))
	window.Resize(fyne.NewSize(360, 420))
	view := &Window{
		window:     window,
		modeLabel:  modeLabel,
		descLabel:  descLabel,
		timeLabel:  timeLabel,
		progress:   progress,
		toggleBtn:  toggleBtn,
		todayLabel: todayLabel,
	}
	window.SetCloseIntercept(func() {
		if config.OnClose != nil && config.OnClose() {
			view.Hide()
			return
		}
		window.Close()
	})
	return view
}

// Show displays the window.
func (view *Window) Show() {
	view.visible = true
	view.window.Show()
}

// Hide hides the window.
func (view *Window) Hide() {
	view.visible = false
	view.window.Hide()
}

// ToggleVisibility shows the window if hidden and hides it otherwise.
func (view *Window) ToggleVisibility() {
	if view.visible {
		view.Hide()
		return
	}
	view.Show()
	view.window.RequestFocus()
}

// Apply refreshes the view from a timer event.
func (view *Window) Apply(event timer.Event, sessionsBeforeLongBreak int) {
	info := model.InfoFor(event.Mode, event.SessionIndex, sessionsBeforeLongBreak)
	view.modeLabel.SetText(fmt.Sprintf("%s %s", info.Icon, info.Title))
	view.descLabel.SetText(info.Description)
	view.timeLabel.SetText(event.FormattedTime)
	view.progress.SetValue(event.Progress)
	if event.Running && !event.Paused {
		view.toggleBtn.SetText("Pause")
	} else {
		view.toggleBtn.SetText("Start")
	}
}

// SetMainMenu attaches the application menu to the window.
func (view *Window) SetMainMenu(menu *fyne.MainMenu) {
	view.window.SetMainMenu(menu)
}

// Native returns the underlying Fyne window, used as a dialog parent.
func (view *Window) Native() fyne.Window {
	return view.window
}

// SetToday refreshes the daily goal line.
func (view *Window) SetToday(today analytics.GoalProgress) {
	view.todayLabel.SetText(fmt.Sprintf("Today: %d/%d sessions · %d min",
		today.CompletedSessions, today.Goal, today.TotalMinutes))
}
