package main

import (
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"tomatick/internal/analytics"
	"tomatick/internal/core/model"
	"tomatick/internal/core/stats"
	"tomatick/internal/core/timer"
	"tomatick/internal/platform"
	"tomatick/internal/storage"
	"tomatick/internal/ui/apptheme"
	"tomatick/internal/ui/mainwindow"
	"tomatick/internal/ui/notify"
	"tomatick/internal/ui/preferences"
	"tomatick/internal/ui/tray"
)

const appName = "Tomatick"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	dataDir, err := storage.DefaultDir(appName)
	if err != nil {
		log.Printf("data dir: %v", err)
		return
	}
	settings, err := storage.LoadSettings(dataDir)
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	store, err := storage.Open(dataDir)
	if err != nil {
		log.Printf("open store: %v", err)
		return
	}
	loadedStats, err := store.LoadStats()
	if err != nil {
		log.Printf("load stats: %v", err)
	}

	fyneApp := app.NewWithID("com.tomatick.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}
	apptheme.Apply(fyneApp, settings.Theme)

	aggregator := stats.New(loadedStats, store)
	pomodoro := timer.New(settings, timer.NewIntervalTicker(), store, aggregator, notify.New(fyneApp), timer.Config{})
	engine := analytics.New(store, aggregator, analytics.Config{})

	mainView := mainwindow.New(fyneApp, mainwindow.Config{
		OnToggle: pomodoro.Toggle,
		OnReset:  pomodoro.Reset,
		OnClose: func() bool {
			return pomodoro.Settings().MinimizeToTray
		},
	})

	prefsWindow := preferences.New(fyneApp, pomodoro.Settings(), func(updated model.Settings) {
		validated := pomodoro.UpdateSettings(updated)
		if err := storage.SaveSettings(dataDir, validated); err != nil {
			log.Printf("save settings: %v", err)
		}
		apptheme.Apply(fyneApp, validated.Theme)
	})

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShowHide: mainView.ToggleVisibility,
		OnToggle:   pomodoro.Toggle,
		OnReset:    pomodoro.Reset,
		OnSettings: prefsWindow.Show,
		OnQuit: func() {
			pomodoro.Close()
			fyneApp.Quit()
		},
	})

	events := pomodoro.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				trayManager.SetStatus(statusLine(event))
				trayManager.SetRunning(event.Running && !event.Paused)
				mainView.Apply(event, pomodoro.Settings().SessionsBeforeLongBreak)
				if event.Type == timer.EventSessionComplete {
					mainView.SetToday(engine.TodayStats())
				}
			})
		}
	}()

	mainView.SetMainMenu(fyne.NewMainMenu(dataMenu(fyneApp, mainView, prefsWindow, pomodoro, aggregator, store, dataDir)))
	mainView.SetToday(engine.TodayStats())
	mainView.Show()
	fyneApp.Run()
}

// statusLine renders the tray status, e.g. "🎯 Focus Session - 24:59 - Running".
func statusLine(event timer.Event) string {
	info := model.InfoFor(event.Mode, event.SessionIndex, 0)
	status := "Ready"
	if event.Running && !event.Paused {
		status = "Running"
	} else if event.Paused {
		status = "Paused"
	}
	return fmt.Sprintf("%s %s - %s - %s", info.Icon, info.Title, event.FormattedTime, status)
}

// dataMenu builds the File menu with export and import of the
// settings/stats/history bundle.
func dataMenu(fyneApp fyne.App, mainView *mainwindow.Window, prefsWindow *preferences.Window,
	pomodoro *timer.Timer, aggregator *stats.Aggregator, store *storage.Store, dataDir string) *fyne.Menu {

	exportItem := fyne.NewMenuItem("Export Data...", func() {
		bundle, err := storage.ExportBundle(dataDir, store)
		if err != nil {
			log.Printf("export: %v", err)
			return
		}
		saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			path := writer.URI().Path()
			_ = writer.Close()
			if err := storage.SaveBundle(path, bundle); err != nil {
				log.Printf("export: %v", err)
			}
		}, mainView.Native())
		saveDialog.SetFileName("tomatick-export.json")
		saveDialog.Show()
	})

	importItem := fyne.NewMenuItem("Import Data...", func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			path := reader.URI().Path()
			_ = reader.Close()
			bundle, err := storage.LoadBundle(path)
			if err != nil {
				log.Printf("import: %v", err)
				return
			}
			if err := storage.ImportBundle(dataDir, store, bundle); err != nil {
				log.Printf("import: %v", err)
				return
			}
			if bundle.Stats != nil {
				if err := aggregator.Replace(*bundle.Stats); err != nil {
					log.Printf("import stats: %v", err)
				}
			}
			if bundle.Settings != nil {
				validated := pomodoro.UpdateSettings(*bundle.Settings)
				prefsWindow.UpdateSettings(validated)
				apptheme.Apply(fyneApp, validated.Theme)
			}
		}, mainView.Native())
	})

	return fyne.NewMenu("File", exportItem, importItem)
}
