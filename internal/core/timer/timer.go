package timer

import (
	"fmt"
	"log"
	"sync"
	"time"

	"tomatick/internal/core/model"
)

// HistoryAppender records a finished session in the session log.
type HistoryAppender interface {
	AppendSession(record model.SessionRecord) ([]model.SessionRecord, error)
}

// StatsRecorder accumulates counters for naturally completed focus sessions.
type StatsRecorder interface {
	RecordCompletedFocus(minutes int) error
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Notify(title, body string, urgent bool) error
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval   time.Duration
	AutoStartDelay time.Duration
	Now            func() time.Time
}

// Timer is the Pomodoro session state machine. It owns the countdown, the
// focus/break mode cycling and per-session interruption bookkeeping, and
// notifies collaborators when a session completes. Collaborator failures are
// logged and swallowed; they never stall the state machine.
type Timer struct {
	mu             sync.Mutex
	settings       model.Settings
	mode           model.Mode
	sessionIndex   int
	timeLeft       int
	total          int
	running        bool
	paused         bool
	interruptions  int
	sessionStart   *time.Time
	ticker         Ticker
	history        HistoryAppender
	stats          StatsRecorder
	notifier       Notifier
	events         []chan Event
	autoStart      *time.Timer
	tickInterval   time.Duration
	autoStartDelay time.Duration
	now            func() time.Time
}

// Snapshot is a consistent read-only copy of the timer state.
type Snapshot struct {
	Mode          model.Mode
	SessionIndex  int
	TimeLeft      int
	Total         int
	Running       bool
	Paused        bool
	Interruptions int
}

// New creates a Timer in the idle Focus state.
func New(settings model.Settings, ticker Ticker, history HistoryAppender, stats StatsRecorder, notifier Notifier, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.AutoStartDelay <= 0 {
		options.AutoStartDelay = 2 * time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	settings, violations := settings.Validate()
	for _, violation := range violations {
		log.Printf("settings: %v", violation)
	}

	pomodoro := &Timer{
		settings:       settings,
		mode:           model.ModeFocus,
		sessionIndex:   1,
		ticker:         ticker,
		history:        history,
		stats:          stats,
		notifier:       notifier,
		tickInterval:   options.TickInterval,
		autoStartDelay: options.AutoStartDelay,
		now:            options.Now,
	}
	pomodoro.total = settings.DurationSeconds(model.ModeFocus)
	pomodoro.timeLeft = pomodoro.total
	return pomodoro
}

// Subscribe registers a new observer channel.
func (pomodoro *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	pomodoro.mu.Lock()
	pomodoro.events = append(pomodoro.events, ch)
	pomodoro.mu.Unlock()
	return ch
}

// Close disarms the ticker, cancels any pending auto-start and closes all
// observer channels.
func (pomodoro *Timer) Close() {
	pomodoro.ticker.Disarm()
	pomodoro.mu.Lock()
	if pomodoro.autoStart != nil {
		pomodoro.autoStart.Stop()
		pomodoro.autoStart = nil
	}
	events := pomodoro.events
	pomodoro.events = nil
	pomodoro.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins or resumes the countdown. Starting an already running,
// unpaused timer is a no-op, which keeps a deferred auto-start safe against a
// manual start racing it.
func (pomodoro *Timer) Start() {
	pomodoro.mu.Lock()
	if pomodoro.running && !pomodoro.paused {
		pomodoro.mu.Unlock()
		return
	}
	if pomodoro.paused {
		pomodoro.paused = false
	} else {
		pomodoro.running = true
		startedAt := pomodoro.now()
		pomodoro.sessionStart = &startedAt
	}
	pomodoro.mu.Unlock()

	pomodoro.ticker.Arm(pomodoro.tickInterval, pomodoro.handleTick)
	pomodoro.emitStateChange()
}

// Pause freezes a running countdown and counts the interruption. No-op while
// idle or already paused.
func (pomodoro *Timer) Pause() {
	pomodoro.mu.Lock()
	if !pomodoro.running || pomodoro.paused {
		pomodoro.mu.Unlock()
		return
	}
	pomodoro.paused = true
	pomodoro.interruptions++
	pomodoro.mu.Unlock()

	pomodoro.ticker.Disarm()
	pomodoro.emitStateChange()
}

// Toggle pauses a running timer, otherwise starts it.
func (pomodoro *Timer) Toggle() {
	pomodoro.mu.Lock()
	runningUnpaused := pomodoro.running && !pomodoro.paused
	pomodoro.mu.Unlock()

	if runningUnpaused {
		pomodoro.Pause()
	} else {
		pomodoro.Start()
	}
}

// Reset aborts the current session and returns to the first focus session of
// a fresh cycle. An aborted session is never written to the log.
func (pomodoro *Timer) Reset() {
	pomodoro.ticker.Disarm()

	pomodoro.mu.Lock()
	if pomodoro.autoStart != nil {
		pomodoro.autoStart.Stop()
		pomodoro.autoStart = nil
	}
	pomodoro.running = false
	pomodoro.paused = false
	pomodoro.interruptions = 0
	pomodoro.mode = model.ModeFocus
	pomodoro.sessionIndex = 1
	pomodoro.total = pomodoro.settings.DurationSeconds(model.ModeFocus)
	pomodoro.timeLeft = pomodoro.total
	pomodoro.sessionStart = nil
	tickEvent := pomodoro.tickEventLocked()
	pomodoro.mu.Unlock()

	pomodoro.emit(tickEvent)
	pomodoro.emitStateChange()
}

// UpdateSettings validates and applies new settings. While the timer is idle
// the current mode's countdown is reloaded from the new duration; a running
// countdown is unaffected. Returns the validated settings for persisting.
func (pomodoro *Timer) UpdateSettings(settings model.Settings) model.Settings {
	validated, violations := settings.Validate()
	for _, violation := range violations {
		log.Printf("settings: %v", violation)
	}

	pomodoro.mu.Lock()
	pomodoro.settings = validated
	if !pomodoro.running {
		pomodoro.total = validated.DurationSeconds(pomodoro.mode)
		pomodoro.timeLeft = pomodoro.total
	}
	pomodoro.mu.Unlock()

	pomodoro.emitStateChange()
	return validated
}

// Settings returns the current settings.
func (pomodoro *Timer) Settings() model.Settings {
	pomodoro.mu.Lock()
	defer pomodoro.mu.Unlock()
	return pomodoro.settings
}

// State returns a consistent snapshot of the timer state.
func (pomodoro *Timer) State() Snapshot {
	pomodoro.mu.Lock()
	defer pomodoro.mu.Unlock()
	return Snapshot{
		Mode:          pomodoro.mode,
		SessionIndex:  pomodoro.sessionIndex,
		TimeLeft:      pomodoro.timeLeft,
		Total:         pomodoro.total,
		Running:       pomodoro.running,
		Paused:        pomodoro.paused,
		Interruptions: pomodoro.interruptions,
	}
}

// FormattedTime returns the remaining time as MM:SS.
func (pomodoro *Timer) FormattedTime() string {
	pomodoro.mu.Lock()
	defer pomodoro.mu.Unlock()
	return FormatSeconds(pomodoro.timeLeft)
}

// ProgressPercent reports elapsed progress through the current session,
// in the range [0, 100].
func (pomodoro *Timer) ProgressPercent() float64 {
	pomodoro.mu.Lock()
	defer pomodoro.mu.Unlock()
	return pomodoro.progressLocked()
}

// ModeInfo returns display metadata for the current mode.
func (pomodoro *Timer) ModeInfo() model.ModeInfo {
	pomodoro.mu.Lock()
	defer pomodoro.mu.Unlock()
	return model.InfoFor(pomodoro.mode, pomodoro.sessionIndex, pomodoro.settings.SessionsBeforeLongBreak)
}

// FormatSeconds renders a second count as MM:SS.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// handleTick advances the countdown by one second. Ticks delivered while the
// timer is not running and unpaused are dropped, so a callback racing a
// disarm can never move a frozen countdown.
func (pomodoro *Timer) handleTick() {
	pomodoro.mu.Lock()
	if !pomodoro.running || pomodoro.paused {
		pomodoro.mu.Unlock()
		return
	}
	pomodoro.timeLeft--
	if pomodoro.timeLeft < 0 {
		pomodoro.timeLeft = 0
	}
	done := pomodoro.timeLeft <= 0
	tickEvent := pomodoro.tickEventLocked()
	pomodoro.mu.Unlock()

	pomodoro.emit(tickEvent)
	if done {
		pomodoro.completeSession()
	}
}

// completeSession finalizes the session that just ran out, records it, feeds
// the stats counters for completed focus sessions, notifies, and transitions
// to the next mode.
func (pomodoro *Timer) completeSession() {
	pomodoro.ticker.Disarm()

	pomodoro.mu.Lock()
	pomodoro.running = false
	pomodoro.paused = false
	completedAt := pomodoro.now()
	record := model.SessionRecord{
		Date:            completedAt.Format(model.DateLayout),
		Type:            pomodoro.mode,
		DurationMinutes: (pomodoro.total - pomodoro.timeLeft) / 60,
		Completed:       pomodoro.timeLeft <= 0,
		Interruptions:   pomodoro.interruptions,
		StartTime:       pomodoro.sessionStart,
		Timestamp:       completedAt,
	}
	finishedMode := pomodoro.mode
	focusMinutes := pomodoro.settings.FocusTime
	notify := pomodoro.settings.NotificationsEnabled
	pomodoro.mu.Unlock()

	if pomodoro.history != nil {
		if _, err := pomodoro.history.AppendSession(record); err != nil {
			log.Printf("append session: %v", err)
		}
	}
	if finishedMode == model.ModeFocus && record.Completed && pomodoro.stats != nil {
		if err := pomodoro.stats.RecordCompletedFocus(focusMinutes); err != nil {
			log.Printf("record focus stats: %v", err)
		}
	}
	if notify {
		pomodoro.sendNotification(finishedMode, focusMinutes)
	}

	pomodoro.transitionToNextSession()

	pomodoro.mu.Lock()
	completeEvent := pomodoro.eventLocked(EventSessionComplete)
	completeEvent.Record = &record
	pomodoro.mu.Unlock()
	pomodoro.emit(completeEvent)
	pomodoro.emitStateChange()
}

// transitionToNextSession advances the mode cycle: focus sessions alternate
// with short breaks until sessionsBeforeLongBreak focus sessions have run,
// then a long break resets the cycle. Auto-start, when enabled, fires after a
// short delay so the UI can show the transition first.
func (pomodoro *Timer) transitionToNextSession() {
	pomodoro.mu.Lock()
	var autoStart bool
	if pomodoro.mode == model.ModeFocus {
		if pomodoro.sessionIndex%pomodoro.settings.SessionsBeforeLongBreak == 0 {
			pomodoro.mode = model.ModeLongBreak
		} else {
			pomodoro.mode = model.ModeShortBreak
		}
		autoStart = pomodoro.settings.AutoStartBreaks
	} else {
		if pomodoro.mode == model.ModeLongBreak {
			pomodoro.sessionIndex = 1
		} else {
			pomodoro.sessionIndex++
		}
		pomodoro.mode = model.ModeFocus
		autoStart = pomodoro.settings.AutoStartPomodoros
	}
	pomodoro.total = pomodoro.settings.DurationSeconds(pomodoro.mode)
	pomodoro.timeLeft = pomodoro.total
	pomodoro.interruptions = 0
	pomodoro.sessionStart = nil

	if autoStart {
		if pomodoro.autoStart != nil {
			pomodoro.autoStart.Stop()
		}
		pomodoro.autoStart = time.AfterFunc(pomodoro.autoStartDelay, pomodoro.Start)
	}
	tickEvent := pomodoro.tickEventLocked()
	pomodoro.mu.Unlock()

	pomodoro.emit(tickEvent)
}

func (pomodoro *Timer) sendNotification(finished model.Mode, focusMinutes int) {
	if pomodoro.notifier == nil {
		return
	}

	var title, body string
	switch finished {
	case model.ModeFocus:
		title = "🎯 Focus Session Complete!"
		body = fmt.Sprintf("Great work! You completed a %d-minute focus session. Time for a break!", focusMinutes)
	case model.ModeShortBreak:
		title = "☕ Short Break Complete!"
		body = "Break time is over. Ready for your next focus session?"
	default:
		title = "🌟 Long Break Complete!"
		body = "Long break finished! Time to start a new cycle of focus sessions."
	}

	if err := pomodoro.notifier.Notify(title, body, true); err != nil {
		log.Printf("notify: %v", err)
	}
}

func (pomodoro *Timer) progressLocked() float64 {
	if pomodoro.total <= 0 {
		return 0
	}
	progress := float64(pomodoro.total-pomodoro.timeLeft) / float64(pomodoro.total) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

func (pomodoro *Timer) tickEventLocked() Event {
	return pomodoro.eventLocked(EventTick)
}

func (pomodoro *Timer) eventLocked(eventType EventType) Event {
	info := model.InfoFor(pomodoro.mode, pomodoro.sessionIndex, pomodoro.settings.SessionsBeforeLongBreak)
	status := "Paused"
	if pomodoro.running && !pomodoro.paused {
		status = "Running"
	}
	var modeText string
	switch pomodoro.mode {
	case model.ModeShortBreak:
		modeText = "Break"
	case model.ModeLongBreak:
		modeText = "Long Break"
	default:
		modeText = "Focus"
	}
	return Event{
		Type:          eventType,
		Mode:          pomodoro.mode,
		SessionIndex:  pomodoro.sessionIndex,
		TimeLeft:      pomodoro.timeLeft,
		Total:         pomodoro.total,
		Running:       pomodoro.running,
		Paused:        pomodoro.paused,
		Progress:      pomodoro.progressLocked(),
		FormattedTime: FormatSeconds(pomodoro.timeLeft),
		Tooltip:       fmt.Sprintf("Tomatick - %s %s - %s", info.Icon, modeText, status),
		At:            pomodoro.now(),
	}
}

func (pomodoro *Timer) emitStateChange() {
	pomodoro.mu.Lock()
	event := pomodoro.eventLocked(EventStateChange)
	pomodoro.mu.Unlock()
	pomodoro.emit(event)
}

func (pomodoro *Timer) emit(event Event) {
	pomodoro.mu.Lock()
	events := append([]chan Event(nil), pomodoro.events...)
	pomodoro.mu.Unlock()
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
