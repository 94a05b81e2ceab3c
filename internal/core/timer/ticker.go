package timer

import (
	"sync"
	"time"
)

// Ticker is the tick source driving a Timer. Arm schedules the callback once
// per interval until Disarm is called. Implementations must guarantee at most
// one armed schedule at a time.
type Ticker interface {
	Arm(interval time.Duration, tick func())
	Disarm()
}

// IntervalTicker is the production Ticker backed by time.Ticker.
type IntervalTicker struct {
	mu     sync.Mutex
	stopCh chan struct{}
}

// NewIntervalTicker creates a disarmed IntervalTicker.
func NewIntervalTicker() *IntervalTicker {
	return &IntervalTicker{}
}

// Arm starts the tick loop. A second Arm while armed is a no-op.
func (interval *IntervalTicker) Arm(every time.Duration, tick func()) {
	interval.mu.Lock()
	defer interval.mu.Unlock()
	if interval.stopCh != nil {
		return
	}
	stopCh := make(chan struct{})
	interval.stopCh = stopCh

	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				tick()
			}
		}
	}()
}

// Disarm stops the tick loop. Safe to call while disarmed.
func (interval *IntervalTicker) Disarm() {
	interval.mu.Lock()
	defer interval.mu.Unlock()
	if interval.stopCh == nil {
		return
	}
	close(interval.stopCh)
	interval.stopCh = nil
}
