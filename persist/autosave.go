package persist

import (
	"sync"
	"time"
)

// DefaultAutosaveDelay matches the editor's debounce window: a burst of
// edits produces one write after the map has been quiet this long.
const DefaultAutosaveDelay = 2 * time.Second

// Autosaver debounces save requests. Request restarts the timer; the save
// function runs once the delay elapses with no further requests. Suspend
// silences it during load so restoring a map does not immediately rewrite
// the autosave file.
type Autosaver struct {
	delay time.Duration
	save  func()

	mu        sync.Mutex
	timer     *time.Timer
	suspended bool
}

// NewAutosaver builds an autosaver around a save function. The function is
// called from a timer goroutine; it must do its own synchronization with
// whatever it serializes.
func NewAutosaver(delay time.Duration, save func()) *Autosaver {
	if delay <= 0 {
		delay = DefaultAutosaveDelay
	}
	return &Autosaver{delay: delay, save: save}
}

// Request schedules a save after the debounce delay, cancelling any save
// already pending.
func (a *Autosaver) Request() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.suspended {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.save)
}

// Suspend pauses autosaving and cancels any pending save.
func (a *Autosaver) Suspend() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suspended = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

// Resume re-enables autosaving. Nothing is scheduled until the next
// Request.
func (a *Autosaver) Resume() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.suspended = false
}

// Flush cancels any pending save and runs the save function immediately,
// unless suspended.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if a.suspended {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	a.save()
}

// Stop cancels any pending save without running it.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
