package reactive

import (
	"sync"
	"time"
)

// Timer is an owner-scoped one-shot timer. Unlike a bare time.AfterFunc,
// a Timer is cancelled automatically when its Owner is disposed, so a
// late-firing callback can never mutate state after the component that
// armed it is gone.
type Timer struct {
	owner *Owner

	mu    sync.Mutex
	timer *time.Timer
	fired bool
}

// NewTimer creates an unarmed Timer scoped to the given owner.
// A nil owner yields an unscoped timer that must be stopped manually.
func NewTimer(owner *Owner) *Timer {
	t := &Timer{owner: owner}
	if owner != nil {
		owner.OnCleanup(t.Stop)
	}
	return t
}

// Start arms the timer to call fn after d. Restarting an armed timer
// cancels the previous schedule first, so a superseding error restarts
// the dismiss window instead of stacking callbacks.
func (t *Timer) Start(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.fired = false

	t.timer = time.AfterFunc(d, func() {
		t.mu.Lock()
		t.fired = true
		t.mu.Unlock()

		if t.owner != nil && t.owner.IsDisposed() {
			return
		}
		fn()
	})
}

// Stop cancels the pending callback, if any.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Active reports whether the timer is armed and has not fired yet.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil && !t.fired
}
