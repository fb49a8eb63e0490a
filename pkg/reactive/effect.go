package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side effect that re-runs when its dependencies
// change. Effects are created with CreateEffect and track dependencies
// automatically during execution.
type Effect struct {
	id uint64

	// fn is the effect function.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals this effect depends on.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the Owner that owns this effect.
	owner *Owner

	// pending indicates the effect is scheduled for re-run.
	pending atomic.Bool

	// disposed indicates the effect has been disposed.
	disposed atomic.Bool
}

// MarkDirty schedules the effect to re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	// CAS ensures the effect is scheduled at most once per run.
	if e.pending.CompareAndSwap(false, true) {
		if e.owner != nil {
			e.owner.scheduleEffect(e)
		}
	}
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect function, re-tracking dependencies.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources; execution re-subscribes to whatever
	// the effect actually reads this time.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	oldListener := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(oldListener)
}

// addSource records a source dependency. Called by signals read during
// effect execution.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// dispose runs the cleanup and unsubscribes from all sources.
func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// CreateEffect creates and immediately runs a new effect under the
// current owner. The effect re-runs when any signal it reads changes.
// A returned Cleanup is called before each re-run and on disposal.
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    log.Println("progress:", progress.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	owner := getCurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}

	if owner != nil {
		owner.registerEffect(e)
	}

	e.run()

	return e
}

// OnMount runs fn once when the component is first set up.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		fn()
		return nil
	})
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	owner := getCurrentOwner()
	if owner != nil {
		owner.OnCleanup(fn)
	}
}
