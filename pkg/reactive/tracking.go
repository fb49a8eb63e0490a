package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine. Each goroutine
// has its own context so that component rendering and async signal writes
// from upload goroutines do not interfere.
type trackingContext struct {
	// currentOwner owns newly created effects and timers.
	currentOwner *Owner

	// currentListener is what is currently tracking dependencies.
	// nil means reads do not create subscriptions.
	currentListener Listener
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// goroutineID extracts the current goroutine's ID from the runtime stack.
// Implementation detail; never exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// Stack begins with "goroutine <id> ".
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackingContext() *trackingContext {
	gid := goroutineID()
	if tc, ok := trackingContexts.Load(gid); ok {
		return tc.(*trackingContext)
	}
	tc := &trackingContext{}
	trackingContexts.Store(gid, tc)
	return tc
}

func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener installs a listener for dependency tracking and
// returns the previous one so callers can restore it.
func setCurrentListener(l Listener) Listener {
	tc := getTrackingContext()
	prev := tc.currentListener
	tc.currentListener = l
	return prev
}

func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner installs the owner for newly created primitives and
// returns the previous one.
func setCurrentOwner(o *Owner) *Owner {
	tc := getTrackingContext()
	prev := tc.currentOwner
	tc.currentOwner = o
	return prev
}

// Untrack runs fn with dependency tracking disabled. Signal reads inside
// fn do not subscribe the current listener.
func Untrack(fn func()) {
	prev := setCurrentListener(nil)
	defer setCurrentListener(prev)
	fn()
}

// ReleaseGoroutineContext removes the tracking context stored for the
// current goroutine. Long-lived goroutines that run reactive code, such
// as a session's event loop, call this before exiting so the
// per-goroutine map does not grow without bound.
func ReleaseGoroutineContext() {
	trackingContexts.Delete(goroutineID())
}

// CurrentOwner returns the owner installed for this goroutine, or nil
// when called outside a component setup context.
func CurrentOwner() *Owner {
	return getCurrentOwner()
}

// WithOwner runs fn with the given owner installed as the current owner
// for the duration of the call.
func WithOwner(o *Owner, fn func()) {
	prev := setCurrentOwner(o)
	defer setCurrentOwner(prev)
	fn()
}
