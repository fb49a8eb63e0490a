package reactive

import (
	"sync"
	"sync/atomic"
)

// Owner represents a component scope that owns reactive primitives.
// When an Owner is disposed, the effects, cleanups, timers, and child
// owners it contains are disposed with it. Owners form a hierarchy
// mirroring the component tree.
type Owner struct {
	id uint64

	// parent is nil for a root Owner (typically the session).
	parent *Owner

	// children are child Owners (sub-components).
	children   []*Owner
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// cleanups registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// pendingEffects are effects scheduled to run after render.
	pendingEffects   []*Effect
	pendingEffectsMu sync.Mutex

	// wake is invoked when an effect is scheduled from outside the
	// render loop (an async signal write). The session runtime installs
	// it to drain pending effects on its own goroutine.
	wake   func()
	wakeMu sync.RWMutex

	// disposed indicates whether this Owner has been disposed.
	disposed atomic.Bool
}

// NewOwner creates a new Owner registered as a child of parent.
// A nil parent creates a root Owner.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent Owner, or nil for a root Owner.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed returns true if this Owner has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this Owner; the effect is disposed
// with the Owner.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// OnCleanup registers a cleanup function to run on disposal.
// If the Owner is already disposed, fn runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// SetWake installs the callback invoked whenever an effect is scheduled.
// The session runtime uses it to wake its loop after async signal writes.
func (o *Owner) SetWake(fn func()) {
	o.wakeMu.Lock()
	o.wake = fn
	o.wakeMu.Unlock()
}

// scheduleEffect queues an effect to run via RunPendingEffects and wakes
// the runtime if a wake callback is installed.
func (o *Owner) scheduleEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = append(o.pendingEffects, e)
	o.pendingEffectsMu.Unlock()

	o.wakeMu.RLock()
	wake := o.wake
	o.wakeMu.RUnlock()
	if wake != nil {
		wake()
	}
}

// RunPendingEffects executes all pending effects on this owner and its
// children. The runtime calls this after event handlers execute.
func (o *Owner) RunPendingEffects() {
	if o.disposed.Load() {
		return
	}

	o.pendingEffectsMu.Lock()
	effects := o.pendingEffects
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()

	for _, e := range effects {
		if e.pending.Load() {
			e.run()
		}
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		child.RunPendingEffects()
	}
}

// HasPendingEffects reports whether this owner or any child has effects
// waiting to run.
func (o *Owner) HasPendingEffects() bool {
	if o.disposed.Load() {
		return false
	}

	o.pendingEffectsMu.Lock()
	hasPending := len(o.pendingEffects) > 0
	o.pendingEffectsMu.Unlock()

	if hasPending {
		return true
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.childrenMu.Unlock()

	for _, child := range children {
		if child.HasPendingEffects() {
			return true
		}
	}

	return false
}

// Dispose disposes this Owner and all its children, effects, and
// cleanups. Children are disposed in reverse creation order. After
// disposal the Owner cannot be reused.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}

	o.pendingEffectsMu.Lock()
	o.pendingEffects = nil
	o.pendingEffectsMu.Unlock()
}
