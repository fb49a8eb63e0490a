package reactive

// Listener is anything that can be notified when a dependency changes.
// Implemented by effects and by session render loops.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	MarkDirty()

	// ID returns a unique identifier for this listener, used for
	// subscription deduplication.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()
