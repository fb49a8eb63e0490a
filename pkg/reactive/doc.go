// Package reactive provides the reactive core for Imago components.
//
// Dependencies are tracked automatically at runtime: reading a signal
// during a tracked context (component render or effect execution)
// subscribes the current listener to that signal's changes.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	uploading := reactive.NewSignal(false)
//	value := uploading.Get() // Read (subscribes current listener)
//	uploading.Set(true)      // Write (notifies subscribers)
//
// Effect runs side effects when dependencies change:
//
//	reactive.CreateEffect(func() reactive.Cleanup {
//	    log.Println("uploading:", uploading.Get())
//	    return nil
//	})
//
// Owner scopes the lifetime of effects, cleanups, and timers. Disposing
// an owner disposes everything created under it, which is how component
// unmount cancels pending auto-dismiss timers.
package reactive
