package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// Mouse events

// OnClick handles click events.
func OnClick(handler any) EventHandler { return event("click", handler) }

// OnDblClick handles double-click events.
func OnDblClick(handler any) EventHandler { return event("dblclick", handler) }

// Form events

// OnInput handles input events (fired as the value changes).
func OnInput(handler any) EventHandler { return event("input", handler) }

// OnChange handles change events (fired when a value is committed).
func OnChange(handler any) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler any) EventHandler { return event("submit", handler) }

// OnFocus handles focus events.
func OnFocus(handler any) EventHandler { return event("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler any) EventHandler { return event("blur", handler) }

// File events

// OnFileSelect handles file selection on a file input. The thin client
// emits a fileselect event carrying the chosen files (metadata plus
// content) instead of a plain change event, so the handler receives a
// reactive.FileEvent. An empty selection still fires the event.
func OnFileSelect(handler any) EventHandler { return event("fileselect", handler) }
