package reactive

// Event payload types delivered by the thin client. Handlers declare the
// concrete type they want:
//
//	OnClick(func(e reactive.MouseEvent) { ... })
//	OnFileSelect(func(e reactive.FileEvent) { ... })

// MouseEvent represents a mouse event with position and modifiers.
type MouseEvent struct {
	// Position relative to viewport.
	ClientX int
	ClientY int

	// Button that triggered the event (0=left, 1=middle, 2=right).
	Button int

	// Modifier keys.
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
	MetaKey  bool
}

// InputEvent represents an input field change event.
type InputEvent struct {
	// Current value of the input.
	Value string
}

// FileInfo describes one file chosen in a native file picker. The thin
// client ships the bytes with the event frame; Data is nil when the
// client sends metadata only.
type FileInfo struct {
	// Name is the original filename from the client, without any path.
	Name string

	// Size is the file size in bytes as reported by the picker.
	Size int64

	// ContentType is the MIME type reported by the browser. May be
	// empty or wrong; server-side consumers should sniff the content.
	ContentType string

	// Data is the file content.
	Data []byte
}

// FileEvent represents a change event on a file input. An empty Files
// slice means the user dismissed the picker without choosing a file.
type FileEvent struct {
	Files []FileInfo
}

// File returns the first selected file, or nil if the selection is empty.
func (e FileEvent) File() *FileInfo {
	if len(e.Files) == 0 {
		return nil
	}
	return &e.Files[0]
}
