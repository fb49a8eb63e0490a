package imagebutton

import (
	"context"
	"time"

	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/vdom"
)

// DefaultMaxFileSize is the size cap applied when Config.MaxFileSize is
// zero: 5 MiB.
const DefaultMaxFileSize int64 = 5_242_880

// DefaultDismissAfter is how long validation errors stay visible before
// auto-clearing.
const DefaultDismissAfter = 5 * time.Second

// defaultExtensions is the allow-list applied when Config.AllowedExtensions
// is empty.
var defaultExtensions = []string{"jpg", "jpeg", "png"}

// File is the user-selected file as delivered by the picker. It is not
// retained by the component beyond one validation and dispatch cycle.
type File struct {
	// Name is the original filename, without any path.
	Name string

	// Size is the byte size reported by the picker.
	Size int64

	// Data is the file content.
	Data []byte
}

// LoadedImage pairs a selected file with its data URL form. The data URL
// carries a name marker (";name=<filename>;base64") so downstream
// consumers can recover the filename from the URL alone.
type LoadedImage struct {
	File    File
	DataURL string
}

// ReportProgress is handed to the upload routine; calling it updates the
// displayed completion percentage (0–100).
type ReportProgress func(percent int)

// UploadFunc is a caller-supplied upload routine. It runs on its own
// goroutine; the context is cancelled when the component unmounts,
// which implementations are free to ignore. The returned response and
// error are forwarded verbatim to OnImageUploaded / OnImageUploadError.
type UploadFunc func(ctx context.Context, file File, report ReportProgress) (any, error)

// Config configures an image upload button. All callbacks are optional;
// a zero Config yields a button that validates selections and shows
// errors but performs no preview or upload.
type Config struct {
	// Label is the button text shown in the idle state.
	Label string

	// Icon is rendered before the label in the idle state.
	Icon *vdom.VNode

	// Style is inline CSS applied to the visible button.
	Style string

	// MaxFileSize is the maximum accepted file size in bytes.
	// Zero means DefaultMaxFileSize. The boundary is inclusive: a file
	// of exactly MaxFileSize bytes is accepted.
	MaxFileSize int64

	// AllowedExtensions is the case-insensitive filename suffix
	// allow-list. Empty means jpg, jpeg, png.
	AllowedExtensions []string

	// ErrorDismissAfter is how long validation errors stay visible.
	// Zero means DefaultDismissAfter.
	ErrorDismissAfter time.Duration

	// OnImageLoaded receives the selected file converted to a data URL.
	// Runs independently of the upload pipeline.
	OnImageLoaded func(LoadedImage)

	// OnImageUpload uploads the selected file.
	OnImageUpload UploadFunc

	// OnImageUploaded receives the upload routine's response.
	OnImageUploaded func(any)

	// OnImageUploadError receives the upload routine's error, verbatim.
	// It is never invoked for validation failures; those are only shown
	// in the view.
	OnImageUploadError func(error)
}

// normalize fills in defaults for zero-valued fields.
func (c Config) normalize() Config {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if len(c.AllowedExtensions) == 0 {
		c.AllowedExtensions = defaultExtensions
	}
	if c.ErrorDismissAfter <= 0 {
		c.ErrorDismissAfter = DefaultDismissAfter
	}
	return c
}

// fileFromEvent extracts the first selected file, or nil for an empty
// selection.
func fileFromEvent(e reactive.FileEvent) *File {
	info := e.File()
	if info == nil {
		return nil
	}

	size := info.Size
	if size == 0 && len(info.Data) > 0 {
		size = int64(len(info.Data))
	}

	return &File{
		Name: info.Name,
		Size: size,
		Data: info.Data,
	}
}
