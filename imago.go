// Package imago provides the public API for the imago UI kit: a
// server-driven image upload button plus the reactive runtime and
// live-session transport it runs on.
//
// This is the recommended import for most applications:
//
//	import "github.com/imago-ui/imago"
//
// Usage:
//
//	btn := imago.NewUploadButton(imago.UploadButtonConfig{
//	    Label:         "Upload photo",
//	    OnImageLoaded: func(img imago.LoadedImage) { ... },
//	})
//	r.Handle("/live", imago.NewLiveHandler(func() imago.RenderFunc {
//	    return imago.NewUploadButton(cfg).Render
//	}))
package imago

import (
	"github.com/imago-ui/imago/pkg/imagebutton"
	"github.com/imago-ui/imago/pkg/live"
	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/vdom"
)

// =============================================================================
// Upload button component
// =============================================================================

// UploadButton is the image upload button component.
type UploadButton = imagebutton.Button

// UploadButtonConfig configures an UploadButton.
type UploadButtonConfig = imagebutton.Config

// File is a selected file as the component sees it.
type File = imagebutton.File

// LoadedImage is the preview payload delivered to OnImageLoaded.
type LoadedImage = imagebutton.LoadedImage

// UploadFunc performs the actual upload for OnImageUpload.
type UploadFunc = imagebutton.UploadFunc

// ReportProgress receives upload percentages from an UploadFunc.
type ReportProgress = imagebutton.ReportProgress

// NewUploadButton creates an upload button under the current owner.
func NewUploadButton(cfg UploadButtonConfig) *UploadButton {
	return imagebutton.New(cfg)
}

// DefaultMaxFileSize is the default selection size cap in bytes.
const DefaultMaxFileSize = imagebutton.DefaultMaxFileSize

// =============================================================================
// Reactive primitives
// =============================================================================

// Signal is a reactive value container.
type Signal[T any] = reactive.Signal[T]

// Cleanup runs before an effect re-runs or is disposed.
type Cleanup = reactive.Cleanup

// Owner scopes signals, effects, and timers to a lifetime.
type Owner = reactive.Owner

// NewSignal creates a reactive signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return reactive.NewSignal(initial)
}

// CreateEffect registers a side effect that re-runs when the signals it
// reads change.
var CreateEffect = reactive.CreateEffect

// Untrack runs fn without subscribing the current listener.
var Untrack = reactive.Untrack

// =============================================================================
// Views and live sessions
// =============================================================================

// VNode is a virtual DOM node.
type VNode = vdom.VNode

// RenderFunc produces a component's current tree.
type RenderFunc = live.RenderFunc

// NewLiveHandler returns an http.Handler that serves one component
// instance per WebSocket connection.
var NewLiveHandler = live.NewHandler
