package imagebutton

import (
	"context"
	"fmt"
	"strings"

	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/vdom"
)

// progressUnset marks the progress signal as "no percentage known"; the
// view renders an indeterminate bar while an upload is in flight with
// this value.
const progressUnset = -1

// Button is the image upload button component. Create one with New
// during component setup and call Render from the render function.
//
// State is held in signals, so any change to uploading, error, or
// progress re-renders the view on its own. The error auto-dismiss timer
// is scoped to the creating owner: unmounting the component cancels it.
type Button struct {
	cfg   Config
	owner *reactive.Owner

	uploading *reactive.BoolSignal
	hasError  *reactive.BoolSignal
	errorText *reactive.StringSignal
	progress  *reactive.IntSignal

	dismiss *reactive.Timer

	ctx    context.Context
	cancel context.CancelFunc

	inputID string
}

// New creates a Button under the current owner. Outside a component
// setup context the button gets its own root owner; call Dispose to
// release it.
func New(cfg Config) *Button {
	owner := reactive.NewOwner(reactive.CurrentOwner())
	ctx, cancel := context.WithCancel(context.Background())

	b := &Button{
		cfg:       cfg.normalize(),
		owner:     owner,
		uploading: reactive.NewBoolSignal(false),
		hasError:  reactive.NewBoolSignal(false),
		errorText: reactive.NewStringSignal(""),
		progress:  reactive.NewIntSignal(progressUnset),
		dismiss:   reactive.NewTimer(owner),
		ctx:       ctx,
		cancel:    cancel,
		inputID:   fmt.Sprintf("imago-file-%d", owner.ID()),
	}

	owner.OnCleanup(cancel)

	return b
}

// Dispose releases the button's owner, cancelling the dismiss timer and
// the upload context. Only needed when the button was created outside a
// component tree.
func (b *Button) Dispose() {
	b.owner.Dispose()
}

// Uploading reports whether an upload is in flight. Subscribes the
// current listener.
func (b *Button) Uploading() bool {
	return b.uploading.Get()
}

// ErrorText returns the visible validation error text, or "" when no
// error is showing. Subscribes the current listener.
func (b *Button) ErrorText() string {
	if !b.hasError.Get() {
		return ""
	}
	return b.errorText.Get()
}

// Progress returns the last reported upload percentage, or -1 when none
// has been reported. Subscribes the current listener.
func (b *Button) Progress() int {
	return b.progress.Get()
}

// HandleSelection processes a file-selection event: classify, then
// either show the validation error or dispatch the preview and upload
// pipelines. Wired to the hidden picker's fileselect event by Render;
// exported so tests and embedders can drive the component directly.
func (b *Button) HandleSelection(e reactive.FileEvent) {
	file := fileFromEvent(e)

	verdict := Classify(file, b.cfg.MaxFileSize, b.cfg.AllowedExtensions)
	if verdict != Valid {
		b.reportError(NewError(verdict.Code()))
		return
	}

	b.dispatch(*file)
}

// reportError shows the error text and arms the auto-dismiss timer.
// hasError and errorText always change together; a superseding error
// restarts the dismiss window.
func (b *Button) reportError(err *Error) {
	b.errorText.Set(err.Error())
	b.hasError.SetTrue()

	b.dismiss.Start(b.cfg.ErrorDismissAfter, func() {
		b.hasError.SetFalse()
		b.errorText.Clear()
	})
}

// dispatch runs the two optional pipelines for a valid file. They are
// independent: the preview conversion never touches upload state, and
// neither waits for or cancels the other.
func (b *Button) dispatch(file File) {
	if cb := b.cfg.OnImageLoaded; cb != nil {
		go func() {
			cb(LoadedImage{File: file, DataURL: EncodeDataURL(file)})
		}()
	}

	if b.cfg.OnImageUpload != nil {
		b.uploading.SetTrue()
		go b.runUpload(file)
	}
}

// runUpload invokes the upload routine and settles UploadState from its
// outcome. Failures bypass the error view entirely; the error value
// goes to OnImageUploadError verbatim.
func (b *Button) runUpload(file File) {
	resp, err := b.cfg.OnImageUpload(b.ctx, file, func(percent int) {
		b.progress.Set(percent)
	})

	if err != nil {
		b.uploading.SetFalse()
		if cb := b.cfg.OnImageUploadError; cb != nil {
			cb(err)
		}
		return
	}

	b.progress.Set(progressUnset)
	b.uploading.SetFalse()
	if cb := b.cfg.OnImageUploaded; cb != nil {
		cb(resp)
	}
}

// accept builds the picker's accept attribute from the allow-list,
// prefixing bare extensions with a dot: ".jpg,.jpeg,.png".
func (b *Button) accept() string {
	parts := make([]string, 0, len(b.cfg.AllowedExtensions))
	for _, ext := range b.cfg.AllowedExtensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		parts = append(parts, strings.ToLower(ext))
	}
	return strings.Join(parts, ",")
}

// Render builds the view for the current state.
//
// Idle: visible button with icon and label, hidden picker mounted.
// Uploading: button disabled with a progress bar, picker unmounted so
// the user cannot re-select mid-upload.
// Error: button enabled with the error accent, error icon and text.
func (b *Button) Render() *vdom.VNode {
	uploading := b.uploading.Get()
	hasError := b.hasError.Get()

	btnClass := "imago-button"
	if hasError && !uploading {
		btnClass += " imago-button-error"
	}

	var style vdom.Attr
	if b.cfg.Style != "" {
		style = vdom.StyleAttr(b.cfg.Style)
	}

	return vdom.Div(vdom.Class("imago-upload"),
		vdom.Button(
			vdom.Type("button"),
			vdom.Class(btnClass),
			style,
			// The thin client forwards clicks to the hidden picker.
			vdom.Data("picker-for", b.inputID),
			ifAttr(uploading, vdom.Disabled()),
			vdom.AriaBusy(uploading),
			b.renderContent(uploading, hasError),
		),
		vdom.Unless(uploading,
			vdom.Input(
				vdom.ID(b.inputID),
				vdom.Type("file"),
				vdom.Class("imago-picker"),
				vdom.Accept(b.accept()),
				vdom.StyleAttr("display:none"),
				vdom.OnFileSelect(b.HandleSelection),
			),
		),
	)
}

// renderContent picks the button's inner content for the current state.
func (b *Button) renderContent(uploading, hasError bool) *vdom.VNode {
	switch {
	case uploading:
		return b.renderProgress()
	case hasError:
		return vdom.Span(vdom.Class("imago-error"), vdom.AriaLive("polite"),
			vdom.I(vdom.Class("imago-icon imago-icon-error"), vdom.AriaHidden(true)),
			vdom.Text(b.errorText.Get()),
		)
	default:
		return vdom.Span(vdom.Class("imago-label"),
			b.cfg.Icon,
			vdom.Text(b.cfg.Label),
		)
	}
}

// renderProgress renders a percent bar when progress has been reported
// and an indeterminate bar otherwise.
func (b *Button) renderProgress() *vdom.VNode {
	percent := b.progress.Get()
	if percent < 0 {
		return vdom.Span(vdom.Class("imago-progress imago-progress-indeterminate"),
			vdom.Role("progressbar"),
		)
	}
	if percent > 100 {
		percent = 100
	}
	return vdom.Span(vdom.Class("imago-progress"),
		vdom.Role("progressbar"),
		vdom.AriaValueNow(float64(percent)),
		vdom.AriaValueMin(0),
		vdom.AriaValueMax(100),
		vdom.Span(vdom.Class("imago-progress-fill"),
			vdom.StyleAttr(fmt.Sprintf("width:%d%%", percent)),
		),
	)
}

// ifAttr returns attr when cond is true, and an empty (skipped)
// attribute otherwise.
func ifAttr(cond bool, attr vdom.Attr) vdom.Attr {
	if cond {
		return attr
	}
	return vdom.Attr{}
}
