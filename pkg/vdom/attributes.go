package vdom

import "strings"

// attr creates an attribute with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Global attributes

func ID(id string) Attr { return attr("id", id) }

// Class joins the given classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets inline CSS. Named to avoid clashing with style elements.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

func Hidden() Attr                { return attr("hidden", true) }
func TitleAttr(title string) Attr { return attr("title", title) }
func Role(role string) Attr       { return attr("role", role) }

// ARIA

func AriaLabel(label string) Attr   { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr   { return attr("aria-hidden", hidden) }
func AriaBusy(busy bool) Attr       { return attr("aria-busy", busy) }
func AriaLive(mode string) Attr     { return attr("aria-live", mode) }
func AriaValueNow(v float64) Attr   { return attr("aria-valuenow", v) }
func AriaValueMin(v float64) Attr   { return attr("aria-valuemin", v) }
func AriaValueMax(v float64) Attr   { return attr("aria-valuemax", v) }
func AriaDisabled(d bool) Attr      { return attr("aria-disabled", d) }
func AriaDescribedBy(id string) Attr { return attr("aria-describedby", id) }

// Links and media

func Href(url string) Attr   { return attr("href", url) }
func Src(url string) Attr    { return attr("src", url) }
func Alt(text string) Attr   { return attr("alt", text) }
func Target(t string) Attr   { return attr("target", t) }
func Rel(rel string) Attr    { return attr("rel", rel) }

// Forms

func Name(name string) Attr        { return attr("name", name) }
func Value(value string) Attr      { return attr("value", value) }
func Type(t string) Attr           { return attr("type", t) }
func Placeholder(text string) Attr { return attr("placeholder", text) }
func Disabled() Attr               { return attr("disabled", true) }
func Required() Attr               { return attr("required", true) }
func Multiple() Attr               { return attr("multiple", true) }

// For associates a label with a form control. Clicking the label
// activates the control, which is how the visible button proxies clicks
// to a hidden file picker without any client script.
func For(id string) Attr { return attr("for", id) }

// Accept restricts the file types offered by a file picker,
// e.g. Accept(".jpg,.jpeg,.png").
func Accept(types string) Attr { return attr("accept", types) }

// Capture hints which camera to use for capture-capable pickers.
func Capture(mode string) Attr { return attr("capture", mode) }

// Max sets the max attribute (progress elements, numeric inputs).
func Max(value string) Attr { return attr("max", value) }
