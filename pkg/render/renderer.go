package render

import (
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/imago-ui/imago/pkg/vdom"
)

// Renderer handles server-side rendering of VNode trees to HTML.
// A Renderer is not safe for concurrent use; each session owns one.
type Renderer struct {
	hidCounter uint32
	handlers   map[string]any
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		handlers: make(map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node)
}

// Handlers returns the handler registry collected during rendering.
// Keys are "hid_eventname" (e.g., "h3_onfileselect").
func (r *Renderer) Handlers() map[string]any {
	return r.handlers
}

// Reset clears the HID counter and handler registry for reuse.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]any)
}

// Rebind walks an already-addressed tree and re-registers its event
// handlers. Sessions call it after a diff so closures captured during
// the latest render replace the ones from the previous one.
func (r *Renderer) Rebind(node *vdom.VNode) {
	if node == nil {
		return
	}
	if node.Kind == vdom.KindElement && node.HID != "" {
		r.registerHandlers(node.HID, node)
	}
	for _, child := range node.Children {
		r.Rebind(child)
	}
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node)
	case vdom.KindText:
		return r.renderText(w, node)
	case vdom.KindFragment:
		return r.renderFragment(w, node)
	case vdom.KindRaw:
		return r.renderRaw(w, node)
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode) error {
	tag := node.Tag

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}

	if err := r.renderAttributes(w, node); err != nil {
		return err
	}

	// Every element gets a HID so the diff stays addressable.
	hid := r.nextHID()
	node.HID = hid
	if _, err := fmt.Fprintf(w, ` data-hid="%s"`, hid); err != nil {
		return err
	}
	r.registerHandlers(hid, node)

	if vdom.IsVoidElement(tag) {
		_, err := w.Write([]byte{'>'})
		return err
	}

	if _, err := w.Write([]byte{'>'}); err != nil {
		return err
	}

	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

func (r *Renderer) renderText(w io.Writer, node *vdom.VNode) error {
	_, err := w.Write([]byte(escapeHTML(node.Text)))
	return err
}

func (r *Renderer) renderFragment(w io.Writer, node *vdom.VNode) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRaw(w io.Writer, node *vdom.VNode) error {
	_, err := w.Write([]byte(node.Text))
	return err
}

func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if node.Props == nil {
		return nil
	}

	// Sorted keys keep output deterministic for tests and diffs.
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		// Event handlers are registered, not rendered.
		if strings.HasPrefix(key, "on") && isHandlerValue(value) {
			continue
		}

		if isBooleanAttr(key) {
			if boolValue, ok := value.(bool); ok {
				if boolValue {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		strValue := attrToString(value)
		if strValue != "" {
			if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(strValue)); err != nil {
				return err
			}
		}
	}

	// Event marker attributes tell the thin client which listeners to bind.
	for _, key := range keys {
		if strings.HasPrefix(key, "on") && isHandlerValue(node.Props[key]) {
			eventName := strings.ToLower(key[2:])
			if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, eventName); err != nil {
				return err
			}
		}
	}

	return nil
}

func (r *Renderer) nextHID() string {
	r.hidCounter++
	return fmt.Sprintf("h%d", r.hidCounter)
}

func (r *Renderer) registerHandlers(hid string, node *vdom.VNode) {
	for key, value := range node.Props {
		if strings.HasPrefix(key, "on") && isHandlerValue(value) {
			r.handlers[hid+"_"+key] = value
		}
	}
}

// isHandlerValue reports whether a prop value is a function.
func isHandlerValue(value any) bool {
	if value == nil {
		return false
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}

// booleanAttrs render as bare attribute names when true and are omitted
// when false.
var booleanAttrs = map[string]bool{
	"disabled":  true,
	"checked":   true,
	"selected":  true,
	"readonly":  true,
	"required":  true,
	"multiple":  true,
	"autofocus": true,
	"hidden":    true,
}

func isBooleanAttr(key string) bool {
	return booleanAttrs[key]
}

func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
