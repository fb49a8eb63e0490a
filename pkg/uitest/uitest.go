package uitest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/render"
	"github.com/imago-ui/imago/pkg/vdom"
)

// RenderToString renders a VNode and returns the HTML string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer()
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains the substring.
func ExpectContains(t *testing.T, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain the
// substring.
func ExpectNotContains(t *testing.T, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains the tag.
func ExpectElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectNoElement asserts that rendered output does not contain the tag.
func ExpectNoElement(t *testing.T, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to NOT contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains attr="value".
func ExpectAttribute(t *testing.T, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// Driver mounts a component render function under a root owner, tracks
// the rendered handler registry, and lets tests fire events and flush
// effects deterministically.
type Driver struct {
	owner    *reactive.Owner
	renderFn func() *vdom.VNode
	renderer *render.Renderer
	tree     *vdom.VNode
}

// Mount sets up a Driver and performs the initial render.
func Mount(renderFn func() *vdom.VNode) *Driver {
	d := &Driver{
		owner:    reactive.NewOwner(nil),
		renderFn: renderFn,
		renderer: render.NewRenderer(),
	}
	d.Render()
	return d
}

// Owner returns the root owner the component is mounted under.
func (d *Driver) Owner() *reactive.Owner {
	return d.owner
}

// Dispose unmounts the component, running all owner cleanups, and
// releases the goroutine's tracking context.
func (d *Driver) Dispose() {
	d.owner.Dispose()
	reactive.ReleaseGoroutineContext()
}

// Render re-renders the component and returns the new tree. Handlers
// registered during the previous render are replaced.
func (d *Driver) Render() *vdom.VNode {
	var tree *vdom.VNode
	reactive.WithOwner(d.owner, func() {
		tree = d.renderFn()
	})

	d.renderer.Reset()
	if _, err := d.renderer.RenderToString(tree); err != nil {
		panic(fmt.Sprintf("uitest: render failed: %v", err))
	}
	d.tree = tree
	return tree
}

// HTML renders the current state and returns the HTML string.
func (d *Driver) HTML() string {
	return RenderToString(d.Render())
}

// FlushEffects runs pending effects scheduled by signal writes.
func (d *Driver) FlushEffects() {
	d.owner.RunPendingEffects()
}

// Fire invokes the handler bound for the given class selector and event
// name, then re-renders. The selector matches the first element whose
// class list contains the given class.
func (d *Driver) Fire(t *testing.T, class, event string, payload any) {
	t.Helper()

	node := findByClass(d.tree, class)
	if node == nil {
		t.Fatalf("uitest: no element with class %q in current tree", class)
	}

	handler, ok := d.renderer.Handlers()[node.HID+"_on"+event]
	if !ok {
		t.Fatalf("uitest: element %q has no %s handler", class, event)
	}

	invoke(t, handler, payload)
	d.FlushEffects()
	d.Render()
}

// FireFileSelect fires a fileselect event carrying one file on the
// element with the given class.
func (d *Driver) FireFileSelect(t *testing.T, class, name string, data []byte) {
	t.Helper()
	d.Fire(t, class, "fileselect", reactive.FileEvent{
		Files: []reactive.FileInfo{{
			Name: name,
			Size: int64(len(data)),
			Data: data,
		}},
	})
}

// FireEmptySelection fires a fileselect event with no files, as the
// client does when the user dismisses the picker.
func (d *Driver) FireEmptySelection(t *testing.T, class string) {
	t.Helper()
	d.Fire(t, class, "fileselect", reactive.FileEvent{})
}

// invoke calls a handler with the payload type it declares.
func invoke(t *testing.T, handler, payload any) {
	t.Helper()

	switch fn := handler.(type) {
	case func():
		fn()
	case func(reactive.MouseEvent):
		ev, _ := payload.(reactive.MouseEvent)
		fn(ev)
	case func(reactive.InputEvent):
		ev, _ := payload.(reactive.InputEvent)
		fn(ev)
	case func(reactive.FileEvent):
		ev, _ := payload.(reactive.FileEvent)
		fn(ev)
	default:
		t.Fatalf("uitest: unsupported handler type %T", handler)
	}
}

// findByClass walks the tree for the first element whose class list
// contains the class.
func findByClass(node *vdom.VNode, class string) *vdom.VNode {
	if node == nil {
		return nil
	}
	if node.Kind == vdom.KindElement {
		if cls, ok := node.Props["class"].(string); ok {
			for _, c := range strings.Fields(cls) {
				if c == class {
					return node
				}
			}
		}
	}
	for _, child := range node.Children {
		if found := findByClass(child, class); found != nil {
			return found
		}
	}
	return nil
}
