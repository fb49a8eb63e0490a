package render

import (
	"strings"
	"testing"

	"github.com/imago-ui/imago/pkg/vdom"
)

func TestRenderToString_BasicElement(t *testing.T) {
	r := NewRenderer()
	html, err := r.RenderToString(vdom.Div(vdom.Class("box"), vdom.Text("hello")))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, `<div class="box"`) {
		t.Errorf("missing opening tag with class: %s", html)
	}
	if !strings.Contains(html, ">hello</div>") {
		t.Errorf("missing text content: %s", html)
	}
}

func TestRender_EscapesText(t *testing.T) {
	r := NewRenderer()
	html, _ := r.RenderToString(vdom.Span(vdom.Text(`<img src=x onerror="pwn">`)))

	if strings.Contains(html, "<img") {
		t.Errorf("text not escaped: %s", html)
	}
	if !strings.Contains(html, "&lt;img") {
		t.Errorf("expected escaped entity: %s", html)
	}
}

func TestRender_EscapesAttributes(t *testing.T) {
	r := NewRenderer()
	html, _ := r.RenderToString(vdom.Div(vdom.TitleAttr(`a"b`)))

	if !strings.Contains(html, `title="a&quot;b"`) {
		t.Errorf("attribute not escaped: %s", html)
	}
}

func TestRender_VoidElementSelfTerminates(t *testing.T) {
	r := NewRenderer()
	html, _ := r.RenderToString(vdom.Input(vdom.Type("file")))

	if strings.Contains(html, "</input>") {
		t.Errorf("void element rendered with closing tag: %s", html)
	}
}

func TestRender_BooleanAttributes(t *testing.T) {
	r := NewRenderer()
	html, _ := r.RenderToString(vdom.Button(vdom.Disabled(), vdom.Text("wait")))

	if !strings.Contains(html, " disabled") {
		t.Errorf("true boolean attr missing: %s", html)
	}
	if strings.Contains(html, `disabled="`) {
		t.Errorf("boolean attr should render bare: %s", html)
	}
}

func TestRender_AssignsHIDsAndRegistersHandlers(t *testing.T) {
	r := NewRenderer()
	handler := func() {}
	node := vdom.Div(vdom.Button(vdom.OnClick(handler)))

	html, _ := r.RenderToString(node)

	if !strings.Contains(html, `data-hid="h1"`) || !strings.Contains(html, `data-hid="h2"`) {
		t.Errorf("expected sequential HIDs: %s", html)
	}
	if !strings.Contains(html, `data-on-click="true"`) {
		t.Errorf("expected client bind marker: %s", html)
	}

	if _, ok := r.Handlers()["h2_onclick"]; !ok {
		t.Errorf("handler not registered under h2_onclick: %v", r.Handlers())
	}
	if node.Children[0].HID != "h2" {
		t.Errorf("HID not written back to node: %q", node.Children[0].HID)
	}
}

func TestRender_FragmentHasNoWrapper(t *testing.T) {
	r := NewRenderer()
	html, _ := r.RenderToString(vdom.Fragment(vdom.Span(vdom.Text("a")), vdom.Span(vdom.Text("b"))))

	if strings.Contains(html, "fragment") {
		t.Errorf("fragment should not render a wrapper: %s", html)
	}
	if strings.Count(html, "<span") != 2 {
		t.Errorf("expected two spans: %s", html)
	}
}

func TestRenderer_ResetClearsState(t *testing.T) {
	r := NewRenderer()
	_, _ = r.RenderToString(vdom.Button(vdom.OnClick(func() {})))
	r.Reset()

	if len(r.Handlers()) != 0 {
		t.Error("Reset should clear handler registry")
	}

	html, _ := r.RenderToString(vdom.Div())
	if !strings.Contains(html, `data-hid="h1"`) {
		t.Errorf("Reset should restart HID counter: %s", html)
	}
}
