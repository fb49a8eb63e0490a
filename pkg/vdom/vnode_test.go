package vdom

import "testing"

func TestCreateElement_AttrsAndChildren(t *testing.T) {
	node := Div(Class("uploader"), ID("root"),
		Button(OnClick(func() {}), Text("Upload image")),
		"plain text",
	)

	if node.Tag != "div" {
		t.Errorf("tag = %q, want div", node.Tag)
	}
	if node.Props["class"] != "uploader" {
		t.Errorf("class = %v, want uploader", node.Props["class"])
	}
	if len(node.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(node.Children))
	}
	if node.Children[1].Kind != KindText || node.Children[1].Text != "plain text" {
		t.Errorf("string shorthand not converted to text node")
	}
}

func TestCreateElement_NilArgsSkipped(t *testing.T) {
	node := Div(nil, If(false, Span()), Text("kept"))

	if len(node.Children) != 1 {
		t.Errorf("children = %d, want 1 (nil and false-If skipped)", len(node.Children))
	}
}

func TestIsInteractive(t *testing.T) {
	plain := Div(Class("x"))
	if plain.IsInteractive() {
		t.Error("div without handlers should not be interactive")
	}

	clickable := Button(OnClick(func() {}))
	if !clickable.IsInteractive() {
		t.Error("button with onclick should be interactive")
	}
}

func TestEventHandler_Prefix(t *testing.T) {
	h := OnFileSelect(func() {})
	if h.Event != "onfileselect" {
		t.Errorf("event = %q, want onfileselect", h.Event)
	}
}

func TestSwitch(t *testing.T) {
	got := Switch("error",
		Case_("idle", Text("idle")),
		Case_("error", Text("boom")),
		Default[string](Text("fallback")),
	)
	if got.Text != "boom" {
		t.Errorf("Switch picked %q, want boom", got.Text)
	}

	got = Switch("unknown",
		Case_("idle", Text("idle")),
		Default[string](Text("fallback")),
	)
	if got.Text != "fallback" {
		t.Errorf("Switch default picked %q, want fallback", got.Text)
	}
}

func TestIfElse(t *testing.T) {
	a, b := Text("a"), Text("b")
	if IfElse(true, a, b) != a {
		t.Error("IfElse(true) should return first node")
	}
	if IfElse(false, a, b) != b {
		t.Error("IfElse(false) should return second node")
	}
}

func TestFragment_FlattensSlices(t *testing.T) {
	frag := Fragment(Text("a"), []*VNode{Text("b"), nil, Text("c")})
	if len(frag.Children) != 3 {
		t.Errorf("children = %d, want 3", len(frag.Children))
	}
}
