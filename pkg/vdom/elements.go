package vdom

// voidElements cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string, EventHandler.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Allows conditional attributes.
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, attr := range v {
				applyAttr(node, attr)
			}

		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}

		case []*VNode:
			for _, child := range v {
				if child != nil {
					node.Children = append(node.Children, child)
				}
			}

		case Component:
			if rendered := v.Render(); rendered != nil {
				node.Children = append(node.Children, rendered)
			}

		case string:
			// Shorthand for a text node.
			node.Children = append(node.Children, &VNode{
				Kind: KindText,
				Text: v,
			})

		case EventHandler:
			node.Props[v.Event] = v.Handler
		}
	}

	return node
}

func applyAttr(node *VNode, attr Attr) {
	if attr.Key == "" {
		return
	}
	if attr.Key == "key" {
		if s, ok := attr.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[attr.Key] = attr.Value
}

// Element creates an element node for an arbitrary tag.
func Element(tag string, args ...any) *VNode {
	return createElement(tag, args)
}

// Document structure

func Div(args ...any) *VNode     { return createElement("div", args) }
func Span(args ...any) *VNode    { return createElement("span", args) }
func Section(args ...any) *VNode { return createElement("section", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func Main(args ...any) *VNode    { return createElement("main", args) }
func Nav(args ...any) *VNode     { return createElement("nav", args) }

// Text content

func H1(args ...any) *VNode     { return createElement("h1", args) }
func H2(args ...any) *VNode     { return createElement("h2", args) }
func H3(args ...any) *VNode     { return createElement("h3", args) }
func P(args ...any) *VNode      { return createElement("p", args) }
func Pre(args ...any) *VNode    { return createElement("pre", args) }
func Code(args ...any) *VNode   { return createElement("code", args) }
func Strong(args ...any) *VNode { return createElement("strong", args) }
func Em(args ...any) *VNode     { return createElement("em", args) }
func Ul(args ...any) *VNode     { return createElement("ul", args) }
func Li(args ...any) *VNode     { return createElement("li", args) }

// Inline

func A(args ...any) *VNode   { return createElement("a", args) }
func I(args ...any) *VNode   { return createElement("i", args) }
func Img(args ...any) *VNode { return createElement("img", args) }
func Br(args ...any) *VNode  { return createElement("br", args) }

// Forms

func Form(args ...any) *VNode     { return createElement("form", args) }
func Label(args ...any) *VNode    { return createElement("label", args) }
func Input(args ...any) *VNode    { return createElement("input", args) }
func Button(args ...any) *VNode   { return createElement("button", args) }
func Select(args ...any) *VNode   { return createElement("select", args) }
func Option(args ...any) *VNode   { return createElement("option", args) }
func Textarea(args ...any) *VNode { return createElement("textarea", args) }
func Progress(args ...any) *VNode { return createElement("progress", args) }
