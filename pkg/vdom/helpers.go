package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return &VNode{Kind: KindText, Text: fmt.Sprintf(format, args...)}
}

// Raw creates a raw HTML node. The content is NOT escaped; never pass
// user-controlled input.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{
		Kind:     KindFragment,
		Children: make([]*VNode, 0, len(children)),
	}

	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}

	return node
}

// Group is an alias for Fragment.
func Group(children ...any) *VNode {
	return Fragment(children...)
}

// If returns node when condition is true, nil otherwise.
// A nil child is skipped during element construction.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns ifTrue when condition is true, ifFalse otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When lazily evaluates fn only when condition is true. Use this when
// building the node would read signals that should stay untracked on
// the false branch.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Unless returns node when condition is false.
func Unless(condition bool, node *VNode) *VNode {
	if !condition {
		return node
	}
	return nil
}

// Case pairs a value with a node for Switch.
type Case[T comparable] struct {
	Value     T
	Node      *VNode
	IsDefault bool
}

// Case_ creates a switch case.
func Case_[T comparable](value T, node *VNode) Case[T] {
	return Case[T]{Value: value, Node: node}
}

// Default creates the fallback case for Switch.
func Default[T comparable](node *VNode) Case[T] {
	return Case[T]{Node: node, IsDefault: true}
}

// Switch returns the node of the first case matching value, or the
// default case's node if none match.
func Switch[T comparable](value T, cases ...Case[T]) *VNode {
	var fallback *VNode
	for _, c := range cases {
		if c.IsDefault {
			fallback = c.Node
			continue
		}
		if c.Value == value {
			return c.Node
		}
	}
	return fallback
}

// Nothing returns an empty fragment, for branches that render nothing.
func Nothing() *VNode {
	return &VNode{Kind: KindFragment}
}

// KeyAttr sets the reconciliation key for a node.
func KeyAttr(key any) Attr {
	return Attr{Key: "key", Value: fmt.Sprint(key)}
}

// Range maps a slice to child nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			nodes = append(nodes, node)
		}
	}
	return nodes
}
