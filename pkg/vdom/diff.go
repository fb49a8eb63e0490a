package vdom

import (
	"fmt"
	"reflect"
	"strings"
)

// Diff compares two VNode trees and returns the patches needed to
// transform prev into next. HIDs are carried from prev onto matching
// nodes in next so subsequent diffs stay addressable.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diff(prev, next, "", &patches)
	return patches
}

// diff recursively compares nodes and appends patches. parentHID is the
// HID of the nearest addressable ancestor, used for text patches that
// have no HID of their own.
func diff(prev, next *VNode, parentHID string, patches *[]Patch) {
	if prev == nil && next == nil {
		return
	}

	// Added nodes are handled by the parent via InsertNode.
	if prev == nil {
		return
	}

	if next == nil {
		*patches = append(*patches, Patch{
			Op:  PatchRemoveNode,
			HID: prev.HID,
		})
		return
	}

	if prev.Kind != next.Kind {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  prev.HID,
			Node: next,
		})
		return
	}

	switch prev.Kind {
	case KindText:
		diffText(prev, next, parentHID, patches)
	case KindElement:
		diffElement(prev, next, patches)
	case KindFragment:
		diffChildren(prev, next, parentHID, patches)
	case KindRaw:
		// Raw nodes are not addressable on their own; a content change
		// is caught by the nearest element ancestor, which replaces its
		// whole subtree.
		next.HID = prev.HID
	}
}

func diffText(prev, next *VNode, parentHID string, patches *[]Patch) {
	next.HID = prev.HID

	if prev.Text != next.Text {
		// Text nodes have no HID; the client updates the parent's
		// textContent instead.
		targetHID := prev.HID
		if targetHID == "" {
			targetHID = parentHID
		}
		if targetHID != "" {
			*patches = append(*patches, Patch{
				Op:    PatchSetText,
				HID:   targetHID,
				Value: next.Text,
			})
		}
	}
}

func diffElement(prev, next *VNode, patches *[]Patch) {
	if prev.Tag != next.Tag {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  prev.HID,
			Node: next,
		})
		return
	}

	next.HID = prev.HID

	// Text and raw children have no HID, so some transitions cannot be
	// expressed as patches against the child itself: replacing a text
	// child with an element, removing a text child, or rewriting text
	// next to a sibling (SetText assigns the parent's textContent, which
	// would wipe the sibling). Those escalate to replacing this element
	// wholesale, the nearest addressable target.
	if !childrenPatchable(prev, next) {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			HID:  prev.HID,
			Node: next,
		})
		return
	}

	diffProps(prev, next, patches)
	diffChildren(prev, next, prev.HID, patches)
}

// childrenPatchable reports whether the transition between the two
// elements' child lists can be expressed with addressable patches.
func childrenPatchable(prev, next *VNode) bool {
	sole := len(prev.Children) == 1 && len(next.Children) == 1
	return childTransitionsAddressable(prev.Children, next.Children, sole)
}

// childTransitionsAddressable walks the child lists pairwise. soleChild
// is true when a text child is the parent's only content, the one case
// where SetText on the parent is lossless.
func childTransitionsAddressable(prev, next []*VNode, soleChild bool) bool {
	maxLen := len(prev)
	if len(next) > maxLen {
		maxLen = len(next)
	}

	for i := 0; i < maxLen; i++ {
		var p, n *VNode
		if i < len(prev) {
			p = prev[i]
		}
		if i < len(next) {
			n = next[i]
		}

		switch {
		case p == nil:
			// Insertion addresses the parent, always fine.
		case n == nil:
			if p.HID == "" {
				return false
			}
		case p.Kind != n.Kind:
			if p.HID == "" {
				return false
			}
		case p.Kind == KindText:
			if p.Text != n.Text && !soleChild {
				return false
			}
		case p.Kind == KindRaw:
			if p.Text != n.Text {
				return false
			}
		case p.Kind == KindFragment:
			// Fragment children render inline under the same element,
			// so the sole-child guarantee does not carry through.
			if !childTransitionsAddressable(p.Children, n.Children, false) {
				return false
			}
		}
	}
	return true
}

func diffProps(prev, next *VNode, patches *[]Patch) {
	for key, prevVal := range prev.Props {
		if isEventHandler(key) {
			// Events are rebound by the runtime, not patched.
			continue
		}

		nextVal, exists := next.Props[key]
		if !exists {
			*patches = append(*patches, Patch{
				Op:  PatchRemoveAttr,
				HID: prev.HID,
				Key: key,
			})
		} else if !propsEqual(prevVal, nextVal) {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}

	for key, nextVal := range next.Props {
		if isEventHandler(key) {
			continue
		}
		if _, exists := prev.Props[key]; !exists {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				HID:   prev.HID,
				Key:   key,
				Value: propToString(nextVal),
			})
		}
	}
}

// diffChildren compares children positionally. parentHID is passed so
// text patches can target the parent element.
func diffChildren(prev, next *VNode, parentHID string, patches *[]Patch) {
	prevChildren := prev.Children
	nextChildren := next.Children

	maxLen := len(prevChildren)
	if len(nextChildren) > maxLen {
		maxLen = len(nextChildren)
	}

	for i := 0; i < maxLen; i++ {
		var prevChild, nextChild *VNode

		if i < len(prevChildren) {
			prevChild = prevChildren[i]
		}
		if i < len(nextChildren) {
			nextChild = nextChildren[i]
		}

		if prevChild == nil && nextChild != nil {
			*patches = append(*patches, Patch{
				Op:       PatchInsertNode,
				ParentID: parentHID,
				Index:    i,
				Node:     nextChild,
			})
		} else if prevChild != nil && nextChild == nil {
			*patches = append(*patches, Patch{
				Op:  PatchRemoveNode,
				HID: prevChild.HID,
			})
		} else {
			diff(prevChild, nextChild, parentHID, patches)
		}
	}
}

func isEventHandler(key string) bool {
	return strings.HasPrefix(key, "on")
}

func propsEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func propToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}
