// Package vdom provides the virtual DOM used by Imago components.
//
// Components build a tree of VNodes with element constructors and
// attribute/event helpers:
//
//	Div(Class("uploader"),
//	    Button(OnClick(open), Text("Upload image")),
//	    Input(Type("file"), Accept(".jpg,.png"), OnFileSelect(handle)),
//	)
//
// Diff compares two trees and produces the patch list the live runtime
// ships to the thin client.
package vdom
