// Package uitest provides testing helpers for Imago components.
//
// RenderToString and the Expect* assertions check rendered HTML:
//
//	uitest.ExpectContains(t, btn.Render(), "Upload image")
//
// Driver mounts a component under a root owner so tests can fire events
// against rendered elements and flush reactive effects deterministically:
//
//	d := uitest.Mount(btn.Render)
//	defer d.Dispose()
//	d.FireFileSelect(t, "imago-picker", "cat.png", pngBytes)
//	uitest.ExpectContains(t, d.Render(), "uploading")
package uitest
