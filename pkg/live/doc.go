// Package live runs server-driven components over WebSocket sessions.
//
// Each connection gets a Session owning one component instance: the
// session renders the component, diffs successive trees, and streams
// patches to the client, while browser events flow back and are
// dispatched to the handlers registered during rendering.
//
//	handler := live.NewHandler(func() live.RenderFunc {
//	    btn := imagebutton.New(imagebutton.Config{Label: "Upload"})
//	    return btn.Render
//	})
//	r.Handle("/live", handler)
//
// Frames are JSON in both directions. Client to server:
//
//	{"type":"event","hid":"h3","event":"click","payload":{}}
//
// Server to client:
//
//	{"type":"patches","seq":7,"patches":[...]}
package live
