package live

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/imago-ui/imago/pkg/imagebutton"
	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/vdom"
)

// fakeConn is an in-memory Transport for driving sessions in tests.
type fakeConn struct {
	in        chan clientFrame
	out       chan serverFrame
	done      chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:   make(chan clientFrame, 8),
		out:  make(chan serverFrame, 64),
		done: make(chan struct{}),
	}
}

func (c *fakeConn) ReadJSON(v any) error {
	select {
	case f := <-c.in:
		*(v.(*clientFrame)) = f
		return nil
	case <-c.done:
		return errors.New("fake conn closed")
	}
}

func (c *fakeConn) WriteJSON(v any) error {
	select {
	case <-c.done:
		return errors.New("fake conn closed")
	case c.out <- v.(serverFrame):
		return nil
	}
}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// nextFrame waits for the next frame of the given type, discarding
// frames of other types.
func nextFrame(t *testing.T, c *fakeConn, frameType string) serverFrame {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case f := <-c.out:
			if f.Type == frameType {
				return f
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q frame", frameType)
		}
	}
}

func patchesContain(patches []vdom.Patch, substr string) bool {
	for _, p := range patches {
		if strings.Contains(p.Value, substr) || strings.Contains(p.HTML, substr) {
			return true
		}
	}
	return false
}

func counterMount() RenderFunc {
	count := reactive.NewSignal(0)
	return func() *vdom.VNode {
		return vdom.Button(
			vdom.Class("counter"),
			vdom.OnClick(func(reactive.MouseEvent) {
				count.Update(func(n int) int { return n + 1 })
			}),
			vdom.Textf("count: %d", count.Get()),
		)
	}
}

func startSession(t *testing.T, mount MountFunc) (*Session, *fakeConn, context.CancelFunc) {
	t.Helper()
	conn := newFakeConn()
	session, err := NewSession(conn, mount)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go session.Run(ctx)

	t.Cleanup(func() {
		cancel()
		session.Close()
	})
	return session, conn, cancel
}

func TestSession_InitialHTML(t *testing.T) {
	conn := newFakeConn()
	session, err := NewSession(conn, counterMount)
	if err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	defer session.Close()

	html := session.HTML()
	if !strings.Contains(html, "count: 0") {
		t.Errorf("initial HTML missing content: %s", html)
	}
	if !strings.Contains(html, `data-hid="h1"`) {
		t.Errorf("initial HTML missing hydration IDs: %s", html)
	}
	if session.ID() == "" {
		t.Error("expected non-empty session ID")
	}
}

func TestSession_EventProducesPatches(t *testing.T) {
	_, conn, _ := startSession(t, counterMount)

	conn.in <- clientFrame{Type: frameEvent, HID: "h1", Event: "click"}

	f := nextFrame(t, conn, framePatches)
	if f.Seq != 1 {
		t.Errorf("seq = %d, want 1", f.Seq)
	}
	if !patchesContain(f.Patches, "count: 1") {
		t.Errorf("patches missing updated text: %+v", f.Patches)
	}
}

func TestSession_SequenceIncrements(t *testing.T) {
	_, conn, _ := startSession(t, counterMount)

	conn.in <- clientFrame{Type: frameEvent, HID: "h1", Event: "click"}
	first := nextFrame(t, conn, framePatches)

	conn.in <- clientFrame{Type: frameEvent, HID: "h1", Event: "click"}
	second := nextFrame(t, conn, framePatches)

	if second.Seq != first.Seq+1 {
		t.Errorf("seq did not increment: %d then %d", first.Seq, second.Seq)
	}
}

func TestSession_AsyncSignalWriteFlushes(t *testing.T) {
	var text *reactive.StringSignal

	mount := func() RenderFunc {
		text = reactive.NewStringSignal("before")
		return func() *vdom.VNode {
			return vdom.Div(vdom.Text(text.Get()))
		}
	}

	_, conn, _ := startSession(t, mount)

	// A write from outside any event handler must still reach the
	// client, via the owner wake.
	go text.Set("after")

	f := nextFrame(t, conn, framePatches)
	if !patchesContain(f.Patches, "after") {
		t.Errorf("patches missing async update: %+v", f.Patches)
	}
}

func TestSession_PingPong(t *testing.T) {
	_, conn, _ := startSession(t, counterMount)

	conn.in <- clientFrame{Type: framePing}
	nextFrame(t, conn, framePong)
}

func TestSession_SendsInitialHTMLFrame(t *testing.T) {
	session, conn, _ := startSession(t, counterMount)

	f := nextFrame(t, conn, frameHTML)
	if f.HTML != session.HTML() {
		t.Error("first frame should carry the initial markup")
	}
}

func TestSession_UnknownHandler(t *testing.T) {
	_, conn, _ := startSession(t, counterMount)

	conn.in <- clientFrame{Type: frameEvent, HID: "h99", Event: "click"}

	f := nextFrame(t, conn, frameError)
	if f.Message == "" {
		t.Error("expected error message")
	}
}

func TestSession_HandlerPanicRecovered(t *testing.T) {
	mount := func() RenderFunc {
		return func() *vdom.VNode {
			return vdom.Button(
				vdom.OnClick(func(reactive.MouseEvent) { panic("boom") }),
				vdom.Text("danger"),
			)
		}
	}

	_, conn, _ := startSession(t, mount)

	conn.in <- clientFrame{Type: frameEvent, HID: "h1", Event: "click"}

	// The session must survive the panic.
	conn.in <- clientFrame{Type: framePing}
	nextFrame(t, conn, framePong)
}

func TestSession_ClientCloseDisposesOwner(t *testing.T) {
	session, conn, _ := startSession(t, counterMount)

	conn.in <- clientFrame{Type: frameClose}

	deadline := time.Now().Add(2 * time.Second)
	for !session.closed.Load() {
		if time.Now().After(deadline) {
			t.Fatal("session never closed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSession_FileSelectDrivesImageButton(t *testing.T) {
	mount := func() RenderFunc {
		btn := imagebutton.New(imagebutton.Config{Label: "Upload"})
		return btn.Render
	}

	session, conn, _ := startSession(t, mount)

	hid := pickerHID(t, session.HTML())
	sendFile(conn, hid, "notes.txt", []byte("hello"))

	f := nextFrame(t, conn, framePatches)
	if !patchesContain(f.Patches, "Bad file type") {
		t.Errorf("expected validation error in patches: %+v", f.Patches)
	}
}

func TestSession_ErrorPatchesApplyToClientDOM(t *testing.T) {
	mount := func() RenderFunc {
		btn := imagebutton.New(imagebutton.Config{Label: "Upload", MaxFileSize: 4})
		return btn.Render
	}

	session, conn, _ := startSession(t, mount)
	hid := pickerHID(t, session.HTML())

	// Idle to error: the label text gives way to icon+text, so the
	// error subtree must arrive as one replacement carrying both.
	sendFile(conn, hid, "notes.txt", []byte("hi"))
	f := nextFrame(t, conn, framePatches)
	assertPatchTargets(t, f.Patches)
	assertSameReplacement(t, f.Patches, "Bad file type", "imago-icon-error")

	// A superseding error rewrites text next to the icon; a bare text
	// patch on the containing span would drop the icon.
	sendFile(conn, hid, "big.png", []byte("12345678"))
	f = nextFrame(t, conn, framePatches)
	assertPatchTargets(t, f.Patches)
	assertSameReplacement(t, f.Patches, "Too big", "imago-icon-error")
}

// pickerHID extracts the hidden file input's HID from rendered markup.
func pickerHID(t *testing.T, html string) string {
	t.Helper()
	idx := strings.Index(html, "imago-picker")
	if idx < 0 {
		t.Fatalf("no picker in HTML: %s", html)
	}
	hidIdx := strings.Index(html[idx:], `data-hid="`)
	if hidIdx < 0 {
		t.Fatalf("picker has no hid: %s", html)
	}
	rest := html[idx+hidIdx+len(`data-hid="`):]
	return rest[:strings.Index(rest, `"`)]
}

func sendFile(conn *fakeConn, hid, name string, data []byte) {
	payload, _ := json.Marshal(fileSelectPayload{Files: []filePayload{{
		Name: name,
		Size: int64(len(data)),
		Data: base64.StdEncoding.EncodeToString(data),
	}}})
	conn.in <- clientFrame{Type: frameEvent, HID: hid, Event: "fileselect", Payload: payload}
}

// assertPatchTargets fails on any patch the browser client could not
// address: inserts need a parent, everything else needs a target HID.
func assertPatchTargets(t *testing.T, patches []vdom.Patch) {
	t.Helper()
	for i, p := range patches {
		if p.Op == vdom.PatchInsertNode {
			if p.ParentID == "" {
				t.Errorf("patch %d: InsertNode without parent: %+v", i, p)
			}
			continue
		}
		if p.HID == "" {
			t.Errorf("patch %d: no target HID: %+v", i, p)
		}
	}
}

// assertSameReplacement requires one patch whose HTML carries both
// substrings, so applying that single patch yields the complete view.
func assertSameReplacement(t *testing.T, patches []vdom.Patch, text, icon string) {
	t.Helper()
	for _, p := range patches {
		if strings.Contains(p.HTML, text) {
			if !strings.Contains(p.HTML, icon) {
				t.Errorf("patch carrying %q lacks %q: %+v", text, icon, p)
			}
			return
		}
	}
	t.Errorf("no patch HTML carries %q: %+v", text, patches)
}
