package live

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/imago-ui/imago/pkg/reactive"
	"github.com/imago-ui/imago/pkg/render"
	"github.com/imago-ui/imago/pkg/vdom"
)

// RenderFunc produces the component's current tree.
type RenderFunc func() *vdom.VNode

// MountFunc builds one component instance and returns its render
// function. It runs under the session's owner, so signals, effects,
// and timers created inside are released when the session closes.
type MountFunc func() RenderFunc

// Transport is the wire connection a session speaks JSON frames over.
// *websocket.Conn satisfies it.
type Transport interface {
	ReadJSON(v any) error
	WriteJSON(v any) error
	Close() error
}

// maxEventQueue bounds the per-session event backlog.
const maxEventQueue = 64

// Session drives one component instance over a transport: events in,
// patches out.
type Session struct {
	id        string
	transport Transport
	owner     *reactive.Owner
	renderer  *render.Renderer
	renderFn  RenderFunc

	// tree is the last tree sent to the client; nextTree is the latest
	// product of the render effect. Both are touched only on the event
	// loop after the initial render.
	tree     *vdom.VNode
	nextTree *vdom.VNode
	html     string

	events   chan clientFrame
	renderCh chan struct{}
	done     chan struct{}
	closed   atomic.Bool
	writeMu  sync.Mutex
	seq      atomic.Uint64

	logger  *slog.Logger
	metrics *Metrics
}

type options struct {
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Session or Handler.
type Option func(*options)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics sets the Prometheus instruments. Defaults to
// DefaultMetrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func applyOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.metrics == nil {
		o.metrics = DefaultMetrics()
	}
	return o
}

// NewSession mounts the component and performs the initial render.
// Call Run to start processing frames.
func NewSession(transport Transport, mount MountFunc, opts ...Option) (*Session, error) {
	o := applyOptions(opts)

	id := uuid.NewString()
	s := &Session{
		id:        id,
		transport: transport,
		owner:     reactive.NewOwner(nil),
		renderer:  render.NewRenderer(),
		events:    make(chan clientFrame, maxEventQueue),
		renderCh:  make(chan struct{}, 1),
		done:      make(chan struct{}),
		logger:    o.logger.With("session", id),
		metrics:   o.metrics,
	}

	// Async signal writes schedule effects; the wake nudges the event
	// loop to flush them into patches.
	s.owner.SetWake(func() {
		select {
		case s.renderCh <- struct{}{}:
		default:
		}
	})

	// The render runs inside an effect so every signal read during
	// rendering subscribes it; any later write re-runs the render.
	reactive.WithOwner(s.owner, func() {
		s.renderFn = mount()
		reactive.CreateEffect(func() reactive.Cleanup {
			s.nextTree = s.renderFn()
			return nil
		})
	})

	html, err := s.renderer.RenderToString(s.nextTree)
	if err != nil {
		s.owner.Dispose()
		return nil, err
	}
	s.tree = s.nextTree
	s.html = html

	return s, nil
}

// ID returns the session's identifier.
func (s *Session) ID() string { return s.id }

// HTML returns the initial server-rendered markup for embedding in the
// page that opens the session.
func (s *Session) HTML() string { return s.html }

// Run processes frames until the transport fails, the client closes,
// or ctx is cancelled. It blocks.
func (s *Session) Run(ctx context.Context) {
	s.metrics.sessionOpened()
	defer s.metrics.sessionClosed()
	// The event loop runs handlers and effects on this goroutine, which
	// registers a tracking context; drop it so a long-running server
	// does not accumulate one entry per connection.
	defer reactive.ReleaseGoroutineContext()
	s.logger.Info("session started")

	// The first frame carries the server-rendered markup so clients
	// without an SSR page can mount directly.
	s.send(serverFrame{Type: frameHTML, HTML: s.html})

	go s.readLoop()
	s.eventLoop(ctx)

	s.logger.Info("session closed")
}

// Close tears the session down: transport closed, owner disposed. Safe
// to call more than once.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.transport.Close()
	s.owner.Dispose()
}

func (s *Session) readLoop() {
	for {
		var frame clientFrame
		if err := s.transport.ReadJSON(&frame); err != nil {
			if !s.closed.Load() {
				s.metrics.wsError("read")
				s.logger.Debug("read error", "error", err)
			}
			s.Close()
			return
		}

		switch frame.Type {
		case frameEvent:
			select {
			case s.events <- frame:
			default:
				s.metrics.wsError("queue_full")
				s.sendError("event queue full")
			}

		case framePing:
			s.send(serverFrame{Type: framePong})

		case frameClose:
			s.Close()
			return

		default:
			s.logger.Warn("unknown frame type", "type", frame.Type)
		}
	}
}

func (s *Session) eventLoop(ctx context.Context) {
	for {
		select {
		case frame := <-s.events:
			s.dispatch(frame)

		case <-s.renderCh:
			s.owner.RunPendingEffects()
			s.flush()

		case <-ctx.Done():
			s.Close()
			return

		case <-s.done:
			return
		}
	}
}

// dispatch runs one event handler, flushes effects, and streams the
// resulting patches.
func (s *Session) dispatch(frame clientFrame) {
	start := time.Now()
	result := "ok"

	defer func() {
		if r := recover(); r != nil {
			result = "panic"
			s.logger.Error("handler panic",
				"hid", frame.HID,
				"event", frame.Event,
				"panic", r,
				"stack", string(debug.Stack()))
		}
		s.metrics.eventDispatched(result, time.Since(start).Seconds())
	}()

	handler, ok := s.renderer.Handlers()[frame.HID+"_on"+frame.Event]
	if !ok {
		result = "unknown_handler"
		s.logger.Warn("no handler", "hid", frame.HID, "event", frame.Event)
		s.sendError("unknown handler")
		return
	}

	payload, err := decodeEventPayload(frame.Event, frame.Payload)
	if err != nil {
		result = "bad_payload"
		s.logger.Warn("bad event payload", "event", frame.Event, "error", err)
		s.sendError("bad event payload")
		return
	}

	if !invokeHandler(handler, payload) {
		result = "bad_handler"
		s.logger.Warn("handler signature mismatch", "hid", frame.HID, "event", frame.Event)
		return
	}

	s.owner.RunPendingEffects()
	s.flush()
}

// flush diffs the latest rendered tree against the one the client has
// and sends the patches.
func (s *Session) flush() {
	next := s.nextTree
	if next == s.tree {
		return
	}

	patches := vdom.Diff(s.tree, next)

	// Inserted and replaced subtrees ship as HTML; rendering them also
	// assigns their HIDs and registers their handlers.
	for i := range patches {
		if patches[i].Node == nil {
			continue
		}
		html, err := s.renderer.RenderToString(patches[i].Node)
		if err != nil {
			s.logger.Error("patch render failed", "error", err)
			continue
		}
		patches[i].HTML = html
	}

	// Retained nodes carry their HIDs forward; rebind so the registry
	// points at the closures from the latest render.
	s.renderer.Rebind(next)
	s.tree = next

	if len(patches) == 0 {
		return
	}

	seq := s.seq.Add(1)
	s.send(serverFrame{Type: framePatches, Seq: seq, Patches: patches})
	s.metrics.patchesOut(len(patches))
}

func (s *Session) send(frame serverFrame) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return
	}
	if err := s.transport.WriteJSON(frame); err != nil {
		s.metrics.wsError("write")
		s.logger.Debug("write error", "error", err)
		s.Close()
	}
}

func (s *Session) sendError(msg string) {
	s.send(serverFrame{Type: frameError, Message: msg})
}

// invokeHandler calls a registered handler with the payload shape it
// declares. Returns false when the handler signature is unsupported.
func invokeHandler(handler, payload any) bool {
	switch h := handler.(type) {
	case func():
		h()
	case func(reactive.MouseEvent):
		ev, _ := payload.(reactive.MouseEvent)
		h(ev)
	case func(reactive.InputEvent):
		ev, _ := payload.(reactive.InputEvent)
		h(ev)
	case func(reactive.FileEvent):
		ev, _ := payload.(reactive.FileEvent)
		h(ev)
	default:
		return false
	}
	return true
}
