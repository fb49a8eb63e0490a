package live

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests to WebSocket sessions, one component
// instance per connection. Mount it on any router:
//
//	r.Handle("/live", live.NewHandler(mount))
type Handler struct {
	mount    MountFunc
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *Metrics
}

// NewHandler creates a WebSocket handler mounting one component per
// connection.
func NewHandler(mount MountFunc, opts ...Option) *Handler {
	o := applyOptions(opts)

	return &Handler{
		mount: mount,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 << 10,
			WriteBufferSize: 32 << 10,
		},
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// CheckOrigin overrides the upgrader's origin policy. The default
// policy rejects cross-origin requests.
func (h *Handler) CheckOrigin(fn func(r *http.Request) bool) *Handler {
	h.upgrader.CheckOrigin = fn
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		h.logger.Debug("upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	session, err := NewSession(conn, h.mount,
		WithLogger(h.logger),
		WithMetrics(h.metrics))
	if err != nil {
		h.logger.Error("session mount failed", "error", err)
		conn.Close()
		return
	}
	defer session.Close()

	session.Run(r.Context())
}
