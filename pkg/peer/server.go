// Package peer transfers STL documents over a websocket. A client sends
// each document as one binary message holding a binary STL; the server
// decodes and analyzes it and answers with a JSON Result.
package peer

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"go.uber.org/zap"
)

// DefaultReadLimit caps the size of a single incoming message
const DefaultReadLimit int64 = 256 << 20

// Handler accepts websocket connections and analyzes every binary STL
// message it receives.
type Handler struct {
	upgrader   websocket.Upgrader
	decodeOpts []stl.Option
	strategy   mesh.Strategy
	readLimit  int64
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithDecodeOptions sets the options used to decode incoming documents
func WithDecodeOptions(opts ...stl.Option) HandlerOption {
	return func(h *Handler) {
		h.decodeOpts = opts
	}
}

// WithStrategy sets the reduction strategy used for analysis
func WithStrategy(s mesh.Strategy) HandlerOption {
	return func(h *Handler) {
		h.strategy = s
	}
}

// WithReadLimit sets the maximum message size in bytes
func WithReadLimit(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.readLimit = n
		}
	}
}

// NewHandler creates a Handler. Cross-origin requests are accepted.
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		readLimit: DefaultReadLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.readLimit)

	log := Logger().With(zap.String("remote", r.RemoteAddr))
	log.Debug("peer connected")

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		result := h.analyze(messageType, data)
		if result.Error != "" {
			log.Info("rejected document", zap.String("error", result.Error))
		} else {
			log.Debug("analyzed document",
				zap.String("name", result.Name),
				zap.Int("facets", result.Facets))
		}

		if err := conn.WriteJSON(result); err != nil {
			log.Warn("websocket write error", zap.Error(err))
			return
		}
	}
}

func (h *Handler) analyze(messageType int, data []byte) *Result {
	if messageType != websocket.BinaryMessage {
		return &Result{Error: fmt.Sprintf("expected a binary message, got type %d", messageType)}
	}

	s, err := stl.DecodeBytes(data, h.decodeOpts...)
	if err != nil {
		return &Result{Error: err.Error()}
	}

	m := mesh.FromStl(s, mesh.WithStrategy(h.strategy))
	return newResult(s, m.Aggregates())
}
