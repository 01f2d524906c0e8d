package peer

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"go.uber.org/zap"
)

// ErrRemote wraps failures reported by the receiving peer
var ErrRemote = errors.New("peer: remote error")

// Send encodes s as binary STL, sends it to the websocket at url and
// waits for the analysis result.
func Send(ctx context.Context, url string, s *stl.Stl) (*Result, error) {
	var buf bytes.Buffer
	if err := stl.Encode(&buf, s, stl.Binary); err != nil {
		return nil, fmt.Errorf("failed to encode STL: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	// Unblock pending reads when ctx is cancelled
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	Logger().Debug("sending STL",
		zap.String("url", url),
		zap.Int("facets", s.Len()),
		zap.Int("bytes", buf.Len()))

	if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
		return nil, contextError(ctx, fmt.Errorf("failed to send STL: %w", err))
	}

	var result Result
	if err := conn.ReadJSON(&result); err != nil {
		return nil, contextError(ctx, fmt.Errorf("failed to read result: %w", err))
	}

	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))

	if result.Error != "" {
		return &result, fmt.Errorf("%w: %s", ErrRemote, result.Error)
	}
	return &result, nil
}

func contextError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}
