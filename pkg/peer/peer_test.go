package peer

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/philipparndt/stlmesh/pkg/geometry"
	"github.com/philipparndt/stlmesh/pkg/mesh"
	"github.com/philipparndt/stlmesh/pkg/shape"
	"github.com/philipparndt/stlmesh/pkg/stl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, opts ...HandlerOption) string {
	t.Helper()
	srv := httptest.NewServer(NewHandler(opts...))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestSendCube(t *testing.T) {
	url := startServer(t, WithStrategy(mesh.Parallel{Workers: 2}))
	cube := shape.Box(geometry.Vertex3D{}, geometry.NewVertex3D(2, 2, 2), "cube")

	result, err := Send(testContext(t), url, cube)
	require.NoError(t, err)

	assert.Equal(t, "cube box", result.Header)
	assert.Equal(t, 12, result.Facets)
	assert.InDelta(t, 24, result.Area, 1e-4)
	assert.InDelta(t, 8, result.Volume, 1e-4)
	require.NotNil(t, result.VolumeCentroid)
	for _, c := range result.VolumeCentroid {
		assert.InDelta(t, 1, c, 1e-5)
	}
}

func TestSendEmptyDocument(t *testing.T) {
	url := startServer(t)

	result, err := Send(testContext(t), url, stl.New("empty", ""))
	require.NoError(t, err)

	assert.Zero(t, result.Facets)
	assert.Zero(t, result.Area)
	assert.Nil(t, result.VertexCentroid)
	assert.True(t, result.VolumeCentroid.Vertex().IsNaN())
}

func TestSendRejectedByCapacity(t *testing.T) {
	url := startServer(t, WithDecodeOptions(stl.WithMaxAllocBytes(100)))
	cube := shape.Box(geometry.Vertex3D{}, geometry.NewVertex3D(1, 1, 1), "cube")

	result, err := Send(testContext(t), url, cube)
	require.ErrorIs(t, err, ErrRemote)
	assert.Contains(t, result.Error, "limit is 100")
}

func TestHandlerRejectsMalformedMessages(t *testing.T) {
	url := startServer(t)
	conn, _, err := websocket.DefaultDialer.DialContext(testContext(t), url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	var result Result
	require.NoError(t, conn.ReadJSON(&result))
	assert.Contains(t, result.Error, "expected a binary message")

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, make([]byte, 10)))
	result = Result{}
	require.NoError(t, conn.ReadJSON(&result))
	assert.Contains(t, result.Error, "format error")

	// The connection stays usable after an error
	var buf strings.Builder
	require.NoError(t, stl.Encode(&buf, shape.Box(geometry.Vertex3D{}, geometry.NewVertex3D(1, 1, 1), ""), stl.Binary))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte(buf.String())))
	result = Result{}
	require.NoError(t, conn.ReadJSON(&result))
	assert.Empty(t, result.Error)
	assert.Equal(t, 12, result.Facets)
}

func TestSendUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := Send(ctx, "ws://127.0.0.1:1/", stl.New("", ""))
	assert.Error(t, err)
}
