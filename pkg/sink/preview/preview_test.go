package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pion/videoproxy/pkg/paint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redFrame() *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, 64, 32))
	paint.Rect(frame, frame.Bounds(), paint.Red)
	return frame
}

func TestStream(t *testing.T) {
	s, err := New("127.0.0.1:0", WithFrameRate(100))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Publish(redFrame()))

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)

	img, err := jpeg.Decode(bytes.NewReader(msg))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
	r, g, b, _ := img.At(32, 16).RGBA()
	assert.Greater(t, r>>8, uint32(0xe0))
	assert.Less(t, g>>8, uint32(0x20))
	assert.Less(t, b>>8, uint32(0x20))
}

func TestStreamSendsOnlyNewFrames(t *testing.T) {
	s := newSink(WithFrameRate(100))
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()
	defer s.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	// Nothing was published yet.
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)

	conn2, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/stream", nil)
	require.NoError(t, err)
	defer conn2.Close()

	require.NoError(t, s.Publish(redFrame()))
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn2.ReadMessage()
	require.NoError(t, err)

	// The same frame isn't sent twice.
	require.NoError(t, conn2.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = conn2.ReadMessage()
	require.Error(t, err)
}

func TestPage(t *testing.T) {
	s := newSink()
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/stream")

	resp, err = http.Get(srv.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublishDoesNotKeepFrame(t *testing.T) {
	s := newSink()
	frame := redFrame()
	require.NoError(t, s.Publish(frame))
	paint.Rect(frame, frame.Bounds(), paint.Blue)

	var img image.RGBA
	assert.Equal(t, uint64(1), s.frames.Load(&img))
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, img.RGBAAt(0, 0))
}

func TestCloseDisconnectsViewers(t *testing.T) {
	s, err := New("127.0.0.1:0")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr().String()+"/stream", nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the handler a moment to register the viewer.
	time.Sleep(50 * time.Millisecond)
	done := make(chan error)
	go func() { done <- s.Close() }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Close didn't return")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
}
