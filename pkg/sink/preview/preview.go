// Package preview serves the published frames to browsers as a stream of JPEG images
// over a websocket.
package preview

import (
	"bytes"
	"errors"
	"image"
	"image/jpeg"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pion/logging"
	internallog "github.com/pion/videoproxy/internal/logging"
	"github.com/pion/videoproxy/pkg/io/video"
)

const (
	// DefaultFrameRate is the highest rate frames are sent to a viewer.
	DefaultFrameRate = 15
	// DefaultQuality is the JPEG quality of the stream.
	DefaultQuality = 70

	writeTimeout = 2 * time.Second
)

const page = `<!DOCTYPE html>
<html>
<head><title>videoproxy preview</title></head>
<body style="margin:0;background:#000">
<img id="frame" style="width:100%;transform:scaleX(-1)">
<script>
const img = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/stream");
ws.binaryType = "blob";
ws.onmessage = (e) => {
  const url = URL.createObjectURL(e.data);
  img.onload = () => URL.revokeObjectURL(url);
  img.src = url;
};
</script>
</body>
</html>
`

// Option configures a Sink.
type Option func(*Sink)

// WithFrameRate sets the highest rate frames are sent to a viewer.
func WithFrameRate(fps float32) Option {
	return func(s *Sink) {
		if fps > 0 {
			s.interval = time.Duration(float64(time.Second) / float64(fps))
		}
	}
}

// WithQuality sets the JPEG quality, from 1 to 100.
func WithQuality(q int) Option {
	return func(s *Sink) {
		s.quality = q
	}
}

// WithLogger sets the logger of the sink.
func WithLogger(log logging.LeveledLogger) Option {
	return func(s *Sink) {
		s.log = log
	}
}

// Sink keeps the latest published frame and streams it to every connected viewer. A
// viewer that is slower than the producer skips frames, it never slows Publish down.
type Sink struct {
	frames   *video.FrameBuffer
	interval time.Duration
	quality  int
	log      logging.LeveledLogger
	upgrader websocket.Upgrader

	ln   net.Listener
	srv  *http.Server
	done chan struct{}
	wg   sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New starts serving on addr. The viewer page is at "/" and the stream at "/stream".
func New(addr string, opts ...Option) (*Sink, error) {
	s := newSink(opts...)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s.ln = ln
	s.srv = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("Preview server stopped: %v", err)
		}
	}()
	s.log.Infof("Preview available at http://%s/", ln.Addr())
	return s, nil
}

func newSink(opts ...Option) *Sink {
	s := &Sink{
		frames:   video.NewFrameBuffer(0),
		interval: time.Second / DefaultFrameRate,
		quality:  DefaultQuality,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = internallog.NewLogger("videoproxy/sink")
	}
	return s
}

// Addr returns the address the sink listens on.
func (s *Sink) Addr() net.Addr {
	return s.ln.Addr()
}

// Handler returns the HTTP handler serving the viewer page and the stream.
func (s *Sink) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("/stream", s.stream)
	return mux
}

// Publish implements sink.Sink.
func (s *Sink) Publish(frame *image.RGBA) error {
	s.frames.StoreCopy(frame)
	return nil
}

// Close disconnects all viewers and stops the server.
func (s *Sink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.mu.Unlock()

	var err error
	if s.srv != nil {
		err = s.srv.Close()
	}
	s.wg.Wait()
	return err
}

func (s *Sink) stream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debugf("Failed to upgrade preview connection: %v", err)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()
	defer conn.Close()

	// Viewers never send anything, reading only notices when they go away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	var (
		img     image.RGBA
		lastSeq uint64
		buf     bytes.Buffer
	)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeTimeout))
			return
		case <-gone:
			return
		case <-ticker.C:
		}

		seq := s.frames.Load(&img)
		if seq == 0 || seq == lastSeq {
			continue
		}
		lastSeq = seq

		buf.Reset()
		if err := jpeg.Encode(&buf, &img, &jpeg.Options{Quality: s.quality}); err != nil {
			s.log.Warnf("Failed to encode preview frame: %v", err)
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf.Bytes()); err != nil {
			s.log.Debugf("Preview viewer left: %v", err)
			return
		}
	}
}
