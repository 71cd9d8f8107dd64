// Package filewatch provides a pass that shows the content of a text file and follows
// its changes.
package filewatch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pion/logging"
	"github.com/pion/videoproxy/pkg/event"
	"github.com/pion/videoproxy/pkg/paint"
	"golang.org/x/image/font"
)

const lineSpacing = 35

// DefaultPosition is the baseline of the first line, in mirrored coordinates.
var DefaultPosition = image.Pt(300, 30)

// Pass paints the lines of a file. The file is reloaded whenever it is written, created
// or renamed into place, so editors that replace the file are followed too.
type Pass struct {
	path string
	pos  image.Point
	face font.Face
	log  logging.LeveledLogger

	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu    sync.Mutex
	lines []string
}

// New loads path and starts watching it. log may be nil.
func New(path string, pos image.Point, log logging.LeveledLogger) (*Pass, error) {
	face, err := paint.Face(paint.SizeNormal)
	if err != nil {
		return nil, err
	}

	p := &Pass{
		path: filepath.Clean(path),
		pos:  pos,
		face: face,
		log:  log,
		done: make(chan struct{}),
	}
	if err := p.reload(); err != nil {
		return nil, err
	}

	p.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// The directory is watched rather than the file, a watch on the file is lost when an
	// editor replaces it.
	if err := p.watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = p.watcher.Close()
		return nil, err
	}

	p.wg.Add(1)
	go p.watch()
	return p, nil
}

func (p *Pass) watch() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case e, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != p.path || e.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := p.reload(); err != nil && p.log != nil {
				p.log.Debugf("Failed to reload %s: %v", p.path, err)
			}
		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			if p.log != nil {
				p.log.Warnf("Watching %s: %v", p.path, err)
			}
		}
	}
}

func (p *Pass) reload() error {
	b, err := os.ReadFile(p.path)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")

	p.mu.Lock()
	p.lines = lines
	p.mu.Unlock()
	return nil
}

func (p *Pass) Name() string {
	return fmt.Sprintf("File watch (%s)", p.path)
}

func (p *Pass) Render(frame *image.RGBA, _ []event.Event) (*image.RGBA, error) {
	for i, line := range p.Lines() {
		pt := image.Pt(p.pos.X, p.pos.Y+i*lineSpacing)
		paint.OutlinedText(frame, line, pt, p.face, paint.White, paint.Black, true)
	}
	return frame, nil
}

// Lines returns the lines currently shown.
func (p *Pass) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.lines...)
}

// Close stops watching the file.
func (p *Pass) Close() error {
	select {
	case <-p.done:
		return nil
	default:
	}
	close(p.done)
	err := p.watcher.Close()
	p.wg.Wait()
	return err
}
