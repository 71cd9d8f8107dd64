// Package console reads lines typed on the terminal without blocking the render loop.
package console

import (
	"bufio"
	"io"
	"sync"

	"github.com/pion/logging"
)

// LineReader hands out complete input lines without blocking.
type LineReader interface {
	// TryLine returns the oldest unread line, if there is one.
	TryLine() (string, bool)
}

// Console reads lines from an io.Reader on its own goroutine. Each line is handed to
// exactly one TryLine caller; when several passes share a Console the first one to ask
// gets the line.
type Console struct {
	lines chan string
	done  chan struct{}
	once  sync.Once
	log   logging.LeveledLogger
}

// New starts reading r. Up to backlog lines are buffered, further lines wait until
// a consumer catches up.
func New(r io.Reader, backlog int, log logging.LeveledLogger) *Console {
	if backlog <= 0 {
		backlog = 1
	}
	c := &Console{
		lines: make(chan string, backlog),
		done:  make(chan struct{}),
		log:   log,
	}
	go c.scan(r)
	return c
}

func (c *Console) scan(r io.Reader) {
	defer close(c.lines)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.done:
			return
		}
	}
	if err := scanner.Err(); err != nil && c.log != nil {
		c.log.Warnf("console input stopped: %v", err)
	}
}

// TryLine implements LineReader.
func (c *Console) TryLine() (string, bool) {
	select {
	case line, ok := <-c.lines:
		return line, ok
	default:
		return "", false
	}
}

// Close stops handing out lines. The reading goroutine exits after its current read
// returns, which for a terminal may be never.
func (c *Console) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}
