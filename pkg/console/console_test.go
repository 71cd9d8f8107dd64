package console

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func waitLine(t *testing.T, c LineReader) string {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if line, ok := c.TryLine(); ok {
			return line
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("timed out waiting for a line")
	return ""
}

func TestConsoleLines(t *testing.T) {
	c := New(strings.NewReader("hello\n/clear\n5\n"), 8, nil)
	defer c.Close()

	assert.Equal(t, "hello", waitLine(t, c))
	assert.Equal(t, "/clear", waitLine(t, c))
	assert.Equal(t, "5", waitLine(t, c))
}

func TestConsoleTryLineDoesNotBlock(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	c := New(r, 1, nil)
	defer c.Close()

	start := time.Now()
	_, ok := c.TryLine()
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	go w.Write([]byte("late\n"))
	assert.Equal(t, "late", waitLine(t, c))
}

func TestConsoleLineGoesToOneReader(t *testing.T) {
	c := New(strings.NewReader("only\n"), 1, nil)
	defer c.Close()

	assert.Equal(t, "only", waitLine(t, c))
	time.Sleep(10 * time.Millisecond)
	_, ok := c.TryLine()
	assert.False(t, ok)
}
