// Package window provides an input surface backed by a desktop window.
package window

import (
	"fmt"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pion/videoproxy/pkg/input"
)

// Title is the title of the input window.
const Title = "videoproxy-input"

// Window is an input.Surface capturing keyboard and mouse activity. glfw requires every
// call, including New, to be made from the main OS thread.
type Window struct {
	win     *glfw.Window
	emitter *input.Emitter
}

// New opens a window of the given size that forwards activity to e.
func New(width, height int, e *input.Emitter) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("window: glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	win, err := glfw.CreateWindow(width, height, Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("window: create: %w", err)
	}

	w := &Window{win: win, emitter: e}
	win.SetCharCallback(w.charEvent)
	win.SetKeyCallback(w.keyEvent)
	win.SetMouseButtonCallback(w.mouseButtonEvent)
	win.SetCursorPosCallback(w.cursorPosEvent)
	return w, nil
}

// char input
func (w *Window) charEvent(gw *glfw.Window, char rune) {
	w.emitter.Char(char)
}

// physical key, only Escape is of interest: it closes the window.
func (w *Window) keyEvent(gw *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.SetShouldClose(true)
	}
}

func (w *Window) mouseButtonEvent(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	x, y := gw.GetCursorPos()

	var b input.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = input.ButtonLeft
	case glfw.MouseButtonMiddle:
		b = input.ButtonMiddle
	case glfw.MouseButtonRight:
		b = input.ButtonRight
	default:
		w.emitter.Move(int(x), int(y))
		return
	}
	a := input.Press
	if action == glfw.Release {
		a = input.Release
	}
	w.emitter.Button(b, a, int(x), int(y))
}

func (w *Window) cursorPosEvent(gw *glfw.Window, x, y float64) {
	w.emitter.Move(int(x), int(y))
}

// Poll implements input.Surface.
func (w *Window) Poll(timeout time.Duration) bool {
	glfw.WaitEventsTimeout(timeout.Seconds())
	return !w.win.ShouldClose()
}

// Close implements input.Surface.
func (w *Window) Close() error {
	w.win.Destroy()
	glfw.Terminate()
	return nil
}
