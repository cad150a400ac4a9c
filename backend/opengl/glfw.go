package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/bobby-rust/rush"
)

// InputAdapter feeds GLFW key and character events into a
// rush.InputState. Character events queue appends; Backspace press and
// repeat queue tail deletions; Escape requests window close (the quit
// path). Everything else is ignored, including Enter: the grid has no
// newline semantics.
//
// The adapter installs its callbacks at construction. Drain the queue
// with Input().Apply once per frame, after glfw.PollEvents.
type InputAdapter struct {
	window *glfw.Window
	input  *rush.InputState
}

// NewInputAdapter creates an adapter bound to window and installs its
// character and key callbacks.
func NewInputAdapter(window *glfw.Window) *InputAdapter {
	a := &InputAdapter{
		window: window,
		input:  rush.NewInputState(),
	}

	window.SetCharCallback(a.charCallback)
	window.SetKeyCallback(a.keyCallback)

	return a
}

// Input returns the edit queue the callbacks fill.
func (a *InputAdapter) Input() *rush.InputState {
	return a.input
}

func (a *InputAdapter) charCallback(w *glfw.Window, char rune) {
	a.input.AddChar(char)
}

func (a *InputAdapter) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	switch key {
	case glfw.KeyBackspace:
		if action == glfw.Press || action == glfw.Repeat {
			a.input.AddBackspace()
		}
	case glfw.KeyEscape:
		if action == glfw.Press {
			w.SetShouldClose(true)
		}
	}
}
