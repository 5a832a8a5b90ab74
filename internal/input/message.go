// Package input contains the input coordinator: a single-consumer loop that
// turns normalized terminal events into state mutations and container
// commands.
package input

import tea "github.com/charmbracelet/bubbletea"

// Message is a normalized input event forwarded by the render loop.
type Message interface {
	inputMessage()
}

// ButtonPress is a key press with its modifiers.
type ButtonPress struct {
	Key tea.KeyMsg
}

func (ButtonPress) inputMessage() {}

// MousePress is a qualifying mouse event (left press or wheel motion).
type MousePress struct {
	Mouse tea.MouseMsg
}

func (MousePress) inputMessage() {}
