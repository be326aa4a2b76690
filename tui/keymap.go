// Package tui provides the transport-controls terminal interface: a progress
// bar over the playing source with pause, seek and rate keyboard bindings.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// transportKeymap defines the keyboard interactions of the transport controls.
type transportKeymap struct {
	playPause,
	seekBack, seekForward,
	seekStart,
	rateUp, rateDown,
	quit, forceQuit key.Binding
}

func newTransportKeymap() *transportKeymap {
	return &transportKeymap{
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		seekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		seekStart: key.NewBinding(
			key.WithKeys("0", "g"),
			key.WithHelp("0", "restart"),
		),
		rateUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		rateDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

func (k *transportKeymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.seekBack, k.seekForward, k.quit}
}

func (k *transportKeymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.seekBack, k.seekForward, k.seekStart},
		{k.rateUp, k.rateDown, k.quit, k.forceQuit},
	}
}
