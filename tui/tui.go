// Package tui provides the transport-controls terminal interface: a progress
// bar over the playing source with pause, seek and rate keyboard bindings.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fujifruity/videoplayer/history"
	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/player"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	Player *player.Player
}

// Run executes the transport-controls loop over an already playing session,
// blocking until the user quits. The player is closed on exit, after the
// resume position has been saved when configured.
func Run(options *Options) error {
	model := newModel(options.Player)

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()

	saveResume(options.Player)
	options.Player.Close()
	return err
}

// saveResume persists the final playback position for --continue.
func saveResume(p *player.Player) {
	if !viper.GetBool(key.ResumeSave) || p.SourceID() == "" {
		return
	}

	if err := history.Save(p.SourceID(), p.Position(), p.Duration()); err != nil {
		log.Warnf("save resume position: %v", err)
	}
}
