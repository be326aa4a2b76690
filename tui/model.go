// Package tui provides the transport-controls terminal interface: a progress
// bar over the playing source with pause, seek and rate keyboard bindings.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fujifruity/videoplayer/key"
	"github.com/fujifruity/videoplayer/log"
	"github.com/fujifruity/videoplayer/media"
	"github.com/fujifruity/videoplayer/player"
	"github.com/fujifruity/videoplayer/util"
	"github.com/spf13/viper"
)

// rateStep is the rate increment applied by the faster/slower bindings.
const rateStep = 0.25

// maxRate caps the adjustable playback rate.
const maxRate = 4.0

// transportModel is the Bubble Tea model of the transport-controls view.
type transportModel struct {
	player *player.Player
	keymap *transportKeymap

	progressC progress.Model
	helpC     help.Model

	seekStep time.Duration
	seekMode media.SeekMode
	tick     time.Duration

	width, height int
}

// tickMsg drives the periodic position refresh.
type tickMsg time.Time

func newModel(p *player.Player) *transportModel {
	seekMode, err := media.ParseSeekMode(viper.GetString(key.PlayerSeekMode))
	if err != nil {
		log.Warnf("transport controls: %v, falling back to %s", err, seekMode)
	}

	tick := time.Duration(viper.GetInt(key.TUITickInterval)) * time.Millisecond
	if tick <= 0 {
		tick = 100 * time.Millisecond
	}

	model := &transportModel{
		player:    p,
		keymap:    newTransportKeymap(),
		progressC: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:     help.New(),
		seekStep:  time.Duration(viper.GetInt(key.PlayerSeekStep)) * time.Millisecond,
		seekMode:  seekMode,
		tick:      tick,
	}

	if w, h, err := util.TerminalSize(); err == nil {
		model.resize(w, h)
	}

	return model
}

func (m *transportModel) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	m.width = width - x
	m.height = height - y
	m.progressC.Width = m.width
	m.helpC.Width = m.width
}

func (m *transportModel) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *transportModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *transportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *transportModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.player

	switch {
	case bubblesKey.Matches(msg, m.keymap.quit, m.keymap.forceQuit):
		return m, tea.Quit

	case bubblesKey.Matches(msg, m.keymap.playPause):
		p.TogglePause()

	case bubblesKey.Matches(msg, m.keymap.seekBack):
		p.SeekTo(p.Position()-m.seekStep, m.seekMode)

	case bubblesKey.Matches(msg, m.keymap.seekForward):
		p.SeekTo(p.Position()+m.seekStep, m.seekMode)

	case bubblesKey.Matches(msg, m.keymap.seekStart):
		p.SeekTo(0, media.SeekNextSync)

	case bubblesKey.Matches(msg, m.keymap.rateUp):
		if p.Rate() > 0 {
			p.SetRate(util.Min(p.Rate()+rateStep, maxRate))
		}

	case bubblesKey.Matches(msg, m.keymap.rateDown):
		if p.Rate() > rateStep {
			p.SetRate(p.Rate() - rateStep)
		}
	}

	return m, nil
}
