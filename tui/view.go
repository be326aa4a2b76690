// Package tui provides the transport-controls terminal interface: a progress
// bar over the playing source with pause, seek and rate keyboard bindings.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fujifruity/videoplayer/icon"
	"github.com/fujifruity/videoplayer/style"
	"github.com/fujifruity/videoplayer/util"
	"github.com/muesli/reflow/wrap"
)

var paddingStyle = lipgloss.NewStyle().Padding(1, 2)

func (m *transportModel) View() string {
	p := m.player

	position := p.Position()
	duration := p.Duration()

	percent := 0.0
	if duration > 0 {
		percent = float64(position) / float64(duration)
	}

	stateIcon := icon.Get(icon.Pause)
	if p.IsPlaying() {
		stateIcon = icon.Get(icon.Play)
	}

	timeline := fmt.Sprintf(
		"%s %s / %s",
		stateIcon,
		util.FormatDuration(position),
		util.FormatDuration(duration),
	)
	if rate := p.Rate(); rate > 0 && rate != 1.0 {
		timeline += style.New().Foreground(style.FaintColor).Render(fmt.Sprintf("  x%.2g", rate))
	}

	lines := []string{
		style.Title("Now Playing"),
		"",
		wrap.String(style.New().Foreground(style.AccentColor).Render(p.SourceID()), m.width),
		"",
		m.progressC.ViewAs(percent),
		timeline,
	}

	return m.renderLines(lines)
}

func (m *transportModel) renderLines(lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if m.height > h {
		l += strings.Repeat("\n", m.height-h)
	}
	l += m.helpC.View(m.keymap)

	return paddingStyle.Render(l)
}
