package model

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aicat/aicat-tui/style"
)

// HeaderModel renders the one-line header above the conversation:
//
//	AICat dev · dark · 12 messages · copied to clipboard
//
// It is purely presentational and driven by setters.
type HeaderModel struct {
	version  string
	theme    string
	messages int
	note     string
	width    int
}

// NewHeader returns a header for the given build version.
func NewHeader(version string) HeaderModel {
	if version == "" {
		version = "dev"
	}
	return HeaderModel{version: version, theme: style.CurrentThemeName}
}

// SetTheme sets the theme name shown in the header.
func (m *HeaderModel) SetTheme(name string) { m.theme = name }

// SetMessageCount sets the number of messages in view.
func (m *HeaderModel) SetMessageCount(n int) { m.messages = n }

// SetNote sets a short transient note; empty clears it.
func (m *HeaderModel) SetNote(s string) { m.note = s }

// SetWidth sets the available width.
func (m *HeaderModel) SetWidth(w int) { m.width = w }

// View renders the header line.
func (m HeaderModel) View() string {
	sep := style.Faint.Render(" · ")
	line := style.BannerTitle.Render("AICat "+m.version) +
		sep + style.BannerDetail.Render(m.theme) +
		sep + style.BannerDetail.Render(fmt.Sprintf("%d messages", m.messages))
	if m.note != "" {
		line += sep + lipgloss.NewStyle().Foreground(style.Success).Render(m.note)
	}
	if m.width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.width).Render(line)
	}
	return line
}
