package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/style"
)

// BannerKeys are the bindings for the error banner actions.
type BannerKeys struct {
	Retry key.Binding
	Clear key.Binding
}

// DefaultBannerKeys avoids plain letters so typing in the input is never
// taken as an action.
func DefaultBannerKeys() BannerKeys {
	return BannerKeys{
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "ctrl+x"),
			key.WithHelp("esc", "clear"),
		),
	}
}

// ErrorBannerModel shows a failed request's error with retry and clear
// actions. It holds no retry logic; both actions call back into the owner.
type ErrorBannerModel struct {
	message string
	width   int
	keys    BannerKeys

	OnRetry func()
	OnClear func()
}

// NewErrorBanner builds a banner for message. Nil callbacks are allowed.
func NewErrorBanner(message string, onRetry, onClear func()) ErrorBannerModel {
	return ErrorBannerModel{
		message: message,
		width:   80,
		keys:    DefaultBannerKeys(),
		OnRetry: onRetry,
		OnClear: onClear,
	}
}

// Message returns the error text as supplied.
func (m ErrorBannerModel) Message() string {
	return m.message
}

// SetWidth sets the width the banner must fit in.
func (m *ErrorBannerModel) SetWidth(w int) {
	m.width = w
}

// Retry runs the retry callback and reports it to the owner.
func (m ErrorBannerModel) Retry() tea.Cmd {
	if m.OnRetry != nil {
		m.OnRetry()
	}
	return func() tea.Msg { return msg.RetryRequested{} }
}

// Clear runs the clear callback and reports it to the owner.
func (m ErrorBannerModel) Clear() tea.Cmd {
	if m.OnClear != nil {
		m.OnClear()
	}
	return func() tea.Msg { return msg.ClearRequested{} }
}

// Update maps the action keys to Retry and Clear. Other messages pass.
func (m ErrorBannerModel) Update(message tea.Msg) (ErrorBannerModel, tea.Cmd) {
	k, ok := message.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, m.keys.Retry):
		return m, m.Retry()
	case key.Matches(k, m.keys.Clear):
		return m, m.Clear()
	}
	return m, nil
}

// View renders the error bubble followed by the action hints.
//
//	╭──────────────────╮
//	│  Request timeout │  ↻ ctrl+r retry  ✕ esc clear
//	╰──────────────────╯
func (m ErrorBannerModel) View() string {
	actions := lipgloss.JoinHorizontal(lipgloss.Center,
		"  ",
		style.ActionKey.Render("↻ "+m.keys.Retry.Help().Key),
		style.ActionLabel.Render(" "+m.keys.Retry.Help().Desc),
		"  ",
		style.ActionKey.Render("✕ "+m.keys.Clear.Help().Key),
		style.ActionLabel.Render(" "+m.keys.Clear.Help().Desc),
	)

	// 2 margin + 2 border + 4 padding around the text.
	room := m.width - lipgloss.Width(actions) - 8
	if room < 10 {
		room = 10
	}
	text := runewidth.Truncate(strings.Join(strings.Fields(m.message), " "), room, "…")

	bubble := style.ErrorBubble.
		Border(lipgloss.RoundedBorder()).
		Render(text)

	return lipgloss.NewStyle().MarginLeft(2).Render(
		lipgloss.JoinHorizontal(lipgloss.Center, bubble, actions),
	)
}
