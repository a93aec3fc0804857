package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors of the active theme. SetTheme reassigns them.
var (
	Primary   lipgloss.TerminalColor
	Secondary lipgloss.TerminalColor
	Success   lipgloss.TerminalColor
	Warning   lipgloss.TerminalColor
	Error     lipgloss.TerminalColor
	Muted     lipgloss.TerminalColor
	Dim       lipgloss.TerminalColor
	Border    lipgloss.TerminalColor
)

// Base styles.
var (
	Bold      lipgloss.Style
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	BannerTitle  lipgloss.Style
	BannerDetail lipgloss.Style

	// Prompt
	PromptChar lipgloss.Style

	// Bubbles
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	CodeBubble      lipgloss.Style
	CodeBadge       lipgloss.Style
	RoleLabel       lipgloss.Style

	// Pending indicator dots
	PendingDot lipgloss.Style

	// Error banner
	ErrorBubble lipgloss.Style
	ActionKey   lipgloss.Style
	ActionLabel lipgloss.Style

	// Hint text (ctrl+y, esc)
	Hint lipgloss.Style
)

func init() {
	apply(darkTheme)
}

func apply(t Theme) {
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border

	Bold = lipgloss.NewStyle().Bold(true)
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	BannerTitle = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	BannerDetail = lipgloss.NewStyle().
		Foreground(Muted)

	PromptChar = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	UserBubble = lipgloss.NewStyle().
		Foreground(t.UserBubbleFg).
		Background(t.UserBubbleBg).
		BorderForeground(t.UserBubbleBg)
	AssistantBubble = lipgloss.NewStyle().
		Foreground(t.AssistantBubbleFg).
		Background(t.AssistantBubbleBg).
		BorderForeground(t.AssistantBubbleBg)
	CodeBubble = lipgloss.NewStyle().
		BorderForeground(t.CodeBorder)
	CodeBadge = lipgloss.NewStyle().
		Foreground(Muted).
		Bold(true)
	RoleLabel = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	PendingDot = lipgloss.NewStyle().
		Foreground(Primary)

	ErrorBubble = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(Error).
		BorderForeground(Error).
		Padding(0, 2)
	ActionKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)
	ActionLabel = lipgloss.NewStyle().
		Foreground(Muted)

	Hint = lipgloss.NewStyle().
		Foreground(Dim)
}

// Box-drawing glyphs for bubble corners.
const (
	RoundTopLeft     = "╭"
	RoundTopRight    = "╮"
	RoundBottomRight = "╯"
	RoundBottomLeft  = "╰"
	SharpTopLeft     = "┌"
	SharpTopRight    = "┐"
	SharpBottomRight = "┘"
	SharpBottomLeft  = "└"
)

// Rule renders a horizontal rule of width cells.
func Rule(width int) string {
	if width <= 0 {
		return ""
	}
	return Hint.Render(strings.Repeat("─", width))
}
