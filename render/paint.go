package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/markdown"
	"github.com/aicat/aicat-tui/style"
)

// Painter draws Layouts as terminal bubbles.
type Painter struct {
	// MarkdownStyle is the glamour style; empty uses the active theme's.
	MarkdownStyle string
	// CodeTheme is the chroma style for highlighted code.
	CodeTheme string
	Profile   termenv.Profile
}

// NewPainter returns a Painter using the active theme and the default
// renderer's color profile.
func NewPainter(codeTheme string) Painter {
	return Painter{
		CodeTheme: codeTheme,
		Profile:   lipgloss.ColorProfile(),
	}
}

// Message decides and paints m in one step.
func (p Painter) Message(m chat.Message, displayWidth int) string {
	return p.Paint(Decide(m, displayWidth))
}

// Paint renders the bubble described by s, placed within s.DisplayWidth.
func (p Painter) Paint(s Layout) string {
	body := p.body(s)
	cw := s.ContentWidth()

	bubble := bubbleStyle(s.Background).
		Border(style.BubbleBorder(s.Corners)).
		Padding(s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.Padding.Left)
	if lipgloss.Width(body) > cw {
		bubble = bubble.Width(cw + s.Padding.Horizontal())
	}
	out := bubble.Render(body)

	if s.Message.Role == chat.RoleOther && s.Message.RawRole != "" {
		out = style.RoleLabel.Render(s.Message.RawRole) + "\n" + out
	}

	if s.Align == AlignRight {
		width := s.DisplayWidth - s.Margin.Right
		if width < lipgloss.Width(out) {
			return out
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, out)
	}
	return lipgloss.NewStyle().MarginLeft(s.Margin.Left).Render(out)
}

func (p Painter) body(s Layout) string {
	opts := markdown.Options{
		Width:   s.ContentWidth(),
		Style:   p.MarkdownStyle,
		Profile: p.Profile,
	}
	if opts.Style == "" {
		opts.Style = style.Current().Markdown
	}

	switch s.Presentation {
	case PresentMarkdown:
		return markdown.Render(s.Content, opts)
	case PresentHighlighted:
		opts.Highlight = true
		opts.CodeTheme = p.CodeTheme
		out := markdown.Render(s.Content, opts)
		if len(s.Languages) > 0 {
			out = style.CodeBadge.Render(strings.Join(s.Languages, " · ")) + "\n" + out
		}
		return out
	default:
		return s.Content
	}
}

func bubbleStyle(bg Background) lipgloss.Style {
	switch bg {
	case BackgroundUser:
		return style.UserBubble
	case BackgroundAssistant:
		return style.AssistantBubble
	default:
		return style.CodeBubble
	}
}
