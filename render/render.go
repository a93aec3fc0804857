// Package render decides how a chat message is presented and paints the
// resulting bubble for the terminal.
//
// Decide is the pure policy: role and content classification in, a Layout
// out. Painter turns a Layout into a string; it is the only part that touches
// glamour and lipgloss.
package render

import (
	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/classify"
	"github.com/aicat/aicat-tui/geometry"
	"github.com/aicat/aicat-tui/markdown"
)

// Presentation is how the bubble body is produced.
type Presentation int

const (
	PresentPlain       Presentation = iota // text as-is, wrapped
	PresentMarkdown                        // glamour, code unhighlighted
	PresentHighlighted                     // glamour with syntax-highlighted code
)

func (p Presentation) String() string {
	switch p {
	case PresentMarkdown:
		return "markdown"
	case PresentHighlighted:
		return "highlighted"
	default:
		return "plain"
	}
}

// Alignment is the horizontal placement of the bubble.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

func (a Alignment) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

// Background is the fill of the bubble.
type Background int

const (
	BackgroundNone Background = iota
	BackgroundUser
	BackgroundAssistant
)

// Insets are cell counts on each side.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Horizontal returns Left+Right.
func (i Insets) Horizontal() int { return i.Left + i.Right }

// BubbleRadius is the corner radius of the vector outline, in points.
const BubbleRadius = 20

// Bubble spacing in terminal cells.
var (
	userMargin      = Insets{Left: 4, Right: 2}
	assistantMargin = Insets{Left: 2, Right: 4}
	bubblePadding   = Insets{Left: 1, Right: 1}
	codePadding     = Insets{Left: 2, Right: 2}
)

// minContentWidth keeps very narrow terminals readable.
const minContentWidth = 10

// borderCells is the width the bubble border adds.
const borderCells = 2

// Layout describes a fully decided bubble.
type Layout struct {
	Message      chat.Message
	Content      string // trimmed text; classified and displayed
	Class        classify.Classification
	Presentation Presentation
	Align        Alignment
	Corners      geometry.CornerSet
	Radius       float64
	Background   Background
	Selectable   bool
	Margin       Insets
	Padding      Insets
	DisplayWidth int
	Languages    []string // languages of fenced code, when highlighted
}

// Decide applies the bubble policy:
//
//	user                      -> right, rounded except top-right,
//	                             markdown when it looks like markdown
//	assistant, fenced code    -> left, all corners, highlighted, selectable
//	assistant, anything else  -> left, rounded except top-left
//
// Roles other than user use the assistant rules. Content is trimmed before
// classification so the class always matches what is shown.
func Decide(m chat.Message, displayWidth int) Layout {
	text := m.Text()
	class := classify.Classify(text)

	s := Layout{
		Message:      m,
		Content:      text,
		Class:        class,
		Radius:       BubbleRadius,
		DisplayWidth: displayWidth,
		Padding:      bubblePadding,
	}

	switch {
	case m.IsUser():
		s.Align = AlignRight
		s.Margin = userMargin
		s.Corners = geometry.AllCorners.Without(geometry.TopRight)
		s.Background = BackgroundUser
		s.Presentation = presentationFor(class)

	case class == classify.MarkdownWithCode:
		s.Align = AlignLeft
		s.Margin = assistantMargin
		s.Padding = codePadding
		s.Corners = geometry.AllCorners
		s.Background = BackgroundNone
		s.Presentation = PresentHighlighted
		s.Selectable = true
		s.Languages = markdown.Languages(text)

	default:
		s.Align = AlignLeft
		s.Margin = assistantMargin
		s.Corners = geometry.AllCorners.Without(geometry.TopLeft)
		s.Background = BackgroundAssistant
		s.Presentation = presentationFor(class)
	}
	return s
}

func presentationFor(c classify.Classification) Presentation {
	if c.IsMarkdown() {
		return PresentMarkdown
	}
	return PresentPlain
}

// ContentWidth is the width available to the body text inside the bubble.
func (s Layout) ContentWidth() int {
	w := s.DisplayWidth - s.Margin.Horizontal() - s.Padding.Horizontal() - borderCells
	if w < minContentWidth {
		return minContentWidth
	}
	return w
}

// Outline returns the vector outline of the bubble laid out in rect.
func (s Layout) Outline(rect geometry.Rect) geometry.Path {
	return geometry.RoundedPath(rect, s.Radius, s.Corners)
}
