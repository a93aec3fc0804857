package model

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/render"
	"github.com/aicat/aicat-tui/style"
)

// bubble is a painted message kept until the width or theme changes.
type bubble struct {
	width int
	theme string
	out   string
}

// ChatModel is a scrollable viewport that displays conversation history,
// followed by the pending indicator or the error banner when either is up.
type ChatModel struct {
	vp       viewport.Model
	messages []chat.Message
	painter  render.Painter
	pending  PendingModel
	banner   *ErrorBannerModel
	cache    map[uuid.UUID]bubble
	width    int
	height   int
}

// NewChat constructs a ChatModel sized to width x height.
func NewChat(width, height int, painter render.Painter) ChatModel {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return ChatModel{
		vp:      vp,
		painter: painter,
		pending: NewPending(),
		cache:   map[uuid.UUID]bubble{},
		width:   width,
		height:  height,
	}
}

// Append adds a message and scrolls to the bottom.
func (m *ChatModel) Append(msgs ...chat.Message) {
	m.messages = append(m.messages, msgs...)
	m.refresh()
}

// Messages returns the messages in display order.
func (m ChatModel) Messages() []chat.Message {
	return m.messages
}

// Reset drops every message and any pending or error state.
func (m *ChatModel) Reset() {
	m.messages = nil
	m.cache = map[uuid.UUID]bubble{}
	m.pending.Stop()
	m.banner = nil
	m.refresh()
}

// SetPainter swaps the painter and repaints everything.
func (m *ChatModel) SetPainter(p render.Painter) {
	m.painter = p
	m.cache = map[uuid.UUID]bubble{}
	m.refresh()
}

// SetSize resizes the underlying viewport.
func (m *ChatModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width
	m.vp.Height = height
	if m.banner != nil {
		m.banner.SetWidth(width)
	}
	m.refresh()
}

// StartPending shows the typing indicator and returns its first tick.
func (m *ChatModel) StartPending() tea.Cmd {
	cmd := m.pending.Start(time.Now())
	m.refresh()
	return cmd
}

// StopPending removes the typing indicator.
func (m *ChatModel) StopPending() {
	m.pending.Stop()
	m.refresh()
}

// Pending reports whether the typing indicator is shown.
func (m ChatModel) Pending() bool {
	return m.pending.Running()
}

// ShowError replaces the pending indicator with an error banner.
func (m *ChatModel) ShowError(message string, onRetry, onClear func()) {
	m.pending.Stop()
	b := NewErrorBanner(message, onRetry, onClear)
	b.SetWidth(m.width)
	m.banner = &b
	m.refresh()
}

// ClearError removes the error banner.
func (m *ChatModel) ClearError() {
	m.banner = nil
	m.refresh()
}

// Error returns the banner message, or "" when no banner is shown.
func (m ChatModel) Error() string {
	if m.banner == nil {
		return ""
	}
	return m.banner.Message()
}

// LastSelectable returns the newest message whose bubble allows selecting
// and copying its text.
func (m ChatModel) LastSelectable() (chat.Message, bool) {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if render.Decide(m.messages[i], m.width).Selectable {
			return m.messages[i], true
		}
	}
	return chat.Message{}, false
}

// Init satisfies tea.Model.
func (m ChatModel) Init() tea.Cmd {
	return nil
}

// Update routes pending ticks to the indicator, action keys to the error
// banner, and everything else to the viewport.
func (m ChatModel) Update(message tea.Msg) (ChatModel, tea.Cmd) {
	switch v := message.(type) {
	case msg.PendingTick:
		var cmd tea.Cmd
		m.pending, cmd = m.pending.Update(v)
		if cmd != nil {
			m.repaint()
		}
		return m, cmd
	case tea.KeyMsg:
		if m.banner != nil {
			b, cmd := m.banner.Update(v)
			m.banner = &b
			if cmd != nil {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(message)
	return m, cmd
}

// View returns the rendered viewport content.
func (m ChatModel) View() string {
	return m.vp.View()
}

// refresh re-renders the conversation into the viewport and scrolls to the
// bottom.
func (m *ChatModel) refresh() {
	m.vp.SetContent(m.renderAll())
	m.vp.GotoBottom()
}

// repaint re-renders in place. It follows the bottom only when the view was
// already there, so scrolling back survives animation frames.
func (m *ChatModel) repaint() {
	follow := m.vp.AtBottom()
	m.vp.SetContent(m.renderAll())
	if follow {
		m.vp.GotoBottom()
	}
}

// renderAll builds the full string of all rendered messages.
func (m *ChatModel) renderAll() string {
	var parts []string
	if len(m.messages) == 0 {
		parts = append(parts, style.Faint.Render("  No messages yet. Type below to get started."))
	}
	for _, cm := range m.messages {
		parts = append(parts, m.paint(cm))
	}
	if m.pending.Running() {
		parts = append(parts, m.pending.View())
	}
	if m.banner != nil {
		parts = append(parts, m.banner.View())
	}
	return strings.Join(parts, "\n")
}

// paint returns the cached bubble for cm, repainting on width or theme
// changes.
func (m *ChatModel) paint(cm chat.Message) string {
	if b, ok := m.cache[cm.ID]; ok && b.width == m.width && b.theme == style.CurrentThemeName {
		return b.out
	}
	out := m.painter.Message(cm, m.width)
	if m.cache == nil {
		m.cache = map[uuid.UUID]bubble{}
	}
	m.cache[cm.ID] = bubble{width: m.width, theme: style.CurrentThemeName, out: out}
	return out
}
