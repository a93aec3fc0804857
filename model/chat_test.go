package model

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/render"
)

func newTestChat() ChatModel {
	return NewChat(70, 40, render.Painter{Profile: termenv.Ascii})
}

func TestChatEmptyState(t *testing.T) {
	c := newTestChat()
	if !strings.Contains(c.View(), "No messages yet") {
		t.Errorf("empty chat should show a hint:\n%s", c.View())
	}
}

func TestChatAppendRendersBubbles(t *testing.T) {
	c := newTestChat()
	c.Append(
		chat.NewMessage(chat.RoleUser, "hello assistant", "c"),
		chat.NewMessage(chat.RoleAssistant, "hello human", "c"),
	)
	out := c.View()
	if !strings.Contains(out, "hello assistant") || !strings.Contains(out, "hello human") {
		t.Errorf("messages missing from view:\n%s", out)
	}
	if len(c.Messages()) != 2 {
		t.Errorf("Messages() = %d, want 2", len(c.Messages()))
	}
	if len(c.cache) != 2 {
		t.Errorf("cache holds %d bubbles, want 2", len(c.cache))
	}
}

func TestChatRepaintsOnResize(t *testing.T) {
	c := newTestChat()
	m := chat.NewMessage(chat.RoleAssistant, "resize me", "")
	c.Append(m)
	before := c.cache[m.ID]
	c.SetSize(50, 40)
	after := c.cache[m.ID]
	if before.width == after.width {
		t.Errorf("bubble not repainted at new width: %d", after.width)
	}
}

func TestChatPendingAndError(t *testing.T) {
	c := newTestChat()
	c.Append(chat.NewMessage(chat.RoleUser, "ping", ""))

	if cmd := c.StartPending(); cmd == nil {
		t.Fatal("StartPending returned no tick")
	}
	if !c.Pending() {
		t.Fatal("pending indicator not running")
	}
	if !strings.Contains(c.View(), "·") {
		t.Errorf("pending dots missing:\n%s", c.View())
	}

	retried := false
	c.ShowError("Request timed out", func() { retried = true }, nil)
	if c.Pending() {
		t.Error("error banner should stop the pending indicator")
	}
	if c.Error() != "Request timed out" {
		t.Errorf("Error() = %q", c.Error())
	}
	if !strings.Contains(c.View(), "Request timed out") {
		t.Errorf("banner missing:\n%s", c.View())
	}

	c, cmd := c.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !retried {
		t.Error("ctrl+r did not reach the retry callback")
	}
	if _, ok := cmd().(msg.RetryRequested); !ok {
		t.Error("expected RetryRequested")
	}

	c.ClearError()
	if c.Error() != "" || strings.Contains(c.View(), "Request timed out") {
		t.Error("ClearError left the banner up")
	}
}

func TestChatLastSelectable(t *testing.T) {
	c := newTestChat()
	if _, ok := c.LastSelectable(); ok {
		t.Fatal("empty chat has nothing selectable")
	}
	code := chat.NewMessage(chat.RoleAssistant, "```go\nx := 1\n```", "")
	c.Append(code, chat.NewMessage(chat.RoleAssistant, "plain", ""))
	got, ok := c.LastSelectable()
	if !ok || got.ID != code.ID {
		t.Errorf("LastSelectable() = %v, %v", got.ID, ok)
	}
}

func TestChatReset(t *testing.T) {
	c := newTestChat()
	c.Append(chat.NewMessage(chat.RoleUser, "x", ""))
	c.ShowError("e", nil, nil)
	c.Reset()
	if len(c.Messages()) != 0 || c.Error() != "" || c.Pending() {
		t.Error("Reset left state behind")
	}
}

func TestChatPendingTickKeepsScrollPosition(t *testing.T) {
	c := NewChat(70, 10, render.Painter{Profile: termenv.Ascii})
	for i := 0; i < 30; i++ {
		c.Append(chat.NewMessage(chat.RoleAssistant, fmt.Sprintf("message %d", i), ""))
	}
	c.StartPending()
	if !c.vp.AtBottom() {
		t.Fatal("new content should scroll to the bottom")
	}

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	offset := c.vp.YOffset
	if c.vp.AtBottom() {
		t.Fatal("pgup did not scroll")
	}

	c, cmd := c.Update(msg.PendingTick{ID: c.pending.id, Time: time.Now().Add(time.Second)})
	if cmd == nil {
		t.Fatal("tick should keep the indicator running")
	}
	if c.vp.YOffset != offset {
		t.Errorf("tick moved the view: offset %d, want %d", c.vp.YOffset, offset)
	}

	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	c, _ = c.Update(tea.KeyMsg{Type: tea.KeyPgDown})
	c, _ = c.Update(msg.PendingTick{ID: c.pending.id, Time: time.Now().Add(2 * time.Second)})
	if !c.vp.AtBottom() {
		t.Error("view at the bottom should stay there across ticks")
	}
}
