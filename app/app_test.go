package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/config"
	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/style"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

type fakeController struct {
	sent    []chat.Message
	retries int
	clears  int
	events  chan tea.Msg
}

func newFakeController() *fakeController {
	return &fakeController{events: make(chan tea.Msg, 1)}
}

func (f *fakeController) Send(m chat.Message)    { f.sent = append(f.sent, m) }
func (f *fakeController) Retry()                 { f.retries++ }
func (f *fakeController) Clear()                 { f.clears++ }
func (f *fakeController) Events() <-chan tea.Msg { return f.events }

func update(t *testing.T, m Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(message)
	nm, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return nm, cmd
}

func typeLine(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func enter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitSendsAndStartsPending(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m = typeLine(t, m, "hello there")

	m, cmd := enter(t, m)
	require.NotNil(t, cmd, "pending indicator should start ticking")
	assert.Equal(t, StatePending, m.State())
	require.Len(t, ctrl.sent, 1)
	assert.Equal(t, "hello there", ctrl.sent[0].Content)
	assert.Equal(t, chat.RoleUser, ctrl.sent[0].Role)
	assert.Equal(t, m.conversationID, ctrl.sent[0].ConversationID)
	assert.True(t, m.chat.Pending())
	assert.Empty(t, m.input.Value())
}

func TestSubmitIgnoredWhilePending(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m, _ = enter(t, typeLine(t, m, "first"))
	m, _ = enter(t, typeLine(t, m, "second"))

	assert.Len(t, ctrl.sent, 1)
	assert.Equal(t, "second", m.input.Value())
}

func TestReplyEndsPending(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m, _ = enter(t, typeLine(t, m, "ping"))

	reply := chat.NewMessage(chat.RoleAssistant, "pong", m.conversationID)
	m, cmd := update(t, m, msg.Reply{Message: reply})

	assert.Equal(t, StateIdle, m.State())
	assert.False(t, m.chat.Pending())
	assert.Len(t, m.chat.Messages(), 2)
	assert.NotNil(t, cmd, "controller events should be listened to again")
	assert.Contains(t, m.View(), "pong")
}

func TestFailureShowsBannerAndRetries(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m, _ = enter(t, typeLine(t, m, "ping"))

	m, _ = update(t, m, msg.Failure{Request: ctrl.sent[0], Err: assert.AnError})
	assert.Equal(t, StateError, m.State())
	assert.Equal(t, assert.AnError.Error(), m.chat.Error())
	assert.False(t, m.chat.Pending())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, ctrl.retries)
	assert.IsType(t, msg.RetryRequested{}, cmd())

	m, cmd = update(t, m, msg.RetryRequested{})
	assert.NotNil(t, cmd)
	assert.Equal(t, StatePending, m.State())
	assert.Empty(t, m.chat.Error())
	assert.True(t, m.chat.Pending())
}

func TestFailureClearedWithEsc(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m, _ = enter(t, typeLine(t, m, "ping"))
	m, _ = update(t, m, msg.Failure{Request: ctrl.sent[0], Err: assert.AnError})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, ctrl.clears)
	assert.Equal(t, 0, ctrl.retries)
	assert.IsType(t, msg.ClearRequested{}, cmd())

	m, _ = update(t, m, msg.ClearRequested{})
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.chat.Error())
}

func TestBannerKeysIgnoredWithoutError(t *testing.T) {
	ctrl := newFakeController()
	m := New(ctrl)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, 0, ctrl.retries)
	assert.Equal(t, StateIdle, m.State())
}

func TestCopyWritesOSC52(t *testing.T) {
	t.Setenv("TMUX", "")
	var buf bytes.Buffer
	ctrl := newFakeController()
	code := "```go\nfmt.Println(1)\n```"
	m := New(ctrl, WithClipboard(&buf), WithTranscript([]chat.Message{
		chat.NewMessage(chat.RoleAssistant, code, "conv-1"),
	}))
	assert.Equal(t, "conv-1", m.conversationID)

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	copied, ok := cmd().(msg.Copied)
	require.True(t, ok)
	require.NoError(t, copied.Err)
	assert.Equal(t, len(code), copied.Bytes)
	assert.True(t, strings.HasPrefix(buf.String(), "\x1b]52;c;"), "got %q", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("no tty") }

func TestCopyFallsBackToNative(t *testing.T) {
	var got string
	native := func(s string) error { got = s; return nil }
	m := New(newFakeController(),
		WithClipboard(failingWriter{}),
		WithNativeClipboard(native),
		WithTranscript([]chat.Message{chat.NewMessage(chat.RoleAssistant, "```\nls\n```", "")}),
	)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	copied := cmd().(msg.Copied)
	require.NoError(t, copied.Err)
	assert.Equal(t, "```\nls\n```", got)

	m = New(newFakeController(),
		WithClipboard(failingWriter{}),
		WithNativeClipboard(func(string) error { return errors.New("no clipboard") }),
		WithTranscript([]chat.Message{chat.NewMessage(chat.RoleAssistant, "```\nls\n```", "")}),
	)
	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.EqualError(t, cmd().(msg.Copied).Err, "copy to clipboard: no clipboard")
}

func TestCopyWithoutTerminalUsesNative(t *testing.T) {
	var got string
	m := New(newFakeController(),
		WithNativeClipboard(func(s string) error { got = s; return nil }),
		WithTranscript([]chat.Message{chat.NewMessage(chat.RoleAssistant, "```\npwd\n```", "")}),
	)
	m.ttyPath = filepath.Join(t.TempDir(), "missing", "tty")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	copied := cmd().(msg.Copied)
	require.NoError(t, copied.Err)
	assert.Equal(t, "```\npwd\n```", got)
}

func TestWriteOSC52ToDevice(t *testing.T) {
	t.Setenv("TMUX", "")
	path := filepath.Join(t.TempDir(), "tty")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, writeOSC52(nil, path, "hi"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\x1b]52;c;"), "got %q", data)
}

func TestCopyNothingSelectable(t *testing.T) {
	var buf bytes.Buffer
	m := New(newFakeController(), WithClipboard(&buf))
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	require.NotNil(t, cmd)
	copied := cmd().(msg.Copied)
	assert.ErrorIs(t, copied.Err, errNothingToCopy)
	assert.Zero(t, buf.Len())

	m, _ = update(t, m, copied)
	assert.Contains(t, m.View(), "nothing to copy")
}

func TestThemeCommand(t *testing.T) {
	t.Cleanup(func() { style.SetTheme("dark") })
	m := New(newFakeController())

	m, _ = enter(t, typeLine(t, m, "/theme light"))
	assert.Equal(t, "light", style.CurrentThemeName)
	assert.Contains(t, m.View(), "light")

	m, _ = enter(t, typeLine(t, m, "/theme nope"))
	assert.Equal(t, "light", style.CurrentThemeName)
	assert.Contains(t, m.View(), "unknown theme nope")
}

func TestThemeCommandPersists(t *testing.T) {
	t.Cleanup(func() { style.SetTheme("dark") })
	dir := t.TempDir()
	saved := config.Default()
	saved.CodeTheme = "dracula"
	require.NoError(t, config.Save(dir, saved))

	m := New(newFakeController(), WithProfileDir(dir))
	m, _ = enter(t, typeLine(t, m, "/theme catppuccin"))
	assert.NotContains(t, m.View(), "theme not saved")

	cfg := config.Load(dir)
	assert.Equal(t, "catppuccin", cfg.Theme)
	assert.Equal(t, "dracula", cfg.CodeTheme, "other settings survive")
}

func TestClearCommand(t *testing.T) {
	m := New(newFakeController(), WithTranscript([]chat.Message{
		chat.NewMessage(chat.RoleUser, "one", ""),
		chat.NewMessage(chat.RoleAssistant, "two", ""),
	}))
	m, _ = enter(t, typeLine(t, m, "/clear"))
	assert.Empty(t, m.chat.Messages())
	assert.Equal(t, StateIdle, m.State())
}

func TestFailCommandNeedsFailer(t *testing.T) {
	m := New(newFakeController())
	m, _ = enter(t, typeLine(t, m, "/fail"))
	assert.Contains(t, m.View(), "cannot simulate")

	echo := NewEchoController(0)
	m = New(echo)
	m, _ = enter(t, typeLine(t, m, "/fail gateway down"))
	m, _ = enter(t, typeLine(t, m, "hi"))
	got := <-echo.Events()
	failure, ok := got.(msg.Failure)
	require.True(t, ok, "got %T", got)
	assert.EqualError(t, failure.Err, "gateway down")
}

func TestQuitNeedsConfirmation(t *testing.T) {
	m := New(newFakeController())
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Press Ctrl+C again")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuitCancelledByOtherKey(t *testing.T) {
	m := New(newFakeController())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	assert.NotContains(t, m.View(), "Press Ctrl+C again")
}

func TestWindowResize(t *testing.T) {
	m := New(newFakeController())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 26, m.chatHeight())
	lines := strings.Split(m.View(), "\n")
	assert.Len(t, lines, 30)
}
