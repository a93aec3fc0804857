package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/classify"
	"github.com/aicat/aicat-tui/config"
	"github.com/aicat/aicat-tui/model"
	"github.com/aicat/aicat-tui/msg"
	"github.com/aicat/aicat-tui/render"
	"github.com/aicat/aicat-tui/style"
)

// Slash commands understood by the input.
var commands = []string{"/clear", "/copy", "/fail", "/theme"}

// failer is implemented by controllers that can be told to fail the next
// request. Used by /fail to bring up the error banner on demand.
type failer interface {
	FailNext(err error)
}

// Model is the root Bubble Tea model.
type Model struct {
	header model.HeaderModel
	chat   model.ChatModel
	input  model.InputModel
	state  State

	ctrl           Controller
	painter        render.Painter
	conversationID string
	keys           KeyMap
	bannerKeys     model.BannerKeys
	confirmQuit    bool

	clipboard  io.Writer // nil writes to ttyPath
	ttyPath    string
	native     func(string) error
	profileDir string
	log        *slog.Logger

	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// WithClipboard sets where OSC 52 sequences are written. By default they go
// straight to the controlling terminal, not through the renderer's stdout.
func WithClipboard(w io.Writer) Option {
	return func(m *Model) { m.clipboard = w }
}

// WithNativeClipboard sets the fallback used when the OSC 52 write fails.
func WithNativeClipboard(fn func(string) error) Option {
	return func(m *Model) { m.native = fn }
}

// WithProfileDir enables saving settings changed at runtime to the
// profile's tui.json.
func WithProfileDir(dir string) Option {
	return func(m *Model) { m.profileDir = dir }
}

// WithVersion sets the version shown in the header.
func WithVersion(v string) Option {
	return func(m *Model) { m.header = model.NewHeader(v) }
}

// WithCodeTheme sets the chroma style used for code bubbles.
func WithCodeTheme(name string) Option {
	return func(m *Model) { m.painter.CodeTheme = name }
}

// WithTranscript preloads messages into the conversation.
func WithTranscript(msgs []chat.Message) Option {
	return func(m *Model) {
		m.chat.Append(msgs...)
		if len(msgs) > 0 && msgs[0].ConversationID != "" {
			m.conversationID = msgs[0].ConversationID
		}
	}
}

// New builds the root model around ctrl.
func New(ctrl Controller, opts ...Option) Model {
	m := Model{
		header:         model.NewHeader(""),
		input:          model.NewInput(),
		state:          StateIdle,
		ctrl:           ctrl,
		painter:        render.NewPainter(""),
		conversationID: uuid.NewString(),
		keys:           DefaultKeyMap(),
		bannerKeys:     model.DefaultBannerKeys(),
		ttyPath:        "/dev/tty",
		native:         clipboard.WriteAll,
		log:            slog.New(slog.NewTextHandler(io.Discard, nil)),
		width:          80,
		height:         24,
	}
	m.chat = model.NewChat(m.width, m.chatHeight(), m.painter)
	for _, opt := range opts {
		opt(&m)
	}
	m.chat.SetPainter(m.painter)
	m.input.SetCommands(commands)
	m.input.Focus()
	m.header.SetMessageCount(len(m.chat.Messages()))
	return m
}

// State returns the current state.
func (m Model) State() State {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.input.Init(), listen(m.ctrl.Events()), tea.WindowSize())
}

func (m Model) Update(rawMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := rawMsg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.header.SetWidth(v.Width)
		m.input.SetWidth(v.Width)
		m.chat.SetSize(v.Width, m.chatHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(v)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(v)
		return m, cmd

	case msg.PendingTick:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(v)
		return m, cmd

	case msg.Reply:
		m.chat.StopPending()
		m.chat.Append(v.Message)
		m.header.SetMessageCount(len(m.chat.Messages()))
		m.state = StateIdle
		class, rules := classify.Explain(v.Message.Text())
		m.log.Debug("reply",
			"id", v.Message.ID,
			"conversation", v.Message.ConversationID,
			"class", class.String(),
			"rules", rules,
		)
		return m, listen(m.ctrl.Events())

	case msg.Failure:
		text := "request failed"
		if v.Err != nil {
			text = v.Err.Error()
		}
		m.log.Warn("request failed", "id", v.Request.ID, "err", v.Err)
		m.chat.ShowError(text, m.ctrl.Retry, m.ctrl.Clear)
		m.state = StateError
		return m, listen(m.ctrl.Events())

	case msg.RetryRequested:
		m.log.Debug("retry requested")
		m.chat.ClearError()
		m.state = StatePending
		return m, m.chat.StartPending()

	case msg.ClearRequested:
		m.log.Debug("error cleared")
		m.chat.ClearError()
		m.state = StateIdle
		return m, nil

	case msg.Copied:
		if v.Err != nil {
			m.header.SetNote(v.Err.Error())
			m.log.Debug("copy failed", "err", v.Err)
		} else {
			m.header.SetNote(fmt.Sprintf("copied %d bytes", v.Bytes))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmQuit {
		if key.Matches(k, m.keys.Quit) {
			return m, tea.Quit
		}
		m.confirmQuit = false
		return m, nil
	}

	switch {
	case key.Matches(k, m.keys.Quit):
		if m.input.Value() == "" {
			m.confirmQuit = true
			return m, nil
		}
		m.input.Submit("")
		return m, nil
	case key.Matches(k, m.keys.QuitEOF):
		if m.input.Value() == "" {
			return m, tea.Quit
		}
	case key.Matches(k, m.keys.Copy):
		return m, m.copyLast()
	case key.Matches(k, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(k)
		return m, cmd
	}

	if m.state == StateError && key.Matches(k, m.bannerKeys.Retry, m.bannerKeys.Clear) {
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(k)
		return m, cmd
	}

	if key.Matches(k, m.keys.Submit) {
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.state == StatePending {
			return m, nil
		}
		m.input.Submit(text)
		if strings.HasPrefix(text, "/") {
			return m.runCommand(text)
		}
		return m.send(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(k)
	return m, cmd
}

// send appends the user's message, hands it to the controller and starts the
// pending indicator.
func (m Model) send(text string) (tea.Model, tea.Cmd) {
	um := chat.NewMessage(chat.RoleUser, text, m.conversationID)
	m.chat.ClearError()
	m.chat.Append(um)
	m.header.SetMessageCount(len(m.chat.Messages()))
	m.header.SetNote("")
	m.state = StatePending
	m.log.Debug("send", "id", um.ID, "class", classify.Classify(um.Text()).String())
	m.ctrl.Send(um)
	return m, m.chat.StartPending()
}

func (m Model) runCommand(text string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/clear":
		if m.state == StateError {
			m.ctrl.Clear()
		}
		m.chat.Reset()
		m.header.SetMessageCount(0)
		m.header.SetNote("")
		m.state = StateIdle
		return m, nil
	case "/copy":
		return m, m.copyLast()
	case "/theme":
		if arg == "" {
			m.header.SetNote("themes: " + strings.Join(style.ThemeNames, ", "))
			return m, nil
		}
		if !style.SetTheme(arg) {
			m.header.SetNote("unknown theme " + arg)
			return m, nil
		}
		m.header.SetTheme(arg)
		m.header.SetNote("")
		m.chat.SetPainter(m.painter)
		m.log.Debug("theme changed", "theme", arg)
		if err := m.saveTheme(arg); err != nil {
			m.log.Warn("save theme", "err", err)
			m.header.SetNote("theme not saved")
		}
		return m, nil
	case "/fail":
		f, ok := m.ctrl.(failer)
		if !ok {
			m.header.SetNote("controller cannot simulate failures")
			return m, nil
		}
		if arg == "" {
			arg = "RequestTime out"
		}
		f.FailNext(errors.New(arg))
		m.header.SetNote("next request will fail")
		return m, nil
	}
	m.header.SetNote("unknown command " + name)
	return m, nil
}

// saveTheme records name in the profile config, keeping its other fields.
func (m Model) saveTheme(name string) error {
	if m.profileDir == "" {
		return nil
	}
	cfg := config.Load(m.profileDir)
	cfg.Theme = name
	return config.Save(m.profileDir, cfg)
}

// copyLast writes the newest selectable message to the terminal clipboard,
// falling back to the OS clipboard.
func (m Model) copyLast() tea.Cmd {
	cm, ok := m.chat.LastSelectable()
	if !ok {
		return func() tea.Msg { return msg.Copied{Err: errNothingToCopy} }
	}
	text := cm.Text()
	w, tty, native := m.clipboard, m.ttyPath, m.native
	return func() tea.Msg {
		err := writeOSC52(w, tty, text)
		if err != nil && native != nil {
			err = native(text)
		}
		if err != nil {
			return msg.Copied{Err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return msg.Copied{Bytes: len(text)}
	}
}

// writeOSC52 sends text as an OSC 52 sequence to w, or to the terminal
// device at ttyPath when w is nil.
func writeOSC52(w io.Writer, ttyPath, text string) error {
	if w == nil {
		f, err := os.OpenFile(ttyPath, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer f.Close()
		w = f
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	_, err := fmt.Fprint(w, seq)
	return err
}

func (m Model) View() string {
	sections := []string{
		m.header.View(),
		m.chat.View(),
		style.Rule(m.width),
		m.input.View(),
		m.footer(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) footer() string {
	if m.confirmQuit {
		return style.Hint.Render("Press Ctrl+C again to quit, or any key to cancel.")
	}
	var parts []string
	for _, b := range m.keys.helpBindings() {
		h := b.Help()
		parts = append(parts, style.ActionKey.Render(h.Key)+" "+style.ActionLabel.Render(h.Desc))
	}
	line := strings.Join(parts, style.Hint.Render("  "))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}

// chatHeight is the terminal height minus header, rule, input and footer.
func (m Model) chatHeight() int {
	return max(m.height-4, 1)
}
