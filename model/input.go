package model

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aicat/aicat-tui/style"
)

// InputModel is the message composer: a single-line input with history
// navigation and slash-command completion.
//
// History navigation:
//   - Up arrow: walk backwards through sent messages
//   - Down arrow: walk forwards (towards the present)
//
// Completion:
//   - Tab when the buffer starts with "/" cycles through matching commands
type InputModel struct {
	ti         textinput.Model
	history    []string
	historyIdx int // one past the last entry when not navigating

	commands   []string
	tabIdx     int // -1 when not completing
	tabMatches []string
}

// NewInput returns a ready-to-use InputModel.
func NewInput() InputModel {
	ti := textinput.New()
	ti.Placeholder = "Send a message…"
	ti.Prompt = ""
	ti.CharLimit = 8192

	return InputModel{
		ti:     ti,
		tabIdx: -1,
	}
}

// SetCommands replaces the command list used for Tab completion.
func (m *InputModel) SetCommands(cmds []string) {
	m.commands = cmds
}

// SetWidth fits the field into w cells, prompt included.
func (m *InputModel) SetWidth(w int) {
	if w > 4 {
		m.ti.Width = w - 4
	}
}

// Focus gives keyboard focus to the input.
func (m *InputModel) Focus() tea.Cmd {
	return m.ti.Focus()
}

// Blur removes keyboard focus from the input.
func (m *InputModel) Blur() {
	m.ti.Blur()
}

// Value returns the current raw text in the input field.
func (m InputModel) Value() string {
	return m.ti.Value()
}

// Submit records text in history and clears the field.
func (m *InputModel) Submit(text string) {
	if text != "" && (len(m.history) == 0 || m.history[len(m.history)-1] != text) {
		m.history = append(m.history, text)
	}
	m.historyIdx = len(m.history)
	m.ti.SetValue("")
	m.resetTab()
}

func (m *InputModel) resetTab() {
	m.tabIdx = -1
	m.tabMatches = nil
}

// Init satisfies tea.Model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update intercepts Up/Down for history and Tab for completion before
// delegating remaining keys to the underlying textinput.
func (m InputModel) Update(message tea.Msg) (InputModel, tea.Cmd) {
	if k, ok := message.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyUp:
			return m.navigateHistory(-1), nil
		case tea.KeyDown:
			return m.navigateHistory(+1), nil
		case tea.KeyTab:
			return m.cycleComplete(), nil
		default:
			m.resetTab()
		}
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(message)
	return m, cmd
}

// View renders the prompt character followed by the textinput view.
func (m InputModel) View() string {
	return style.PromptChar.Render("❯ ") + m.ti.View()
}

// navigateHistory moves the history cursor by delta (-1 = older, +1 = newer).
func (m InputModel) navigateHistory(delta int) InputModel {
	if len(m.history) == 0 {
		return m
	}
	next := min(max(m.historyIdx+delta, 0), len(m.history))
	m.historyIdx = next
	if next == len(m.history) {
		m.ti.SetValue("")
		return m
	}
	m.ti.SetValue(m.history[next])
	m.ti.CursorEnd()
	return m
}

// cycleComplete advances through completion candidates. It only activates
// when the buffer starts with "/".
func (m InputModel) cycleComplete() InputModel {
	current := m.ti.Value()
	if !strings.HasPrefix(current, "/") {
		return m
	}

	if m.tabIdx == -1 {
		m.tabMatches = matchCommands(m.commands, current)
		if len(m.tabMatches) == 0 {
			return m
		}
		m.tabIdx = 0
	} else {
		m.tabIdx = (m.tabIdx + 1) % len(m.tabMatches)
	}

	m.ti.SetValue(m.tabMatches[m.tabIdx])
	m.ti.CursorEnd()
	return m
}

func matchCommands(commands []string, prefix string) []string {
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
