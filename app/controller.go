package app

import (
	"errors"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/classify"
	"github.com/aicat/aicat-tui/msg"
)

// Controller is the conversation side of the UI. It owns requests, retries
// and conversation state; the UI only hands it messages and reads replies
// from Events as msg.Reply or msg.Failure values.
type Controller interface {
	Send(m chat.Message)
	Retry()
	Clear()
	Events() <-chan tea.Msg
}

// listen waits for the next controller event.
func listen(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-events
		if !ok {
			return nil
		}
		return v
	}
}

// EchoController answers every message by quoting it back after a delay.
// It stands in for a real backend in local runs and previews.
type EchoController struct {
	delay  time.Duration
	events chan tea.Msg

	mu       sync.Mutex
	last     chat.Message
	failNext error
}

// NewEchoController returns a controller that replies after delay.
func NewEchoController(delay time.Duration) *EchoController {
	return &EchoController{
		delay:  delay,
		events: make(chan tea.Msg, 8),
	}
}

// Events implements Controller.
func (c *EchoController) Events() <-chan tea.Msg {
	return c.events
}

// Send implements Controller.
func (c *EchoController) Send(m chat.Message) {
	c.mu.Lock()
	c.last = m
	fail := c.failNext
	c.failNext = nil
	c.mu.Unlock()
	go c.respond(m, fail)
}

// Retry resends the last message.
func (c *EchoController) Retry() {
	c.mu.Lock()
	m := c.last
	c.mu.Unlock()
	if m.Text() == "" {
		return
	}
	go c.respond(m, nil)
}

// Clear forgets the failed request.
func (c *EchoController) Clear() {
	c.mu.Lock()
	c.last = chat.Message{}
	c.mu.Unlock()
}

// FailNext makes the next Send fail with err.
func (c *EchoController) FailNext(err error) {
	c.mu.Lock()
	c.failNext = err
	c.mu.Unlock()
}

func (c *EchoController) respond(m chat.Message, fail error) {
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if fail != nil {
		c.events <- msg.Failure{Request: m, Err: fail}
		return
	}
	c.events <- msg.Reply{Message: chat.NewMessage(chat.RoleAssistant, echo(m.Text()), m.ConversationID)}
}

// echo quotes text back. Fenced code is returned untouched so it renders
// as a code bubble.
func echo(text string) string {
	if classify.HasCodeBlock(text) {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return "You said:\n\n" + strings.Join(lines, "\n")
}

// errNothingToCopy is reported when no selectable message is on screen.
var errNothingToCopy = errors.New("nothing to copy")
