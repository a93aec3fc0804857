package main

import (
	"fmt"
	"io"
	"time"

	"github.com/aicat/aicat-tui/chat"
	"github.com/aicat/aicat-tui/config"
	"github.com/aicat/aicat-tui/model"
	"github.com/aicat/aicat-tui/render"
	"github.com/aicat/aicat-tui/style"
)

// previewMessages is the gallery shown by `aicat preview`.
func previewMessages() []chat.Message {
	const conv = "preview"
	return []chat.Message{
		chat.NewMessage(chat.RoleAssistant, "you are beautiful", conv),
		chat.NewMessage(chat.RoleUser, "### Question\n\nWhat does this print?\n\n```swift\nprint(\"hello\")\n```", conv),
		chat.NewMessage(chat.RoleAssistant, "It prints **hello** followed by a newline.\n\n- `print` appends `\\n`\n- use `terminator:` to change it", conv),
		chat.NewMessage(chat.RoleAssistant, "```swift\nprint(\"hello\", terminator: \"\")\n```", conv),
		chat.NewMessage(chat.RoleUser, "thanks!", conv),
	}
}

func writeBubbles(w io.Writer, msgs []chat.Message, width int, codeTheme string) error {
	p := render.NewPainter(codeTheme)
	for _, m := range msgs {
		if _, err := fmt.Fprintln(w, p.Message(m, width)); err != nil {
			return err
		}
	}
	return nil
}

// runPreview prints sample bubbles and both status views.
func runPreview(w io.Writer, cfg config.Config) error {
	if err := writeBubbles(w, previewMessages(), cfg.Width, cfg.CodeTheme); err != nil {
		return err
	}

	pending := model.NewPending()
	pending.Start(time.Now())
	banner := model.NewErrorBanner("RequestTime out", nil, nil)
	banner.SetWidth(cfg.Width)

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", pending.View(), banner.View(), style.Rule(cfg.Width))
	return err
}
