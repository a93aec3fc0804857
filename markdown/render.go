// Package markdown turns message text into styled terminal output. Markdown
// goes through glamour; fenced code can be syntax highlighted with chroma.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
)

// Options selects how a document is rendered. It is comparable and doubles
// as the renderer cache key.
type Options struct {
	Width     int
	Style     string // glamour standard style name: dark, light, dracula, notty...
	Highlight bool   // syntax-highlight fenced code
	CodeTheme string // chroma style name, used when Highlight is set
	Profile   termenv.Profile
}

var (
	mu        sync.Mutex
	renderers = map[Options]*glamour.TermRenderer{}
)

// maxCached bounds the renderer cache; resizing the terminal creates a new
// width each time.
const maxCached = 16

// Render converts markdown text to styled ANSI output. It falls back to the
// raw text if the renderer is unavailable or fails.
func Render(md string, opts Options) string {
	if strings.TrimSpace(md) == "" {
		return md
	}
	r := rendererFor(opts)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	// glamour pads with blank lines and a left margin; trim for inline display.
	return trimBlock(out)
}

func rendererFor(opts Options) *glamour.TermRenderer {
	if opts.Width <= 0 {
		opts.Width = 80
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := renderers[opts]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styleConfig(opts)),
		glamour.WithWordWrap(opts.Width),
		glamour.WithColorProfile(opts.Profile),
	)
	if err != nil {
		return nil
	}
	if len(renderers) >= maxCached {
		clear(renderers)
	}
	renderers[opts] = r
	return r
}

// styleConfig copies the named glamour style, drops the document margin
// (the bubble supplies its own padding) and switches code highlighting on
// or off. The chroma formatter ignores the color profile, so highlighting
// stays off for Ascii.
func styleConfig(opts Options) ansi.StyleConfig {
	base, ok := styles.DefaultStyles[opts.Style]
	if !ok {
		base = styles.DefaultStyles["dark"]
	}
	cfg := *base
	var zero uint
	cfg.Document.Margin = &zero
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	cfg.CodeBlock.Chroma = nil
	cfg.CodeBlock.Theme = ""
	if opts.Highlight && opts.Profile != termenv.Ascii {
		cfg.CodeBlock.Theme = CodeTheme(opts.CodeTheme)
	}
	return cfg
}

// trimBlock removes the blank lines glamour wraps around a document and the
// trailing padding on every line.
func trimBlock(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
