package markdown

import (
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

// DefaultCodeTheme is the chroma style used when none is configured or the
// configured one is unknown.
const DefaultCodeTheme = "monokai"

// CodeTheme resolves name to a registered chroma style name.
func CodeTheme(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultCodeTheme
	}
	if _, ok := chromastyles.Registry[name]; ok {
		return name
	}
	if _, ok := chromastyles.Registry[strings.ToLower(name)]; ok {
		return strings.ToLower(name)
	}
	return DefaultCodeTheme
}

// CodeThemes lists every chroma style name.
func CodeThemes() []string {
	return chromastyles.Names()
}

// CodeBlock is one fenced block found in a document.
type CodeBlock struct {
	Info     string // text after the opening fence
	Language string // canonical lexer name, empty when unknown
	Code     string
}

var fencedBlock = regexp.MustCompile("(?s)```([^\n`]*)\n?(.*?)```")

// CodeBlocks extracts closed fenced blocks from md in order of appearance.
func CodeBlocks(md string) []CodeBlock {
	matches := fencedBlock.FindAllStringSubmatch(md, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]CodeBlock, 0, len(matches))
	for _, m := range matches {
		info := strings.TrimSpace(m[1])
		code := m[2]
		blocks = append(blocks, CodeBlock{
			Info:     info,
			Language: detectLanguage(info, code),
			Code:     code,
		})
	}
	return blocks
}

// Languages returns the distinct languages of the fenced blocks in md.
func Languages(md string) []string {
	var out []string
	seen := map[string]bool{}
	for _, b := range CodeBlocks(md) {
		if b.Language == "" || seen[b.Language] {
			continue
		}
		seen[b.Language] = true
		out = append(out, b.Language)
	}
	return out
}

// detectLanguage prefers the fence info string and falls back to content
// analysis.
func detectLanguage(info, code string) string {
	if fields := strings.Fields(info); len(fields) > 0 {
		if l := lexers.Get(fields[0]); l != nil {
			return l.Config().Name
		}
	}
	if strings.TrimSpace(code) == "" {
		return ""
	}
	if l := lexers.Analyse(code); l != nil {
		return l.Config().Name
	}
	return ""
}
