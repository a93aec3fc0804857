// Package classify sniffs chat message text and decides whether it should be
// presented as plain text, markdown, or markdown carrying fenced code.
//
// This is a heuristic, not a markdown parser. The pattern list below is the
// whole contract: every rule is named so a false positive can be traced to
// the rule that fired.
package classify

import "regexp"

// Classification is the presentation class of a piece of message text.
type Classification int

const (
	PlainText Classification = iota
	Markdown
	MarkdownWithCode
)

func (c Classification) String() string {
	switch c {
	case Markdown:
		return "markdown"
	case MarkdownWithCode:
		return "markdown+code"
	default:
		return "plain"
	}
}

// IsMarkdown reports whether the text should go through the markdown
// renderer.
func (c Classification) IsMarkdown() bool {
	return c != PlainText
}

// Pattern is one named rule of the heuristic.
type Pattern struct {
	Name        string
	Description string
	re          *regexp.Regexp
}

// Match reports whether the rule fires on s.
func (p Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// Expr returns the regular expression source of the rule.
func (p Pattern) Expr() string {
	return p.re.String()
}

// codeFence matches a fenced block: three backticks, anything (including
// newlines, non-greedy), three backticks.
var codeFence = Pattern{
	Name:        "code-fence",
	Description: "``` ... ``` spanning any number of lines",
	re:          regexp.MustCompile("(?s)```.*?```"),
}

// markdownPatterns are checked in order once no fenced block was found.
// Quote, list and table rules are not anchored to the line start; that
// mirrors the behaviour users of the desktop client already see.
var markdownPatterns = []Pattern{
	{
		Name:        "atx-header",
		Description: "1-6 '#' at line start followed by whitespace and text",
		re:          regexp.MustCompile(`(?m)^#{1,6}\s+.+`),
	},
	{
		Name:        "emphasis",
		Description: "text delimited by one or two '*' or '_'",
		re:          regexp.MustCompile(`[*_]{1,2}.+?[*_]{1,2}`),
	},
	{
		Name:        "image",
		Description: "![alt](url)",
		re:          regexp.MustCompile(`!\[.+?\]\(.+?\)`),
	},
	{
		Name:        "link",
		Description: "[text](url)",
		re:          regexp.MustCompile(`\[.+?\]\(.+?\)`),
	},
	{
		Name:        "block-quote",
		Description: "'>' followed by whitespace and text",
		re:          regexp.MustCompile(`>\s+.+`),
	},
	{
		Name:        "list-item",
		Description: "'-' followed by whitespace and text",
		re:          regexp.MustCompile(`-\s+.+`),
	},
	{
		Name:        "ordered-item",
		Description: "digits, '.', whitespace and text",
		re:          regexp.MustCompile(`[0-9]+\.\s+.+`),
	},
	{
		Name:        "open-fence",
		Description: "a lone ``` without a closing fence",
		re:          regexp.MustCompile("```"),
	},
	{
		Name:        "table-row",
		Description: "pipe-delimited cells on one line",
		re:          regexp.MustCompile(`\|?.+\|`),
	},
}

// Patterns returns every rule in evaluation order, the fence rule first.
func Patterns() []Pattern {
	out := make([]Pattern, 0, len(markdownPatterns)+1)
	out = append(out, codeFence)
	return append(out, markdownPatterns...)
}

// Classify returns the presentation class of content. It never fails; the
// empty string is PlainText. Callers that display trimmed text should pass
// the trimmed text here too.
func Classify(content string) Classification {
	if content == "" {
		return PlainText
	}
	if codeFence.Match(content) {
		return MarkdownWithCode
	}
	for _, p := range markdownPatterns {
		if p.Match(content) {
			return Markdown
		}
	}
	return PlainText
}

// Explain classifies content and also returns the names of all rules that
// fired, in evaluation order.
func Explain(content string) (Classification, []string) {
	if content == "" {
		return PlainText, nil
	}
	var fired []string
	for _, p := range Patterns() {
		if p.Match(content) {
			fired = append(fired, p.Name)
		}
	}
	return Classify(content), fired
}

// HasCodeBlock reports whether content contains a closed fenced block.
func HasCodeBlock(content string) bool {
	return codeFence.Match(content)
}
