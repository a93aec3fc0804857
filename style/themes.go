package style

import "github.com/charmbracelet/lipgloss"

// Theme defines a complete color palette for the TUI.
type Theme struct {
	Name                                        string
	Primary, Secondary, Success, Warning, Error lipgloss.TerminalColor
	Muted, Dim, Border                          lipgloss.TerminalColor
	UserBubbleFg, UserBubbleBg                  lipgloss.TerminalColor
	AssistantBubbleFg, AssistantBubbleBg        lipgloss.TerminalColor
	CodeBorder                                  lipgloss.TerminalColor

	// Markdown is the glamour standard style used for message bodies.
	Markdown string
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:              "dark",
		Primary:           lipgloss.Color("#7C3AED"), // violet-600
		Secondary:         lipgloss.Color("#06B6D4"), // cyan-500
		Success:           lipgloss.Color("#22C55E"), // green-500
		Warning:           lipgloss.Color("#F59E0B"), // amber-500
		Error:             lipgloss.Color("#EF4444"), // red-500
		Muted:             lipgloss.Color("#6B7280"), // gray-500
		Dim:               lipgloss.Color("#374151"), // gray-700
		Border:            lipgloss.Color("#4B5563"), // gray-600
		UserBubbleFg:      lipgloss.Color("#F9FAFB"), // gray-50
		UserBubbleBg:      lipgloss.Color("#5B21B6"), // violet-800
		AssistantBubbleFg: lipgloss.Color("#E5E7EB"), // gray-200
		AssistantBubbleBg: lipgloss.Color("#1F2937"), // gray-800
		CodeBorder:        lipgloss.Color("#4B5563"), // gray-600
		Markdown:          "dark",
	}

	lightTheme = Theme{
		Name:              "light",
		Primary:           lipgloss.Color("#6D28D9"), // violet-700
		Secondary:         lipgloss.Color("#0891B2"), // cyan-600
		Success:           lipgloss.Color("#16A34A"), // green-600
		Warning:           lipgloss.Color("#D97706"), // amber-600
		Error:             lipgloss.Color("#DC2626"), // red-600
		Muted:             lipgloss.Color("#9CA3AF"), // gray-400
		Dim:               lipgloss.Color("#D1D5DB"), // gray-300
		Border:            lipgloss.Color("#9CA3AF"), // gray-400
		UserBubbleFg:      lipgloss.Color("#FFFFFF"),
		UserBubbleBg:      lipgloss.Color("#8B5CF6"), // violet-500
		AssistantBubbleFg: lipgloss.Color("#111827"), // gray-900
		AssistantBubbleBg: lipgloss.Color("#F3F4F6"), // gray-100
		CodeBorder:        lipgloss.Color("#D1D5DB"), // gray-300
		Markdown:          "light",
	}

	catppuccinTheme = Theme{
		Name:              "catppuccin",
		Primary:           lipgloss.Color("#CBA6F7"), // mauve
		Secondary:         lipgloss.Color("#89DCEB"), // sky
		Success:           lipgloss.Color("#A6E3A1"), // green
		Warning:           lipgloss.Color("#F9E2AF"), // yellow
		Error:             lipgloss.Color("#F38BA8"), // red
		Muted:             lipgloss.Color("#6C7086"), // overlay0
		Dim:               lipgloss.Color("#45475A"), // surface1
		Border:            lipgloss.Color("#585B70"), // surface2
		UserBubbleFg:      lipgloss.Color("#1E1E2E"), // base
		UserBubbleBg:      lipgloss.Color("#CBA6F7"), // mauve
		AssistantBubbleFg: lipgloss.Color("#CDD6F4"), // text
		AssistantBubbleBg: lipgloss.Color("#313244"), // surface0
		CodeBorder:        lipgloss.Color("#585B70"), // surface2
		Markdown:          "dracula",
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":       darkTheme,
	"light":      lightTheme,
	"catppuccin": catppuccinTheme,
}

// ThemeNames lists available themes in display order.
var ThemeNames = []string{"dark", "light", "catppuccin"}

// CurrentThemeName tracks the active theme name.
var CurrentThemeName = "dark"

// Current returns the active theme.
func Current() Theme {
	return Themes[CurrentThemeName]
}

// SetTheme activates the named theme and rebuilds every derived style.
// Unknown names leave the current theme in place and return false.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	apply(t)
	return true
}
