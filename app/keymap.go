package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all global keybindings. Error banner actions live in
// model.BannerKeys.
type KeyMap struct {
	Submit   key.Binding
	Quit     key.Binding
	QuitEOF  key.Binding
	Copy     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		QuitEOF: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "quit"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy code"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}

// helpBindings is the order bindings appear in the footer.
func (k KeyMap) helpBindings() []key.Binding {
	return []key.Binding{k.Submit, k.Copy, k.PageUp, k.PageDown, k.Quit}
}
