package board

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the command keys. None of them may collide with the
// bindable set (digits and lowercase letters), so they are all symbols,
// control chords, or named keys.
type KeyMap struct {
	Quit       key.Binding
	StopAll    key.Binding
	Bindings   key.Binding
	Loop       key.Binding
	Stack      key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Help       key.Binding
	Copy       key.Binding
}

// DefaultKeyMap returns the board's key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		StopAll: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "stop all"),
		),
		Bindings: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "bindings"),
		),
		Loop: key.NewBinding(
			key.WithKeys(","),
			key.WithHelp(",", "loop"),
		),
		Stack: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "stack"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "vol up"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "vol down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy bindings"),
		),
	}
}

// ShortHelp returns keybindings for the one-line help footer.
// Implements the help.KeyMap interface.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.Bindings,
		k.StopAll,
		k.Quit,
	}
}

// FullHelp returns keybindings for the expanded help view.
// Implements the help.KeyMap interface.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Playback column
		{
			k.StopAll,
			k.Loop,
			k.Stack,
		},
		// Output column
		{
			k.VolumeUp,
			k.VolumeDown,
			k.Copy,
		},
		// System column
		{
			k.Bindings,
			k.Help,
			k.Quit,
		},
	}
}
