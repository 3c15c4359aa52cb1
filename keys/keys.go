package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyToggle
	KeyPicker
	KeyTheme
	KeyCopy
	KeyShrink
	KeyGrow
	KeyPageUp
	KeyPageDown
	KeyQuit

	KeyEnter
	KeyEsc
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":     KeyUp,
	"k":      KeyUp,
	"down":   KeyDown,
	"j":      KeyDown,
	"ctrl+b": KeyToggle,
	"[":      KeyToggle,
	"/":      KeyPicker,
	"t":      KeyTheme,
	"y":      KeyCopy,
	"<":      KeyShrink,
	">":      KeyGrow,
	"pgup":   KeyPageUp,
	"pgdown": KeyPageDown,
	"q":      KeyQuit,
	"ctrl+c": KeyQuit,
	"enter":  KeyEnter,
	"esc":    KeyEsc,
}

// GlobalkeyBindings is a global, immutable map of KeyName to keybinding.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyToggle: key.NewBinding(
		key.WithKeys("ctrl+b", "["),
		key.WithHelp("[", "sidebar"),
	),
	KeyPicker: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "jump"),
	),
	KeyTheme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy"),
	),
	KeyShrink: key.NewBinding(
		key.WithKeys("<"),
		key.WithHelp("<", "narrower"),
	),
	KeyGrow: key.NewBinding(
		key.WithKeys(">"),
		key.WithHelp(">", "wider"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "scroll up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "scroll down"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),

	// -- Special keybindings --

	KeyEnter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "select"),
	),
	KeyEsc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}
