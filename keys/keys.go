package keys

import (
	"docgen/config"

	"github.com/charmbracelet/bubbles/key"
)

type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	KeyGenerate // Generate documentation from the active input
	KeyNextTab  // Cycle the input tabs (paste, file, repository)
	KeyFocus    // Move focus between the input and the preview
	KeyOptions  // Open the language / doc type form
	KeyEditor   // Edit the paste buffer in $EDITOR

	KeyCopy // Copy the generated markdown
	KeySave // Save the generated markdown as documentation.md

	KeyHelp
	KeyErrorLog
	KeyKeybindings // Open the keybinding editor
	KeyQuit
)

// GlobalKeyStringsMap is a global, immutable map string to keybinding.
var GlobalKeyStringsMap = map[string]KeyName{
	"up":        KeyUp,
	"k":         KeyUp,
	"down":      KeyDown,
	"j":         KeyDown,
	"pgup":      KeyPageUp,
	"pgdown":    KeyPageDown,
	"home":      KeyHome,
	"end":       KeyEnd,
	"ctrl+g":    KeyGenerate,
	"tab":       KeyNextTab,
	"shift+tab": KeyFocus,
	"ctrl+o":    KeyOptions,
	"ctrl+x":    KeyEditor,
	"c":         KeyCopy,
	"y":         KeyCopy,
	"s":         KeySave,
	"f1":        KeyHelp,
	"?":         KeyHelp,
	"l":         KeyErrorLog,
	"K":         KeyKeybindings,
	"q":         KeyQuit,
}

// GlobalkeyBindings is a global map of KeyName to keybinding. Custom
// keybindings replace entries at startup.
var GlobalkeyBindings = map[KeyName]key.Binding{
	KeyUp: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	KeyDown: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	KeyPageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	KeyPageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	KeyHome: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "scroll to top"),
	),
	KeyEnd: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "scroll to bottom"),
	),
	KeyGenerate: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "generate"),
	),
	KeyNextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "input mode"),
	),
	KeyFocus: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "switch pane"),
	),
	KeyOptions: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "options"),
	),
	KeyEditor: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "editor"),
	),
	KeyCopy: key.NewBinding(
		key.WithKeys("c", "y"),
		key.WithHelp("c/y", "copy"),
	),
	KeySave: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "save"),
	),
	KeyHelp: key.NewBinding(
		key.WithKeys("f1", "?"),
		key.WithHelp("f1/?", "help"),
	),
	KeyErrorLog: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "error log"),
	),
	KeyKeybindings: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "keys"),
	),
	KeyQuit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// commandToKeyName maps keybindings.json command names to KeyName constants
var commandToKeyName = map[string]KeyName{
	"up":          KeyUp,
	"down":        KeyDown,
	"page_up":     KeyPageUp,
	"page_down":   KeyPageDown,
	"home":        KeyHome,
	"end":         KeyEnd,
	"generate":    KeyGenerate,
	"next_tab":    KeyNextTab,
	"focus":       KeyFocus,
	"options":     KeyOptions,
	"editor":      KeyEditor,
	"copy":        KeyCopy,
	"save":        KeySave,
	"help":        KeyHelp,
	"error_log":   KeyErrorLog,
	"keybindings": KeyKeybindings,
	"quit":        KeyQuit,
}

// inputScoped keys keep working while the user is typing into an input,
// unless they are printable (KeyHelp's "?" is typed, "f1" is not).
// Everything else is forwarded to the focused input widget.
var inputScoped = map[KeyName]bool{
	KeyGenerate: true,
	KeyNextTab:  true,
	KeyFocus:    true,
	KeyOptions:  true,
	KeyEditor:   true,
	KeyHelp:     true,
}

// CustomKeyStringsMap is a mutable map that can be updated with custom keybindings
var CustomKeyStringsMap map[string]KeyName

// InitializeCustomKeyBindings loads custom keybindings from config
func InitializeCustomKeyBindings() error {
	kbConfig, err := config.LoadKeyBindings()
	if err != nil {
		return err
	}
	ApplyKeyBindings(kbConfig)
	return nil
}

// ApplyKeyBindings installs kbConfig as the custom key map and updates the
// help shown in the menu.
func ApplyKeyBindings(kbConfig *config.KeyBindingsConfig) {
	custom := make(map[string]KeyName)
	for keyStr, command := range kbConfig.ToKeyMap() {
		if name, ok := commandToKeyName[command]; ok {
			custom[keyStr] = name
		}
	}
	CustomKeyStringsMap = custom

	for _, binding := range kbConfig.Bindings {
		name, ok := commandToKeyName[binding.Command]
		if !ok {
			continue
		}
		help := GlobalkeyBindings[name].Help().Desc
		GlobalkeyBindings[name] = key.NewBinding(
			key.WithKeys(binding.Keys...),
			key.WithHelp(binding.Help, help),
		)
	}
}

// GetKeyName returns the KeyName for a given key string, checking custom bindings first
func GetKeyName(keyStr string) (KeyName, bool) {
	if CustomKeyStringsMap != nil {
		keyName, ok := CustomKeyStringsMap[keyStr]
		return keyName, ok
	}

	keyName, ok := GlobalKeyStringsMap[keyStr]
	return keyName, ok
}

// InputScoped reports whether name is handled even while an input has focus.
func InputScoped(name KeyName) bool {
	return inputScoped[name]
}
