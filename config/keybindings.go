package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const KeyBindingsFileName = "keybindings.json"

// KeyBinding represents a custom keybinding configuration
type KeyBinding struct {
	Command string   `json:"command"` // The command name (e.g., "generate", "copy")
	Keys    []string `json:"keys"`    // The key combinations (e.g., ["ctrl+g"])
	Help    string   `json:"help"`    // Help text to display
}

// KeyBindingsConfig stores all custom keybindings
type KeyBindingsConfig struct {
	Version  string       `json:"version"`  // Config version for future migrations
	Bindings []KeyBinding `json:"bindings"` // List of custom keybindings
}

// DefaultKeyBindings returns the default keybindings configuration
func DefaultKeyBindings() *KeyBindingsConfig {
	return &KeyBindingsConfig{
		Version: "1.0",
		Bindings: []KeyBinding{
			// Input
			{Command: "generate", Keys: []string{"ctrl+g"}, Help: "ctrl+g"},
			{Command: "next_tab", Keys: []string{"tab"}, Help: "tab"},
			{Command: "focus", Keys: []string{"shift+tab"}, Help: "shift+tab"},
			{Command: "options", Keys: []string{"ctrl+o"}, Help: "ctrl+o"},
			{Command: "editor", Keys: []string{"ctrl+x"}, Help: "ctrl+x"},

			// Preview
			{Command: "copy", Keys: []string{"c", "y"}, Help: "c/y"},
			{Command: "save", Keys: []string{"s"}, Help: "s"},
			{Command: "up", Keys: []string{"up", "k"}, Help: "↑/k"},
			{Command: "down", Keys: []string{"down", "j"}, Help: "↓/j"},
			{Command: "page_up", Keys: []string{"pgup"}, Help: "pgup"},
			{Command: "page_down", Keys: []string{"pgdown"}, Help: "pgdn"},
			{Command: "home", Keys: []string{"home"}, Help: "home"},
			{Command: "end", Keys: []string{"end"}, Help: "end"},

			// Other
			{Command: "help", Keys: []string{"f1", "?"}, Help: "f1/?"},
			{Command: "error_log", Keys: []string{"l"}, Help: "l"},
			{Command: "keybindings", Keys: []string{"K"}, Help: "K"},
			{Command: "quit", Keys: []string{"q"}, Help: "q"},
		},
	}
}

// keyBindingsPath returns the location of keybindings.json
func keyBindingsPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, KeyBindingsFileName), nil
}

// LoadKeyBindings loads keybindings from the config file
func LoadKeyBindings() (*KeyBindingsConfig, error) {
	configPath, err := keyBindingsPath()
	if err != nil {
		return nil, err
	}

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if file doesn't exist
		return DefaultKeyBindings(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config KeyBindingsConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	// If no bindings are defined, use defaults
	if len(config.Bindings) == 0 {
		return DefaultKeyBindings(), nil
	}

	return &config, nil
}

// Save saves keybindings to the config file
func (k *KeyBindingsConfig) Save() error {
	configPath, err := keyBindingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(k, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// ToKeyMap converts the keybindings config to a key string -> command name map
func (k *KeyBindingsConfig) ToKeyMap() map[string]string {
	keyMap := make(map[string]string)
	for _, binding := range k.Bindings {
		for _, key := range binding.Keys {
			keyMap[key] = binding.Command
		}
	}
	return keyMap
}

// GetBinding returns the keybinding for a specific command
func (k *KeyBindingsConfig) GetBinding(command string) *KeyBinding {
	for i := range k.Bindings {
		if k.Bindings[i].Command == command {
			return &k.Bindings[i]
		}
	}
	return nil
}

// SetBinding updates or adds a keybinding for a command
func (k *KeyBindingsConfig) SetBinding(command string, keys []string, help string) {
	for i, binding := range k.Bindings {
		if binding.Command == command {
			k.Bindings[i].Keys = keys
			k.Bindings[i].Help = help
			return
		}
	}

	k.Bindings = append(k.Bindings, KeyBinding{
		Command: command,
		Keys:    keys,
		Help:    help,
	})
}

// ValidateBindings checks for conflicts in keybindings
func (k *KeyBindingsConfig) ValidateBindings() map[string][]string {
	conflicts := make(map[string][]string)
	keyToCommands := make(map[string][]string)

	for _, binding := range k.Bindings {
		for _, key := range binding.Keys {
			keyToCommands[key] = append(keyToCommands[key], binding.Command)
		}
	}

	for key, commands := range keyToCommands {
		if len(commands) > 1 {
			conflicts[key] = commands
		}
	}

	return conflicts
}
