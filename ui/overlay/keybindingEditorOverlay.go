package overlay

import (
	"fmt"
	"sort"
	"strings"

	"docgen/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type keybindingEditorMode int

const (
	modeList keybindingEditorMode = iota
	modeEditKeys
	modeConfirmSave
)

var (
	kbTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	kbItemStyle     = lipgloss.NewStyle().Padding(0, 2)
	kbSelectedStyle = lipgloss.NewStyle().Padding(0, 2).Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230"))
	kbHelpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	kbWarnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	kbBorderStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(0, 1)
)

// KeybindingEditorOverlay lists the bindings of keybindings.json and lets
// the user reassign them. Saving writes the file and reports the new
// configuration through Saved.
type KeybindingEditorOverlay struct {
	// Dismissed is set once the editor is closed, saved or not.
	Dismissed bool
	// Saved holds the written configuration after a successful save.
	Saved *config.KeyBindingsConfig

	config        *config.KeyBindingsConfig
	selectedIndex int
	mode          keybindingEditorMode

	editingKeys    []string
	captureNextKey bool
	// status is the last save problem shown under the list.
	status string

	width  int
	height int
}

// NewKeybindingEditorOverlay edits a copy of cfg.
func NewKeybindingEditorOverlay(cfg *config.KeyBindingsConfig) *KeybindingEditorOverlay {
	return &KeybindingEditorOverlay{
		config: cloneBindings(cfg),
		width:  80,
		height: 30,
	}
}

func cloneBindings(cfg *config.KeyBindingsConfig) *config.KeyBindingsConfig {
	out := &config.KeyBindingsConfig{Version: cfg.Version}
	for _, b := range cfg.Bindings {
		out.Bindings = append(out.Bindings, config.KeyBinding{
			Command: b.Command,
			Keys:    append([]string(nil), b.Keys...),
			Help:    b.Help,
		})
	}
	return out
}

func (k *KeybindingEditorOverlay) SetSize(width, height int) {
	k.width = width
	k.height = height
}

// HandleKeyPress processes a key press. It returns true when the editor
// should be closed.
func (k *KeybindingEditorOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch k.mode {
	case modeList:
		return k.handleListMode(msg)
	case modeEditKeys:
		k.handleEditMode(msg)
	case modeConfirmSave:
		return k.handleConfirmMode(msg)
	}
	return false
}

func (k *KeybindingEditorOverlay) handleListMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "k":
		if k.selectedIndex > 0 {
			k.selectedIndex--
		}
	case "down", "j":
		if k.selectedIndex < len(k.config.Bindings)-1 {
			k.selectedIndex++
		}
	case "enter", "e":
		if len(k.config.Bindings) == 0 {
			break
		}
		k.editingKeys = nil
		k.mode = modeEditKeys
		k.captureNextKey = true
	case "s":
		if len(k.config.ValidateBindings()) > 0 {
			k.status = "Resolve the conflicts before saving"
			break
		}
		k.mode = modeConfirmSave
	case "r":
		k.config = config.DefaultKeyBindings()
		k.selectedIndex = 0
		k.status = ""
	case "q", "esc":
		k.Dismissed = true
		return true
	}
	return false
}

func (k *KeybindingEditorOverlay) handleEditMode(msg tea.KeyMsg) {
	keyStr := msg.String()
	if k.captureNextKey {
		k.captureNextKey = false
		if keyStr == "esc" {
			// Nothing captured yet: leave the binding alone.
			if len(k.editingKeys) == 0 {
				k.mode = modeList
			}
			return
		}
		k.editingKeys = append(k.editingKeys, keyStr)
		return
	}

	switch keyStr {
	case "enter":
		if len(k.editingKeys) == 0 {
			k.status = "A command needs at least one key"
			return
		}
		binding := &k.config.Bindings[k.selectedIndex]
		binding.Keys = k.editingKeys
		binding.Help = strings.Join(k.editingKeys, "/")
		k.mode = modeList
	case "a":
		k.captureNextKey = true
	case "d":
		if len(k.editingKeys) > 0 {
			k.editingKeys = k.editingKeys[:len(k.editingKeys)-1]
		}
	case "esc":
		k.mode = modeList
	}
}

func (k *KeybindingEditorOverlay) handleConfirmMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "y":
		if err := k.config.Save(); err != nil {
			k.status = err.Error()
			k.mode = modeList
			return false
		}
		k.Saved = k.config
		k.Dismissed = true
		return true
	case "n", "esc":
		k.mode = modeList
	}
	return false
}

func (k *KeybindingEditorOverlay) Render() string {
	var content string
	switch k.mode {
	case modeList:
		content = k.renderList()
	case modeEditKeys:
		content = k.renderEdit()
	case modeConfirmSave:
		content = k.renderConfirm()
	}
	return kbBorderStyle.Render(content)
}

func (k *KeybindingEditorOverlay) renderList() string {
	lines := []string{
		kbTitleStyle.Render("Keyboard Configuration"),
		"",
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("  %-12s %-20s %s", "Command", "Keys", "Help")),
		strings.Repeat("─", 50),
	}

	// Header, footer and border take about ten rows.
	maxVisible := max(k.height-10, 5)
	startIdx := 0
	if k.selectedIndex >= maxVisible {
		startIdx = k.selectedIndex - maxVisible + 1
	}
	for i := startIdx; i < len(k.config.Bindings) && i < startIdx+maxVisible; i++ {
		binding := k.config.Bindings[i]
		line := fmt.Sprintf("%-12s %-20s %s", binding.Command, strings.Join(binding.Keys, ", "), binding.Help)
		if i == k.selectedIndex {
			lines = append(lines, kbSelectedStyle.Render(line))
		} else {
			lines = append(lines, kbItemStyle.Render(line))
		}
	}

	lines = append(lines, "", kbHelpStyle.Render("↑/k up • ↓/j down • enter edit • s save • r reset • esc close"))

	if conflicts := k.config.ValidateBindings(); len(conflicts) > 0 {
		keys := make([]string, 0, len(conflicts))
		for key := range conflicts {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		lines = append(lines, "", kbWarnStyle.Render("⚠ Conflicts detected:"))
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("  %s → %s", key, strings.Join(conflicts[key], ", ")))
		}
	}
	if k.status != "" {
		lines = append(lines, "", kbWarnStyle.Render(k.status))
	}
	return strings.Join(lines, "\n")
}

func (k *KeybindingEditorOverlay) renderEdit() string {
	binding := k.config.Bindings[k.selectedIndex]
	lines := []string{
		kbTitleStyle.Render("Edit Keybinding"),
		"",
		fmt.Sprintf("Command: %s", binding.Command),
		fmt.Sprintf("Current keys: %s", strings.Join(binding.Keys, ", ")),
		fmt.Sprintf("New keys: %s", strings.Join(k.editingKeys, ", ")),
		"",
	}
	if k.captureNextKey {
		lines = append(lines,
			lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("Press the key you want to add..."),
			kbHelpStyle.Render("(esc to stop)"))
	} else {
		lines = append(lines, kbHelpStyle.Render("enter save • a add key • d delete last • esc cancel"))
	}
	return strings.Join(lines, "\n")
}

func (k *KeybindingEditorOverlay) renderConfirm() string {
	return strings.Join([]string{
		kbTitleStyle.Render("Save Changes?"),
		"",
		"Write the new bindings to " + config.KeyBindingsFileName + "?",
		"",
		kbHelpStyle.Render("y yes • n no"),
	}, "\n")
}
