package overlay

import (
	"path/filepath"
	"testing"

	"docgen/config"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// selectCommand moves the cursor down to command.
func selectCommand(t *testing.T, k *KeybindingEditorOverlay, command string) {
	t.Helper()
	for i, b := range k.config.Bindings {
		if b.Command == command {
			for k.selectedIndex < i {
				k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown})
			}
			return
		}
	}
	t.Fatalf("no binding for %q", command)
}

func TestKeybindingEditorNavigation(t *testing.T) {
	k := NewKeybindingEditorOverlay(config.DefaultKeyBindings())

	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, k.selectedIndex)

	for range len(k.config.Bindings) + 3 {
		k.HandleKeyPress(runeKey("j"))
	}
	assert.Equal(t, len(k.config.Bindings)-1, k.selectedIndex)

	assert.True(t, k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.True(t, k.Dismissed)
	assert.Nil(t, k.Saved)
}

func TestKeybindingEditorCapturesKeys(t *testing.T) {
	defaults := config.DefaultKeyBindings()
	k := NewKeybindingEditorOverlay(defaults)
	selectCommand(t, k, "generate")

	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, modeEditKeys, k.mode)
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Contains(t, k.Render(), "New keys: ctrl+r")

	k.HandleKeyPress(runeKey("a"))
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyF5})
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeList, k.mode)
	binding := k.config.GetBinding("generate")
	assert.Equal(t, []string{"ctrl+r", "f5"}, binding.Keys)
	assert.Equal(t, "ctrl+r/f5", binding.Help)

	// The caller's config is untouched.
	assert.Equal(t, []string{"ctrl+g"}, defaults.GetBinding("generate").Keys)
}

func TestKeybindingEditorEscLeavesBinding(t *testing.T) {
	k := NewKeybindingEditorOverlay(config.DefaultKeyBindings())
	selectCommand(t, k, "save")

	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, modeList, k.mode)
	assert.Equal(t, []string{"s"}, k.config.GetBinding("save").Keys)
}

func TestKeybindingEditorConflictBlocksSave(t *testing.T) {
	k := NewKeybindingEditorOverlay(config.DefaultKeyBindings())
	selectCommand(t, k, "copy")

	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	k.HandleKeyPress(runeKey("s"))
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, k.HandleKeyPress(runeKey("s")))
	assert.Equal(t, modeList, k.mode)
	view := k.Render()
	assert.Contains(t, view, "Conflicts detected")
	assert.Contains(t, view, "Resolve the conflicts before saving")

	k.HandleKeyPress(runeKey("r"))
	assert.Empty(t, k.config.ValidateBindings())
	assert.NotContains(t, k.Render(), "Conflicts detected")
}

func TestKeybindingEditorSave(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	k := NewKeybindingEditorOverlay(config.DefaultKeyBindings())
	selectCommand(t, k, "generate")
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyCtrlR})
	k.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, k.HandleKeyPress(runeKey("s")))
	require.Equal(t, modeConfirmSave, k.mode)
	assert.Contains(t, k.Render(), config.KeyBindingsFileName)

	assert.True(t, k.HandleKeyPress(runeKey("y")))
	require.NotNil(t, k.Saved)
	assert.FileExists(t, filepath.Join(home, ".docgen", config.KeyBindingsFileName))

	loaded, err := config.LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+r"}, loaded.GetBinding("generate").Keys)
}
