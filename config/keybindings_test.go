package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyBindingsHaveNoConflicts(t *testing.T) {
	assert.Empty(t, DefaultKeyBindings().ValidateBindings())
}

func TestValidateBindingsReportsConflicts(t *testing.T) {
	kb := DefaultKeyBindings()
	kb.SetBinding("copy", []string{"s"}, "s")

	conflicts := kb.ValidateBindings()
	require.Contains(t, conflicts, "s")
	assert.ElementsMatch(t, []string{"copy", "save"}, conflicts["s"])
}

func TestLoadKeyBindingsDefaultsWhenMissing(t *testing.T) {
	setHome(t)

	kb, err := LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, DefaultKeyBindings(), kb)
}

func TestKeyBindingsSaveAndLoad(t *testing.T) {
	home := setHome(t)

	kb := DefaultKeyBindings()
	kb.SetBinding("generate", []string{"ctrl+r"}, "ctrl+r")
	require.NoError(t, kb.Save())
	assert.FileExists(t, filepath.Join(home, ".docgen", KeyBindingsFileName))

	loaded, err := LoadKeyBindings()
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl+r"}, loaded.GetBinding("generate").Keys)

	keyMap := loaded.ToKeyMap()
	assert.Equal(t, "generate", keyMap["ctrl+r"])
	assert.NotContains(t, keyMap, "ctrl+g")
}

func TestLoadKeyBindingsBrokenFile(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".docgen")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, KeyBindingsFileName), []byte("{"), 0644))

	_, err := LoadKeyBindings()
	assert.Error(t, err)
}

func TestGetBindingUnknown(t *testing.T) {
	assert.Nil(t, DefaultKeyBindings().GetBinding("teleport"))
}
