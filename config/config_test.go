package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"docgen/doc"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestLoadConfigWritesDefaults(t *testing.T) {
	home := setHome(t)

	cfg := LoadConfig()
	assert.Equal(t, DefaultConfig(), cfg)

	data, err := os.ReadFile(filepath.Join(home, ".docgen", ConfigFileName))
	require.NoError(t, err)

	var onDisk map[string]any
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, "javascript", onDisk["default_language"])
	assert.Equal(t, "api", onDisk["default_doc_type"])
	assert.EqualValues(t, 1500, onDisk["analysis_latency_ms"])
}

func TestLoadConfigMergesMissingFields(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".docgen")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
		[]byte(`{"default_language": "python", "markdown_style": "sparkly"}`), 0644))

	cfg := LoadConfig()
	assert.Equal(t, doc.LanguagePython, cfg.DefaultLanguage)
	assert.Equal(t, doc.DocTypeAPI, cfg.DefaultDocType)
	assert.Equal(t, 1500, cfg.AnalysisLatencyMs)
	assert.Equal(t, ".", cfg.DownloadDir)
	assert.Equal(t, "auto", cfg.MarkdownStyle)
}

func TestLoadConfigBrokenFileFallsBack(t *testing.T) {
	home := setHome(t)
	dir := filepath.Join(home, ".docgen")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"default_language": "cobol"}`), 0644))

	assert.Equal(t, DefaultConfig(), LoadConfig())
}

func TestSaveConfigRoundTrip(t *testing.T) {
	setHome(t)

	cfg := DefaultConfig()
	cfg.DefaultDocType = doc.DocTypeModule
	cfg.AnalysisLatencyMs = 0
	cfg.Editor = "nano"
	require.NoError(t, SaveConfig(cfg))

	assert.Equal(t, cfg, LoadConfig())
}

func TestAnalysisLatency(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1500*time.Millisecond, cfg.AnalysisLatency())

	cfg.AnalysisLatencyMs = 0
	assert.Equal(t, time.Duration(0), cfg.AnalysisLatency())

	cfg.AnalysisLatencyMs = -20
	assert.Equal(t, time.Duration(0), cfg.AnalysisLatency())
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	cfg := DefaultConfig()
	assert.Equal(t, []string{"vi"}, cfg.EditorCommand())

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, []string{"nano"}, cfg.EditorCommand())

	t.Setenv("VISUAL", "code --wait")
	assert.Equal(t, []string{"code", "--wait"}, cfg.EditorCommand())

	cfg.Editor = "hx"
	assert.Equal(t, []string{"hx"}, cfg.EditorCommand())
}

func TestState(t *testing.T) {
	setHome(t)

	state := LoadState()
	assert.Equal(t, uint32(0), state.GetHelpScreensSeen())

	require.NoError(t, state.SetHelpScreensSeen(1|4))
	assert.Equal(t, uint32(5), LoadState().GetHelpScreensSeen())
}
