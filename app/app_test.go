package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"docgen/config"
	"docgen/export"
	"docgen/keys"
	"docgen/session"
	"docgen/ui"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memState is an in-memory config.AppState.
type memState struct {
	seen uint32
}

func (s *memState) GetHelpScreensSeen() uint32 { return s.seen }

func (s *memState) SetHelpScreensSeen(seen uint32) error {
	s.seen = seen
	return nil
}

// newTestHome returns a sized, focused home with zero latency and every
// help screen already seen.
func newTestHome(t *testing.T) *home {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	cfg := config.DefaultConfig()
	cfg.AnalysisLatencyMs = 0
	cfg.MarkdownStyle = "notty"
	cfg.DownloadDir = t.TempDir()

	h := newHome(context.Background(), cfg, &memState{seen: ^uint32(0)})
	h.Init()
	h.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

// collectMsgs runs cmd and any batch it returns.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func typeText(h *home, text string) {
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// generateNow runs a generation to completion.
func generateNow(t *testing.T, h *home) {
	t.Helper()
	for _, msg := range collectMsgs(h.generate()) {
		if _, ok := msg.(analyzedMsg); ok {
			h.Update(msg)
			return
		}
	}
	t.Fatal("generation did not complete")
}

func TestGenerateEmptyInputShowsError(t *testing.T) {
	h := newTestHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlG})

	assert.Equal(t, session.ErrEmptyInput.Error(), h.errBox.Message())
	assert.False(t, h.preview.HasDocument())
	assert.False(t, h.collector.Pending())
	assert.Len(t, h.errorLog, 1)
}

func TestGenerateRendersDocument(t *testing.T) {
	h := newTestHome(t)
	typeText(h, "function hello() {}")
	require.Equal(t, "function hello() {}", h.collector.ActiveText())

	generateNow(t, h)

	assert.True(t, h.preview.HasDocument())
	assert.Contains(t, h.preview.Markdown(), "### hello()")
	assert.Contains(t, h.preview.Markdown(), "# Api Documentation")
	assert.False(t, h.collector.Pending())
	assert.Equal(t, "Documentation format: Markdown | Generated in 0s", h.preview.Footer())
}

func TestGenerateWhilePendingIsIgnored(t *testing.T) {
	h := newTestHome(t)
	typeText(h, "const a = 1")

	_, err := h.collector.Begin()
	require.NoError(t, err)

	h.generate()
	assert.Equal(t, "Documentation is already being generated", h.errBox.Message())
	assert.Empty(t, h.errorLog)
}

func TestPrintableKeysGoToInput(t *testing.T) {
	h := newTestHome(t)

	// q and ? are bound globally but typed while the input has focus.
	typeText(h, "q")
	typeText(h, "?")

	assert.Equal(t, "q?", h.paste.Value())
	assert.Equal(t, stateDefault, h.state)
}

func TestHelpKeyOutsideInput(t *testing.T) {
	h := newTestHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.Equal(t, stateHelp, h.state)
	assert.Contains(t, h.View(), "Show this help screen")

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateDefault, h.state)
}

func TestRepositoryModeValidatesURL(t *testing.T) {
	h := newTestHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, ui.RepositoryTab, h.tabbedWindow.ActiveTab())
	require.Equal(t, session.ModeRepository, h.collector.Mode())

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Equal(t, session.ErrEmptyRepositoryURL.Error(), h.errBox.Message())

	typeText(h, "not-a-url")
	h.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Contains(t, h.errBox.Message(), session.ErrInvalidRepositoryURL.Error())

	h.repo.SetValue("")
	h.collector.SetRepositoryURL("")
	typeText(h, "https://github.com/user/repo")
	generateNow(t, h)
	assert.Contains(t, h.preview.Markdown(), "https://github.com/user/repo")
}

func TestFileLoadedSwitchesToFileMode(t *testing.T) {
	h := newTestHome(t)
	content := "class Widget {}\n\tindented\n"

	h.Update(fileLoadedMsg{path: "/tmp/widget.ts", content: content})

	assert.Equal(t, ui.FileTab, h.tabbedWindow.ActiveTab())
	assert.Equal(t, session.ModeFile, h.collector.Mode())
	assert.Equal(t, content, h.collector.ActiveText())

	generateNow(t, h)
	assert.Contains(t, h.preview.Markdown(), "### Widget")
}

func TestFileLoadFailureIsVisible(t *testing.T) {
	h := newTestHome(t)
	missing := filepath.Join(t.TempDir(), "missing.js")

	for _, msg := range collectMsgs(loadFileCmd(missing)) {
		h.Update(msg)
	}

	assert.Contains(t, h.errBox.Message(), "missing.js")
	assert.Equal(t, session.ModePaste, h.collector.Mode())
}

func TestCopyAndSaveNeedDocument(t *testing.T) {
	h := newTestHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, focusPreview, h.focus)

	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Equal(t, "Generate documentation first", h.errBox.Message())

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusInput, h.focus)
}

func TestSaveWritesDocument(t *testing.T) {
	h := newTestHome(t)
	typeText(h, "function save() {}")
	generateNow(t, h)

	msgs := collectMsgs(h.saveDocument())
	require.Len(t, msgs, 1)
	saved, ok := msgs[0].(savedMsg)
	require.True(t, ok, "got %T", msgs[0])

	assert.Equal(t, filepath.Join(h.appConfig.DownloadDir, export.DefaultFilename), saved.download.Path)
	data, err := os.ReadFile(saved.download.Path)
	require.NoError(t, err)
	assert.Equal(t, h.preview.Markdown(), string(data))

	h.Update(saved)
	assert.Contains(t, h.errBox.Message(), "Saved")
}

func TestOptionsFormCancel(t *testing.T) {
	h := newTestHome(t)

	h.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, stateOptions, h.state)
	assert.Contains(t, h.View(), "Documentation options")

	h.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateDefault, h.state)
	assert.Nil(t, h.optionsOverlay)
}

func TestErrorLogNewestFirstAndBounded(t *testing.T) {
	h := newTestHome(t)

	for i := 0; i < errorLogLimit+20; i++ {
		h.handleError(fmt.Errorf("error %03d", i))
	}
	assert.Len(t, h.errorLog, errorLogLimit)
	assert.Contains(t, h.errorLog[0], "error 020")

	h.showErrorLog()
	require.Equal(t, stateErrorLog, h.state)
	view := h.textOverlay.Render()
	assert.Contains(t, view, "error 119")
}

func TestWelcomeShownOnce(t *testing.T) {
	state := &memState{}
	cfg := config.DefaultConfig()

	h := newHome(context.Background(), cfg, state)
	assert.Equal(t, stateHelp, h.state)
	assert.NotZero(t, state.seen&helpTypeWelcome{}.mask())

	h = newHome(context.Background(), cfg, state)
	assert.Equal(t, stateDefault, h.state)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	h := newTestHome(t)

	h.Update(generateFailedMsg{err: session.ErrStale})
	assert.Empty(t, h.errorLog)

	h.Update(generateFailedMsg{err: errors.New("boom")})
	assert.Len(t, h.errorLog, 1)
}

func TestKeybindingEditorAppliesSavedBindings(t *testing.T) {
	orig := make(map[keys.KeyName]key.Binding, len(keys.GlobalkeyBindings))
	for k, v := range keys.GlobalkeyBindings {
		orig[k] = v
	}
	t.Cleanup(func() {
		keys.CustomKeyStringsMap = nil
		for k, v := range orig {
			keys.GlobalkeyBindings[k] = v
		}
	})

	h := newTestHome(t)
	h.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("K")})
	require.Equal(t, stateKeybindings, h.state)
	assert.Contains(t, h.View(), "Keyboard Configuration")

	// generate is the first binding.
	h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	h.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	h.Update(tea.KeyMsg{Type: tea.KeyEnter})
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	h.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	assert.Equal(t, stateDefault, h.state)
	assert.Nil(t, h.keybindingEditor)
	assert.Equal(t, "Saved keybindings", h.errBox.Message())

	name, ok := keys.GetKeyName("ctrl+r")
	require.True(t, ok)
	assert.Equal(t, keys.KeyGenerate, name)
	_, ok = keys.GetKeyName("ctrl+g")
	assert.False(t, ok)
}

func TestGenerateFlow(t *testing.T) {
	h := newTestHome(t)
	tm := teatest.NewTestModel(t, h, teatest.WithInitialTermSize(120, 40))

	tm.Type("function greet() {}")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlG})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Documentation format: Markdown"))
	}, teatest.WithDuration(5*time.Second), teatest.WithCheckInterval(50*time.Millisecond))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	fm, ok := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second)).(*home)
	require.True(t, ok)

	assert.True(t, strings.HasPrefix(fm.preview.Markdown(), "# Api Documentation"))
	assert.Contains(t, fm.preview.Markdown(), "### greet()")
}
