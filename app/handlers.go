package app

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"docgen/config"
	"docgen/doc"
	"docgen/export"
	"docgen/keys"
	"docgen/log"
	"docgen/session"
	"docgen/ui"
	"docgen/ui/overlay"
	"docgen/util"

	tea "github.com/charmbracelet/bubbletea"
)

// analyzedMsg carries a request whose simulated analysis finished.
type analyzedMsg struct {
	request doc.Request
}

// generateFailedMsg is sent when a pending request did not complete.
type generateFailedMsg struct {
	err error
}

type fileLoadedMsg struct {
	path    string
	content string
}

type editorFinishedMsg struct {
	path string
	err  error
}

type copiedMsg struct{}

type savedMsg struct {
	download export.Download
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, whatever has focus.
	if msg.String() == "ctrl+c" {
		return m.handleQuit()
	}

	switch m.state {
	case stateHelp:
		return m.handleHelpState(msg)
	case stateErrorLog:
		return m.handleErrorLogState(msg)
	case stateKeybindings:
		return m, m.handleKeybindingEditorState(msg)
	}

	name, ok := keys.GetKeyName(msg.String())

	if m.focus == focusInput {
		// Printable keys always belong to the focused input.
		if !ok || msg.Type == tea.KeyRunes || !keys.InputScoped(name) {
			return m, m.updateInput(msg)
		}
	} else if msg.Type == tea.KeyEsc {
		m.setFocus(focusInput)
		return m, m.focusActiveInput()
	}

	if !ok {
		return m, nil
	}
	return m, tea.Batch(m.keydownCallback(name), m.handleKey(name))
}

// handleKey runs the action bound to name.
func (m *home) handleKey(name keys.KeyName) tea.Cmd {
	switch name {
	case keys.KeyGenerate:
		return m.generate()
	case keys.KeyNextTab:
		m.tabbedWindow.Toggle()
		m.syncMode()
		if m.focus == focusInput {
			return m.focusActiveInput()
		}
		return nil
	case keys.KeyFocus:
		if m.focus == focusInput {
			m.setFocus(focusPreview)
			return nil
		}
		m.setFocus(focusInput)
		return m.focusActiveInput()
	case keys.KeyOptions:
		return m.openOptions()
	case keys.KeyEditor:
		return m.openEditor()
	case keys.KeyCopy:
		return m.copyDocument()
	case keys.KeySave:
		return m.saveDocument()
	case keys.KeyUp:
		m.preview.ScrollUp()
	case keys.KeyDown:
		m.preview.ScrollDown()
	case keys.KeyPageUp:
		m.preview.PageUp()
	case keys.KeyPageDown:
		m.preview.PageDown()
	case keys.KeyHome:
		m.preview.ScrollToTop()
	case keys.KeyEnd:
		m.preview.ScrollToBottom()
	case keys.KeyHelp:
		_, cmd := m.showHelpScreen(helpTypeGeneral{}, nil)
		return cmd
	case keys.KeyErrorLog:
		m.showErrorLog()
	case keys.KeyKeybindings:
		return m.openKeybindingEditor()
	case keys.KeyQuit:
		_, cmd := m.handleQuit()
		return cmd
	}
	return nil
}

// generate starts a request from the active input. The request completes
// with an analyzedMsg once the configured latency has passed.
func (m *home) generate() tea.Cmd {
	req, err := m.collector.Begin()
	if errors.Is(err, session.ErrPending) {
		return m.handleInfo("Documentation is already being generated")
	}
	if err != nil {
		return m.handleError(err)
	}

	m.menu.SetGenerating(true)
	m.preview.SetPending(true, m.spinner.View())

	ctx, collector := m.ctx, m.collector
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			var done analyzedMsg
			if err := collector.Await(ctx, req, func(r doc.Request) {
				done.request = r
			}); err != nil {
				return generateFailedMsg{err: err}
			}
			return done
		},
	)
}

func loadFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := session.ReadSource(path)
		if err != nil {
			return err
		}
		return fileLoadedMsg{path: path, content: content}
	}
}

func (m *home) copyDocument() tea.Cmd {
	if !m.preview.HasDocument() {
		return m.handleInfo("Generate documentation first")
	}
	markdown := m.preview.Markdown()
	return func() tea.Msg {
		if err := export.CopyToClipboard(markdown); err != nil {
			return err
		}
		return copiedMsg{}
	}
}

func (m *home) saveDocument() tea.Cmd {
	if !m.preview.HasDocument() {
		return m.handleInfo("Generate documentation first")
	}
	markdown, dir := m.preview.Markdown(), m.appConfig.DownloadDir
	return func() tea.Msg {
		download, err := export.Save(markdown, dir, export.DefaultFilename)
		if err != nil {
			return err
		}
		return savedMsg{download: download}
	}
}

// sourceExtensions picks the temp file extension so editors pick a syntax.
var sourceExtensions = map[doc.Language]string{
	doc.LanguageJavaScript: ".js",
	doc.LanguageTypeScript: ".ts",
	doc.LanguagePython:     ".py",
	doc.LanguageJava:       ".java",
	doc.LanguageCSharp:     ".cs",
}

// openEditor suspends the UI and edits the paste buffer in the user's editor.
func (m *home) openEditor() tea.Cmd {
	if m.tabbedWindow.ActiveTab() != ui.PasteTab {
		m.tabbedWindow.SetTab(ui.PasteTab)
		m.syncMode()
	}

	f, err := os.CreateTemp("", "docgen-*"+sourceExtensions[m.collector.Language()])
	if err != nil {
		return m.handleError(fmt.Errorf("failed to create temp file: %w", err))
	}
	_, err = f.WriteString(m.paste.Value())
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(f.Name())
		return m.handleError(fmt.Errorf("failed to write temp file: %w", err))
	}

	argv := m.appConfig.EditorCommand()
	log.InfoLog.Printf("editing paste buffer with %s", strings.Join(argv, " "))
	cmd := util.Command("editor", argv[0], append(argv[1:], f.Name())...)
	path := f.Name()
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (m *home) handleEditorFinished(msg editorFinishedMsg) tea.Cmd {
	defer os.Remove(msg.path)
	if msg.err != nil {
		return m.handleError(fmt.Errorf("editor exited: %w", msg.err))
	}
	data, err := os.ReadFile(msg.path)
	if err != nil {
		return m.handleError(fmt.Errorf("failed to read edited code: %w", err))
	}

	m.paste.SetValue(string(data))
	m.collector.SetText(m.paste.Value())
	m.refreshStats()
	m.setFocus(focusInput)
	return m.focusActiveInput()
}

// handleHelpState handles key events when in help state
func (m *home) handleHelpState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textOverlay.HandleKeyPress(msg) {
		m.textOverlay = nil
		m.state = stateDefault
	}
	return m, nil
}

func (m *home) handleErrorLogState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.textOverlay.HandleKeyPress(msg) {
		m.textOverlay = nil
		m.state = stateDefault
	}
	return m, nil
}

// showErrorLog lists the recorded errors, newest first.
func (m *home) showErrorLog() {
	content := "No errors recorded."
	if len(m.errorLog) > 0 {
		lines := make([]string, 0, len(m.errorLog))
		for i := len(m.errorLog) - 1; i >= 0; i-- {
			lines = append(lines, m.errorLog[i])
		}
		content = strings.Join(lines, "\n")
	}

	m.textOverlay = overlay.NewTextOverlay(fmt.Sprintf("Error Log (%d)", len(m.errorLog)), content)
	if m.windowWidth > 0 && m.windowHeight > 0 {
		m.textOverlay.SetSize(m.calculateOverlayDimensions())
	}
	m.state = stateErrorLog
}

func (m *home) openKeybindingEditor() tea.Cmd {
	kb, err := config.LoadKeyBindings()
	var cmd tea.Cmd
	if err != nil {
		cmd = m.handleError(fmt.Errorf("editing default keybindings: %w", err))
		kb = config.DefaultKeyBindings()
	}
	m.keybindingEditor = overlay.NewKeybindingEditorOverlay(kb)
	if m.windowWidth > 0 && m.windowHeight > 0 {
		m.keybindingEditor.SetSize(m.calculateOverlayDimensions())
	}
	m.state = stateKeybindings
	return cmd
}

// handleKeybindingEditorState applies saved bindings once the editor closes.
func (m *home) handleKeybindingEditorState(msg tea.KeyMsg) tea.Cmd {
	if !m.keybindingEditor.HandleKeyPress(msg) {
		return nil
	}
	saved := m.keybindingEditor.Saved
	m.keybindingEditor = nil
	m.state = stateDefault
	if saved == nil {
		return nil
	}
	keys.ApplyKeyBindings(saved)
	return m.handleInfo("Saved keybindings")
}
