package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docgen/config"
	"docgen/doc"
	"docgen/keys"
	"docgen/log"
	"docgen/session"
	"docgen/ui"
	"docgen/ui/overlay"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errorLogLimit is how many errors the error log overlay keeps.
const errorLogLimit = 100

// Run is the main entrypoint into the application.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := keys.InitializeCustomKeyBindings(); err != nil {
		log.WarningLog.Printf("using default keybindings: %v", err)
	}
	SetupCommandLogging()

	p := tea.NewProgram(
		newHome(ctx, cfg, config.LoadState()),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Mouse scroll
	)
	_, err := p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// stateHelp is the state when a help screen is displayed.
	stateHelp
	// stateErrorLog is the state when displaying the error log.
	stateErrorLog
	// stateOptions is the state when the language and doc type form is open.
	stateOptions
	// stateKeybindings is the state when the keybinding editor is open.
	stateKeybindings
)

type focus int

const (
	focusInput focus = iota
	focusPreview
)

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	// appConfig stores persistent application configuration
	appConfig *config.Config
	// appState stores persistent application state like seen help screens
	appState config.AppState

	// -- State --

	// state is the current discrete state of the application
	state state
	// focus is the pane receiving keys in stateDefault
	focus focus
	// collector holds the input and the pending request
	collector *session.Collector

	windowWidth  int
	windowHeight int

	// -- UI Components --

	header       *ui.Header
	tabbedWindow *ui.TabbedWindow
	paste        *ui.InputPane
	file         *ui.FilePane
	repo         *ui.RepoPane
	preview      *ui.PreviewPane
	menu         *ui.Menu
	errBox       *ui.ErrBox
	// spinner animates the preview while a request is pending
	spinner spinner.Model
	// textOverlay displays help and the error log
	textOverlay *overlay.TextOverlay
	// optionsOverlay is the language and doc type form
	optionsOverlay *overlay.OptionsOverlay
	// keybindingEditor edits keybindings.json
	keybindingEditor *overlay.KeybindingEditorOverlay

	// errorLog stores all error messages for display
	errorLog []string
}

func newHome(ctx context.Context, cfg *config.Config, appState config.AppState) *home {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	paste := ui.NewInputPane()
	file := ui.NewFilePane("")
	repo := ui.NewRepoPane()

	h := &home{
		ctx:       ctx,
		appConfig: cfg,
		appState:  appState,
		collector: session.NewCollector(session.Options{
			DocType:  cfg.DefaultDocType,
			Language: cfg.DefaultLanguage,
			Latency:  cfg.AnalysisLatency(),
		}),
		header:       ui.NewHeader(),
		tabbedWindow: ui.NewTabbedWindow(paste, file, repo),
		paste:        paste,
		file:         file,
		repo:         repo,
		preview:      ui.NewPreviewPane(cfg.MarkdownStyle),
		menu:         ui.NewMenu(),
		errBox:       ui.NewErrBox(),
		spinner:      spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
	h.header.SetSelection(cfg.DefaultLanguage, cfg.DefaultDocType)
	h.setFocus(focusInput)
	h.refreshStats()

	h.showHelpScreen(helpTypeWelcome{}, nil)
	return h
}

// updateHandleWindowSizeEvent sets the sizes of the components.
// The components will try to render inside their bounds.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) tea.Cmd {
	m.windowWidth = msg.Width
	m.windowHeight = msg.Height

	// Input takes 45% of width, preview takes the rest
	inputWidth := int(float32(msg.Width) * 0.45)
	previewWidth := msg.Width - inputWidth

	// Header, menu and error box take one row each
	contentHeight := msg.Height - 3

	m.header.SetSize(msg.Width)
	m.preview.SetSize(previewWidth, contentHeight)
	m.menu.SetSize(msg.Width, 1)
	m.errBox.SetSize(int(float32(msg.Width)*0.9), 1)

	if m.textOverlay != nil {
		width, height := m.calculateOverlayDimensions()
		m.textOverlay.SetSize(width, height)
	}
	if m.optionsOverlay != nil {
		m.optionsOverlay.SetWidth(min(64, msg.Width-4))
	}
	if m.keybindingEditor != nil {
		m.keybindingEditor.SetSize(m.calculateOverlayDimensions())
	}
	return m.tabbedWindow.SetSize(inputWidth, contentHeight)
}

func (m *home) calculateOverlayDimensions() (int, int) {
	return int(float32(m.windowWidth) * 0.6), int(float32(m.windowHeight) * 0.8)
}

func (m *home) Init() tea.Cmd {
	return tea.Batch(
		m.file.Init(),
		m.paste.Focus(),
	)
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The form consumes every key while open. Other messages still reach
	// the rest of the app so pending work completes behind it.
	if m.state == stateOptions && m.optionsOverlay != nil {
		if _, ok := msg.(tea.WindowSizeMsg); !ok {
			cmd := m.optionsOverlay.Update(msg)
			if m.optionsOverlay.Done() {
				m.closeOptions()
			}
			if _, ok := msg.(tea.KeyMsg); ok {
				return m, cmd
			}
			cmds = append(cmds, cmd)
		}
	}

	switch msg := msg.(type) {
	case hideErrMsg:
		m.errBox.Clear()
	case keyupMsg:
		m.menu.ClearKeydown()
	case spinner.TickMsg:
		if !m.collector.Pending() {
			break
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.preview.SetPending(true, m.spinner.View())
		cmds = append(cmds, cmd)
	case analyzedMsg:
		m.showDocument(msg.request)
	case generateFailedMsg:
		m.stopPending()
		// A superseded or cancelled request has nothing to show.
		if errors.Is(msg.err, session.ErrStale) || errors.Is(msg.err, context.Canceled) {
			log.InfoLog.Printf("dropped request: %v", msg.err)
			break
		}
		cmds = append(cmds, m.handleError(msg.err))
	case fileLoadedMsg:
		cmds = append(cmds, m.handleFileLoaded(msg))
	case editorFinishedMsg:
		cmds = append(cmds, m.handleEditorFinished(msg))
	case copiedMsg:
		cmds = append(cmds, m.handleInfo("Copied documentation to clipboard"))
	case savedMsg:
		cmds = append(cmds, m.handleInfo(fmt.Sprintf("Saved %s (%s, %d bytes)",
			msg.download.Path, msg.download.ContentType, msg.download.Size)))
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || m.state != stateDefault {
			break
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.preview.ScrollUp()
		case tea.MouseButtonWheelDown:
			m.preview.ScrollDown()
		}
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		cmds = append(cmds, m.updateHandleWindowSizeEvent(msg))
	case error:
		// Errors returned by commands.
		cmds = append(cmds, m.handleError(msg))
	default:
		// Directory listings, cursor blinks and other widget internals.
		cmds = append(cmds, m.updateFilePane(msg))
		if m.tabbedWindow.ActiveTab() != ui.FileTab {
			cmds = append(cmds, m.updateInput(msg))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	log.InfoLog.Printf("quitting")
	return m, tea.Quit
}

func (m *home) setFocus(f focus) {
	m.focus = f
	m.tabbedWindow.SetFocused(f == focusInput)
	m.preview.SetFocused(f == focusPreview)
	if f == focusInput {
		m.menu.SetState(ui.MenuInput)
	} else {
		m.menu.SetState(ui.MenuPreview)
		m.paste.Blur()
		m.repo.Blur()
	}
}

// focusActiveInput focuses the widget of the active tab.
func (m *home) focusActiveInput() tea.Cmd {
	m.paste.Blur()
	m.repo.Blur()
	switch m.tabbedWindow.ActiveTab() {
	case ui.PasteTab:
		return m.paste.Focus()
	case ui.RepositoryTab:
		return m.repo.Focus()
	}
	return nil
}

// syncMode points the collector at the active tab.
func (m *home) syncMode() {
	switch m.tabbedWindow.ActiveTab() {
	case ui.PasteTab:
		m.collector.SetMode(session.ModePaste)
	case ui.FileTab:
		m.collector.SetMode(session.ModeFile)
	case ui.RepositoryTab:
		m.collector.SetMode(session.ModeRepository)
	}
	m.refreshStats()
}

func (m *home) refreshStats() {
	m.tabbedWindow.SetStats(ui.InputStats(m.collector.ActiveText()))
}

// updateInput forwards msg to the widget of the active tab.
func (m *home) updateInput(msg tea.Msg) tea.Cmd {
	switch m.tabbedWindow.ActiveTab() {
	case ui.PasteTab:
		cmd, changed := m.paste.Update(msg)
		if changed {
			m.collector.SetText(m.paste.Value())
			m.refreshStats()
		}
		return cmd
	case ui.RepositoryTab:
		cmd, changed := m.repo.Update(msg)
		if changed {
			m.collector.SetRepositoryURL(m.repo.Value())
			m.refreshStats()
		}
		return cmd
	case ui.FileTab:
		return m.updateFilePane(msg)
	}
	return nil
}

func (m *home) updateFilePane(msg tea.Msg) tea.Cmd {
	cmd, sel := m.file.Update(msg)
	switch {
	case sel.Path != "":
		return tea.Batch(cmd, loadFileCmd(sel.Path))
	case sel.Disabled != "":
		return tea.Batch(cmd, m.handleError(fmt.Errorf("%s is not a supported source file", sel.Disabled)))
	}
	return cmd
}

func (m *home) handleFileLoaded(msg fileLoadedMsg) tea.Cmd {
	m.collector.SetFile(msg.path, msg.content)
	cmd := m.file.SetFile(msg.path, msg.content)
	m.tabbedWindow.SetTab(ui.FileTab)
	m.syncMode()
	log.InfoLog.Printf("loaded %s (%d bytes)", msg.path, len(msg.content))
	return tea.Batch(cmd, m.handleInfo("Loaded "+msg.path))
}

// closeOptions applies a submitted options form and returns to the default state.
func (m *home) closeOptions() {
	if language, docType, ok := m.optionsOverlay.Submitted(); ok {
		m.collector.SetLanguage(language)
		m.collector.SetDocType(docType)
		m.header.SetSelection(language, docType)
		log.InfoLog.Printf("selected language=%s type=%s", language, docType)
	}
	m.optionsOverlay = nil
	m.state = stateDefault
}

func (m *home) openOptions() tea.Cmd {
	m.optionsOverlay = overlay.NewOptionsOverlay(m.collector.Language(), m.collector.DocType())
	m.optionsOverlay.SetWidth(min(64, m.windowWidth-4))
	m.state = stateOptions
	return m.optionsOverlay.Init()
}

// showDocument renders the request and puts it in the preview.
func (m *home) showDocument(req doc.Request) {
	document := doc.Generate(req)
	m.stopPending()
	m.preview.SetDocument(document.Markdown, m.collector.Latency())
	m.menu.SetHasDocument(true)
	log.InfoLog.Printf("request %s rendered (%d bytes)", req.ID, len(document.Markdown))
}

func (m *home) stopPending() {
	m.preview.SetPending(false, "")
	m.menu.SetGenerating(false)
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.menu.Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideErrMsg implements tea.Msg and clears the error text from the screen.
type hideErrMsg struct{}

// handleError handles all errors which get bubbled up to the app. sets the error message. We return a callback tea.Cmd that returns a hideErrMsg message
// which clears the error message after 3 seconds.
func (m *home) handleError(err error) tea.Cmd {
	log.ErrorLog.Printf("%v", err)
	m.errBox.SetError(err)

	// Store error in the error log with timestamp
	timestamp := time.Now().Format("15:04:05")
	errorMsg := fmt.Sprintf("[%s] %v", timestamp, err)
	m.errorLog = append(m.errorLog, errorMsg)

	if len(m.errorLog) > errorLogLimit {
		m.errorLog = m.errorLog[len(m.errorLog)-errorLogLimit:]
	}

	return m.hideAfterDelay()
}

// handleInfo shows a status message in the error box.
func (m *home) handleInfo(msg string) tea.Cmd {
	log.InfoLog.Print(msg)
	m.errBox.SetInfo(msg)
	return m.hideAfterDelay()
}

func (m *home) hideAfterDelay() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(3 * time.Second):
		}

		return hideErrMsg{}
	}
}

func (m *home) View() string {
	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.tabbedWindow.String(), m.preview.String())

	mainView := lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.String(),
		panes,
		m.menu.String(),
		m.errBox.String(),
	)

	switch m.state {
	case stateHelp, stateErrorLog:
		if m.textOverlay == nil {
			log.ErrorLog.Printf("text overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.textOverlay.Render(), mainView, true, true)
	case stateOptions:
		if m.optionsOverlay == nil {
			log.ErrorLog.Printf("options overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.optionsOverlay.Render(), mainView, true, true)
	case stateKeybindings:
		if m.keybindingEditor == nil {
			log.ErrorLog.Printf("keybinding editor is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.keybindingEditor.Render(), mainView, true, true)
	}
	return mainView
}
