package app

import (
	"docgen/keys"
	"docgen/log"
	"docgen/ui/overlay"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type helpText interface {
	// title is shown at the top of the overlay.
	title() string
	// toContent returns the help UI content.
	toContent() string
	// mask returns the bit mask for this help text. These are used to track which help screens
	// have been seen in the config and app state.
	mask() uint32
}

type helpTypeGeneral struct{}

type helpTypeWelcome struct{}

// keyLine renders one "key - description" row using the current bindings.
func keyLine(name keys.KeyName, desc string) string {
	help := keys.GlobalkeyBindings[name].Help()
	return keyStyle.Render(fmt.Sprintf("%-12s", help.Key)) + descStyle.Render("- "+desc)
}

func (h helpTypeGeneral) title() string {
	return "DocGen"
}

func (h helpTypeGeneral) toContent() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		"Generates Markdown documentation from pasted code, a source file or a repository URL.",
		"",
		headerStyle.Render("Input:"),
		keyLine(keys.KeyNextTab, "Switch between Paste, File and Repository"),
		keyLine(keys.KeyOptions, "Choose language and documentation type"),
		keyLine(keys.KeyEditor, "Edit the pasted code in $EDITOR"),
		keyLine(keys.KeyGenerate, "Generate documentation"),
		keyLine(keys.KeyFocus, "Switch between input and preview"),
		"",
		headerStyle.Render("Preview:"),
		keyLine(keys.KeyCopy, "Copy the Markdown to the clipboard"),
		keyLine(keys.KeySave, "Save the Markdown as documentation.md"),
		keyLine(keys.KeyUp, "Scroll up"),
		keyLine(keys.KeyDown, "Scroll down"),
		keyLine(keys.KeyPageUp, "Page up"),
		keyLine(keys.KeyPageDown, "Page down"),
		keyLine(keys.KeyHome, "Scroll to top"),
		keyLine(keys.KeyEnd, "Scroll to bottom"),
		keyStyle.Render(fmt.Sprintf("%-12s", "esc"))+descStyle.Render("- Back to input"),
		"",
		headerStyle.Render("Other:"),
		keyLine(keys.KeyHelp, "Show this help screen"),
		keyLine(keys.KeyErrorLog, "View error log"),
		keyLine(keys.KeyKeybindings, "Edit keybindings"),
		keyLine(keys.KeyQuit, "Quit the application (ctrl+c works anywhere)"),
		keyStyle.Render(fmt.Sprintf("%-12s", "mouse"))+descStyle.Render("- Use mouse wheel to scroll the preview"),
	)
	return content
}

func (h helpTypeWelcome) title() string {
	return "Welcome to DocGen"
}

func (h helpTypeWelcome) toContent() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		descStyle.Render("1. Paste code, pick a .js/.jsx/.ts/.tsx file or enter a GitHub URL."),
		descStyle.Render("2. Pick a language and documentation type."),
		descStyle.Render("3. Generate, then copy or save the result."),
		"",
		keyLine(keys.KeyGenerate, "Generate documentation"),
		keyLine(keys.KeyHelp, "Show all keys"),
		"",
		dimStyle.Render("Documentation is produced from simple pattern matching on the"),
		dimStyle.Render("input; no code is executed, parsed or sent anywhere."),
		dimStyle.Render("This screen is only shown once."),
	)
	return content
}

func (h helpTypeGeneral) mask() uint32 {
	return 1
}

func (h helpTypeWelcome) mask() uint32 {
	return 1 << 1
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#36CFC9"))
	keyStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFCC00"))
	descStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// showHelpScreen displays the help screen overlay if it hasn't been shown before
func (m *home) showHelpScreen(helpType helpText, onDismiss func()) (tea.Model, tea.Cmd) {
	// Get the flag for this help type
	var alwaysShow bool
	switch helpType.(type) {
	case helpTypeGeneral:
		alwaysShow = true
	}

	flag := helpType.mask()

	// Only show if we're showing the general help screen or the corresponding flag is not set
	// in the seen bitmask.
	if alwaysShow || (m.appState.GetHelpScreensSeen()&flag) == 0 {
		// Mark this help screen as seen and save state
		if err := m.appState.SetHelpScreensSeen(m.appState.GetHelpScreensSeen() | flag); err != nil {
			log.WarningLog.Printf("Failed to save help screen state: %v", err)
		}

		m.textOverlay = overlay.NewTextOverlay(helpType.title(), helpType.toContent())
		m.textOverlay.OnDismiss = onDismiss
		// Set the overlay size based on current window dimensions
		if m.windowWidth > 0 && m.windowHeight > 0 {
			m.textOverlay.SetSize(m.calculateOverlayDimensions())
		}
		m.state = stateHelp
		return m, nil
	}

	// Skip displaying the help screen
	if onDismiss != nil {
		onDismiss()
	}
	return m, nil
}
