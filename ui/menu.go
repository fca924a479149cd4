package ui

import (
	"strings"

	"docgen/keys"

	"github.com/charmbracelet/lipgloss"
)

var (
	keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#655F5F",
		Dark:  "#7F7A7A",
	})
	descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#7A7474",
		Dark:  "#9C9494",
	})
	disabledStyle = lipgloss.NewStyle().Foreground(dimColor)
	sepStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
		Light: "#DDDADA",
		Dark:  "#3C3C3C",
	})
	actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	menuStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))
)

var separator = " • "
var verticalSeparator = " │ "

// MenuState is which pane the menu is describing.
type MenuState int

const (
	MenuInput MenuState = iota
	MenuPreview
)

var (
	inputOptions   = []keys.KeyName{keys.KeyGenerate, keys.KeyNextTab, keys.KeyFocus, keys.KeyOptions, keys.KeyEditor}
	previewOptions = []keys.KeyName{keys.KeyCopy, keys.KeySave, keys.KeyUp, keys.KeyDown, keys.KeyFocus}
	systemOptions  = []keys.KeyName{keys.KeyHelp, keys.KeyErrorLog, keys.KeyQuit}
)

// Menu renders the key hints at the bottom of the screen.
type Menu struct {
	state      MenuState
	generating bool
	hasDoc     bool
	keyDown    keys.KeyName
	isKeyDown  bool
	width      int
}

func NewMenu() *Menu {
	return &Menu{}
}

func (m *Menu) SetState(state MenuState) {
	m.state = state
}

// SetGenerating dims the generate hint while a request is pending.
func (m *Menu) SetGenerating(generating bool) {
	m.generating = generating
}

// SetHasDocument enables the copy and save hints.
func (m *Menu) SetHasDocument(hasDoc bool) {
	m.hasDoc = hasDoc
}

// Keydown underlines the hint for name until ClearKeydown.
func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
	m.isKeyDown = true
}

func (m *Menu) ClearKeydown() {
	m.isKeyDown = false
}

func (m *Menu) SetSize(width, height int) {
	m.width = width
}

func (m *Menu) disabled(k keys.KeyName) bool {
	switch k {
	case keys.KeyGenerate:
		return m.generating
	case keys.KeyCopy, keys.KeySave:
		return !m.hasDoc
	}
	return false
}

func (m *Menu) renderGroup(names []keys.KeyName, style lipgloss.Style) string {
	var s strings.Builder
	for i, k := range names {
		binding := keys.GlobalkeyBindings[k]

		ks, ds := keyStyle, descStyle
		if m.disabled(k) {
			ks, ds = disabledStyle, disabledStyle
		} else {
			ks, ds = ks.Inherit(style), ds.Inherit(style)
		}
		if m.isKeyDown && k == m.keyDown {
			ks = ks.Underline(true)
			ds = ds.Underline(true)
		}

		s.WriteString(ks.Render(binding.Help().Key))
		s.WriteString(" ")
		s.WriteString(ds.Render(binding.Help().Desc))
		if i != len(names)-1 {
			s.WriteString(sepStyle.Render(separator))
		}
	}
	return s.String()
}

func (m *Menu) String() string {
	options := inputOptions
	if m.state == MenuPreview {
		options = previewOptions
	}

	line := m.renderGroup(options, actionGroupStyle) +
		sepStyle.Render(verticalSeparator) +
		m.renderGroup(systemOptions, lipgloss.NewStyle())

	return menuStyle.Render(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line))
}
