package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	highlightColor    = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	dimColor          = lipgloss.AdaptiveColor{Light: "#C4C4C4", Dark: "#4A4A4A"}
	inactiveTabStyle  = lipgloss.NewStyle().
				Border(inactiveTabBorder, true).
				BorderForeground(highlightColor).
				AlignHorizontal(lipgloss.Center)
	activeTabStyle = inactiveTabStyle.
			Border(activeTabBorder, true).
			AlignHorizontal(lipgloss.Center)
	windowStyle = lipgloss.NewStyle().
			BorderForeground(highlightColor).
			Border(lipgloss.NormalBorder(), false, true, true, true)
)

const (
	PasteTab = iota
	FileTab
	RepositoryTab
)

// TabbedWindow has tabs at the top of a pane which can be selected. The tabs
// take up one rune of height. It holds the three input modes.
type TabbedWindow struct {
	tabs []string

	activeTab int
	focused   bool
	height    int
	width     int
	stats     string

	paste *InputPane
	file  *FilePane
	repo  *RepoPane
}

func NewTabbedWindow(paste *InputPane, file *FilePane, repo *RepoPane) *TabbedWindow {
	return &TabbedWindow{
		tabs: []string{
			"Paste Code",
			"Upload File",
			"GitHub Repo",
		},
		paste: paste,
		file:  file,
		repo:  repo,
	}
}

// SetSize sets the outer size of the window and returns the command produced
// by resizing the file picker.
func (w *TabbedWindow) SetSize(width, height int) tea.Cmd {
	w.width = width
	w.height = height

	// Content height leaves room for the tab row, the window border and the
	// stats footer.
	contentWidth, contentHeight := w.contentSize()
	w.paste.SetSize(contentWidth, contentHeight)
	w.repo.SetSize(contentWidth, contentHeight)
	return w.file.SetSize(contentWidth, contentHeight)
}

func (w *TabbedWindow) contentSize() (int, int) {
	tabHeight := activeTabStyle.GetVerticalFrameSize() + 1
	contentHeight := w.height - tabHeight - windowStyle.GetVerticalFrameSize() - 1
	contentWidth := w.width - windowStyle.GetHorizontalFrameSize()
	return max(contentWidth, 1), max(contentHeight, 1)
}

// Toggle selects the next tab.
func (w *TabbedWindow) Toggle() {
	w.cycleTabs(1)
}

// cycleTabs handles cycling through tabs in a given direction.
func (w *TabbedWindow) cycleTabs(direction int) {
	if len(w.tabs) == 0 {
		return
	}
	numTabs := len(w.tabs)
	w.activeTab = (w.activeTab + direction + numTabs) % numTabs
}

// SetTab sets the active tab directly by index
func (w *TabbedWindow) SetTab(tabIndex int) {
	if tabIndex >= 0 && tabIndex < len(w.tabs) {
		w.activeTab = tabIndex
	}
}

func (w *TabbedWindow) ActiveTab() int {
	return w.activeTab
}

// SetFocused draws the window border dimmed when another pane has focus.
func (w *TabbedWindow) SetFocused(focused bool) {
	w.focused = focused
}

// SetStats sets the footer shown under the active input.
func (w *TabbedWindow) SetStats(stats string) {
	w.stats = stats
}

func (w *TabbedWindow) String() string {
	if w.width == 0 || w.height == 0 {
		return ""
	}

	color := lipgloss.TerminalColor(highlightColor)
	if !w.focused {
		color = dimColor
	}

	var renderedTabs []string

	tabWidth := w.width / len(w.tabs)
	lastTabWidth := w.width - tabWidth*(len(w.tabs)-1)
	for i, t := range w.tabs {
		width := tabWidth
		if i == len(w.tabs)-1 {
			width = lastTabWidth
		}

		var style lipgloss.Style
		isFirst, isLast, isActive := i == 0, i == len(w.tabs)-1, i == w.activeTab
		if isActive {
			style = activeTabStyle
		} else {
			style = inactiveTabStyle
		}
		border, _, _, _, _ := style.GetBorder()
		if isFirst && isActive {
			border.BottomLeft = "│"
		} else if isFirst {
			border.BottomLeft = "├"
		} else if isLast && isActive {
			border.BottomRight = "│"
		} else if isLast {
			border.BottomRight = "┤"
		}
		style = style.Border(border).BorderForeground(color)
		style = style.Width(width - style.GetHorizontalFrameSize())
		renderedTabs = append(renderedTabs, style.Render(t))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
	var content string
	switch w.activeTab {
	case PasteTab:
		content = w.paste.String()
	case FileTab:
		content = w.file.String()
	case RepositoryTab:
		content = w.repo.String()
	}
	contentWidth, contentHeight := w.contentSize()
	content = lipgloss.NewStyle().MaxWidth(contentWidth).MaxHeight(contentHeight).Render(content)
	window := windowStyle.BorderForeground(color).Render(
		lipgloss.Place(
			contentWidth, contentHeight,
			lipgloss.Left, lipgloss.Top, content))

	return lipgloss.JoinVertical(lipgloss.Left, row, window, w.stats)
}
