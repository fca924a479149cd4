package ui

import (
	"docgen/doc"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(highlightColor)
	headerSubStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	headerBadgeStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#7D56F4"))
)

// Header shows the product name and the current selector values.
type Header struct {
	width    int
	language doc.Language
	docType  doc.DocType
}

func NewHeader() *Header {
	return &Header{}
}

func (h *Header) SetSize(width int) {
	h.width = width
}

func (h *Header) SetSelection(language doc.Language, docType doc.DocType) {
	h.language = language
	h.docType = docType
}

func (h *Header) String() string {
	left := headerTitleStyle.Render("DocGen") + " " +
		headerSubStyle.Render("Code Documentation Generator")
	right := headerBadgeStyle.Render(h.language.Label()) + " " +
		headerBadgeStyle.Render(h.docType.Label())

	gap := h.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(max(h.width, 1)).Render(left + " " + right)
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
