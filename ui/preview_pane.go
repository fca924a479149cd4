package ui

import (
	"fmt"
	"time"

	"docgen/log"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var (
	previewTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(highlightColor)
	previewBoxStyle   = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(highlightColor)
	previewEmptyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}).
				Align(lipgloss.Center)
	previewFooterStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
)

// PreviewPane shows the generated documentation rendered as Markdown.
type PreviewPane struct {
	viewport viewport.Model
	width    int
	height   int
	focused  bool
	style    string

	markdown string
	latency  time.Duration
	// rendered caches the glamour output for renderedWidth.
	rendered      string
	renderedWidth int

	pending bool
	spinner string
}

func NewPreviewPane(style string) *PreviewPane {
	return &PreviewPane{
		viewport: viewport.New(0, 0),
		style:    style,
	}
}

func (p *PreviewPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	// Border on each side, plus the title row and the footer row.
	p.viewport.Width = max(width-previewBoxStyle.GetHorizontalFrameSize(), 1)
	p.viewport.Height = max(height-previewBoxStyle.GetVerticalFrameSize()-2, 1)
	p.refresh(false)
}

func (p *PreviewPane) SetFocused(focused bool) {
	p.focused = focused
}

// SetDocument replaces the previewed markdown and scrolls back to the top.
func (p *PreviewPane) SetDocument(markdown string, latency time.Duration) {
	p.markdown = markdown
	p.latency = latency
	p.pending = false
	p.renderedWidth = 0
	p.refresh(true)
}

func (p *PreviewPane) Markdown() string {
	return p.markdown
}

func (p *PreviewPane) HasDocument() bool {
	return p.markdown != ""
}

// SetPending shows the spinner frame in place of the document while a
// request is in flight.
func (p *PreviewPane) SetPending(pending bool, spinner string) {
	p.pending = pending
	p.spinner = spinner
}

func (p *PreviewPane) refresh(top bool) {
	if p.markdown == "" {
		p.viewport.SetContent("")
		return
	}
	if p.renderedWidth != p.viewport.Width {
		out, err := RenderMarkdown(p.markdown, p.viewport.Width, p.style)
		if err != nil {
			log.WarningLog.Printf("preview: falling back to raw markdown: %v", err)
			out = p.markdown
		}
		p.rendered = out
		p.renderedWidth = p.viewport.Width
	}
	p.viewport.SetContent(p.rendered)
	if top {
		p.viewport.GotoTop()
	}
}

func (p *PreviewPane) ScrollUp() {
	p.viewport.LineUp(1)
}

func (p *PreviewPane) ScrollDown() {
	p.viewport.LineDown(1)
}

func (p *PreviewPane) PageUp() {
	p.viewport.ViewUp()
}

func (p *PreviewPane) PageDown() {
	p.viewport.ViewDown()
}

func (p *PreviewPane) ScrollToTop() {
	p.viewport.GotoTop()
}

func (p *PreviewPane) ScrollToBottom() {
	p.viewport.GotoBottom()
}

// Footer describes the current document.
func (p *PreviewPane) Footer() string {
	if p.markdown == "" {
		return ""
	}
	return fmt.Sprintf("Documentation format: Markdown | Generated in %s", p.latency)
}

func (p *PreviewPane) String() string {
	if p.width == 0 || p.height == 0 {
		return ""
	}

	box := previewBoxStyle
	if !p.focused {
		box = box.BorderForeground(dimColor)
	}

	var body string
	switch {
	case p.pending:
		body = lipgloss.Place(p.viewport.Width, p.viewport.Height, lipgloss.Center, lipgloss.Center,
			p.spinner+" Generating...")
	case p.markdown == "":
		body = lipgloss.Place(p.viewport.Width, p.viewport.Height, lipgloss.Center, lipgloss.Center,
			previewEmptyStyle.Render("Your generated documentation will appear here.\nPaste code, pick a file or enter a repository URL, then press generate."))
	default:
		body = p.viewport.View()
	}

	title := previewTitleStyle.Render("Generated Documentation")
	if heading := FirstHeading(p.markdown); heading != "" && !p.pending {
		title += previewFooterStyle.Render(" · " + heading)
	}
	footer := previewFooterStyle.Render(p.Footer())
	if p.markdown != "" && !p.pending && p.viewport.TotalLineCount() > p.viewport.Height {
		footer = lipgloss.JoinHorizontal(lipgloss.Top, footer,
			previewFooterStyle.Render(fmt.Sprintf("  %3.f%%", p.viewport.ScrollPercent()*100)))
	}
	inner := lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
	return box.Width(p.width - box.GetHorizontalFrameSize()).Render(inner)
}
