package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pastePlaceholder = "Paste your JavaScript, React, or any code here..."

var statsStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})

// InputPane is the paste tab: a free-form text area with no length limit.
type InputPane struct {
	textarea textarea.Model
	width    int
	height   int
}

func NewInputPane() *InputPane {
	ta := textarea.New()
	ta.Placeholder = pastePlaceholder
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	return &InputPane{textarea: ta}
}

func (p *InputPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.textarea.SetWidth(max(width, 1))
	p.textarea.SetHeight(max(height, 1))
}

func (p *InputPane) Focus() tea.Cmd {
	return p.textarea.Focus()
}

func (p *InputPane) Blur() {
	p.textarea.Blur()
}

func (p *InputPane) Focused() bool {
	return p.textarea.Focused()
}

// Update forwards msg to the text area. It reports whether the value changed.
func (p *InputPane) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := p.textarea.Value()
	var cmd tea.Cmd
	p.textarea, cmd = p.textarea.Update(msg)
	return cmd, p.textarea.Value() != before
}

func (p *InputPane) Value() string {
	return p.textarea.Value()
}

func (p *InputPane) SetValue(value string) {
	p.textarea.SetValue(value)
}

func (p *InputPane) String() string {
	return p.textarea.View()
}

// InputStats formats the line and character counts shown under the input.
func InputStats(text string) string {
	lines := strings.Count(text, "\n") + 1
	return statsStyle.Render(fmt.Sprintf("Lines: %d | Characters: %d", lines, utf8.RuneCountInString(text)))
}
