package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	repoLabelStyle = lipgloss.NewStyle().Bold(true)
	repoNoteStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
)

// RepoPane is the repository tab. The URL is validated but never fetched.
type RepoPane struct {
	input  textinput.Model
	width  int
	height int
}

func NewRepoPane() *RepoPane {
	ti := textinput.New()
	ti.Placeholder = "https://github.com/username/repository"
	ti.Prompt = "> "
	ti.CharLimit = 0
	return &RepoPane{input: ti}
}

func (p *RepoPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.input.Width = max(width-lipgloss.Width(p.input.Prompt)-1, 1)
}

func (p *RepoPane) Focus() tea.Cmd {
	return p.input.Focus()
}

func (p *RepoPane) Blur() {
	p.input.Blur()
}

// Update forwards msg to the URL input. It reports whether the value changed.
func (p *RepoPane) Update(msg tea.Msg) (tea.Cmd, bool) {
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, p.input.Value() != before
}

func (p *RepoPane) Value() string {
	return p.input.Value()
}

func (p *RepoPane) SetValue(value string) {
	p.input.SetValue(value)
}

func (p *RepoPane) String() string {
	note := repoNoteStyle.Width(max(p.width, 1)).Render(
		"Documentation is generated from the URL alone; the repository is not cloned or fetched.")
	return lipgloss.JoinVertical(lipgloss.Left,
		repoLabelStyle.Render("GitHub Repository URL"),
		"",
		p.input.View(),
		"",
		note,
	)
}
