package overlay

import (
	"docgen/doc"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var optionsStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

// OptionsOverlay is the language and documentation type form.
type OptionsOverlay struct {
	form     *huh.Form
	language doc.Language
	docType  doc.DocType
	width    int
}

// NewOptionsOverlay builds the form preset to the current selection.
func NewOptionsOverlay(language doc.Language, docType doc.DocType) *OptionsOverlay {
	o := &OptionsOverlay{language: language, docType: docType}

	languages := make([]huh.Option[doc.Language], 0, len(doc.Languages()))
	for _, l := range doc.Languages() {
		languages = append(languages, huh.NewOption(l.Label(), l))
	}
	docTypes := make([]huh.Option[doc.DocType], 0, len(doc.DocTypes()))
	for _, d := range doc.DocTypes() {
		docTypes = append(docTypes, huh.NewOption(d.Label(), d))
	}

	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel"))

	o.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[doc.Language]().
				Title("Language").
				Options(languages...).
				Value(&o.language),
			huh.NewSelect[doc.DocType]().
				Title("Documentation type").
				Options(docTypes...).
				Value(&o.docType),
		),
	).WithKeyMap(km).WithShowHelp(true)
	return o
}

// Init returns the form's start-up command.
func (o *OptionsOverlay) Init() tea.Cmd {
	return o.form.Init()
}

// Update forwards msg to the form.
func (o *OptionsOverlay) Update(msg tea.Msg) tea.Cmd {
	m, cmd := o.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		o.form = f
	}
	return cmd
}

// Done reports whether the form was submitted or cancelled.
func (o *OptionsOverlay) Done() bool {
	return o.form.State != huh.StateNormal
}

// Submitted reports whether the form completed and returns the choices.
func (o *OptionsOverlay) Submitted() (doc.Language, doc.DocType, bool) {
	if o.form.State != huh.StateCompleted {
		return 0, 0, false
	}
	return o.language, o.docType, true
}

func (o *OptionsOverlay) SetWidth(width int) {
	o.width = width
	o.form = o.form.WithWidth(max(width-optionsStyle.GetHorizontalFrameSize(), 20))
}

func (o *OptionsOverlay) Render() string {
	title := textTitleStyle.Render("Documentation options")
	return optionsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", o.form.View()))
}
