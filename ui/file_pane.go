package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docgen/session"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// filepicker reserves this many rows below the listing when sizing itself
// from a WindowSizeMsg.
const filePickerMargin = 5

var (
	fileHeaderStyle = lipgloss.NewStyle().Bold(true)
	fileHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"})
	fileRuleStyle   = lipgloss.NewStyle().Foreground(highlightColor)
)

// FileSelection is what the file tab reports after handling a message.
type FileSelection struct {
	// Path is set when an allowed file was picked.
	Path string
	// Disabled is set when a file outside the allowed extensions was picked.
	Disabled string
}

// FilePane is the file tab: a picker restricted to source files plus a
// highlighted view of the loaded file.
type FilePane struct {
	picker  filepicker.Model
	path    string
	content string
	width   int
	height  int
}

func NewFilePane(dir string) *FilePane {
	fp := filepicker.New()
	fp.AllowedTypes = session.SourceExtensions
	fp.AutoHeight = true
	fp.ShowPermissions = false
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = wd
		}
	}
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return &FilePane{picker: fp}
}

// Init starts reading the picker's directory.
func (p *FilePane) Init() tea.Cmd {
	return p.picker.Init()
}

func (p *FilePane) pickerHeight() int {
	if p.path == "" {
		return max(p.height-2, 1)
	}
	return max(p.height/2-1, 1)
}

// SetSize resizes the pane. The returned command carries the new height to
// the picker, which sizes itself from window size messages.
func (p *FilePane) SetSize(width, height int) tea.Cmd {
	p.width = width
	p.height = height
	return p.resizePicker()
}

func (p *FilePane) resizePicker() tea.Cmd {
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(tea.WindowSizeMsg{
		Width:  p.width,
		Height: p.pickerHeight() + filePickerMargin,
	})
	return cmd
}

// Update forwards msg to the picker and reports any file selection.
func (p *FilePane) Update(msg tea.Msg) (tea.Cmd, FileSelection) {
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)

	var sel FileSelection
	if ok, path := p.picker.DidSelectFile(msg); ok {
		sel.Path = path
	} else if ok, path := p.picker.DidSelectDisabledFile(msg); ok {
		sel.Disabled = path
	}
	return cmd, sel
}

// SetFile shows content as the loaded file.
func (p *FilePane) SetFile(path, content string) tea.Cmd {
	hadFile := p.path != ""
	p.path = path
	p.content = content
	if !hadFile {
		return p.resizePicker()
	}
	return nil
}

func (p *FilePane) Path() string {
	return p.path
}

func (p *FilePane) String() string {
	header := fileHeaderStyle.Render("Select a file") + " " +
		fileHintStyle.Render("("+strings.Join(session.SourceExtensions, ", ")+")")
	parts := []string{header, p.picker.View()}

	if p.path != "" {
		rule := fileRuleStyle.Render(strings.Repeat("─", max(p.width, 1)))
		loaded := fileHeaderStyle.Render("Loaded: ") + filepath.Base(p.path)
		parts = append(parts, rule, loaded, p.renderContent())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderContent highlights as many lines of the loaded file as fit.
func (p *FilePane) renderContent() string {
	avail := p.height - p.pickerHeight() - 4
	if avail < 1 {
		return ""
	}
	lines := strings.Split(p.content, "\n")
	more := 0
	if len(lines) > avail {
		more = len(lines) - avail + 1
		lines = lines[:avail-1]
	}

	lang := strings.TrimPrefix(filepath.Ext(p.path), ".")
	body := HighlightCode(strings.Join(lines, "\n"), lang)
	if more > 0 {
		body = lipgloss.JoinVertical(lipgloss.Left, body, fileHintStyle.Render(fmt.Sprintf("… %d more lines", more)))
	}
	return lipgloss.NewStyle().MaxWidth(max(p.width, 1)).Render(body)
}
