package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF0000"})
	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#51bd73"})
)

// ErrBox is the single status line under the menu.
type ErrBox struct {
	height, width int
	message       string
	isError       bool
}

func NewErrBox() *ErrBox {
	return &ErrBox{}
}

func (e *ErrBox) SetError(err error) {
	if err == nil {
		e.Clear()
		return
	}
	e.message = err.Error()
	e.isError = true
}

// SetInfo shows a non-error status such as "Copied to clipboard".
func (e *ErrBox) SetInfo(msg string) {
	e.message = msg
	e.isError = false
}

func (e *ErrBox) Clear() {
	e.message = ""
	e.isError = false
}

func (e *ErrBox) Message() string {
	return e.message
}

func (e *ErrBox) SetSize(width, height int) {
	e.width = width
	e.height = height
}

func (e *ErrBox) String() string {
	msg := e.message
	if msg != "" {
		// Only the first line fits.
		msg = strings.Join(strings.Fields(strings.ReplaceAll(msg, "\n", " ")), " ")
		if e.width > 3 {
			msg = runewidth.Truncate(msg, e.width-2, "...")
		}
		if e.isError {
			msg = errStyle.Render(msg)
		} else {
			msg = infoStyle.Render(msg)
		}
	}
	return lipgloss.Place(e.width, max(e.height, 1), lipgloss.Center, lipgloss.Center, msg)
}
