package overlay

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	textOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(1, 2)
	textTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	scrollHelp     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// scrollKeys are handled by the overlay when its content overflows. Any
// other key dismisses it.
var scrollKeys = struct {
	up, down, pageUp, pageDown, top, bottom key.Binding
}{
	up:       key.NewBinding(key.WithKeys("up", "k")),
	down:     key.NewBinding(key.WithKeys("down", "j")),
	pageUp:   key.NewBinding(key.WithKeys("pgup")),
	pageDown: key.NewBinding(key.WithKeys("pgdown")),
	top:      key.NewBinding(key.WithKeys("home", "g")),
	bottom:   key.NewBinding(key.WithKeys("end", "G")),
}

// TextOverlay is a dismissable, scrollable text box used for help and the
// error log.
type TextOverlay struct {
	// Dismissed is set once any non-scroll key was pressed.
	Dismissed bool
	// OnDismiss runs when the overlay is dismissed.
	OnDismiss func()

	title    string
	content  string
	viewport viewport.Model
	width    int
	height   int
	// needsScrolling is set when content is taller than the viewport.
	needsScrolling bool
}

// NewTextOverlay creates a text overlay. title may be empty.
func NewTextOverlay(title, content string) *TextOverlay {
	t := &TextOverlay{
		title:    title,
		content:  content,
		viewport: viewport.New(0, 0),
	}
	t.viewport.SetContent(content)
	return t
}

// HandleKeyPress processes a key press. It returns true if the overlay
// should be closed.
func (t *TextOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	if t.needsScrolling {
		switch {
		case key.Matches(msg, scrollKeys.up):
			t.viewport.LineUp(1)
			return false
		case key.Matches(msg, scrollKeys.down):
			t.viewport.LineDown(1)
			return false
		case key.Matches(msg, scrollKeys.pageUp):
			t.viewport.HalfViewUp()
			return false
		case key.Matches(msg, scrollKeys.pageDown):
			t.viewport.HalfViewDown()
			return false
		case key.Matches(msg, scrollKeys.top):
			t.viewport.GotoTop()
			return false
		case key.Matches(msg, scrollKeys.bottom):
			t.viewport.GotoBottom()
			return false
		}
	}

	t.Dismissed = true
	if t.OnDismiss != nil {
		t.OnDismiss()
	}
	return true
}

// Render renders the overlay box.
func (t *TextOverlay) Render() string {
	style := textOverlayStyle
	if t.width > 0 {
		style = style.Width(t.width)
	}

	body := t.content
	if t.needsScrolling {
		body = lipgloss.JoinVertical(lipgloss.Left,
			t.viewport.View(),
			"",
			scrollHelp.Render("↑/↓ to scroll • Press any other key to close"))
	}
	if t.title != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, textTitleStyle.Render(t.title), "", body)
	}
	return style.Render(body)
}

// SetSize updates the dimensions of the overlay.
func (t *TextOverlay) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.updateViewport()
}

func (t *TextOverlay) updateViewport() {
	if t.height == 0 || t.width == 0 {
		return
	}

	// Border and padding take 4 rows, the scroll hint 2 more and the
	// title 2 when present.
	overhead := 6
	if t.title != "" {
		overhead += 2
	}
	t.viewport.Width = max(t.width-textOverlayStyle.GetHorizontalPadding(), 1)
	t.viewport.Height = max(t.height-overhead, 1)
	t.needsScrolling = lipgloss.Height(t.content) > t.viewport.Height
}
