package overlay

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docgen/doc"
)

func background(width, height int) string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}
	return strings.Join(rows, "\n")
}

func TestPlaceOverlayAtPosition(t *testing.T) {
	out := PlaceOverlay(2, 1, "XX\nXX", background(10, 4), false, false)

	assert.Equal(t, strings.Join([]string{
		"..........",
		"..XX......",
		"..XX......",
		"..........",
	}, "\n"), out)
}

func TestPlaceOverlayCentered(t *testing.T) {
	out := PlaceOverlay(0, 0, "XXXX\nXXXX", background(10, 6), false, true)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 6)
	assert.Equal(t, "..........", lines[0])
	assert.Equal(t, "..........", lines[1])
	assert.Equal(t, "...XXXX...", lines[2])
	assert.Equal(t, "...XXXX...", lines[3])
	assert.Equal(t, "..........", lines[4])
}

func TestPlaceOverlayClampsOutOfBounds(t *testing.T) {
	out := PlaceOverlay(50, 50, "X", background(4, 2), false, false)
	assert.Equal(t, "....\n...X", out)
}

func TestPlaceOverlayLargerThanBackground(t *testing.T) {
	fg := "XXXXXX\nXXXXXX\nXXXXXX"
	assert.Equal(t, fg, PlaceOverlay(0, 0, fg, background(3, 2), false, true))
}

func TestPlaceOverlayShadow(t *testing.T) {
	out := PlaceOverlay(0, 0, "XX\nXX", background(8, 5), true, false)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "XX "))
	assert.Contains(t, lines[1], "░")
	assert.Contains(t, lines[2], "░░")
	assert.Equal(t, "........", lines[4])
}

func TestCutLeft(t *testing.T) {
	assert.Equal(t, "cdef", cutLeft("abcdef", 2))
	assert.Equal(t, "abc", cutLeft("abc", 0))
	assert.Equal(t, "", cutLeft("abc", 5))
	// Styles opened before the cut survive it.
	assert.Equal(t, "\x1b[31mcd\x1b[0m", cutLeft("\x1b[31mabcd\x1b[0m", 2))
	// A wide rune split by the cut becomes padding.
	assert.Equal(t, " x", cutLeft("世x", 1))
}

func TestTextOverlayDismiss(t *testing.T) {
	dismissed := false
	o := NewTextOverlay("Help", "line one\nline two")
	o.OnDismiss = func() { dismissed = true }
	o.SetSize(60, 20)

	assert.Contains(t, o.Render(), "line two")
	assert.True(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	assert.True(t, o.Dismissed)
	assert.True(t, dismissed)
}

func TestTextOverlayScrollKeysDoNotDismiss(t *testing.T) {
	o := NewTextOverlay("", strings.Repeat("row\n", 100))
	o.SetSize(40, 12)

	assert.False(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyDown}))
	assert.False(t, o.Dismissed)
	assert.Contains(t, o.Render(), "to scroll")
	assert.True(t, o.HandleKeyPress(tea.KeyMsg{Type: tea.KeyEsc}))
}

func TestOptionsOverlayCancel(t *testing.T) {
	o := NewOptionsOverlay(doc.LanguageTypeScript, doc.DocTypeClass)
	o.SetWidth(60)
	o.Init()

	assert.False(t, o.Done())
	o.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, o.Done())
	_, _, ok := o.Submitted()
	assert.False(t, ok)
}

func TestOptionsOverlayRendersSelection(t *testing.T) {
	o := NewOptionsOverlay(doc.LanguagePython, doc.DocTypeModule)
	o.SetWidth(60)
	o.Init()

	view := o.Render()
	assert.Contains(t, view, "Language")
	assert.Contains(t, view, "Python")
}
