package overlay

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// whitespace fills the gaps PlaceOverlay has to pad with.
type whitespace struct {
	style termenv.Style
	chars string
}

// WhitespaceOption sets a styling rule for rendering whitespace.
type WhitespaceOption func(*whitespace)

// WithWhitespaceChars sets the characters used to fill gaps.
func WithWhitespaceChars(s string) WhitespaceOption {
	return func(w *whitespace) {
		w.chars = s
	}
}

// WithWhitespaceForeground colors the fill characters.
func WithWhitespaceForeground(color string) WhitespaceOption {
	return func(w *whitespace) {
		w.style = w.style.Foreground(termenv.ColorProfile().Color(color))
	}
}

// render returns width cells of fill.
func (w whitespace) render(width int) string {
	if width <= 0 {
		return ""
	}
	chars := []rune(w.chars)
	if len(chars) == 0 {
		chars = []rune{' '}
	}

	var b strings.Builder
	for i, filled := 0, 0; filled < width; i++ {
		r := chars[i%len(chars)]
		b.WriteRune(r)
		filled += max(runewidth.RuneWidth(r), 1)
	}
	// Wide fill characters may overshoot.
	out := truncate.String(b.String(), uint(width))
	if pad := width - ansi.PrintableRuneWidth(out); pad > 0 {
		out += strings.Repeat(" ", pad)
	}
	return w.style.Styled(out)
}

// PlaceOverlay draws fg on top of bg. When center is set, x and y are
// ignored and fg is centered over bg; otherwise fg's top-left corner goes to
// column x of line y. A drop shadow is drawn below and to the right of fg
// when shadow is set. Cells of bg outside fg's box are left untouched.
func PlaceOverlay(x, y int, fg, bg string, shadow bool, center bool, opts ...WhitespaceOption) string {
	fgLines, fgWidth := lines(fg)
	bgLines, bgWidth := lines(bg)
	bgHeight := len(bgLines)

	if shadow {
		fgLines, fgWidth = withShadow(fgLines, fgWidth)
	}
	fgHeight := len(fgLines)

	// Nothing to overlay onto.
	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return strings.Join(fgLines, "\n")
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, max(bgWidth-fgWidth, 0))
	y = clamp(y, 0, max(bgHeight-fgHeight, 0))

	ws := &whitespace{}
	for _, opt := range opts {
		opt(ws)
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(ws.render(x - pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		rightWidth := ansi.PrintableRuneWidth(right)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		if rightWidth <= lineWidth-pos {
			b.WriteString(ws.render(lineWidth - rightWidth - pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

// lines splits s and returns its lines and widest printable width.
func lines(s string) ([]string, int) {
	ls := strings.Split(s, "\n")
	width := 0
	for _, l := range ls {
		width = max(width, ansi.PrintableRuneWidth(l))
	}
	return ls, width
}

var shadowStyle = termenv.Style{}.Foreground(termenv.ANSI256Color(237))

// withShadow appends a one-cell shadow to the right and bottom of box.
func withShadow(box []string, width int) ([]string, int) {
	out := make([]string, 0, len(box)+1)
	for i, l := range box {
		pad := width - ansi.PrintableRuneWidth(l)
		shade := " "
		if i > 0 {
			shade = shadowStyle.Styled("░")
		}
		out = append(out, l+strings.Repeat(" ", pad)+shade)
	}
	out = append(out, " "+shadowStyle.Styled(strings.Repeat("░", width)))
	return out, width + 1
}

// cutLeft drops the first n printable cells of s, keeping the escape
// sequences that were active so the remainder keeps its styling. A wide
// rune straddling the cut is replaced by spaces.
func cutLeft(s string, n int) string {
	var (
		prefix   strings.Builder
		width    int
		inEscape bool
	)
	for i, r := range s {
		if r == ansi.Marker {
			inEscape = true
		}
		if inEscape {
			prefix.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEscape = false
			}
			continue
		}
		if width >= n {
			return prefix.String() + s[i:]
		}
		rw := runewidth.RuneWidth(r)
		width += rw
		if width > n {
			return prefix.String() + strings.Repeat(" ", width-n) + s[i+len(string(r)):]
		}
	}
	return prefix.String()
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
