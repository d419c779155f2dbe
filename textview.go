package wijjit

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TextView displays multi-line text with word wrapping inside a scrollable
// viewport. Content is re-wrapped only when the text or viewport width
// changes.
type TextView struct {
	baseWidget
	text      string
	lines     []string
	wrapWidth int
	scroll    *ScrollState
	prefW     int
	prefH     int
	showBar   bool
}

// NewTextView creates a text view with the given preferred viewport size.
func NewTextView(text string, width, height int) *TextView {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &TextView{
		text:    text,
		scroll:  NewScrollState(0, height, 0),
		prefW:   width,
		prefH:   height,
		showBar: true,
	}
}

// SetText replaces the content. The scroll position clamps to the new
// extent on the next layout pass.
func (tv *TextView) SetText(s string) {
	tv.text = s
	tv.wrapWidth = 0 // force re-wrap
}

// Text returns the unwrapped content.
func (tv *TextView) Text() string { return tv.text }

// ScrollBar toggles the scrollbar column.
func (tv *TextView) ScrollBar(on bool) *TextView {
	tv.showBar = on
	return tv
}

// Scroll exposes the scroll state for wheel routing.
func (tv *TextView) Scroll() *ScrollState { return tv.scroll }

func (tv *TextView) AcceptsFocus() bool { return true }

func (tv *TextView) NaturalSize() (int, int) { return tv.prefW, tv.prefH }

func (tv *TextView) SetBounds(b Bounds) {
	tv.baseWidget.SetBounds(b)
	tv.rewrap()
	tv.scroll.SetViewportSize(b.Height)
}

// textCols is the wrap width: the bounds minus the scrollbar column.
func (tv *TextView) textCols() int {
	w := tv.bounds.Width
	if tv.showBar {
		w--
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (tv *TextView) rewrap() {
	w := tv.textCols()
	if w == tv.wrapWidth {
		return
	}
	tv.wrapWidth = w
	tv.lines = wrapText(tv.text, w)
	tv.scroll.SetContentSize(len(tv.lines))
}

func (tv *TextView) HandleKey(ev InputEvent) bool {
	switch {
	case ev.Key == KeyUp || (ev.Key == KeyRune && ev.Rune == 'k'):
		tv.scroll.ScrollBy(-1)
		return true
	case ev.Key == KeyDown || (ev.Key == KeyRune && ev.Rune == 'j'):
		tv.scroll.ScrollBy(1)
		return true
	case ev.Key == KeyPageUp:
		tv.scroll.PageUp()
		return true
	case ev.Key == KeyPageDown:
		tv.scroll.PageDown()
		return true
	case ev.Key == KeyHome:
		tv.scroll.ScrollTo(0)
		return true
	case ev.Key == KeyEnd:
		tv.scroll.ScrollToBottom()
		return true
	}
	return false
}

func (tv *TextView) HandleMouse(ev InputEvent) bool {
	if !tv.bounds.Contains(ev.MouseX, ev.MouseY) {
		return false
	}
	switch ev.MouseBtn {
	case MouseBtnWheelUp:
		tv.scroll.ScrollBy(-3)
		return true
	case MouseBtnWheelDown:
		tv.scroll.ScrollBy(3)
		return true
	}
	return false
}

func (tv *TextView) Render(buf *Buffer) {
	theme := CurrentTheme()
	cols := tv.textCols()

	first, last := tv.scroll.VisibleRange()
	y := tv.bounds.Y
	for i := first; i < last && i < len(tv.lines); i++ {
		buf.WriteStringClipped(tv.bounds.X, y, tv.lines[i], theme.Text, cols)
		y++
	}

	if tv.showBar && tv.scroll.IsScrollable() {
		DrawScrollbar(buf, tv.bounds.X+tv.bounds.Width-1, tv.bounds.Y,
			tv.bounds.Height, tv.scroll, theme.ScrollThumb, theme.ScrollTrack)
	}
}

// wrapText splits on newlines, expands tabs, then wraps lines exceeding
// width at word boundaries, falling back to a hard break for words wider
// than the viewport. Widths are display cells, not runes.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	const tabWidth = 4
	var out []string

	for _, raw := range strings.Split(s, "\n") {
		line := expandTabs(raw, tabWidth)
		if runewidth.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, wrapLine(line, width)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func expandTabs(s string, tabWidth int) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - (col % tabWidth)
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return b.String()
}

func wrapLine(line string, width int) []string {
	var out []string
	var cur strings.Builder
	curW := 0

	flush := func() {
		out = append(out, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range strings.Split(line, " ") {
		ww := runewidth.StringWidth(word)
		switch {
		case curW == 0 && ww <= width:
			cur.WriteString(word)
			curW = ww
		case curW+1+ww <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + ww
		case ww <= width:
			flush()
			cur.WriteString(word)
			curW = ww
		default:
			// Hard-break an oversized word.
			if curW > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if curW+rw > width {
					flush()
				}
				cur.WriteRune(r)
				curW += rw
			}
		}
	}
	flush()
	return out
}
