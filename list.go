package wijjit

import (
	"github.com/mattn/go-runewidth"
)

// List is a scrollable, selectable list of string items backed by a
// ScrollState. The cursor row is always kept visible; wheel events scroll
// the viewport without moving the cursor.
type List struct {
	baseWidget
	items    []string
	cursor   int
	scroll   *ScrollState
	width    int // Preferred width; 0 means widest item
	height   int // Preferred height; 0 means item count
	onSelect func(int, string)
	onChange func(int, string)
	showBar  bool
}

// NewList creates a list with the given items.
func NewList(items []string) *List {
	l := &List{
		items:   append([]string{}, items...),
		scroll:  NewScrollState(len(items), 0, 0),
		showBar: true,
	}
	return l
}

// Size sets the preferred viewport size in cells.
func (l *List) Size(width, height int) *List {
	l.width, l.height = width, height
	return l
}

// HideScrollbar disables the scrollbar column.
func (l *List) HideScrollbar() *List {
	l.showBar = false
	return l
}

// OnSelect registers a callback fired when Enter is pressed on an item.
func (l *List) OnSelect(fn func(int, string)) { l.onSelect = fn }

// OnChange registers a callback fired when the cursor moves.
func (l *List) OnChange(fn func(int, string)) { l.onChange = fn }

// SetItems replaces the items, clamping the cursor and scroll position.
func (l *List) SetItems(items []string) {
	l.items = append([]string{}, items...)
	if l.cursor >= len(l.items) {
		l.cursor = maxInt(0, len(l.items)-1)
	}
	l.scroll.SetContentSize(len(l.items))
	l.scroll.EnsureVisible(l.cursor)
}

// Items returns the current items.
func (l *List) Items() []string { return l.items }

// Cursor returns the cursor index, -1 when the list is empty.
func (l *List) Cursor() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.cursor
}

// SelectedItem returns the item under the cursor, or "" when empty.
func (l *List) SelectedItem() string {
	if len(l.items) == 0 {
		return ""
	}
	return l.items[l.cursor]
}

// SetCursor moves the cursor, clamped to the item range, and scrolls it
// into view.
func (l *List) SetCursor(i int) {
	if len(l.items) == 0 {
		l.cursor = 0
		return
	}
	l.cursor = clampInt(i, 0, len(l.items)-1)
	l.scroll.EnsureVisible(l.cursor)
	if l.onChange != nil {
		l.onChange(l.cursor, l.items[l.cursor])
	}
}

// Scroll exposes the backing scroll model for generic wheel routing.
func (l *List) Scroll() *ScrollState { return l.scroll }

func (l *List) AcceptsFocus() bool { return len(l.items) > 0 }

func (l *List) NaturalSize() (int, int) {
	w, h := l.width, l.height
	if w == 0 {
		for _, it := range l.items {
			w = maxInt(w, runewidth.StringWidth(it))
		}
		if l.showBar {
			w++
		}
	}
	if h == 0 {
		h = len(l.items)
	}
	return w, h
}

func (l *List) SetBounds(r Bounds) {
	l.bounds = r
	l.scroll.SetViewportSize(r.Height)
	l.scroll.EnsureVisible(l.cursor)
}

func (l *List) HandleKey(ev InputEvent) bool {
	if len(l.items) == 0 {
		return false
	}
	switch ev.Key {
	case KeyUp:
		l.SetCursor(l.cursor - 1)
		return true
	case KeyDown:
		l.SetCursor(l.cursor + 1)
		return true
	case KeyPageUp:
		l.SetCursor(l.cursor - maxInt(1, l.scroll.ViewportSize()))
		return true
	case KeyPageDown:
		l.SetCursor(l.cursor + maxInt(1, l.scroll.ViewportSize()))
		return true
	case KeyHome:
		l.SetCursor(0)
		return true
	case KeyEnd:
		l.SetCursor(len(l.items) - 1)
		return true
	case KeyEnter:
		if l.onSelect != nil {
			l.onSelect(l.cursor, l.items[l.cursor])
		}
		return true
	case KeyRune:
		switch ev.Rune {
		case 'j':
			l.SetCursor(l.cursor + 1)
			return true
		case 'k':
			l.SetCursor(l.cursor - 1)
			return true
		}
	}
	return false
}

func (l *List) HandleMouse(ev InputEvent) bool {
	if !l.bounds.Contains(ev.MouseX, ev.MouseY) {
		return false
	}
	switch {
	case ev.MouseBtn == MouseBtnWheelUp:
		l.scroll.ScrollBy(-3)
		return true
	case ev.MouseBtn == MouseBtnWheelDown:
		l.scroll.ScrollBy(3)
		return true
	case ev.MouseBtn == MouseBtnLeft && ev.MouseAction == MouseActionPress:
		row := ev.MouseY - l.bounds.Y + l.scroll.Position()
		if row >= 0 && row < len(l.items) {
			l.SetCursor(row)
			if l.onSelect != nil {
				l.onSelect(l.cursor, l.items[l.cursor])
			}
		}
		return true
	}
	return false
}

func (l *List) Render(buf *Buffer) {
	theme := CurrentTheme()
	textW := l.bounds.Width
	if l.showBar && l.scroll.IsScrollable() {
		textW--
	}
	if textW <= 0 {
		return
	}

	start, end := l.scroll.VisibleRange()
	y := l.bounds.Y
	for i := start; i < end; i++ {
		style := theme.ListItem
		if i == l.cursor {
			if l.focused {
				style = theme.ListCursor
			} else {
				style = theme.Selection
			}
		}
		buf.FillRect(l.bounds.X, y, textW, 1, NewCell(' ', style))
		buf.WriteStringClipped(l.bounds.X, y, l.items[i], style, textW)
		y++
	}

	if l.showBar && l.scroll.IsScrollable() {
		DrawScrollbar(buf, l.bounds.X+l.bounds.Width-1, l.bounds.Y, l.bounds.Height,
			l.scroll, theme.ScrollThumb, theme.ScrollTrack)
	}
}
