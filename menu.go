package wijjit

import (
	"github.com/mattn/go-runewidth"
)

// MenuItem is one entry in a dropdown or context menu.
type MenuItem struct {
	Label     string
	Action    func()
	Disabled  bool
	Separator bool
}

// MenuSeparator returns a non-selectable divider row.
func MenuSeparator() MenuItem { return MenuItem{Separator: true} }

// Menu is a vertical list of actionable items, normally shown inside a
// dropdown overlay. Enter runs the item's action and then the menu's close
// hook, so the owning overlay can pop itself.
type Menu struct {
	baseWidget
	items   []MenuItem
	cursor  int
	onClose func()
}

// NewMenu creates a menu with the given items. The cursor starts on the
// first selectable item.
func NewMenu(items ...MenuItem) *Menu {
	m := &Menu{items: items}
	m.cursor = m.nextSelectable(-1, 1)
	return m
}

// OnClose registers the hook fired after an item action runs, and on
// explicit dismissal keys the menu handles itself.
func (m *Menu) OnClose(fn func()) { m.onClose = fn }

// Cursor returns the index of the highlighted item.
func (m *Menu) Cursor() int { return m.cursor }

// nextSelectable scans from idx in the given direction for a selectable
// item, returning idx unchanged when none exists.
func (m *Menu) nextSelectable(idx, dir int) int {
	for i := idx + dir; i >= 0 && i < len(m.items); i += dir {
		if !m.items[i].Separator && !m.items[i].Disabled {
			return i
		}
	}
	return maxInt(0, idx)
}

func (m *Menu) AcceptsFocus() bool {
	for _, it := range m.items {
		if !it.Separator && !it.Disabled {
			return true
		}
	}
	return false
}

func (m *Menu) NaturalSize() (int, int) {
	w := 0
	for _, it := range m.items {
		w = maxInt(w, runewidth.StringWidth(it.Label))
	}
	return w + 2, len(m.items) // one cell of padding each side
}

func (m *Menu) activate(i int) bool {
	if i < 0 || i >= len(m.items) {
		return false
	}
	it := m.items[i]
	if it.Separator || it.Disabled {
		return false
	}
	if it.Action != nil {
		it.Action()
	}
	if m.onClose != nil {
		m.onClose()
	}
	return true
}

func (m *Menu) HandleKey(ev InputEvent) bool {
	switch ev.Key {
	case KeyUp:
		m.cursor = m.nextSelectable(m.cursor, -1)
		return true
	case KeyDown:
		m.cursor = m.nextSelectable(m.cursor, 1)
		return true
	case KeyHome:
		m.cursor = m.nextSelectable(-1, 1)
		return true
	case KeyEnd:
		m.cursor = m.nextSelectable(len(m.items), -1)
		return true
	case KeyEnter, KeySpace:
		return m.activate(m.cursor)
	}
	return false
}

func (m *Menu) HandleMouse(ev InputEvent) bool {
	if !m.bounds.Contains(ev.MouseX, ev.MouseY) {
		return false
	}
	row := ev.MouseY - m.bounds.Y
	if row < 0 || row >= len(m.items) {
		return false
	}
	switch ev.MouseAction {
	case MouseActionMove:
		if !m.items[row].Separator && !m.items[row].Disabled {
			m.cursor = row
		}
		return true
	case MouseActionPress:
		if ev.MouseBtn == MouseBtnLeft {
			return m.activate(row)
		}
	}
	return false
}

func (m *Menu) Render(buf *Buffer) {
	theme := CurrentTheme()
	for i, it := range m.items {
		y := m.bounds.Y + i
		if y >= m.bounds.Y+m.bounds.Height {
			break
		}
		if it.Separator {
			buf.HLine(m.bounds.X, y, m.bounds.Width, '─', theme.Border)
			continue
		}
		style := theme.ListItem
		switch {
		case it.Disabled:
			style = theme.Dim
		case i == m.cursor:
			style = theme.ListCursor
		}
		buf.FillRect(m.bounds.X, y, m.bounds.Width, 1, NewCell(' ', style))
		buf.WriteStringClipped(m.bounds.X+1, y, it.Label, style, m.bounds.Width-1)
	}
}
