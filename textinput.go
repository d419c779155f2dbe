package wijjit

import (
	"github.com/mattn/go-runewidth"
)

// TextInput is a single-line editable field. The value round-trips through
// the state store when a state key is bound, and every edit marks the app
// dirty through the store's change callback.
type TextInput struct {
	baseWidget
	value       []rune
	cursor      int // Rune index, 0..len(value)
	offset      int // First visible rune index
	placeholder string
	width       int // Preferred width in cells
	masked      bool
	stateKey    string
	onChange    func(string)
	onSubmit    func(string)
}

// NewTextInput creates a text input with the given preferred width.
func NewTextInput(width int) *TextInput {
	if width < 4 {
		width = 4
	}
	return &TextInput{width: width}
}

// Placeholder sets the hint text shown while the value is empty.
func (t *TextInput) Placeholder(s string) *TextInput {
	t.placeholder = s
	return t
}

// Masked renders every rune as '*', for password fields.
func (t *TextInput) Masked() *TextInput {
	t.masked = true
	return t
}

// BindKey sets the state store key this input syncs with.
func (t *TextInput) BindKey(key string) *TextInput {
	t.stateKey = key
	return t
}

// OnChange registers a callback fired after every edit.
func (t *TextInput) OnChange(fn func(string)) { t.onChange = fn }

// OnSubmit registers a callback fired when Enter is pressed.
func (t *TextInput) OnSubmit(fn func(string)) { t.onSubmit = fn }

// Value returns the current text.
func (t *TextInput) Value() string { return string(t.value) }

// SetValue replaces the text and moves the cursor to the end. The change
// callback does not fire; programmatic writes are not edits.
func (t *TextInput) SetValue(s string) {
	t.value = []rune(s)
	t.cursor = len(t.value)
	t.scrollToCursor()
}

func (t *TextInput) AcceptsFocus() bool { return true }

func (t *TextInput) StateKey() string { return t.stateKey }

func (t *TextInput) ReadValue() string { return string(t.value) }

func (t *TextInput) WriteValue(s string) { t.SetValue(s) }

func (t *TextInput) NaturalSize() (int, int) { return t.width, 1 }

func (t *TextInput) changed() {
	if t.onChange != nil {
		t.onChange(string(t.value))
	}
}

// visibleCols returns the usable cell width for text.
func (t *TextInput) visibleCols() int {
	if t.bounds.Width > 0 {
		return t.bounds.Width
	}
	return t.width
}

// scrollToCursor keeps the cursor inside the visible window.
func (t *TextInput) scrollToCursor() {
	cols := t.visibleCols()
	if cols <= 1 {
		t.offset = t.cursor
		return
	}
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	// Leave one cell at the right edge for the cursor itself.
	if t.cursor-t.offset >= cols {
		t.offset = t.cursor - cols + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
}

func (t *TextInput) HandleKey(ev InputEvent) bool {
	switch ev.Key {
	case KeyRune:
		if ev.Modifiers&ModAlt != 0 {
			return false
		}
		t.value = append(t.value[:t.cursor], append([]rune{ev.Rune}, t.value[t.cursor:]...)...)
		t.cursor++
		t.scrollToCursor()
		t.changed()
		return true
	case KeySpace:
		t.value = append(t.value[:t.cursor], append([]rune{' '}, t.value[t.cursor:]...)...)
		t.cursor++
		t.scrollToCursor()
		t.changed()
		return true
	case KeyBackspace:
		if t.cursor > 0 {
			t.value = append(t.value[:t.cursor-1], t.value[t.cursor:]...)
			t.cursor--
			t.scrollToCursor()
			t.changed()
		}
		return true
	case KeyDelete:
		if t.cursor < len(t.value) {
			t.value = append(t.value[:t.cursor], t.value[t.cursor+1:]...)
			t.changed()
		}
		return true
	case KeyLeft:
		if t.cursor > 0 {
			t.cursor--
			t.scrollToCursor()
		}
		return true
	case KeyRight:
		if t.cursor < len(t.value) {
			t.cursor++
			t.scrollToCursor()
		}
		return true
	case KeyHome, KeyCtrlA:
		t.cursor = 0
		t.scrollToCursor()
		return true
	case KeyEnd, KeyCtrlE:
		t.cursor = len(t.value)
		t.scrollToCursor()
		return true
	case KeyCtrlU:
		if t.cursor > 0 {
			t.value = append([]rune{}, t.value[t.cursor:]...)
			t.cursor = 0
			t.offset = 0
			t.changed()
		}
		return true
	case KeyCtrlK:
		if t.cursor < len(t.value) {
			t.value = t.value[:t.cursor]
			t.changed()
		}
		return true
	case KeyEnter:
		if t.onSubmit != nil {
			t.onSubmit(string(t.value))
			return true
		}
		return false
	}
	return false
}

func (t *TextInput) HandleMouse(ev InputEvent) bool {
	if ev.MouseBtn != MouseBtnLeft || ev.MouseAction != MouseActionPress ||
		!t.bounds.Contains(ev.MouseX, ev.MouseY) {
		return false
	}
	// Move the cursor to the clicked column.
	col := ev.MouseX - t.bounds.X
	idx := t.offset
	for idx < len(t.value) && col > 0 {
		col -= runewidth.RuneWidth(t.value[idx])
		idx++
	}
	t.cursor = minInt(idx, len(t.value))
	return true
}

func (t *TextInput) Render(buf *Buffer) {
	theme := CurrentTheme()
	style := theme.Input
	if t.focused {
		style = theme.InputFocused
	}

	cols := t.visibleCols()
	buf.FillRect(t.bounds.X, t.bounds.Y, cols, 1, NewCell(' ', style))

	if len(t.value) == 0 && !t.focused && t.placeholder != "" {
		buf.WriteStringClipped(t.bounds.X, t.bounds.Y, t.placeholder, theme.Dim, cols)
		return
	}

	x := t.bounds.X
	for i := t.offset; i < len(t.value); i++ {
		r := t.value[i]
		if t.masked {
			r = '*'
		}
		w := runewidth.RuneWidth(r)
		if x+w > t.bounds.X+cols {
			break
		}
		cellStyle := style
		if t.focused && i == t.cursor {
			cellStyle = style.Inverse()
		}
		buf.Set(x, t.bounds.Y, NewCell(r, cellStyle))
		x += w
	}
	// Cursor past the last rune.
	if t.focused && t.cursor == len(t.value) && x < t.bounds.X+cols {
		buf.Set(x, t.bounds.Y, NewCell(' ', style.Inverse()))
	}
}
