package wijjit

import (
	"github.com/mattn/go-runewidth"
)

// Label is static text. It never takes focus.
type Label struct {
	baseWidget
	text  string
	style *Style // nil means theme text style
}

// NewLabel creates a label with the given text.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// SetText replaces the label text.
func (l *Label) SetText(text string) { l.text = text }

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// Styled overrides the theme style for this label.
func (l *Label) Styled(s Style) *Label {
	l.style = &s
	return l
}

func (l *Label) NaturalSize() (int, int) {
	return runewidth.StringWidth(l.text), 1
}

func (l *Label) Render(buf *Buffer) {
	style := CurrentTheme().Text
	if l.style != nil {
		style = *l.style
	}
	buf.WriteStringClipped(l.bounds.X, l.bounds.Y, l.text, style, l.bounds.Width)
}

// Button is a focusable widget with a press action. Enter and space
// activate it; so does a left click inside its bounds.
type Button struct {
	baseWidget
	label    string
	onPress  func()
	disabled bool
}

// NewButton creates a button with a label and press action.
func NewButton(label string, onPress func()) *Button {
	return &Button{label: label, onPress: onPress}
}

// SetDisabled toggles whether the button accepts focus and activation.
func (b *Button) SetDisabled(disabled bool) { b.disabled = disabled }

// OnActivate replaces the press action.
func (b *Button) OnActivate(fn func()) { b.onPress = fn }

func (b *Button) AcceptsFocus() bool { return !b.disabled }

func (b *Button) NaturalSize() (int, int) {
	return runewidth.StringWidth(b.label) + 4, 1 // "[ label ]"
}

func (b *Button) Render(buf *Buffer) {
	theme := CurrentTheme()
	style := theme.Button
	switch {
	case b.disabled:
		style = theme.Dim
	case b.focused:
		style = theme.ButtonFocused
	case b.hovered:
		style = theme.ButtonHovered
	}
	text := "[ " + b.label + " ]"
	buf.WriteStringClipped(b.bounds.X, b.bounds.Y, text, style, b.bounds.Width)
}

func (b *Button) press() {
	if b.disabled || b.onPress == nil {
		return
	}
	b.onPress()
}

func (b *Button) HandleKey(ev InputEvent) bool {
	if ev.Key == KeyEnter || ev.Key == KeySpace {
		b.press()
		return true
	}
	return false
}

func (b *Button) HandleMouse(ev InputEvent) bool {
	if ev.MouseBtn == MouseBtnLeft && ev.MouseAction == MouseActionPress &&
		b.bounds.Contains(ev.MouseX, ev.MouseY) {
		b.press()
		return true
	}
	return false
}

// Checkbox is a focusable boolean toggle. Its value round-trips through
// the state store as "true"/"false" when a state key is set.
type Checkbox struct {
	baseWidget
	label    string
	checked  bool
	stateKey string
	onChange func(bool)
}

// NewCheckbox creates a checkbox with a label.
func NewCheckbox(label string, checked bool) *Checkbox {
	return &Checkbox{label: label, checked: checked}
}

// BindKey sets the state store key this checkbox syncs with.
func (c *Checkbox) BindKey(key string) *Checkbox {
	c.stateKey = key
	return c
}

// OnChange registers a callback invoked after every toggle.
func (c *Checkbox) OnChange(fn func(bool)) { c.onChange = fn }

// Checked returns the current value.
func (c *Checkbox) Checked() bool { return c.checked }

// SetChecked sets the value without firing the change callback.
func (c *Checkbox) SetChecked(v bool) { c.checked = v }

// Toggle flips the value and fires the change callback.
func (c *Checkbox) Toggle() {
	c.checked = !c.checked
	if c.onChange != nil {
		c.onChange(c.checked)
	}
}

func (c *Checkbox) AcceptsFocus() bool { return true }

func (c *Checkbox) StateKey() string { return c.stateKey }

func (c *Checkbox) ReadValue() string {
	if c.checked {
		return "true"
	}
	return "false"
}

func (c *Checkbox) WriteValue(v string) { c.checked = v == "true" }

func (c *Checkbox) NaturalSize() (int, int) {
	return runewidth.StringWidth(c.label) + 4, 1 // "[x] label"
}

func (c *Checkbox) Render(buf *Buffer) {
	theme := CurrentTheme()
	style := theme.Text
	if c.focused {
		style = theme.ButtonFocused
	}
	mark := "[ ] "
	if c.checked {
		mark = "[x] "
	}
	buf.WriteStringClipped(c.bounds.X, c.bounds.Y, mark+c.label, style, c.bounds.Width)
}

func (c *Checkbox) HandleKey(ev InputEvent) bool {
	if ev.Key == KeyEnter || ev.Key == KeySpace {
		c.Toggle()
		return true
	}
	return false
}

func (c *Checkbox) HandleMouse(ev InputEvent) bool {
	if ev.MouseBtn == MouseBtnLeft && ev.MouseAction == MouseActionPress &&
		c.bounds.Contains(ev.MouseX, ev.MouseY) {
		c.Toggle()
		return true
	}
	return false
}

// Spacer is an empty widget used to push siblings apart in a stack.
type Spacer struct {
	baseWidget
}

// NewSpacer creates an empty flexible widget.
func NewSpacer() *Spacer { return &Spacer{} }

func (s *Spacer) NaturalSize() (int, int) { return 0, 0 }

func (s *Spacer) Render(*Buffer) {}
