package wijjit

// Widget is the minimal contract a renderable element satisfies. Layout asks
// for the natural size, assigns bounds, and the render pass paints into the
// screen's back buffer.
type Widget interface {
	// NaturalSize returns the preferred width and height in cells.
	NaturalSize() (int, int)
	// SetBounds records the rectangle assigned by layout.
	SetBounds(Bounds)
	// Render paints the widget into its bounds.
	Render(*Buffer)
}

// KeyHandler is implemented by widgets that consume key events. Returning
// true marks the event handled and stops further routing.
type KeyHandler interface {
	HandleKey(InputEvent) bool
}

// MouseHandler is implemented by widgets that consume mouse events.
type MouseHandler interface {
	HandleMouse(InputEvent) bool
}

// Focusable is implemented by widgets that participate in tab order.
type Focusable interface {
	Widget
	Focus()
	Blur()
	IsFocused() bool
	// AcceptsFocus reports whether the widget is currently focusable;
	// disabled widgets return false and are skipped in tab order.
	AcceptsFocus() bool
}

// Scrollable is implemented by widgets backed by a scroll model, letting
// the app route wheel events and draw scrollbars generically.
type Scrollable interface {
	Scroll() *ScrollState
}

// Bindable is implemented by widgets whose value round-trips through the
// state store under a key.
type Bindable interface {
	StateKey() string
	ReadValue() string
	WriteValue(string)
}

// Activatable is implemented by widgets with a press action, such as
// buttons and menu items.
type Activatable interface {
	OnActivate(func())
}

// baseWidget carries the bounds/focus plumbing every widget needs.
type baseWidget struct {
	bounds  Bounds
	focused bool
	hovered bool
	id      string
}

func (b *baseWidget) SetBounds(r Bounds)  { b.bounds = r }
func (b *baseWidget) GetBounds() Bounds   { return b.bounds }
func (b *baseWidget) Focus()              { b.focused = true }
func (b *baseWidget) Blur()               { b.focused = false }
func (b *baseWidget) IsFocused() bool     { return b.focused }
func (b *baseWidget) SetHovered(h bool)   { b.hovered = h }
func (b *baseWidget) IsHovered() bool     { return b.hovered }
func (b *baseWidget) ID() string          { return b.id }
func (b *baseWidget) SetID(id string)     { b.id = id }

// hoverable lets the mouse router flag widgets under the pointer without
// knowing their concrete type.
type hoverable interface {
	SetHovered(bool)
	IsHovered() bool
}

// collectFocusables walks positioned elements in layout order and returns
// the widgets that can currently take focus. This is the tab order.
func collectFocusables(elements []PositionedElement) []Focusable {
	var out []Focusable
	for _, el := range elements {
		if f, ok := el.Widget.(Focusable); ok && f.AcceptsFocus() {
			out = append(out, f)
		}
	}
	return out
}
