package wijjit

// MouseRouter tracks hover state and routes mouse events to widgets,
// overlay-first: an event over an overlay only ever reaches that overlay's
// widgets, and a press outside a dismissible overlay closes it instead of
// reaching whatever is underneath.
type MouseRouter struct {
	hovered hoverable
}

// NewMouseRouter creates a router with no hover.
func NewMouseRouter() *MouseRouter { return &MouseRouter{} }

// targetsFor picks the element set the event may reach.
func (r *MouseRouter) targetsFor(ev InputEvent, overlays *OverlayManager, base []PositionedElement) []PositionedElement {
	if overlays != nil {
		if o := overlays.GetAtPosition(ev.MouseX, ev.MouseY); o != nil {
			return o.Elements()
		}
		// With a focus-trapping overlay up, the base view is inert.
		if overlays.ShouldTrapFocus() {
			return nil
		}
	}
	return base
}

// hitWidget returns the last element containing the point; later elements
// render later, so they win on overlap.
func hitWidget(elements []PositionedElement, x, y int) (Widget, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if elements[i].Bounds.Contains(x, y) {
			return elements[i].Widget, true
		}
	}
	return nil, false
}

// updateHover moves the hover flag to the widget under the pointer.
// Returns true when the hovered widget changed.
func (r *MouseRouter) updateHover(ev InputEvent, targets []PositionedElement) bool {
	var next hoverable
	if w, ok := hitWidget(targets, ev.MouseX, ev.MouseY); ok {
		next, _ = w.(hoverable)
	}
	if next == r.hovered {
		return false
	}
	if r.hovered != nil {
		r.hovered.SetHovered(false)
	}
	if next != nil {
		next.SetHovered(true)
	}
	r.hovered = next
	return true
}

// Route dispatches a mouse event. It returns whether a widget handled the
// event and whether anything visible changed.
func (r *MouseRouter) Route(ev InputEvent, overlays *OverlayManager, focus *FocusManager, base []PositionedElement) (handled, dirty bool) {
	// Click-outside dismissal runs before any widget sees the press.
	if ev.MouseAction == MouseActionPress && overlays != nil {
		if overlays.HandleClickOutside(ev.MouseX, ev.MouseY) {
			return true, true
		}
	}

	targets := r.targetsFor(ev, overlays, base)

	if ev.MouseAction == MouseActionMove {
		return false, r.updateHover(ev, targets)
	}

	w, ok := hitWidget(targets, ev.MouseX, ev.MouseY)
	if !ok {
		return false, false
	}

	// A press focuses the widget under the pointer when it can take focus.
	if ev.MouseAction == MouseActionPress && ev.MouseBtn == MouseBtnLeft && focus != nil {
		if f, isFocusable := w.(Focusable); isFocusable && f.AcceptsFocus() {
			if focus.FocusElement(f) {
				dirty = true
			}
		}
	}

	if h, isHandler := w.(MouseHandler); isHandler && h.HandleMouse(ev) {
		return true, true
	}

	// Wheel events fall back to the scroll model of the widget under the
	// pointer.
	if s, isScrollable := w.(Scrollable); isScrollable {
		before := s.Scroll().Position()
		switch ev.MouseBtn {
		case MouseBtnWheelUp:
			if s.Scroll().ScrollBy(-3) != before {
				return true, true
			}
		case MouseBtnWheelDown:
			if s.Scroll().ScrollBy(3) != before {
				return true, true
			}
		}
	}

	return false, dirty
}
