package wijjit

// FocusManager owns the tab order for the active view or overlay. Elements
// are registered each frame in layout order after wiring runs; focus moves
// with Next/Prev and wraps at both ends.
type FocusManager struct {
	elements []Focusable
	current  int // Index into elements, -1 when nothing is focused
}

// NewFocusManager creates an empty focus manager.
func NewFocusManager() *FocusManager {
	return &FocusManager{current: -1}
}

// focusSnapshot is an opaque token for save/restore across overlay pushes.
type focusSnapshot struct {
	elements []Focusable
	current  int
}

// SetElements replaces the tab order. If the currently focused widget is
// still present it stays focused at its new index; otherwise focus clears.
func (f *FocusManager) SetElements(elements []Focusable) {
	var focused Focusable
	if f.current >= 0 && f.current < len(f.elements) {
		focused = f.elements[f.current]
	}
	f.elements = elements
	f.current = -1
	for i, el := range elements {
		if el == focused {
			f.current = i
			return
		}
	}
	if focused != nil {
		focused.Blur()
	}
}

// Count returns the number of registered elements.
func (f *FocusManager) Count() int { return len(f.elements) }

// GetFocusedElement returns the focused widget, or nil.
func (f *FocusManager) GetFocusedElement() Focusable {
	if f.current < 0 || f.current >= len(f.elements) {
		return nil
	}
	return f.elements[f.current]
}

// focusIndex moves focus to the element at i, blurring the old one.
func (f *FocusManager) focusIndex(i int) {
	if prev := f.GetFocusedElement(); prev != nil {
		prev.Blur()
	}
	f.current = i
	if next := f.GetFocusedElement(); next != nil {
		next.Focus()
	}
}

// FocusFirst focuses the first element that accepts focus. Returns false
// when no element can take focus.
func (f *FocusManager) FocusFirst() bool {
	for i, el := range f.elements {
		if el.AcceptsFocus() {
			f.focusIndex(i)
			return true
		}
	}
	f.focusIndex(-1)
	return false
}

// FocusElement focuses the given widget if it is registered and accepts
// focus. Returns false otherwise.
func (f *FocusManager) FocusElement(target Focusable) bool {
	for i, el := range f.elements {
		if el == target && el.AcceptsFocus() {
			f.focusIndex(i)
			return true
		}
	}
	return false
}

// Next moves focus forward in tab order, wrapping past the end. With no
// current focus it behaves like FocusFirst.
func (f *FocusManager) Next() bool { return f.step(1) }

// Prev moves focus backward in tab order, wrapping past the start.
func (f *FocusManager) Prev() bool { return f.step(-1) }

func (f *FocusManager) step(dir int) bool {
	n := len(f.elements)
	if n == 0 {
		return false
	}
	start := f.current
	if start < 0 {
		if dir > 0 {
			return f.FocusFirst()
		}
		start = 0
	}
	for off := 1; off <= n; off++ {
		i := ((start+dir*off)%n + n) % n
		if f.elements[i].AcceptsFocus() {
			f.focusIndex(i)
			return true
		}
	}
	return false
}

// Blur clears focus without forgetting the tab order.
func (f *FocusManager) Blur() {
	f.focusIndex(-1)
}

// SaveState captures the tab order and focus position as an opaque token,
// used when an overlay traps focus.
func (f *FocusManager) SaveState() any {
	return &focusSnapshot{
		elements: append([]Focusable{}, f.elements...),
		current:  f.current,
	}
}

// RestoreState reinstates a token from SaveState, re-focusing the element
// that held focus at capture time. Invalid tokens are ignored.
func (f *FocusManager) RestoreState(token any) {
	snap, ok := token.(*focusSnapshot)
	if !ok || snap == nil {
		return
	}
	if cur := f.GetFocusedElement(); cur != nil {
		cur.Blur()
	}
	f.elements = snap.elements
	f.current = -1
	if snap.current >= 0 && snap.current < len(snap.elements) {
		f.focusIndex(snap.current)
	}
}
