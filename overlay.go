package wijjit

import "sort"

// OverlayLayer is a z-order band. Overlays within a band stack in push
// order; higher bands always render above lower ones.
type OverlayLayer int

const (
	LayerBase     OverlayLayer = 0
	LayerModal    OverlayLayer = 100
	LayerDropdown OverlayLayer = 200
	LayerTooltip  OverlayLayer = 300
)

// layerSpan is the z range reserved per band.
const layerSpan = 100

// OverlayOptions configures how an overlay behaves and where it appears.
// The zero value is a centered, bordered, focus-trapping modal that closes
// on escape.
type OverlayOptions struct {
	Layer               OverlayLayer
	Title               string
	NoBorder            bool
	NoCloseOnEscape     bool
	CloseOnClickOutside bool
	NoTrapFocus         bool
	DimBackground       bool
	OnClose             func()

	// AnchorRect positions the overlay directly below the rectangle, the
	// dropdown rule: flip above when it would overflow the bottom edge,
	// shift left and clamp when it would overflow the right edge.
	AnchorRect *Bounds
	// AnchorPoint positions the overlay at a point, the context-menu
	// rule: shift and clamp to stay on screen. Ignored when AnchorRect
	// is set. When neither anchor is set the overlay is centered.
	AnchorPoint *struct{ X, Y int }
}

// Overlay is one pushed entry on the overlay stack.
type Overlay struct {
	Root *Node
	Opts OverlayOptions

	z          int
	bounds     Bounds // Outer rectangle including border
	elements   []PositionedElement
	focusToken any
}

// Bounds returns the overlay's outer rectangle.
func (o *Overlay) Bounds() Bounds { return o.bounds }

// Z returns the overlay's resolved z position.
func (o *Overlay) Z() int { return o.z }

// Elements returns the overlay's positioned leaf widgets.
func (o *Overlay) Elements() []PositionedElement { return o.elements }

// Contains reports whether the point is inside the overlay.
func (o *Overlay) Contains(x, y int) bool { return o.bounds.Contains(x, y) }

// trapsFocus reports whether the overlay confines tab navigation.
func (o *Overlay) trapsFocus() bool { return !o.Opts.NoTrapFocus }

// OverlayManager owns the overlay stack: modals, dropdowns, and tooltips
// layered above the base view. It coordinates with the focus manager so
// pushing an overlay traps focus inside it and popping restores the
// previous focus before the close hook runs.
type OverlayManager struct {
	stack    []*Overlay
	counters map[OverlayLayer]int
	focus    *FocusManager
	engine   LayoutEngine

	width, height int
	dirty         bool
}

// NewOverlayManager creates an overlay manager bound to the app's focus
// manager and sized to the current screen.
func NewOverlayManager(focus *FocusManager, width, height int) *OverlayManager {
	return &OverlayManager{
		focus:    focus,
		counters: make(map[OverlayLayer]int),
		width:    width,
		height:   height,
	}
}

// HasOverlays reports whether anything is on the stack.
func (m *OverlayManager) HasOverlays() bool { return len(m.stack) > 0 }

// Count returns the stack depth.
func (m *OverlayManager) Count() int { return len(m.stack) }

// Top returns the topmost overlay, or nil.
func (m *OverlayManager) Top() *Overlay {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Stack returns the overlays in ascending z order.
func (m *OverlayManager) Stack() []*Overlay { return m.stack }

// ConsumeDirty returns and clears the redraw flag.
func (m *OverlayManager) ConsumeDirty() bool {
	d := m.dirty
	m.dirty = false
	return d
}

// countInLayer returns how many stacked overlays sit in the band.
func (m *OverlayManager) countInLayer(layer OverlayLayer) int {
	n := 0
	for _, o := range m.stack {
		if o.Opts.Layer == layer {
			n++
		}
	}
	return n
}

// Push adds an overlay, lays it out, and moves focus into it when it traps
// focus. The overlay's z is its band plus a per-band counter that resets
// once the band empties.
func (m *OverlayManager) Push(root *Node, opts OverlayOptions) *Overlay {
	if m.countInLayer(opts.Layer) == 0 {
		m.counters[opts.Layer] = 0
	}
	z := int(opts.Layer) + m.counters[opts.Layer]
	if z >= int(opts.Layer)+layerSpan {
		z = int(opts.Layer) + layerSpan - 1
	}
	m.counters[opts.Layer]++

	o := &Overlay{Root: root, Opts: opts, z: z}
	m.layout(o)

	if o.trapsFocus() && m.focus != nil {
		o.focusToken = m.focus.SaveState()
		m.focus.SetElements(collectFocusables(o.elements))
		m.focus.FocusFirst()
	}

	m.stack = append(m.stack, o)
	sort.SliceStable(m.stack, func(i, j int) bool { return m.stack[i].z < m.stack[j].z })
	m.dirty = true
	return o
}

// layout sizes and positions the overlay, then lays out its content tree
// inside the border.
func (m *OverlayManager) layout(o *Overlay) {
	inset := 0
	if !o.Opts.NoBorder {
		inset = 1
	}

	cons := SizeConstraints{}
	if o.Root != nil {
		cons = o.Root.calculateConstraints()
	}
	w := minInt(cons.PreferredWidth+2*inset, m.width)
	h := minInt(cons.PreferredHeight+2*inset, m.height)
	w = maxInt(w, 2*inset)
	h = maxInt(h, 2*inset)

	var x, y int
	switch {
	case o.Opts.AnchorRect != nil:
		r := *o.Opts.AnchorRect
		x, y = r.X, r.Y+r.Height
		if y+h > m.height {
			// Flip above the anchor; fall back to clamping if that
			// overflows the top instead.
			y = r.Y - h
			if y < 0 {
				y = maxInt(0, m.height-h)
			}
		}
		if x+w > m.width {
			x = m.width - w
		}
		x = maxInt(0, x)
	case o.Opts.AnchorPoint != nil:
		x, y = o.Opts.AnchorPoint.X, o.Opts.AnchorPoint.Y
		if x+w > m.width {
			x = m.width - w
		}
		if y+h > m.height {
			y = m.height - h
		}
		x, y = maxInt(0, x), maxInt(0, y)
	default:
		x = maxInt(0, (m.width-w)/2)
		y = maxInt(0, (m.height-h)/2)
	}

	o.bounds = Bounds{X: x, Y: y, Width: w, Height: h}
	if o.Root != nil {
		o.elements = m.engine.LayoutAt(o.Root, x+inset, y+inset,
			maxInt(0, w-2*inset), maxInt(0, h-2*inset))
	}
}

// Pop removes the topmost overlay, restoring the focus state captured at
// push time before the close hook runs. Returns nil on an empty stack.
func (m *OverlayManager) Pop() *Overlay {
	if len(m.stack) == 0 {
		return nil
	}
	o := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	if m.countInLayer(o.Opts.Layer) == 0 {
		m.counters[o.Opts.Layer] = 0
	}
	if o.trapsFocus() && m.focus != nil {
		m.focus.RestoreState(o.focusToken)
	}
	if o.Opts.OnClose != nil {
		o.Opts.OnClose()
	}
	m.dirty = true
	return o
}

// PopLayer removes every overlay in the band, topmost first.
func (m *OverlayManager) PopLayer(layer OverlayLayer) {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if i < len(m.stack) && m.stack[i].Opts.Layer == layer {
			m.popAt(i)
		}
	}
}

// popAt removes the overlay at stack index i with full pop semantics.
func (m *OverlayManager) popAt(i int) {
	o := m.stack[i]
	m.stack = append(m.stack[:i], m.stack[i+1:]...)
	if m.countInLayer(o.Opts.Layer) == 0 {
		m.counters[o.Opts.Layer] = 0
	}
	if o.trapsFocus() && m.focus != nil {
		m.focus.RestoreState(o.focusToken)
	}
	if o.Opts.OnClose != nil {
		o.Opts.OnClose()
	}
	m.dirty = true
}

// Clear removes every overlay, topmost first, running each close hook.
func (m *OverlayManager) Clear() {
	for len(m.stack) > 0 {
		m.Pop()
	}
}

// GetAtPosition returns the topmost overlay containing the point, or nil.
func (m *OverlayManager) GetAtPosition(x, y int) *Overlay {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i].Contains(x, y) {
			return m.stack[i]
		}
	}
	return nil
}

// HandleEscape closes the topmost overlay if it allows escape-close.
// Returns true when an overlay was closed. A topmost overlay that refuses
// escape still consumes the stack's attention: lower overlays never see
// the key.
func (m *OverlayManager) HandleEscape() bool {
	top := m.Top()
	if top == nil || top.Opts.NoCloseOnEscape {
		return false
	}
	m.Pop()
	return true
}

// HandleClickOutside scans from the topmost overlay down, stopping at the
// first overlay containing the click. Every overlay scanned before that
// point that opts into click-outside dismissal is closed. Returns true
// when anything closed.
func (m *OverlayManager) HandleClickOutside(x, y int) bool {
	closed := false
	for i := len(m.stack) - 1; i >= 0; i-- {
		if i >= len(m.stack) {
			continue
		}
		o := m.stack[i]
		if o.Contains(x, y) {
			break
		}
		if o.Opts.CloseOnClickOutside {
			m.popAt(i)
			closed = true
		}
	}
	return closed
}

// PopOverlay removes the given overlay wherever it sits in the stack, with
// full pop semantics. Returns false when it is not on the stack.
func (m *OverlayManager) PopOverlay(target *Overlay) bool {
	for i, o := range m.stack {
		if o == target {
			m.popAt(i)
			return true
		}
	}
	return false
}

// ShouldTrapFocus reports whether tab navigation is confined to the
// topmost overlay.
func (m *OverlayManager) ShouldTrapFocus() bool {
	top := m.Top()
	return top != nil && top.trapsFocus()
}

// Resize updates the screen size and re-lays-out every overlay: centered
// overlays re-center, anchored ones re-clamp.
func (m *OverlayManager) Resize(width, height int) {
	m.width, m.height = width, height
	for _, o := range m.stack {
		m.layout(o)
	}
	if len(m.stack) > 0 {
		m.dirty = true
	}
}

// Render paints the stack ascending by z. Each overlay clears its region
// to avoid ghosting from content underneath.
func (m *OverlayManager) Render(buf *Buffer) {
	theme := CurrentTheme()
	for _, o := range m.stack {
		if o.Opts.DimBackground {
			buf.DimRect(0, 0, buf.Width(), buf.Height())
		}
		b := o.bounds
		buf.ClearRect(b.X, b.Y, b.Width, b.Height)
		if !o.Opts.NoBorder {
			buf.DrawBorder(b.X, b.Y, b.Width, b.Height, BorderRounded, theme.OverlayBorder)
			if o.Opts.Title != "" && b.Width > 4 {
				buf.WriteStringClipped(b.X+2, b.Y, " "+o.Opts.Title+" ", theme.OverlayTitle, b.Width-4)
			}
		}
		for _, el := range o.elements {
			el.Widget.Render(buf)
		}
	}
}
