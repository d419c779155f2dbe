package wijjit

// SizeKind selects how a node is sized along one axis.
type SizeKind uint8

const (
	SizeAuto    SizeKind = iota // Natural/preferred size
	SizeFixed                   // Exact cell count
	SizeFill                    // Equal share of remaining space
	SizePercent                 // Fraction of the parent extent
)

// SizeSpec is a tagged sizing rule for one axis.
type SizeSpec struct {
	Kind  SizeKind
	Cells int     // For SizeFixed
	Pct   float64 // For SizePercent, in (0,1]
}

// Auto sizes a node to its natural extent.
func Auto() SizeSpec { return SizeSpec{Kind: SizeAuto} }

// Fixed sizes a node to exactly n cells.
func Fixed(n int) SizeSpec { return SizeSpec{Kind: SizeFixed, Cells: maxInt(0, n)} }

// Fill gives a node an equal share of the remaining space on its axis.
func Fill() SizeSpec { return SizeSpec{Kind: SizeFill} }

// Percent sizes a node to a fraction of the parent extent.
// On a stack's main axis this currently behaves exactly like Fill; see the
// layout notes in DESIGN.md before relying on main-axis percentages.
func Percent(p float64) SizeSpec { return SizeSpec{Kind: SizePercent, Pct: p} }

// expands reports whether the spec takes remaining space on the main axis.
func (s SizeSpec) expands() bool {
	return s.Kind == SizeFill || s.Kind == SizePercent
}

// EdgeInsets is per-edge spacing outside a node's border box.
type EdgeInsets struct {
	Top, Right, Bottom, Left int
}

// UniformInsets returns insets with the same value on all four edges.
func UniformInsets(n int) EdgeInsets {
	return EdgeInsets{Top: n, Right: n, Bottom: n, Left: n}
}

// Horizontal returns the combined left+right inset.
func (e EdgeInsets) Horizontal() int { return e.Left + e.Right }

// Vertical returns the combined top+bottom inset.
func (e EdgeInsets) Vertical() int { return e.Top + e.Bottom }

// Bounds is an absolute screen rectangle assigned during layout.
type Bounds struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside the rectangle.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// SizeConstraints carries the outcome of the bottom-up measurement phase.
// Preferred defaults to min when a node has no stronger opinion.
type SizeConstraints struct {
	MinWidth, MinHeight             int
	PreferredWidth, PreferredHeight int
}

// HAlign positions children across the horizontal axis.
type HAlign uint8

const (
	AlignLeft HAlign = iota
	AlignCenterH
	AlignRight
	AlignStretchH
)

// VAlign positions children across the vertical axis.
type VAlign uint8

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
	AlignStretchV
)

// NodeKind discriminates layout node variants.
type NodeKind uint8

const (
	NodeElement NodeKind = iota // Leaf wrapping a widget
	NodeVStack                  // Children stacked vertically
	NodeHStack                  // Children stacked horizontally
	NodeFrame                   // Single child positioned by alignment
)

// Node is one node in the layout tree. Trees are rebuilt every render pass
// from the declarative view description; nodes are never reused across
// passes. Children are owned by their parent, single-parent only.
type Node struct {
	Kind     NodeKind
	Widget   Widget // Set for NodeElement only
	Children []*Node

	WidthSpec  SizeSpec
	HeightSpec SizeSpec
	Spacing    int
	Padding    int
	Margin     EdgeInsets
	AlignH     HAlign
	AlignV     VAlign

	constraints SizeConstraints
	bounds      *Bounds // nil until the first layout pass
}

// Element creates a leaf node wrapping a widget.
func Element(w Widget) *Node {
	return &Node{Kind: NodeElement, Widget: w}
}

// VStack creates a vertical stack of children.
func VStack(children ...*Node) *Node {
	return &Node{Kind: NodeVStack, Children: children}
}

// HStack creates a horizontal stack of children.
func HStack(children ...*Node) *Node {
	return &Node{Kind: NodeHStack, Children: children}
}

// Frame creates a single-child container that positions its child using the
// frame's alignment. The child may be nil for an empty placeholder.
func Frame(child *Node) *Node {
	n := &Node{Kind: NodeFrame, AlignH: AlignCenterH, AlignV: AlignMiddle}
	if child != nil {
		n.Children = []*Node{child}
	}
	return n
}

// Chainable modifiers, teacher-style builder API.

// Width sets a fixed width in cells.
func (n *Node) Width(w int) *Node { n.WidthSpec = Fixed(w); return n }

// Height sets a fixed height in cells.
func (n *Node) Height(h int) *Node { n.HeightSpec = Fixed(h); return n }

// GrowW makes the node fill remaining horizontal space.
func (n *Node) GrowW() *Node { n.WidthSpec = Fill(); return n }

// GrowH makes the node fill remaining vertical space.
func (n *Node) GrowH() *Node { n.HeightSpec = Fill(); return n }

// WidthPct sets width as a fraction of the parent.
func (n *Node) WidthPct(p float64) *Node { n.WidthSpec = Percent(p); return n }

// HeightPct sets height as a fraction of the parent.
func (n *Node) HeightPct(p float64) *Node { n.HeightSpec = Percent(p); return n }

// Gap sets the spacing between children.
func (n *Node) Gap(g int) *Node { n.Spacing = maxInt(0, g); return n }

// Pad sets uniform padding inside the node.
func (n *Node) Pad(p int) *Node { n.Padding = maxInt(0, p); return n }

// MarginTRBL sets the margin per edge.
func (n *Node) MarginTRBL(t, r, b, l int) *Node {
	n.Margin = EdgeInsets{Top: t, Right: r, Bottom: b, Left: l}
	return n
}

// MarginAll sets a uniform margin.
func (n *Node) MarginAll(m int) *Node { n.Margin = UniformInsets(m); return n }

// Align sets horizontal and vertical alignment for children.
func (n *Node) Align(h HAlign, v VAlign) *Node {
	n.AlignH = h
	n.AlignV = v
	return n
}

// Bounds returns the node's assigned rectangle, or false before layout.
func (n *Node) Bounds() (Bounds, bool) {
	if n.bounds == nil {
		return Bounds{}, false
	}
	return *n.bounds, true
}

// Constraints returns the result of the last measurement phase.
func (n *Node) Constraints() SizeConstraints {
	return n.constraints
}

// PositionedElement pairs a leaf widget with its absolute bounds after
// layout. Painting the widget into those bounds is the caller's business.
type PositionedElement struct {
	Widget Widget
	Bounds Bounds
	Node   *Node
}

// LayoutEngine runs the two-phase layout algorithm: bottom-up size
// negotiation, then top-down rectangle assignment.
type LayoutEngine struct{}

// Layout measures the tree, assigns bounds within the given viewport, and
// returns all leaf elements in pre-order with their absolute bounds.
func (e *LayoutEngine) Layout(root *Node, width, height int) []PositionedElement {
	return e.LayoutAt(root, 0, 0, width, height)
}

// LayoutAt is Layout with a non-zero origin, used for overlay content.
func (e *LayoutEngine) LayoutAt(root *Node, x, y, width, height int) []PositionedElement {
	if root == nil {
		return nil
	}
	root.calculateConstraints()
	root.assignBounds(x, y, maxInt(0, width), maxInt(0, height))

	var out []PositionedElement
	root.collectElements(&out)
	return out
}

// calculateConstraints runs the bottom-up measurement phase.
func (n *Node) calculateConstraints() SizeConstraints {
	var c SizeConstraints

	switch n.Kind {
	case NodeElement:
		if n.Widget != nil {
			w, h := n.Widget.NaturalSize()
			c.MinWidth, c.MinHeight = maxInt(0, w), maxInt(0, h)
		}
		c.PreferredWidth, c.PreferredHeight = c.MinWidth, c.MinHeight

	case NodeVStack, NodeHStack:
		extraW := 2*n.Padding + n.Margin.Horizontal()
		extraH := 2*n.Padding + n.Margin.Vertical()
		var mainPref, crossPref, mainMin, crossMin int
		for _, child := range n.Children {
			cc := child.calculateConstraints()
			if n.Kind == NodeVStack {
				mainPref += cc.PreferredHeight
				mainMin += cc.MinHeight
				crossPref = maxInt(crossPref, cc.PreferredWidth)
				crossMin = maxInt(crossMin, cc.MinWidth)
			} else {
				mainPref += cc.PreferredWidth
				mainMin += cc.MinWidth
				crossPref = maxInt(crossPref, cc.PreferredHeight)
				crossMin = maxInt(crossMin, cc.MinHeight)
			}
		}
		if len(n.Children) > 1 {
			gaps := n.Spacing * (len(n.Children) - 1)
			mainPref += gaps
			mainMin += gaps
		}
		if n.Kind == NodeVStack {
			c = SizeConstraints{
				MinWidth:        crossMin + extraW,
				MinHeight:       mainMin + extraH,
				PreferredWidth:  crossPref + extraW,
				PreferredHeight: mainPref + extraH,
			}
		} else {
			c = SizeConstraints{
				MinWidth:        mainMin + extraW,
				MinHeight:       crossMin + extraH,
				PreferredWidth:  mainPref + extraW,
				PreferredHeight: crossPref + extraH,
			}
		}

	case NodeFrame:
		extraW := 2*n.Padding + n.Margin.Horizontal()
		extraH := 2*n.Padding + n.Margin.Vertical()
		if len(n.Children) > 0 {
			cc := n.Children[0].calculateConstraints()
			c = SizeConstraints{
				MinWidth:        cc.MinWidth + extraW,
				MinHeight:       cc.MinHeight + extraH,
				PreferredWidth:  cc.PreferredWidth + extraW,
				PreferredHeight: cc.PreferredHeight + extraH,
			}
		} else {
			c = SizeConstraints{
				MinWidth: extraW, MinHeight: extraH,
				PreferredWidth: extraW, PreferredHeight: extraH,
			}
		}
	}

	// A fixed spec overrides both min and preferred on its axis.
	if n.WidthSpec.Kind == SizeFixed {
		c.MinWidth = n.WidthSpec.Cells
		c.PreferredWidth = n.WidthSpec.Cells
	}
	if n.HeightSpec.Kind == SizeFixed {
		c.MinHeight = n.HeightSpec.Cells
		c.PreferredHeight = n.HeightSpec.Cells
	}

	n.constraints = c
	return c
}

// assignBounds runs the top-down placement phase. The rectangle is the
// node's border box including margin; bounds exclude margin.
func (n *Node) assignBounds(x, y, width, height int) {
	x += n.Margin.Left
	y += n.Margin.Top
	width = maxInt(0, width-n.Margin.Horizontal())
	height = maxInt(0, height-n.Margin.Vertical())

	n.bounds = &Bounds{X: x, Y: y, Width: width, Height: height}

	if n.Kind == NodeElement {
		if n.Widget != nil {
			n.Widget.SetBounds(*n.bounds)
		}
		return
	}

	// Content rectangle inside padding.
	cx := x + n.Padding
	cy := y + n.Padding
	cw := maxInt(0, width-2*n.Padding)
	ch := maxInt(0, height-2*n.Padding)

	switch n.Kind {
	case NodeFrame:
		n.assignFrameChild(cx, cy, cw, ch)
	case NodeVStack:
		n.assignStackChildren(cx, cy, cw, ch, true)
	case NodeHStack:
		n.assignStackChildren(cx, cy, cw, ch, false)
	}
}

// assignFrameChild positions the frame's single child by alignment.
func (n *Node) assignFrameChild(cx, cy, cw, ch int) {
	if len(n.Children) == 0 {
		return
	}
	child := n.Children[0]
	cc := child.constraints

	w := childExtent(child.WidthSpec, cc.PreferredWidth, cw)
	h := childExtent(child.HeightSpec, cc.PreferredHeight, ch)
	if n.AlignH == AlignStretchH {
		w = cw
	}
	if n.AlignV == AlignStretchV {
		h = ch
	}

	ox := alignOffset(int(n.AlignH), cw, w)
	oy := alignOffset(int(n.AlignV), ch, h)
	child.assignBounds(cx+ox, cy+oy, w, h)
}

// childExtent resolves a child's extent along one axis of a frame.
// Percent is honored here; Fill takes the full available extent.
func childExtent(spec SizeSpec, preferred, available int) int {
	switch spec.Kind {
	case SizeFixed:
		return minInt(spec.Cells, available)
	case SizeFill:
		return available
	case SizePercent:
		return clampInt(int(spec.Pct*float64(available)), 0, available)
	default:
		return minInt(preferred, available)
	}
}

// assignStackChildren distributes the main axis, then positions each child
// with cross-axis alignment and an optional whole-group main-axis offset.
func (n *Node) assignStackChildren(cx, cy, cw, ch int, vertical bool) {
	if len(n.Children) == 0 {
		return
	}

	mainAvail := cw
	if vertical {
		mainAvail = ch
	}

	// Pass 1: fixed/auto children take their preferred extent.
	sizes := make([]int, len(n.Children))
	fillCount := 0
	used := 0
	for i, child := range n.Children {
		spec := child.WidthSpec
		pref := child.constraints.PreferredWidth
		if vertical {
			spec = child.HeightSpec
			pref = child.constraints.PreferredHeight
		}
		if spec.expands() {
			// Percent behaves as Fill on the main axis (carried behavior).
			fillCount++
			continue
		}
		if spec.Kind == SizeFixed {
			sizes[i] = spec.Cells
		} else {
			sizes[i] = pref
		}
		used += sizes[i]
	}
	gaps := 0
	if len(n.Children) > 1 {
		gaps = n.Spacing * (len(n.Children) - 1)
	}

	// Pass 2: split the remainder equally among expanding children.
	// Integer division; the remainder is an accepted rounding loss.
	if fillCount > 0 {
		remaining := maxInt(0, mainAvail-used-gaps)
		share := remaining / fillCount
		for i, child := range n.Children {
			spec := child.WidthSpec
			if vertical {
				spec = child.HeightSpec
			}
			if spec.expands() {
				sizes[i] = share
			}
		}
	}

	// Group alignment along the main axis: only when nothing expands,
	// fill semantics take precedence over group alignment.
	groupOffset := 0
	if fillCount == 0 {
		total := gaps
		for _, sz := range sizes {
			total += sz
		}
		if vertical {
			groupOffset = alignOffset(int(n.AlignV), mainAvail, total)
		} else {
			groupOffset = alignOffset(int(n.AlignH), mainAvail, total)
		}
	}

	// Pass 3: position children.
	pos := groupOffset
	for i, child := range n.Children {
		if vertical {
			w := crossExtent(child.WidthSpec, child.constraints.PreferredWidth, cw, n.AlignH == AlignStretchH)
			ox := alignOffset(int(n.AlignH), cw, w)
			child.assignBounds(cx+ox, cy+pos, w, sizes[i])
		} else {
			h := crossExtent(child.HeightSpec, child.constraints.PreferredHeight, ch, n.AlignV == AlignStretchV)
			oy := alignOffset(int(n.AlignV), ch, h)
			child.assignBounds(cx+pos, cy+oy, sizes[i], h)
		}
		pos += sizes[i] + n.Spacing
	}
}

// crossExtent resolves a child's extent across the stack axis.
func crossExtent(spec SizeSpec, preferred, available int, stretch bool) int {
	if stretch || spec.expands() {
		return available
	}
	if spec.Kind == SizeFixed {
		return minInt(spec.Cells, available)
	}
	return minInt(preferred, available)
}

// alignOffset computes the leading offset for the start/center/end/stretch
// alignment families. Both HAlign and VAlign share ordinal values.
func alignOffset(align, available, size int) int {
	switch align {
	case 1: // center/middle
		return maxInt(0, (available-size)/2)
	case 2: // right/bottom
		return maxInt(0, available-size)
	default: // left/top, stretch
		return 0
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// collectElements appends leaf elements in pre-order.
func (n *Node) collectElements(out *[]PositionedElement) {
	if n.Kind == NodeElement {
		if n.Widget != nil && n.bounds != nil {
			*out = append(*out, PositionedElement{Widget: n.Widget, Bounds: *n.bounds, Node: n})
		}
		return
	}
	for _, child := range n.Children {
		child.collectElements(out)
	}
}
