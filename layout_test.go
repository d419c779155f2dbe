package wijjit

import "testing"

// fixedWidget is a minimal widget with a known natural size.
type fixedWidget struct {
	baseWidget
	w, h int
}

func newFixedWidget(w, h int) *fixedWidget { return &fixedWidget{w: w, h: h} }

func (f *fixedWidget) NaturalSize() (int, int) { return f.w, f.h }
func (f *fixedWidget) Render(*Buffer)          {}

func TestCalculateConstraints(t *testing.T) {
	t.Run("VStackAggregation", func(t *testing.T) {
		root := VStack(
			Element(newFixedWidget(20, 2)),
			Element(newFixedWidget(30, 3)),
			Element(newFixedWidget(15, 1)),
		).Gap(1)
		c := root.calculateConstraints()
		if c.PreferredHeight != 8 {
			t.Errorf("preferred height = %d, want 2+3+1+2 = 8", c.PreferredHeight)
		}
		if c.PreferredWidth != 30 {
			t.Errorf("preferred width = %d, want max(20,30,15) = 30", c.PreferredWidth)
		}
	})

	t.Run("HStackAggregation", func(t *testing.T) {
		root := HStack(
			Element(newFixedWidget(5, 2)),
			Element(newFixedWidget(7, 4)),
		).Gap(2)
		c := root.calculateConstraints()
		if c.PreferredWidth != 14 {
			t.Errorf("preferred width = %d, want 5+7+2 = 14", c.PreferredWidth)
		}
		if c.PreferredHeight != 4 {
			t.Errorf("preferred height = %d, want max(2,4) = 4", c.PreferredHeight)
		}
	})

	t.Run("PaddingAndMargin", func(t *testing.T) {
		root := VStack(Element(newFixedWidget(10, 2))).Pad(2).MarginTRBL(1, 3, 1, 3)
		c := root.calculateConstraints()
		if c.PreferredWidth != 10+4+6 {
			t.Errorf("preferred width = %d, want 20", c.PreferredWidth)
		}
		if c.PreferredHeight != 2+4+2 {
			t.Errorf("preferred height = %d, want 8", c.PreferredHeight)
		}
	})

	t.Run("EmptyContainer", func(t *testing.T) {
		root := VStack().Pad(1)
		c := root.calculateConstraints()
		if c.PreferredWidth != 2 || c.PreferredHeight != 2 {
			t.Errorf("empty padded stack = %dx%d, want 2x2", c.PreferredWidth, c.PreferredHeight)
		}
	})

	t.Run("FixedOverridesMinAndPreferred", func(t *testing.T) {
		n := Element(newFixedWidget(50, 50)).Width(10).Height(5)
		c := n.calculateConstraints()
		if c.MinWidth != 10 || c.PreferredWidth != 10 {
			t.Errorf("width min/pref = %d/%d, want 10/10", c.MinWidth, c.PreferredWidth)
		}
		if c.MinHeight != 5 || c.PreferredHeight != 5 {
			t.Errorf("height min/pref = %d/%d, want 5/5", c.MinHeight, c.PreferredHeight)
		}
	})
}

func TestAssignBounds(t *testing.T) {
	engine := &LayoutEngine{}

	boundsOf := func(n *Node) Bounds {
		b, ok := n.Bounds()
		if !ok {
			panic("no bounds assigned")
		}
		return b
	}

	t.Run("FillSplitsEqually", func(t *testing.T) {
		a := Element(newFixedWidget(10, 1)).GrowH()
		b := Element(newFixedWidget(10, 1)).GrowH()
		engine.Layout(VStack(a, b), 50, 20)
		if boundsOf(a).Height != 10 || boundsOf(b).Height != 10 {
			t.Errorf("heights = %d,%d, want 10,10", boundsOf(a).Height, boundsOf(b).Height)
		}
	})

	t.Run("FixedPlusFill", func(t *testing.T) {
		a := Element(newFixedWidget(10, 1)).Height(5)
		b := Element(newFixedWidget(10, 1)).GrowH()
		engine.Layout(VStack(a, b), 50, 20)
		if boundsOf(a).Height != 5 {
			t.Errorf("fixed height = %d, want 5", boundsOf(a).Height)
		}
		if boundsOf(b).Height != 15 {
			t.Errorf("fill height = %d, want 15", boundsOf(b).Height)
		}
	})

	t.Run("FillRemainderIsDropped", func(t *testing.T) {
		a := Element(newFixedWidget(1, 1)).GrowH()
		b := Element(newFixedWidget(1, 1)).GrowH()
		c := Element(newFixedWidget(1, 1)).GrowH()
		engine.Layout(VStack(a, b, c), 10, 20)
		// 20/3 = 6 each; the remainder of 2 is an accepted rounding loss.
		for i, n := range []*Node{a, b, c} {
			if boundsOf(n).Height != 6 {
				t.Errorf("child %d height = %d, want 6", i, boundsOf(n).Height)
			}
		}
	})

	t.Run("PercentBehavesLikeFillOnMainAxis", func(t *testing.T) {
		a := Element(newFixedWidget(1, 1)).HeightPct(0.25)
		b := Element(newFixedWidget(1, 1)).GrowH()
		engine.Layout(VStack(a, b), 10, 20)
		if boundsOf(a).Height != boundsOf(b).Height {
			t.Errorf("percent child got %d, fill child got %d; they should match",
				boundsOf(a).Height, boundsOf(b).Height)
		}
	})

	t.Run("CrossAxisAlignment", func(t *testing.T) {
		tests := []struct {
			align     HAlign
			wantX     int
			wantWidth int
		}{
			{AlignLeft, 0, 10},
			{AlignCenterH, 10, 10},
			{AlignRight, 20, 10},
			{AlignStretchH, 0, 30},
		}
		for _, tt := range tests {
			child := Element(newFixedWidget(10, 1))
			engine.Layout(VStack(child).Align(tt.align, AlignTop), 30, 5)
			got := boundsOf(child)
			if got.X != tt.wantX || got.Width != tt.wantWidth {
				t.Errorf("align %v: x=%d w=%d, want x=%d w=%d",
					tt.align, got.X, got.Width, tt.wantX, tt.wantWidth)
			}
		}
	})

	t.Run("GroupAlignmentOffsetsWholeBlock", func(t *testing.T) {
		a := Element(newFixedWidget(5, 2))
		b := Element(newFixedWidget(5, 3))
		engine.Layout(VStack(a, b).Gap(1).Align(AlignLeft, AlignMiddle), 30, 20)
		// Block is 2+3+1 = 6 tall in a 20-cell space, so offset is 7.
		if boundsOf(a).Y != 7 {
			t.Errorf("first child Y = %d, want 7", boundsOf(a).Y)
		}
		if boundsOf(b).Y != 10 {
			t.Errorf("second child Y = %d, want 10", boundsOf(b).Y)
		}
	})

	t.Run("FillChildDisablesGroupAlignment", func(t *testing.T) {
		a := Element(newFixedWidget(5, 2))
		b := Element(newFixedWidget(5, 1)).GrowH()
		engine.Layout(VStack(a, b).Align(AlignLeft, AlignMiddle), 30, 20)
		if boundsOf(a).Y != 0 {
			t.Errorf("first child Y = %d, want 0: fill wins over group alignment", boundsOf(a).Y)
		}
	})

	t.Run("MarginThenPadding", func(t *testing.T) {
		child := Element(newFixedWidget(5, 1))
		engine.Layout(VStack(child).Pad(2).MarginAll(1), 30, 10)
		got := boundsOf(child)
		if got.X != 3 || got.Y != 3 {
			t.Errorf("child at (%d,%d), want (3,3)", got.X, got.Y)
		}
	})

	t.Run("ZeroViewportDoesNotPanic", func(t *testing.T) {
		a := Element(newFixedWidget(5, 1)).GrowH().GrowW()
		elements := engine.Layout(VStack(a).Pad(1), 0, 0)
		if len(elements) != 1 {
			t.Fatalf("got %d elements, want 1", len(elements))
		}
		got := elements[0].Bounds
		if got.Width != 0 || got.Height != 0 {
			t.Errorf("zero viewport gave %dx%d bounds, want 0x0", got.Width, got.Height)
		}
	})

	t.Run("FramePercentChild", func(t *testing.T) {
		child := Element(newFixedWidget(5, 1)).WidthPct(0.5).HeightPct(0.5)
		engine.Layout(Frame(child), 40, 10)
		got := boundsOf(child)
		if got.Width != 20 || got.Height != 5 {
			t.Errorf("frame child = %dx%d, want 20x5", got.Width, got.Height)
		}
		if got.X != 10 {
			t.Errorf("centered frame child X = %d, want 10", got.X)
		}
	})
}

func TestLayoutCollectsLeavesPreOrder(t *testing.T) {
	engine := &LayoutEngine{}
	w1 := newFixedWidget(3, 1)
	w2 := newFixedWidget(3, 1)
	w3 := newFixedWidget(3, 1)
	root := VStack(
		Element(w1),
		HStack(Element(w2), Element(w3)),
	)
	elements := engine.Layout(root, 40, 10)
	if len(elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(elements))
	}
	order := []Widget{elements[0].Widget, elements[1].Widget, elements[2].Widget}
	if order[0] != Widget(w1) || order[1] != Widget(w2) || order[2] != Widget(w3) {
		t.Error("leaf collection is not pre-order")
	}
	// SetBounds must have been pushed to each widget.
	if w2.GetBounds().Y != 1 {
		t.Errorf("w2 bounds Y = %d, want 1", w2.GetBounds().Y)
	}
}
