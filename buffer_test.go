package wijjit

import "testing"

func TestBuffer(t *testing.T) {
	t.Run("NewBuffer", func(t *testing.T) {
		buf := NewBuffer(80, 24)
		if buf.Width() != 80 || buf.Height() != 24 {
			t.Errorf("expected 80x24, got %dx%d", buf.Width(), buf.Height())
		}
		for y := 0; y < buf.Height(); y++ {
			for x := 0; x < buf.Width(); x++ {
				if buf.Get(x, y).Rune != ' ' {
					t.Fatalf("expected space at (%d,%d)", x, y)
				}
			}
		}
	})

	t.Run("NegativeSizeClampsToZero", func(t *testing.T) {
		buf := NewBuffer(-5, -5)
		if buf.Width() != 0 || buf.Height() != 0 {
			t.Errorf("expected 0x0, got %dx%d", buf.Width(), buf.Height())
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		buf := NewBuffer(10, 10)
		cell := NewCell('X', DefaultStyle().Foreground(Red))
		buf.Set(5, 5, cell)
		got := buf.Get(5, 5)
		if got.Rune != 'X' || got.Style.FG != Red {
			t.Errorf("got %+v, want %+v", got, cell)
		}
		// Out of bounds reads are empty, writes are no-ops.
		if buf.Get(-1, -1).Rune != ' ' {
			t.Error("expected empty cell out of bounds")
		}
		buf.Set(100, 100, cell)
	})

	t.Run("WriteString", func(t *testing.T) {
		buf := NewBuffer(20, 5)
		written := buf.WriteString(2, 2, "Hello", DefaultStyle())
		if written != 5 {
			t.Errorf("expected 5 written, got %d", written)
		}
		for i, ch := range "Hello" {
			if buf.Get(2+i, 2).Rune != ch {
				t.Errorf("at %d: expected %q", i, ch)
			}
		}
	})

	t.Run("WriteStringClipped", func(t *testing.T) {
		buf := NewBuffer(20, 5)
		written := buf.WriteStringClipped(0, 0, "Hello World", DefaultStyle(), 5)
		if written != 5 {
			t.Errorf("expected 5 written, got %d", written)
		}
		if buf.Get(5, 0).Rune != ' ' {
			t.Error("expected clipping after column 5")
		}
	})

	t.Run("WideRunes", func(t *testing.T) {
		buf := NewBuffer(10, 1)
		buf.WriteString(0, 0, "日本", DefaultStyle())
		if buf.Get(0, 0).Rune != '日' {
			t.Error("expected wide rune at 0")
		}
		// Trailing cell of a wide rune holds a zero-rune placeholder.
		if buf.Get(1, 0).Rune != 0 {
			t.Error("expected placeholder after wide rune")
		}
		if buf.Get(2, 0).Rune != '本' {
			t.Error("expected second wide rune at 2")
		}
		if got := buf.GetLine(0); got != "日本      " {
			t.Errorf("GetLine = %q", got)
		}
	})

	t.Run("FillRectAndClearRect", func(t *testing.T) {
		buf := NewBuffer(20, 10)
		buf.FillRect(5, 5, 3, 2, NewCell('#', DefaultStyle()))
		for y := 5; y < 7; y++ {
			for x := 5; x < 8; x++ {
				if buf.Get(x, y).Rune != '#' {
					t.Errorf("expected '#' at (%d,%d)", x, y)
				}
			}
		}
		if buf.Get(4, 5).Rune == '#' || buf.Get(8, 5).Rune == '#' {
			t.Error("fill leaked outside the rect")
		}
		buf.ClearRect(5, 5, 3, 2)
		if buf.Get(5, 5).Rune != ' ' {
			t.Error("clear did not reset the rect")
		}
	})

	t.Run("Blit", func(t *testing.T) {
		src := NewBuffer(5, 5)
		src.Fill(NewCell('s', DefaultStyle()))
		dst := NewBuffer(20, 10)
		dst.Blit(src, 0, 0, 3, 3, 5, 5)
		if dst.Get(3, 3).Rune != 's' || dst.Get(7, 7).Rune != 's' {
			t.Error("blit did not copy the region")
		}
		if dst.Get(2, 3).Rune != ' ' {
			t.Error("blit leaked outside the destination rect")
		}
	})

	t.Run("DrawBorder", func(t *testing.T) {
		buf := NewBuffer(10, 5)
		buf.DrawBorder(0, 0, 10, 5, BorderSingle, DefaultStyle())
		if buf.Get(0, 0).Rune != '┌' || buf.Get(9, 0).Rune != '┐' {
			t.Error("top corners missing")
		}
		if buf.Get(0, 4).Rune != '└' || buf.Get(9, 4).Rune != '┘' {
			t.Error("bottom corners missing")
		}
		if buf.Get(5, 0).Rune != '─' || buf.Get(0, 2).Rune != '│' {
			t.Error("edges missing")
		}
	})

	t.Run("RowDirtyTracking", func(t *testing.T) {
		buf := NewBuffer(10, 5)
		buf.ClearDirtyFlags()
		buf.Set(3, 2, NewCell('x', DefaultStyle()))
		if !buf.RowDirty(2) {
			t.Error("written row should be dirty")
		}
		if buf.RowDirty(1) {
			t.Error("untouched row should be clean")
		}
	})

	t.Run("ResizePreservesContent", func(t *testing.T) {
		buf := NewBuffer(10, 5)
		buf.Set(2, 2, NewCell('x', DefaultStyle()))
		buf.Resize(20, 10)
		if buf.Get(2, 2).Rune != 'x' {
			t.Error("resize lost content")
		}
		buf.Resize(3, 3)
		if buf.Width() != 3 || buf.Height() != 3 {
			t.Errorf("resize to 3x3 gave %dx%d", buf.Width(), buf.Height())
		}
	})

	t.Run("DimRectKeepsRunes", func(t *testing.T) {
		buf := NewBuffer(10, 3)
		buf.WriteString(0, 0, "text", DefaultStyle())
		buf.DimRect(0, 0, 10, 3)
		got := buf.Get(0, 0)
		if got.Rune != 't' {
			t.Error("dim must not change runes")
		}
		if !got.Style.Attr.Has(AttrDim) {
			t.Error("dim should set the dim attribute")
		}
	})
}
