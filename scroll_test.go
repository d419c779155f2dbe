package wijjit

import "testing"

func TestScrollState(t *testing.T) {
	t.Run("NewClampsInitialPosition", func(t *testing.T) {
		s := NewScrollState(100, 10, 500)
		if s.Position() != 90 {
			t.Errorf("position = %d, want 90", s.Position())
		}
		s = NewScrollState(5, 10, 3)
		if s.Position() != 0 {
			t.Errorf("position = %d, want 0 when content fits", s.Position())
		}
	})

	t.Run("ScrollBy", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		if got := s.ScrollBy(5); got != 5 {
			t.Errorf("ScrollBy(5) = %d, want 5", got)
		}
		if got := s.ScrollBy(-100); got != 0 {
			t.Errorf("ScrollBy(-100) = %d, want 0", got)
		}
		if got := s.ScrollBy(1000); got != 90 {
			t.Errorf("ScrollBy(1000) = %d, want max scroll 90", got)
		}
	})

	t.Run("ScrollTo", func(t *testing.T) {
		s := NewScrollState(50, 10, 0)
		if got := s.ScrollTo(20); got != 20 {
			t.Errorf("ScrollTo(20) = %d, want 20", got)
		}
		if got := s.ScrollTo(999); got != 40 {
			t.Errorf("ScrollTo(999) = %d, want 40", got)
		}
	})

	t.Run("Paging", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		s.PageDown()
		if s.Position() != 10 {
			t.Errorf("after PageDown position = %d, want 10", s.Position())
		}
		s.PageUp()
		if s.Position() != 0 {
			t.Errorf("after PageUp position = %d, want 0", s.Position())
		}
		s.ScrollToBottom()
		if s.Position() != 90 {
			t.Errorf("ScrollToBottom position = %d, want 90", s.Position())
		}
		s.ScrollToTop()
		if s.Position() != 0 {
			t.Errorf("ScrollToTop position = %d, want 0", s.Position())
		}
	})

	t.Run("ShrinkingContentPullsPositionBack", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		s.ScrollToBottom()
		s.SetContentSize(30)
		if s.Position() != 20 {
			t.Errorf("position = %d, want 20 after shrink", s.Position())
		}
		s.SetContentSize(-5)
		if s.ContentSize() != 0 || s.Position() != 0 {
			t.Errorf("negative content: size=%d pos=%d, want 0/0", s.ContentSize(), s.Position())
		}
	})

	t.Run("ClampInvariantUnderRandomOps", func(t *testing.T) {
		s := NewScrollState(37, 9, 4)
		ops := []func(){
			func() { s.ScrollBy(13) },
			func() { s.ScrollBy(-50) },
			func() { s.ScrollTo(36) },
			func() { s.SetViewportSize(3) },
			func() { s.SetContentSize(12) },
			func() { s.PageDown() },
			func() { s.SetViewportSize(0) },
			func() { s.SetContentSize(100) },
			func() { s.PageUp() },
		}
		for i, op := range ops {
			op()
			if s.Position() < 0 || s.Position() > s.MaxScroll() {
				t.Fatalf("op %d broke clamp: pos=%d max=%d", i, s.Position(), s.MaxScroll())
			}
		}
	})

	t.Run("VisibleRange", func(t *testing.T) {
		s := NewScrollState(25, 10, 20)
		start, end := s.VisibleRange()
		if start != 15 || end != 25 {
			t.Errorf("range = [%d,%d), want [15,25)", start, end)
		}
		s = NewScrollState(5, 10, 0)
		start, end = s.VisibleRange()
		if start != 0 || end != 5 {
			t.Errorf("short content range = [%d,%d), want [0,5)", start, end)
		}
	})

	t.Run("DerivedQueries", func(t *testing.T) {
		s := NewScrollState(100, 10, 45)
		if !s.IsScrollable() || !s.CanScrollUp() || !s.CanScrollDown() {
			t.Error("mid-scroll state should be scrollable both ways")
		}
		if got := s.Percent(); got < 0.49 || got > 0.51 {
			t.Errorf("Percent() = %f, want ~0.5", got)
		}
		s = NewScrollState(5, 10, 0)
		if s.IsScrollable() {
			t.Error("content smaller than viewport should not be scrollable")
		}
	})

	t.Run("EnsureVisible", func(t *testing.T) {
		s := NewScrollState(50, 10, 0)
		s.EnsureVisible(25)
		start, end := s.VisibleRange()
		if 25 < start || 25 >= end {
			t.Errorf("25 not in visible range [%d,%d)", start, end)
		}
		s.EnsureVisible(2)
		if s.Position() != 2 {
			t.Errorf("position = %d, want 2", s.Position())
		}
	})
}

func TestScrollbarThumb(t *testing.T) {
	t.Run("NotScrollableFillsBar", func(t *testing.T) {
		s := NewScrollState(5, 10, 0)
		start, size := ScrollbarThumb(s, 8)
		if start != 0 || size != 8 {
			t.Errorf("thumb = (%d,%d), want (0,8)", start, size)
		}
	})

	t.Run("Proportional", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		_, size := ScrollbarThumb(s, 10)
		if size != 1 {
			t.Errorf("thumb size = %d, want 1", size)
		}
		s = NewScrollState(20, 10, 0)
		_, size = ScrollbarThumb(s, 10)
		if size != 5 {
			t.Errorf("thumb size = %d, want 5", size)
		}
	})

	t.Run("EndsAtBottom", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		s.ScrollToBottom()
		start, size := ScrollbarThumb(s, 10)
		if start+size != 10 {
			t.Errorf("thumb (%d,%d) should touch the bar end", start, size)
		}
	})

	t.Run("ZeroBar", func(t *testing.T) {
		s := NewScrollState(100, 10, 0)
		start, size := ScrollbarThumb(s, 0)
		if start != 0 || size != 0 {
			t.Errorf("thumb = (%d,%d), want (0,0)", start, size)
		}
	})
}
