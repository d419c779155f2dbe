package wijjit

import "math"

// ScrollState maps a content extent and viewport extent to a visible window.
// Every mutation re-clamps, so the position invariant
// 0 <= position <= max(0, content-viewport) holds at all times.
// Works for either axis; units are cells (rows or columns).
type ScrollState struct {
	contentSize  int
	viewportSize int
	position     int
}

// NewScrollState creates scroll state with the position clamped into range.
func NewScrollState(contentSize, viewportSize, position int) *ScrollState {
	s := &ScrollState{}
	s.contentSize = maxInt(0, contentSize)
	s.viewportSize = maxInt(0, viewportSize)
	s.position = s.clamp(position)
	return s
}

func (s *ScrollState) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if m := s.MaxScroll(); pos > m {
		return m
	}
	return pos
}

// ContentSize returns the content extent.
func (s *ScrollState) ContentSize() int {
	return s.contentSize
}

// ViewportSize returns the viewport extent.
func (s *ScrollState) ViewportSize() int {
	return s.viewportSize
}

// Position returns the current scroll position.
func (s *ScrollState) Position() int {
	return s.position
}

// MaxScroll returns the furthest valid scroll position.
func (s *ScrollState) MaxScroll() int {
	return maxInt(0, s.contentSize-s.viewportSize)
}

// IsScrollable reports whether the content exceeds the viewport.
func (s *ScrollState) IsScrollable() bool {
	return s.contentSize > s.viewportSize
}

// CanScrollUp reports whether the position can decrease.
func (s *ScrollState) CanScrollUp() bool {
	return s.position > 0
}

// CanScrollDown reports whether the position can increase.
func (s *ScrollState) CanScrollDown() bool {
	return s.position < s.MaxScroll()
}

// Percent returns the scroll position as a fraction of max scroll, in [0,1].
func (s *ScrollState) Percent() float64 {
	m := s.MaxScroll()
	if m == 0 {
		return 0
	}
	return float64(s.position) / float64(m)
}

// ScrollBy adjusts the position by delta, clamping. Returns the new position.
func (s *ScrollState) ScrollBy(delta int) int {
	s.position = s.clamp(s.position + delta)
	return s.position
}

// ScrollTo sets the position, clamping. Returns the new position.
func (s *ScrollState) ScrollTo(pos int) int {
	s.position = s.clamp(pos)
	return s.position
}

// ScrollToTop scrolls to position 0.
func (s *ScrollState) ScrollToTop() {
	s.position = 0
}

// ScrollToBottom scrolls to the maximum position.
func (s *ScrollState) ScrollToBottom() {
	s.position = s.MaxScroll()
}

// PageUp scrolls up by one viewport extent.
func (s *ScrollState) PageUp() int {
	return s.ScrollBy(-s.viewportSize)
}

// PageDown scrolls down by one viewport extent.
func (s *ScrollState) PageDown() int {
	return s.ScrollBy(s.viewportSize)
}

// SetContentSize updates the content extent and re-clamps the position.
// Negative input clamps to 0.
func (s *ScrollState) SetContentSize(n int) {
	s.contentSize = maxInt(0, n)
	s.position = s.clamp(s.position)
}

// SetViewportSize updates the viewport extent and re-clamps the position.
// Negative input clamps to 0.
func (s *ScrollState) SetViewportSize(n int) {
	s.viewportSize = maxInt(0, n)
	s.position = s.clamp(s.position)
}

// VisibleRange returns the half-open [start, end) range of visible content.
func (s *ScrollState) VisibleRange() (start, end int) {
	start = s.position
	end = minInt(start+s.viewportSize, s.contentSize)
	return start, end
}

// EnsureVisible adjusts the position so the given content index is inside
// the visible window.
func (s *ScrollState) EnsureVisible(idx int) {
	if idx < s.position {
		s.position = s.clamp(idx)
	} else if idx >= s.position+s.viewportSize {
		s.position = s.clamp(idx - s.viewportSize + 1)
	}
}

// ScrollbarThumb computes a proportional scrollbar thumb for a track of
// barLength cells. When the state is not scrollable the thumb fills the
// whole track. Thumb size never drops below 1.
func ScrollbarThumb(s *ScrollState, barLength int) (start, size int) {
	if barLength <= 0 {
		return 0, 0
	}
	if !s.IsScrollable() {
		return 0, barLength
	}
	size = int(math.Round(float64(s.viewportSize) / float64(s.contentSize) * float64(barLength)))
	if size < 1 {
		size = 1
	}
	if size > barLength {
		size = barLength
	}
	start = int(math.Round(s.Percent() * float64(barLength-size)))
	if start < 0 {
		start = 0
	}
	if start+size > barLength {
		start = barLength - size
	}
	return start, size
}

// DrawScrollbar renders a vertical scrollbar track with a proportional thumb
// into the buffer.
func DrawScrollbar(buf *Buffer, x, y, length int, s *ScrollState, thumb, track Style) {
	start, size := ScrollbarThumb(s, length)
	for i := 0; i < length; i++ {
		ch, style := '░', track
		if i >= start && i < start+size {
			ch, style = '█', thumb
		}
		buf.Set(x, y+i, NewCell(ch, style))
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
