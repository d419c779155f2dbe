package wijjit

import "testing"

func TestFocusManager(t *testing.T) {
	newButtons := func(n int) []Focusable {
		out := make([]Focusable, n)
		for i := range out {
			out[i] = NewButton("b", nil)
		}
		return out
	}

	t.Run("FocusFirst", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		if !f.FocusFirst() {
			t.Fatal("FocusFirst should succeed")
		}
		if f.GetFocusedElement() != els[0] || !els[0].IsFocused() {
			t.Error("first element should hold focus")
		}
	})

	t.Run("FocusFirstSkipsDisabled", func(t *testing.T) {
		f := NewFocusManager()
		disabled := NewButton("off", nil)
		disabled.SetDisabled(true)
		target := NewButton("on", nil)
		f.SetElements([]Focusable{disabled, target})
		f.FocusFirst()
		if f.GetFocusedElement() != Focusable(target) {
			t.Error("disabled element must be skipped")
		}
	})

	t.Run("NextWrapsAround", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		f.FocusFirst()
		f.Next()
		f.Next()
		f.Next()
		if f.GetFocusedElement() != els[0] {
			t.Error("Next should wrap to the first element")
		}
	})

	t.Run("PrevWrapsAround", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		f.FocusFirst()
		f.Prev()
		if f.GetFocusedElement() != els[2] {
			t.Error("Prev from the first element should wrap to the last")
		}
	})

	t.Run("MovingFocusBlursOld", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(2)
		f.SetElements(els)
		f.FocusFirst()
		f.Next()
		if els[0].IsFocused() {
			t.Error("previous element should be blurred")
		}
		if !els[1].IsFocused() {
			t.Error("new element should be focused")
		}
	})

	t.Run("FocusElement", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		if !f.FocusElement(els[2]) {
			t.Fatal("FocusElement should succeed for a registered element")
		}
		if f.GetFocusedElement() != els[2] {
			t.Error("wrong element focused")
		}
		if f.FocusElement(NewButton("stranger", nil)) {
			t.Error("unregistered element must not be focusable")
		}
	})

	t.Run("SetElementsKeepsSurvivingFocus", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		f.FocusElement(els[1])
		// New order, focused element still present at a different index.
		f.SetElements([]Focusable{els[2], els[1]})
		if f.GetFocusedElement() != els[1] {
			t.Error("focus should follow the surviving element")
		}
		// Focused element removed entirely.
		f.SetElements([]Focusable{els[0]})
		if f.GetFocusedElement() != nil {
			t.Error("focus should clear when the element disappears")
		}
		if els[1].IsFocused() {
			t.Error("removed element should be blurred")
		}
	})

	t.Run("SaveRestoreRoundTrip", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(3)
		f.SetElements(els)
		f.FocusElement(els[1])

		token := f.SaveState()
		other := newButtons(2)
		f.SetElements(other)
		f.FocusFirst()

		f.RestoreState(token)
		if f.GetFocusedElement() != els[1] {
			t.Error("restore should reinstate the exact focused element")
		}
		if other[0].IsFocused() {
			t.Error("interim focus should be blurred on restore")
		}
	})

	t.Run("RestoreIgnoresBadToken", func(t *testing.T) {
		f := NewFocusManager()
		els := newButtons(1)
		f.SetElements(els)
		f.FocusFirst()
		f.RestoreState("not a token")
		f.RestoreState(nil)
		if f.GetFocusedElement() != els[0] {
			t.Error("bad tokens must leave focus untouched")
		}
	})

	t.Run("EmptyManager", func(t *testing.T) {
		f := NewFocusManager()
		if f.FocusFirst() || f.Next() || f.Prev() {
			t.Error("operations on an empty manager should report false")
		}
		if f.GetFocusedElement() != nil {
			t.Error("empty manager has no focused element")
		}
	})
}
