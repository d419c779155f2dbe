package wijjit

import "testing"

func typeString(t *TextInput, s string) {
	for _, r := range s {
		if r == ' ' {
			t.HandleKey(InputEvent{Type: InputKey, Key: KeySpace})
			continue
		}
		t.HandleKey(InputEvent{Type: InputKey, Key: KeyRune, Rune: r})
	}
}

func TestTextInput(t *testing.T) {
	t.Run("TypingInsertsAtCursor", func(t *testing.T) {
		in := NewTextInput(10)
		typeString(in, "helo")
		in.HandleKey(namedKeyEvent(KeyLeft))
		typeString(in, "l")
		if got := in.Value(); got != "hello" {
			t.Errorf("value = %q", got)
		}
	})

	t.Run("BackspaceAndDelete", func(t *testing.T) {
		in := NewTextInput(10)
		typeString(in, "abc")
		in.HandleKey(namedKeyEvent(KeyBackspace))
		if in.Value() != "ab" {
			t.Errorf("after backspace: %q", in.Value())
		}
		in.HandleKey(namedKeyEvent(KeyHome))
		in.HandleKey(namedKeyEvent(KeyDelete))
		if in.Value() != "b" {
			t.Errorf("after delete: %q", in.Value())
		}
	})

	t.Run("KillLineBothWays", func(t *testing.T) {
		in := NewTextInput(20)
		typeString(in, "kill me")
		in.HandleKey(namedKeyEvent(KeyLeft))
		in.HandleKey(namedKeyEvent(KeyLeft))
		in.HandleKey(namedKeyEvent(KeyCtrlK))
		if in.Value() != "kill " {
			t.Errorf("after ctrl+k: %q", in.Value())
		}
		in.HandleKey(namedKeyEvent(KeyCtrlU))
		if in.Value() != "" {
			t.Errorf("after ctrl+u: %q", in.Value())
		}
	})

	t.Run("ChangeCallbackSkipsProgrammaticWrites", func(t *testing.T) {
		in := NewTextInput(10)
		changes := 0
		in.OnChange(func(string) { changes++ })
		in.SetValue("seed")
		if changes != 0 {
			t.Error("SetValue must not fire onChange")
		}
		typeString(in, "x")
		if changes != 1 {
			t.Errorf("changes = %d, want 1", changes)
		}
	})

	t.Run("SubmitFiresOnEnter", func(t *testing.T) {
		in := NewTextInput(10)
		got := ""
		in.OnSubmit(func(v string) { got = v })
		typeString(in, "go")
		if !in.HandleKey(namedKeyEvent(KeyEnter)) {
			t.Error("enter should be handled when a submit hook exists")
		}
		if got != "go" {
			t.Errorf("submitted = %q", got)
		}
	})

	t.Run("EnterUnhandledWithoutSubmitHook", func(t *testing.T) {
		in := NewTextInput(10)
		if in.HandleKey(namedKeyEvent(KeyEnter)) {
			t.Error("enter should fall through without a submit hook")
		}
	})

	t.Run("WindowFollowsCursor", func(t *testing.T) {
		in := NewTextInput(5)
		in.SetBounds(Bounds{X: 0, Y: 0, Width: 5, Height: 1})
		typeString(in, "abcdefgh")
		// Cursor at the end; offset leaves one cell for the cursor.
		if in.offset != 4 {
			t.Errorf("offset = %d, want 4", in.offset)
		}
		in.HandleKey(namedKeyEvent(KeyHome))
		if in.offset != 0 {
			t.Errorf("offset after home = %d, want 0", in.offset)
		}
	})

	t.Run("ClickMovesCursor", func(t *testing.T) {
		in := NewTextInput(10)
		in.SetBounds(Bounds{X: 2, Y: 1, Width: 10, Height: 1})
		typeString(in, "abcdef")
		ev := InputEvent{
			Type: InputMouse, MouseBtn: MouseBtnLeft,
			MouseAction: MouseActionPress, MouseX: 5, MouseY: 1,
		}
		if !in.HandleMouse(ev) {
			t.Fatal("click inside bounds should be handled")
		}
		if in.cursor != 3 {
			t.Errorf("cursor = %d, want 3", in.cursor)
		}
	})

	t.Run("MaskedRender", func(t *testing.T) {
		in := NewTextInput(8).Masked()
		in.SetBounds(Bounds{X: 0, Y: 0, Width: 8, Height: 1})
		typeString(in, "pw")
		buf := NewBuffer(10, 2)
		in.Render(buf)
		if c := buf.Get(0, 0); c.Rune != '*' {
			t.Errorf("masked rune = %q, want '*'", c.Rune)
		}
	})
}

func TestWiring(t *testing.T) {
	t.Run("StoreValueWins", func(t *testing.T) {
		store := NewStateStore()
		store.Set("name", "stored")
		in := NewTextInput(10).BindKey("name")
		in.SetValue("widget")
		els := []PositionedElement{{Widget: in}}
		wireElements(els, store)
		if in.Value() != "stored" {
			t.Errorf("value = %q, store should win", in.Value())
		}
	})

	t.Run("WidgetSeedsEmptyStore", func(t *testing.T) {
		store := NewStateStore()
		in := NewTextInput(10).BindKey("name")
		in.SetValue("widget")
		wireElements([]PositionedElement{{Widget: in}}, store)
		if got := store.GetOr("name", ""); got != "widget" {
			t.Errorf("store = %q, want widget seed", got)
		}
	})

	t.Run("SyncPushesEdits", func(t *testing.T) {
		store := NewStateStore()
		in := NewTextInput(10).BindKey("name")
		els := []PositionedElement{{Widget: in}}
		wireElements(els, store)
		typeString(in, "hi")
		syncBindings(els, store)
		if got := store.GetOr("name", ""); got != "hi" {
			t.Errorf("store = %q, want hi", got)
		}
	})
}
