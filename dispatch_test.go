package wijjit

import "testing"

func keyEvent(name rune) InputEvent {
	return InputEvent{Type: InputKey, Key: KeyRune, Rune: name}
}

func namedKeyEvent(k Key) InputEvent {
	return InputEvent{Type: InputKey, Key: k}
}

func TestHandlerRegistry(t *testing.T) {
	t.Run("GlobalFiresInAnyView", func(t *testing.T) {
		r := NewHandlerRegistry()
		fired := 0
		r.RegisterGlobal("s", func(*Event) { fired++ })
		r.Dispatch("a", keyEvent('s'))
		r.Dispatch("b", keyEvent('s'))
		if fired != 2 {
			t.Errorf("fired = %d, want 2", fired)
		}
	})

	t.Run("ViewScopedOnlyInItsView", func(t *testing.T) {
		r := NewHandlerRegistry()
		fired := 0
		r.RegisterView("settings", "s", func(*Event) { fired++ })
		r.Dispatch("main", keyEvent('s'))
		if fired != 0 {
			t.Error("view handler fired outside its view")
		}
		ran, _ := r.Dispatch("settings", keyEvent('s'))
		if !ran || fired != 1 {
			t.Errorf("ran=%v fired=%d, want true/1", ran, fired)
		}
	})

	t.Run("RegistrationOrderAcrossScopes", func(t *testing.T) {
		r := NewHandlerRegistry()
		var order []string
		r.RegisterGlobal("x", func(*Event) { order = append(order, "g1") })
		r.RegisterView("v", "x", func(*Event) { order = append(order, "v1") })
		r.RegisterGlobal("x", func(*Event) { order = append(order, "g2") })
		r.RegisterView("v", "x", func(*Event) { order = append(order, "v2") })
		r.Dispatch("v", keyEvent('x'))
		want := []string{"g1", "v1", "g2", "v2"}
		if len(order) != len(want) {
			t.Fatalf("order = %v, want %v", order, want)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Fatalf("order = %v, want %v", order, want)
			}
		}
	})

	t.Run("EarlierGlobalCancelBlocksViewHandler", func(t *testing.T) {
		r := NewHandlerRegistry()
		var order []string
		r.RegisterGlobal("x", func(e *Event) { order = append(order, "global"); e.Cancel() })
		r.RegisterView("v", "x", func(*Event) { order = append(order, "view") })
		ran, cancelled := r.Dispatch("v", keyEvent('x'))
		if !ran || !cancelled {
			t.Errorf("ran=%v cancelled=%v, want true/true", ran, cancelled)
		}
		if len(order) != 1 || order[0] != "global" {
			t.Errorf("order = %v, want [global]", order)
		}
	})

	t.Run("CancelShortCircuits", func(t *testing.T) {
		r := NewHandlerRegistry()
		var order []string
		r.RegisterGlobal("x", func(e *Event) { order = append(order, "first"); e.Cancel() })
		r.RegisterGlobal("x", func(*Event) { order = append(order, "second") })
		ran, cancelled := r.Dispatch("", keyEvent('x'))
		if !ran || !cancelled {
			t.Errorf("ran=%v cancelled=%v, want true/true", ran, cancelled)
		}
		if len(order) != 1 {
			t.Errorf("order = %v: cancel must stop later handlers", order)
		}
	})

	t.Run("CaseInsensitiveRegistration", func(t *testing.T) {
		r := NewHandlerRegistry()
		fired := false
		r.RegisterGlobal("Ctrl+S", func(*Event) { fired = true })
		r.Dispatch("", namedKeyEvent(KeyCtrlS))
		if !fired {
			t.Error("Ctrl+S registration should match the ctrl+s event")
		}
	})

	t.Run("ClearView", func(t *testing.T) {
		r := NewHandlerRegistry()
		fired := false
		r.RegisterView("v", "x", func(*Event) { fired = true })
		r.ClearView("v")
		r.Dispatch("v", keyEvent('x'))
		if fired {
			t.Error("cleared view handler must not fire")
		}
	})

	t.Run("EventCarriesViewName", func(t *testing.T) {
		r := NewHandlerRegistry()
		var got string
		r.RegisterGlobal("x", func(e *Event) { got = e.View })
		r.Dispatch("dashboard", keyEvent('x'))
		if got != "dashboard" {
			t.Errorf("event view = %q, want dashboard", got)
		}
	})
}

func TestStateStore(t *testing.T) {
	t.Run("SetGetDelete", func(t *testing.T) {
		s := NewStateStore()
		s.Set("k", "v")
		if got, ok := s.Get("k"); !ok || got != "v" {
			t.Errorf("Get = %q,%v", got, ok)
		}
		s.Delete("k")
		if _, ok := s.Get("k"); ok {
			t.Error("deleted key should be absent")
		}
	})

	t.Run("ChangeCallbackFiresOncePerChange", func(t *testing.T) {
		s := NewStateStore()
		count := 0
		s.OnChange(func(string, string) { count++ })
		s.Set("k", "a")
		s.Set("k", "a") // no-op write
		s.Set("k", "b")
		if count != 2 {
			t.Errorf("callback fired %d times, want 2", count)
		}
	})

	t.Run("GetOr", func(t *testing.T) {
		s := NewStateStore()
		if got := s.GetOr("missing", "fallback"); got != "fallback" {
			t.Errorf("GetOr = %q", got)
		}
		s.Set("k", "")
		if got := s.GetOr("k", "fallback"); got != "" {
			t.Errorf("empty stored value should win, got %q", got)
		}
	})
}
