package wijjit

// wireElements connects freshly laid-out widgets to the state store. A
// bindable widget whose key already exists in the store adopts the stored
// value; otherwise the widget's current value seeds the store. Wiring must
// run before focus collection, so a widget that becomes focusable because
// of its restored value lands in the tab order.
func wireElements(elements []PositionedElement, store *StateStore) {
	if store == nil {
		return
	}
	for _, el := range elements {
		b, ok := el.Widget.(Bindable)
		if !ok || b.StateKey() == "" {
			continue
		}
		if v, present := store.Get(b.StateKey()); present {
			if v != b.ReadValue() {
				b.WriteValue(v)
			}
		} else {
			store.Set(b.StateKey(), b.ReadValue())
		}
	}
}

// syncBindings pushes widget values back into the store after input has
// been handled. Unchanged values are no-ops in the store and fire no
// change callback.
func syncBindings(elements []PositionedElement, store *StateStore) {
	if store == nil {
		return
	}
	for _, el := range elements {
		b, ok := el.Widget.(Bindable)
		if !ok || b.StateKey() == "" {
			continue
		}
		store.Set(b.StateKey(), b.ReadValue())
	}
}
