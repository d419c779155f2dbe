package wijjit

// Event is the payload passed to registered key handlers. Handlers run in
// registration order; calling Cancel stops any later handler from seeing
// the event.
type Event struct {
	Input InputEvent
	View  string // Active view name at dispatch time

	cancelled bool
}

// Cancel stops propagation to handlers registered after the current one.
func (e *Event) Cancel() { e.cancelled = true }

// Cancelled reports whether a handler cancelled the event.
func (e *Event) Cancelled() bool { return e.cancelled }

// HandlerFunc is a registered key handler.
type HandlerFunc func(*Event)

type binding struct {
	view string // "" means global
	key  string
	fn   HandlerFunc
}

// HandlerRegistry maps canonical key names, like "ctrl+s" or "f2", to
// handlers. Handlers are scoped globally or to a named view; scope only
// filters which handlers are eligible, the overall registration order
// decides who runs first.
type HandlerRegistry struct {
	bindings []binding
}

// NewHandlerRegistry creates an empty registry.
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

// RegisterGlobal binds a handler for every view. The key is a canonical
// name as produced by InputEvent.KeyName.
func (r *HandlerRegistry) RegisterGlobal(key string, fn HandlerFunc) {
	r.bindings = append(r.bindings, binding{key: canonicalKeyName(key), fn: fn})
}

// RegisterView binds a handler that only fires while the named view is
// active.
func (r *HandlerRegistry) RegisterView(view, key string, fn HandlerFunc) {
	r.bindings = append(r.bindings, binding{view: view, key: canonicalKeyName(key), fn: fn})
}

// ClearView drops every handler scoped to the named view.
func (r *HandlerRegistry) ClearView(view string) {
	if view == "" {
		return
	}
	kept := r.bindings[:0]
	for _, b := range r.bindings {
		if b.view != view {
			kept = append(kept, b)
		}
	}
	r.bindings = kept
}

// Dispatch runs the handlers bound to the event's key in registration
// order, skipping view-scoped handlers of other views, stopping at the
// first Cancel. It reports whether any handler ran and whether one
// cancelled the event; a cancelled event must not be routed any further
// by the caller.
func (r *HandlerRegistry) Dispatch(view string, input InputEvent) (ran, cancelled bool) {
	key := input.KeyName()
	if key == "" {
		return false, false
	}
	ev := &Event{Input: input, View: view}
	for _, b := range r.bindings {
		if b.key != key || (b.view != "" && b.view != view) {
			continue
		}
		b.fn(ev)
		ran = true
		if ev.cancelled {
			return true, true
		}
	}
	return ran, false
}
