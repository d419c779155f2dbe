package wijjit

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNoViews is returned by Run when no view has been registered.
	ErrNoViews = errors.New("wijjit: no views registered")
	// ErrUnknownView is returned when navigating to an unregistered view.
	ErrUnknownView = errors.New("wijjit: unknown view")
	// ErrNotRunning is returned by operations that need a live event loop.
	ErrNotRunning = errors.New("wijjit: app is not running")
)

// View is a named screen. Build runs on every render pass and returns a
// fresh layout tree; widgets it closes over carry state between passes.
type View struct {
	Name   string
	Build  func() *Node
	OnShow func()
	OnHide func()
}

// App owns the runtime: screen, input, layout, focus, overlays, handlers,
// notifications, and the shared state store. All of it is mutated only
// from the event-loop goroutine; the only cross-goroutine touch points are
// the input and resize channels.
type App struct {
	screen   *Screen
	reader   *InputReader
	engine   LayoutEngine
	focus    *FocusManager
	overlays *OverlayManager
	registry *HandlerRegistry
	notify   *NotificationManager
	store    *StateStore
	mouse    *MouseRouter
	log      *zap.Logger
	cfg      *Config

	views     map[string]*View
	viewOrder []string
	active    *View

	keyHandlers map[string]HandlerFunc

	running   bool
	dirty     bool
	animating bool
	frame     int
	quitCh    chan struct{}

	baseRoot     *Node
	baseElements []PositionedElement
}

// NewApp creates an app writing to w (nil means stdout). Pass nil for cfg
// or logger to get defaults.
func NewApp(w io.Writer, cfg *Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	screen, err := NewScreen(w)
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}

	focus := NewFocusManager()
	a := &App{
		screen:      screen,
		reader:      NewInputReader(nil),
		focus:       focus,
		overlays:    NewOverlayManager(focus, screen.Width(), screen.Height()),
		registry:    NewHandlerRegistry(),
		notify:      NewNotificationManager(),
		store:       NewStateStore(),
		mouse:       NewMouseRouter(),
		log:         logger,
		cfg:         cfg,
		views:       make(map[string]*View),
		keyHandlers: make(map[string]HandlerFunc),
		quitCh:      make(chan struct{}),
	}
	a.store.OnChange(func(string, string) { a.dirty = true })

	if !SetThemeByName(cfg.Theme) {
		logger.Warn("unknown theme, keeping current", zap.String("theme", cfg.Theme))
	}
	return a, nil
}

// Accessors for the runtime collaborators.

func (a *App) Screen() *Screen                    { return a.screen }
func (a *App) Focus() *FocusManager               { return a.focus }
func (a *App) Overlays() *OverlayManager          { return a.overlays }
func (a *App) Registry() *HandlerRegistry         { return a.registry }
func (a *App) Notifications() *NotificationManager { return a.notify }
func (a *App) Store() *StateStore                 { return a.store }
func (a *App) Logger() *zap.Logger                { return a.log }

// MarkDirty requests a re-render on the next frame boundary.
func (a *App) MarkDirty() { a.dirty = true }

// SetAnimating toggles the animation refresh interval. While animating the
// input read uses a bounded timeout so frames keep advancing.
func (a *App) SetAnimating(on bool) { a.animating = on }

// Frame returns the animation frame counter, advanced on each timer tick
// while animating.
func (a *App) Frame() int { return a.frame }

// AddView registers a view. The first registered view becomes the initial
// active view.
func (a *App) AddView(v *View) error {
	if v == nil || v.Name == "" || v.Build == nil {
		return errors.New("wijjit: view needs a name and a build function")
	}
	if _, exists := a.views[v.Name]; exists {
		return fmt.Errorf("wijjit: view %q already registered", v.Name)
	}
	a.views[v.Name] = v
	a.viewOrder = append(a.viewOrder, v.Name)
	if a.active == nil {
		a.active = v
	}
	return nil
}

// ActiveView returns the name of the active view, or "".
func (a *App) ActiveView() string {
	if a.active == nil {
		return ""
	}
	return a.active.Name
}

// SwitchView navigates to a registered view: the old view's handlers are
// cleared, lifecycle hooks fire, overlays are dismissed, and the UI is
// re-rendered.
func (a *App) SwitchView(name string) error {
	next, ok := a.views[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownView, name)
	}
	if a.active == next {
		return nil
	}
	if a.active != nil {
		a.registry.ClearView(a.active.Name)
		a.callHook(a.active.Name, "hide", a.active.OnHide)
	}
	a.overlays.Clear()
	a.active = next
	a.callHook(next.Name, "show", next.OnShow)
	a.dirty = true
	return nil
}

// OnKey registers a single-key handler matched case-insensitively against
// the canonical key name, e.g. "q" or "f2". These fire late in the routing
// chain and always mark the UI dirty.
func (a *App) OnKey(key string, fn HandlerFunc) {
	a.keyHandlers[canonicalKeyName(key)] = fn
}

// Notify queues a toast.
func (a *App) Notify(msg string, sev Severity) {
	a.notify.Notify(msg, sev)
	a.dirty = true
}

// Stop ends the event loop at the next frame boundary. Safe to call from
// any goroutine, and a no-op once stopped.
func (a *App) Stop() {
	select {
	case <-a.quitCh:
	default:
		close(a.quitCh)
	}
}

// callHook runs a user callback, recovering and logging panics. A panicked
// hook counts as not having completed; the loop keeps running.
func (a *App) callHook(name, kind string, fn func()) {
	if fn == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("hook panicked",
				zap.String("view", name),
				zap.String("hook", kind),
				zap.Any("panic", r))
		}
	}()
	fn()
}

// Run enters raw mode and drives the event loop until Stop, Ctrl+C, or
// input close. The terminal is restored on every exit path.
func (a *App) Run() error {
	if len(a.views) == 0 {
		return ErrNoViews
	}

	if err := a.screen.EnterRawMode(); err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer a.screen.ExitRawMode()

	if a.cfg.Mouse {
		a.screen.EnableMouse()
	}
	a.reader.Start()
	defer a.reader.Stop()

	a.overlays.Resize(a.screen.Width(), a.screen.Height())
	a.callHook(a.active.Name, "show", a.active.OnShow)

	a.running = true
	a.dirty = true
	defer func() { a.running = false }()

	for a.running {
		if a.dirty || a.overlays.ConsumeDirty() {
			a.render()
			a.dirty = false
		}

		timer, timerC := a.frameTimer()

		select {
		case <-a.quitCh:
			a.running = false

		case size := <-a.screen.ResizeChan():
			a.overlays.Resize(size.Width, size.Height)
			a.dirty = true

		case ev := <-a.reader.Events():
			switch ev.Type {
			case InputClosed:
				a.running = false
			case InputError:
				a.log.Warn("input error", zap.Error(ev.Err))
			case InputKey:
				a.processKey(ev)
			case InputMouse:
				a.processMouse(ev)
			}

		case <-timerC:
			if a.animating {
				a.frame++
				a.dirty = true
			}
			if a.notify.ExpireStale() {
				a.dirty = true
			}
		}

		if timer != nil {
			timer.Stop()
		}
	}
	return nil
}

// frameTimer returns the bounded-wait timer for this frame: half the
// animation interval while animating, the next toast expiry while toasts
// are queued, otherwise no timer at all (the input read blocks).
func (a *App) frameTimer() (*time.Timer, <-chan time.Time) {
	var wait time.Duration
	switch {
	case a.animating:
		wait = a.cfg.AnimationInterval() / 2
	default:
		expiry, ok := a.notify.NextExpiry()
		if !ok {
			return nil, nil
		}
		wait = maxDuration(time.Until(expiry), time.Millisecond)
	}
	t := time.NewTimer(wait)
	return t, t.C
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

// processKey applies the routing precedence contract. The ordering
// (Ctrl+C, notification escape, overlay escape, focus-trap routing, global
// dispatch, single-key handlers, focused element) is strict; each stage
// short-circuits as documented.
func (a *App) processKey(ev InputEvent) {
	// Ctrl+C always stops the loop and cannot be rebound.
	if ev.Key == KeyCtrlC {
		a.running = false
		return
	}

	if ev.Key == KeyEscape {
		if a.notify.DismissOldest() {
			a.dirty = true
			return
		}
		if a.overlays.HandleEscape() {
			a.dirty = true
			return
		}
	}

	// Focus-trap routing: keys go to the trapping overlay first. Tab
	// cycles within the trapped element set. An unhandled key falls
	// through to dispatch.
	trapped := a.overlays.ShouldTrapFocus()
	if trapped {
		if a.routeFocusNav(ev) || a.routeFocused(ev) {
			a.syncTopOverlay()
			a.dirty = true
			return
		}
	}

	ran, cancelled := a.dispatchSafe(ev)
	if ran {
		a.dirty = true
	}
	if cancelled {
		return
	}

	if fn, ok := a.keyHandlers[ev.KeyName()]; ok {
		sev := &Event{Input: ev, View: a.ActiveView()}
		a.invokeSafe(ev.KeyName(), fn, sev)
		a.dirty = true
		if sev.Cancelled() {
			return
		}
	}

	// Focused-element routing. Under a focus trap the element already saw
	// the key in the trap stage; never route it twice.
	if trapped {
		return
	}
	if a.routeFocusNav(ev) {
		a.dirty = true
		return
	}
	if a.routeFocused(ev) {
		syncBindings(a.baseElements, a.store)
		a.dirty = true
	}
}

// routeFocusNav handles Tab/Shift-Tab focus cycling.
func (a *App) routeFocusNav(ev InputEvent) bool {
	switch ev.Key {
	case KeyTab:
		return a.focus.Next()
	case KeyBacktab:
		return a.focus.Prev()
	}
	return false
}

// routeFocused offers the key to the focused widget.
func (a *App) routeFocused(ev InputEvent) bool {
	f := a.focus.GetFocusedElement()
	if f == nil {
		return false
	}
	h, ok := f.(KeyHandler)
	if !ok {
		return false
	}
	handled := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				a.log.Error("widget key handler panicked", zap.Any("panic", r))
			}
		}()
		handled = h.HandleKey(ev)
	}()
	return handled
}

// dispatchSafe runs registry dispatch with panic recovery.
func (a *App) dispatchSafe(ev InputEvent) (ran, cancelled bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("handler panicked",
				zap.String("key", ev.KeyName()),
				zap.Any("panic", r))
		}
	}()
	return a.registry.Dispatch(a.ActiveView(), ev)
}

// invokeSafe runs one handler with panic recovery.
func (a *App) invokeSafe(key string, fn HandlerFunc, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("key handler panicked",
				zap.String("key", key),
				zap.Any("panic", r))
		}
	}()
	fn(ev)
}

// syncTopOverlay writes overlay widget values back to the store.
func (a *App) syncTopOverlay() {
	if top := a.overlays.Top(); top != nil {
		syncBindings(top.Elements(), a.store)
	}
}

// processMouse delegates to the mouse router.
func (a *App) processMouse(ev InputEvent) {
	handled, dirty := a.mouse.Route(ev, a.overlays, a.focus, a.baseElements)
	if handled {
		syncBindings(a.baseElements, a.store)
		a.syncTopOverlay()
	}
	if handled || dirty {
		a.dirty = true
	}
}

// render rebuilds the active view's tree, lays it out, wires bindings,
// refreshes the tab order, and paints base, overlays, and notifications.
// Wiring runs before focus collection; that ordering is load-bearing.
func (a *App) render() {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error("render panicked", zap.Any("panic", r))
		}
	}()

	if a.active == nil {
		return
	}
	a.baseRoot = a.active.Build()
	buf := a.screen.Buffer()
	buf.Clear()

	a.baseElements = a.engine.Layout(a.baseRoot, a.screen.Width(), a.screen.Height())
	wireElements(a.baseElements, a.store)
	for _, o := range a.overlays.Stack() {
		wireElements(o.Elements(), a.store)
	}
	if !a.overlays.ShouldTrapFocus() {
		a.focus.SetElements(collectFocusables(a.baseElements))
		if a.focus.GetFocusedElement() == nil {
			a.focus.FocusFirst()
		}
	}

	for _, el := range a.baseElements {
		el.Widget.Render(buf)
	}
	a.overlays.Render(buf)
	a.notify.Render(buf)

	a.screen.Flush()
}
