package wijjit

import "sync"

// Theme is a named set of styles widgets draw with. Widgets resolve styles
// at render time, so swapping the theme takes effect on the next frame.
type Theme struct {
	Name string

	Text          Style
	Dim           Style
	Title         Style
	Border        Style
	BorderFocused Style

	Button        Style
	ButtonFocused Style
	ButtonHovered Style

	Input        Style
	InputFocused Style
	Cursor       Style

	Selection  Style
	ListItem   Style
	ListCursor Style

	OverlayBorder Style
	OverlayTitle  Style

	NotifyInfo    Style
	NotifyWarning Style
	NotifyError   Style

	ScrollThumb Style
	ScrollTrack Style
}

// DefaultTheme is a 16-color theme that works on any terminal.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",

		Text:          Style{},
		Dim:           Style{}.Dim(),
		Title:         Style{}.Bold(),
		Border:        Style{FG: BrightBlack},
		BorderFocused: Style{FG: Cyan},

		Button:        Style{FG: Black, BG: White},
		ButtonFocused: Style{FG: Black, BG: Cyan}.Bold(),
		ButtonHovered: Style{FG: Black, BG: BrightWhite},

		Input:        Style{FG: White, BG: BrightBlack},
		InputFocused: Style{FG: White, BG: Blue},
		Cursor:       Style{}.Inverse(),

		Selection:  Style{}.Inverse(),
		ListItem:   Style{},
		ListCursor: Style{FG: Black, BG: Cyan},

		OverlayBorder: Style{FG: Cyan},
		OverlayTitle:  Style{FG: Cyan}.Bold(),

		NotifyInfo:    Style{FG: Black, BG: Cyan},
		NotifyWarning: Style{FG: Black, BG: Yellow},
		NotifyError:   Style{FG: White, BG: Red}.Bold(),

		ScrollThumb: Style{FG: Cyan},
		ScrollTrack: Style{FG: BrightBlack},
	}
}

// MidnightTheme is an RGB theme for truecolor terminals.
func MidnightTheme() *Theme {
	bg := Hex(0x1a1b26)
	fg := Hex(0xc0caf5)
	accent := Hex(0x7aa2f7)
	muted := Hex(0x565f89)
	return &Theme{
		Name: "midnight",

		Text:          Style{FG: fg, BG: bg},
		Dim:           Style{FG: muted, BG: bg},
		Title:         Style{FG: accent, BG: bg}.Bold(),
		Border:        Style{FG: muted, BG: bg},
		BorderFocused: Style{FG: accent, BG: bg},

		Button:        Style{FG: bg, BG: muted},
		ButtonFocused: Style{FG: bg, BG: accent}.Bold(),
		ButtonHovered: Style{FG: bg, BG: accent.Blend(muted, 0.5)},

		Input:        Style{FG: fg, BG: Hex(0x24283b)},
		InputFocused: Style{FG: fg, BG: Hex(0x2f3549)},
		Cursor:       Style{}.Inverse(),

		Selection:  Style{FG: bg, BG: accent},
		ListItem:   Style{FG: fg, BG: bg},
		ListCursor: Style{FG: bg, BG: accent},

		OverlayBorder: Style{FG: accent, BG: bg},
		OverlayTitle:  Style{FG: accent, BG: bg}.Bold(),

		NotifyInfo:    Style{FG: bg, BG: accent},
		NotifyWarning: Style{FG: bg, BG: Hex(0xe0af68)},
		NotifyError:   Style{FG: fg, BG: Hex(0xf7768e)}.Bold(),

		ScrollThumb: Style{FG: accent, BG: bg},
		ScrollTrack: Style{FG: muted, BG: bg},
	}
}

var (
	themeMu      sync.RWMutex
	activeTheme  = DefaultTheme()
	themeCatalog = map[string]func() *Theme{
		"default":  DefaultTheme,
		"midnight": MidnightTheme,
	}
)

// CurrentTheme returns the active theme.
func CurrentTheme() *Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return activeTheme
}

// SetTheme makes t the active theme. Nil is ignored.
func SetTheme(t *Theme) {
	if t == nil {
		return
	}
	themeMu.Lock()
	activeTheme = t
	themeMu.Unlock()
}

// SetThemeByName activates a registered theme. Unknown names return false
// and leave the active theme unchanged.
func SetThemeByName(name string) bool {
	themeMu.RLock()
	factory, ok := themeCatalog[name]
	themeMu.RUnlock()
	if !ok {
		return false
	}
	SetTheme(factory())
	return true
}

// RegisterTheme adds a theme factory to the catalog.
func RegisterTheme(name string, factory func() *Theme) {
	themeMu.Lock()
	themeCatalog[name] = factory
	themeMu.Unlock()
}
