// Command wijjit-demo is a small showcase of the toolkit: a form view with
// two-way state binding, a scrollable list, and modal/dropdown overlays.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/thomas-villani/wijjit"
)

var (
	flagConfig string
	flagTheme  string
	flagLog    string
)

func main() {
	root := &cobra.Command{
		Use:   "wijjit-demo",
		Short: "Interactive demo of the wijjit TUI toolkit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
		SilenceUsage: true,
	}
	root.Flags().StringVarP(&flagConfig, "config", "c", "", "path to a TOML config file")
	root.Flags().StringVarP(&flagTheme, "theme", "t", "", "theme name (overrides config)")
	root.Flags().StringVar(&flagLog, "log", "", "write debug logs to this file")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if flagLog == "" {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{flagLog}
	cfg.ErrorOutputPaths = []string{flagLog}
	return cfg.Build()
}

func run() error {
	cfg := wijjit.DefaultConfig()
	if flagConfig != "" {
		var err error
		cfg, err = wijjit.LoadConfig(flagConfig)
		if err != nil {
			return err
		}
	}
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	app, err := wijjit.NewApp(nil, cfg, logger)
	if err != nil {
		return err
	}

	name := wijjit.NewTextInput(30).Placeholder("your name").BindKey("name")
	subscribe := wijjit.NewCheckbox("Subscribe to updates", false).BindKey("subscribe")
	fruits := wijjit.NewList([]string{
		"apple", "banana", "cherry", "dragonfruit", "elderberry",
		"fig", "grape", "honeydew", "kiwi", "lychee",
	}).Size(24, 6)
	status := wijjit.NewLabel("")

	fruits.OnSelect(func(_ int, item string) {
		status.SetText("picked: " + item)
	})

	submit := wijjit.NewButton("Submit", func() {
		who := app.Store().GetOr("name", "")
		if who == "" {
			app.Notify("name is required", wijjit.SeverityWarning)
			return
		}
		app.Overlays().Push(
			wijjit.VStack(
				wijjit.Element(wijjit.NewLabel("Hello, "+who+"!")),
				wijjit.Element(wijjit.NewButton("OK", func() {
					app.Overlays().Pop()
				})),
			).Gap(1).Pad(1),
			wijjit.OverlayOptions{
				Layer:         wijjit.LayerModal,
				Title:         "Greeting",
				DimBackground: true,
			},
		)
	})

	var menuBtn *wijjit.Button
	menuBtn = wijjit.NewButton("Menu", func() {
		anchor := menuBtn.GetBounds()
		menu := wijjit.NewMenu(
			wijjit.MenuItem{Label: "Default theme", Action: func() {
				wijjit.SetThemeByName("default")
			}},
			wijjit.MenuItem{Label: "Midnight theme", Action: func() {
				wijjit.SetThemeByName("midnight")
			}},
			wijjit.MenuSeparator(),
			wijjit.MenuItem{Label: "Quit", Action: app.Stop},
		)
		var overlay *wijjit.Overlay
		menu.OnClose(func() {
			app.Overlays().PopOverlay(overlay)
		})
		overlay = app.Overlays().Push(
			wijjit.Element(menu),
			wijjit.OverlayOptions{
				Layer:               wijjit.LayerDropdown,
				NoBorder:            true,
				CloseOnClickOutside: true,
				AnchorRect:          &anchor,
			},
		)
	})

	err = app.AddView(&wijjit.View{
		Name: "main",
		Build: func() *wijjit.Node {
			return wijjit.VStack(
				wijjit.Element(wijjit.NewLabel("wijjit demo").Styled(wijjit.CurrentTheme().Title)),
				wijjit.Element(name),
				wijjit.Element(subscribe),
				wijjit.Element(fruits),
				wijjit.HStack(
					wijjit.Element(submit),
					wijjit.Element(menuBtn),
				).Gap(2),
				wijjit.Element(status),
				wijjit.Element(wijjit.NewLabel("tab: move focus  f2: about  q: quit  esc: dismiss")),
			).Gap(1).Pad(1)
		},
	})
	if err != nil {
		return err
	}

	about := wijjit.NewTextView(
		"wijjit is a small declarative terminal UI toolkit.\n\n"+
			"Views are rebuilt from widget trees on every frame, laid out by a "+
			"two-phase flex engine, and painted through a diffing cell buffer. "+
			"Overlays stack in z bands, focus is trapped inside modals, and "+
			"widget values round-trip through a shared state store.\n\n"+
			"Scroll this text with j/k or the mouse wheel. Press F2 to go back.",
		50, 8)
	err = app.AddView(&wijjit.View{
		Name: "about",
		Build: func() *wijjit.Node {
			return wijjit.VStack(
				wijjit.Element(wijjit.NewLabel("about").Styled(wijjit.CurrentTheme().Title)),
				wijjit.Element(about),
			).Gap(1).Pad(1)
		},
	})
	if err != nil {
		return err
	}

	app.OnKey("f2", func(*wijjit.Event) {
		next := "about"
		if app.ActiveView() == "about" {
			next = "main"
		}
		app.SwitchView(next)
	})

	app.OnKey(cfg.KeyFor("quit_soft", "q"), func(ev *wijjit.Event) {
		// Single-key handlers run before focused-element routing, so let
		// the text input keep its q's.
		if _, typing := app.Focus().GetFocusedElement().(*wijjit.TextInput); typing {
			return
		}
		app.Stop()
		ev.Cancel()
	})

	return app.Run()
}
