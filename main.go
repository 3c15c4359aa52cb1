package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"sidepane/app"
	"sidepane/config"
	"sidepane/inspect"
	"sidepane/log"
	"sidepane/pages"
	"sidepane/ui/layout"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version = "0.3.0"

	widthFlag          int
	minWidthFlag       int
	maxWidthFlag       int
	collapsedWidthFlag int
	breakpointFlag     int
	sectionFlag        string
	reduceMotionFlag   bool

	rootCmd = &cobra.Command{
		Use:   "sidepane",
		Short: "sidepane - a dashboard with a resizable, collapsible sidebar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()
			log.InitDebug()
			defer log.CloseDebug()

			cfg := config.LoadConfig()
			if err := applyFlags(cfg); err != nil {
				return err
			}

			opts := app.Options{
				Overrides: flagOverrides(),
				Section:   sectionFlag,
			}
			configPath, err := config.GetConfigPath()
			if err != nil {
				log.WarningLog.Printf("config reload disabled: %v", err)
			} else {
				opts.ConfigPath = configPath
			}

			return app.Run(ctx, cfg, config.LoadState(), opts)
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored theme and last section",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			if err := config.ResetState(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("State has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths and the computed layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()
			if err := applyFlags(cfg); err != nil {
				return err
			}

			configPath, err := config.GetConfigPath()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Printf("Config: %s\n%s\n", configPath, configJson)
			fmt.Printf("Log: %s\n", log.LogFileName())

			width, height, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil {
				width, height = 120, 40
				fmt.Printf("\nNot a terminal, assuming %dx%d\n", width, height)
			}
			snapshot, err := layoutSnapshot(cfg.Layout, width, height)
			if err != nil {
				return err
			}
			fmt.Printf("\n%s", snapshot.ToText())

			// With SIDEPANE_INSPECT=1 this also shows the last frame written
			// by a running instance.
			inspectPath := inspect.GetInspectFile()
			if live, err := inspect.ReadSnapshot(inspectPath); err == nil {
				fmt.Printf("\nLast inspected frame: %s\n%s", inspectPath, live.ToText())
			}

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of sidepane",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("sidepane version %s\n", version)
		},
	}
)

func flagOverrides() config.Overrides {
	return config.Overrides{
		Layout: layout.Options{
			InitialWidth:   widthFlag,
			MinWidth:       minWidthFlag,
			MaxWidth:       maxWidthFlag,
			CollapsedWidth: collapsedWidthFlag,
			Breakpoint:     breakpointFlag,
		},
		ReduceMotion: reduceMotionFlag,
	}
}

// applyFlags merges the command line over the config file and validates the
// result.
func applyFlags(cfg *config.Config) error {
	if err := flagOverrides().Apply(cfg); err != nil {
		return err
	}

	if sectionFlag != "" {
		items, err := pages.Load()
		if err != nil {
			return err
		}
		if pages.Index(items, sectionFlag) < 0 {
			return fmt.Errorf("unknown section %q (one of: %s)", sectionFlag, strings.Join(pages.Slugs(items), ", "))
		}
	}
	return nil
}

// layoutSnapshot mounts a panel with opts on a width x height terminal and
// describes the resulting layout.
func layoutSnapshot(opts layout.Options, width, height int) (*inspect.Snapshot, error) {
	panel, err := layout.NewPanel(opts)
	if err != nil {
		return nil, err
	}
	panel.Mount(width)

	c := layout.ComputeConstraints(width, height, panel.Width())
	d := layout.ComputeDegradation(c, panel.Collapsed())
	return inspect.NewSnapshot().
		WithTerminal(width, height).
		WithPanel(panel, panel.Width(), false).
		WithLayout(c, d), nil
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&widthFlag, "width", "w", 0,
		"Initial sidebar width in cells")
	rootCmd.PersistentFlags().IntVar(&minWidthFlag, "min-width", 0,
		"Narrowest the sidebar can be dragged")
	rootCmd.PersistentFlags().IntVar(&maxWidthFlag, "max-width", 0,
		"Widest the sidebar can be dragged")
	rootCmd.PersistentFlags().IntVar(&collapsedWidthFlag, "collapsed-width", 0,
		"Width of the icons-only sidebar")
	rootCmd.PersistentFlags().IntVar(&breakpointFlag, "breakpoint", 0,
		"Terminal width below which the sidebar is forced collapsed")
	rootCmd.Flags().StringVarP(&sectionFlag, "section", "s", "",
		"Section to open (e.g. 'billing')")
	rootCmd.PersistentFlags().BoolVar(&reduceMotionFlag, "reduce-motion", false,
		"Resize the sidebar without animation")

	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
