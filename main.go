package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"os"
	"os/signal"

	"touchshow/app"
	"touchshow/hal"
	"touchshow/internal/buildinfo"
	"touchshow/internal/config"
	"touchshow/marker"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "touchshow",
	Short: "Show fading markers where the screen is touched",
	Long: `touchshow draws a numbered, fading marker under every active touch contact.

Up to 10 contacts are shown at once. Without a touch screen the left mouse
button acts as a single contact. In headless mode a YAML touch script can be
replayed and the last frame written to a PNG file.`,
	SilenceUsage: true,
	RunE:         run,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
	},
}

func init() {
	f := rootCmd.Flags()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (yaml, json or toml).")
	f.String("prefix", "touch", "Identifier prefix for generated markers and styles.")
	f.Int("radius", 12, "Marker radius in pixels.")
	f.String("mapping", "positional", "Contact to slot mapping: positional|sticky.")
	f.String("log-level", "info", "Log level: debug|info|warn|error.")
	f.Int("width", 480, "Framebuffer width.")
	f.Int("height", 320, "Framebuffer height.")
	f.Int("scale", 2, "Window scale factor.")
	f.Bool("headless", false, "Run without a window.")
	f.Int("hz", 60, "Tick rate in headless mode.")
	f.Uint64("ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	f.String("script", "", "YAML touch script to replay.")
	f.String("snapshot", "", "Write the last headless frame to this PNG file.")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}

	var script *hal.TouchScript
	if cfg.Script != "" {
		script, err = hal.LoadTouchScript(cfg.Script)
		if err != nil {
			return err
		}
	}

	appCfg := appConfig(cfg)
	newApp := func(h hal.HAL) (func() error, error) {
		sys, err := app.NewSystem(h, appCfg)
		if err != nil {
			return nil, err
		}
		if configPath != "" {
			if err := watchStyle(sys, h.Logger(), cmd.Flags()); err != nil {
				return nil, err
			}
		}
		return sys.Step, nil
	}
	host := hal.HostConfig{
		Width:    cfg.Width,
		Height:   cfg.Height,
		LogLevel: cfg.LogLevel,
		LogOut:   cmd.ErrOrStderr(),
	}

	if !cfg.Headless {
		return hal.RunWindow(newApp, hal.WindowConfig{Host: host, Scale: cfg.Scale, Script: script})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
		Host:     host,
		Hz:       cfg.Hz,
		Ticks:    cfg.Ticks,
		Script:   script,
		Snapshot: cfg.Snapshot,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// watchStyle restyles the running markers whenever the config file changes.
func watchStyle(sys *app.System, log hal.Logger, flags *pflag.FlagSet) error {
	return config.Watch(configPath, flags,
		func(c config.Config) { sys.Restyle(appConfig(c).Style) },
		func(err error) { log.WriteLineString("touchshow: config " + err.Error()) },
	)
}

func appConfig(cfg config.Config) app.Config {
	def := marker.DefaultStyle()
	st := marker.Style{
		Prefix:      cfg.Prefix,
		Radius:      cfg.Radius,
		Padding:     def.Padding,
		BorderWidth: def.BorderWidth,
		Fill:        config.MustColor(cfg.Fill, def.Fill),
		Border:      config.MustColor(cfg.Border, def.Border),
		Text:        config.MustColor(cfg.Text, def.Text),
	}
	return app.Config{
		Style:      st,
		Mapping:    marker.ParseMapping(cfg.Mapping),
		Background: config.MustColor(cfg.Background, color.RGBA{R: 0x10, G: 0x14, B: 0x18, A: 0xFF}),
	}
}
