package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/litescript/ls-rigel/internal/catalog"
	"github.com/litescript/ls-rigel/internal/config"
	"github.com/litescript/ls-rigel/internal/logging"
	"github.com/litescript/ls-rigel/internal/metrics"
	"github.com/litescript/ls-rigel/internal/state"
	"github.com/litescript/ls-rigel/internal/ui"
	"github.com/litescript/ls-rigel/internal/version"
)

const (
	minRefresh = 100 * time.Millisecond
	maxRefresh = 5 * time.Minute
)

// Persistent flags backed by config keys.
var configFlags = map[string]string{
	"lat":       "observer.lat_deg",
	"lon":       "observer.lon_deg",
	"hyg":       "catalog.hyg_path",
	"asterisms": "catalog.asterism_path",
	"az":        "view.center_az_deg",
	"alt":       "view.center_alt_deg",
	"refresh":   "view.refresh",
	"log-level": "log_level",
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ls-rigel",
		Short: "Terminal planetarium",
		Long: `ls-rigel shows the Sun, the Moon, the planets and the catalogue stars
as seen from a place on Earth, on a stereographic projection of the sky.

Without a terminal on stdout it prints the summary instead of starting the
interactive view.`,
		Version:           version.Version,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		RunE:              runRoot,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (default .ls-rigel.yaml)")
	pf.Float64("lat", 46.52, "observer latitude in degrees, north positive")
	pf.Float64("lon", 6.57, "observer longitude in degrees, east positive")
	pf.String("hyg", "", "HYG star catalogue CSV (default: built-in bright stars)")
	pf.String("asterisms", "", "asterism file, one comma-separated HIP list per line")
	pf.Float64("az", 180, "azimuth of the view center in degrees")
	pf.Float64("alt", 15, "altitude of the view center in degrees")
	pf.Duration("refresh", time.Second, "sky refresh interval")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "write logs to this file (the interactive view discards them otherwise)")
	pf.String("at", "", "show the sky at this RFC 3339 time instead of now")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")

	root.AddCommand(newSummaryCmd(), newClosestCmd())
	return root
}

// initConfig wires config file, environment and flags into viper.
func initConfig(cmd *cobra.Command, _ []string) error {
	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".ls-rigel")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	config.BindEnv()
	if err := bindFlags(cmd.Flags()); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file is fine; a broken or missing explicit one is not.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func bindFlags(flags *pflag.FlagSet) error {
	for name, key := range configFlags {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// app holds the components every command needs.
type app struct {
	cfg     config.Config
	log     *logging.Logger
	metrics *metrics.Collector
	state   *state.Manager
	closer  io.Closer
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.View.Refresh < minRefresh {
		cfg.View.Refresh = minRefresh
	} else if cfg.View.Refresh > maxRefresh {
		cfg.View.Refresh = maxRefresh
	}

	a := &app{cfg: cfg, log: logging.New(cfg.Level()), metrics: metrics.NewCollector()}
	a.log.SetOutput(cmd.ErrOrStderr())
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		a.log.SetOutput(f)
		a.closer = f
	}

	cat, err := catalog.LoadFiles(cfg.Catalog.HygPath, cfg.Catalog.AsterismPath, a.log)
	if err != nil {
		a.Close()
		return nil, err
	}
	where, err := cfg.Where()
	if err != nil {
		a.Close()
		return nil, err
	}
	center, err := cfg.Center()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.state, err = state.NewManager(state.Config{
		Catalogue:       cat,
		Where:           where,
		Center:          center,
		RefreshInterval: cfg.View.Refresh,
		Metrics:         a.metrics,
		Logger:          a.log,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	if at, _ := cmd.Flags().GetString("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("--at: %w", err)
		}
		a.state.Shift(time.Until(t))
	}
	return a, nil
}

// Close releases the log file, if any.
func (a *app) Close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}

// serveMetrics exposes the collector in the background when --metrics-addr
// is set.
func (a *app) serveMetrics(ctx context.Context, cmd *cobra.Command) {
	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		return
	}
	a.log.Info("serving metrics on %s", addr)
	go func() {
		if err := a.metrics.Serve(ctx, addr); err != nil {
			a.log.Error("metrics server: %v", err)
		}
	}()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return runSummary(cmd, summaryOptions{})
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	// Logs would tear the alternate screen.
	if path, _ := cmd.Flags().GetString("log-file"); path == "" {
		a.log.SetOutput(io.Discard)
	}

	ctx, cancel := signalContext()
	defer cancel()
	a.serveMetrics(ctx, cmd)

	p := tea.NewProgram(ui.New(a.state), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
