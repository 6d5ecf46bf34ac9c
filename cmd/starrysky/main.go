// Command starrysky loads a bright star catalog, places it on the celestial
// sphere and toggles constellation overlays, in a terminal sky view or
// behind an HTTP/websocket API.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/config"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/logging"
	"github.com/Ricardo08S/StarrySky-4/internal/metrics"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/version"
)

const defaultConfigPath = "config/config.yaml"

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	catalog    string
	format     string
	profile    string
	logLevel   string
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	opts := &rootOptions{}

	configDefault := defaultConfigPath
	if env := os.Getenv("STARRYSKY_CONFIG_FILE"); env != "" {
		configDefault = env
	}

	cmd := &cobra.Command{
		Use:   "starrysky",
		Short: "Bright star catalog viewer with constellation overlays",
		Long: `StarrySky loads the Yale Bright Star Catalog (binary BSC5 or JSON),
projects every star onto the celestial sphere with its spectral color and
magnitude-derived size, and toggles constellation line overlays.

Without a subcommand it starts the interactive terminal sky view.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runView(cmd.Context(), opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", configDefault, "Config file path (YAML, optional)")
	flags.StringVar(&opts.catalog, "catalog", "", "Catalog file path (overrides config)")
	flags.StringVar(&opts.format, "format", "", "Catalog format: binary, json, ndjson (overrides config)")
	flags.StringVar(&opts.profile, "magnitude-profile", "", "Magnitude scale: hundredths or decimal (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		viewCmd(opts),
		serveCmd(opts),
		summaryCmd(opts),
		constellationsCmd(opts),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	return cmd
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if err := config.LoadOptional(opts.configPath, cfg); err != nil {
		return nil, err
	}

	if opts.catalog != "" {
		cfg.Catalog.Path = opts.catalog
	}
	if opts.format != "" {
		cfg.Catalog.Format = opts.format
	}
	if opts.profile != "" {
		cfg.Catalog.MagnitudeProfile = opts.profile
	}
	if opts.logLevel != "" {
		cfg.App.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// app is the wiring shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *logging.Logger
	format   catalog.Format
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	format, err := cfg.Catalog.CatalogFormat()
	if err != nil {
		return nil, fmt.Errorf("catalog format: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mt, err := metrics.New(reg)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   cfg.App.Logger(),
		format:   format,
		registry: reg,
		metrics:  mt,
	}, nil
}

// newSession builds a session over the built-in constellations.
func (a *app) newSession(r constellation.Renderer) (*session.Manager, error) {
	reg, err := constellation.NewRegistry(constellation.Default())
	if err != nil {
		return nil, fmt.Errorf("constellation registry: %w", err)
	}
	return session.NewManager(a.cfg.ManagerConfig(), reg, r,
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
	), nil
}

// loadCatalog reads the configured catalog. A truncated catalog is logged
// and its decoded prefix kept.
func (a *app) loadCatalog() (*catalog.Result, error) {
	path := a.cfg.Catalog.Path
	res, err := catalog.LoadFile(path, a.format)
	switch {
	case res == nil:
		return nil, err
	case errors.Is(err, catalog.ErrTruncatedBinaryData):
		a.logger.Warn("Catalog %s is truncated: %v", path, err)
	case err != nil:
		return nil, err
	}

	a.logger.Info("Loaded %d stars from %s (%s), %d skipped", len(res.Stars), path, res.Format, res.Skipped)
	for _, e := range res.SkippedErrors {
		a.logger.Debug("Skipped record: %v", e)
	}
	return res, nil
}
