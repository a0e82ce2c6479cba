package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"overlaymap/internal/app"
	"overlaymap/internal/config"
	"overlaymap/internal/logging"
	"overlaymap/internal/metrics"
	"overlaymap/internal/tui"
)

// Options are the command line flags; each one overrides the config file
// and environment.
type Options struct {
	Config      string
	EnvFile     string
	DataDir     string
	LogFile     string
	LogLevel    string
	MetricsAddr string
	Location    string
}

// loadConfig layers defaults, the config file, the env file and
// environment, then flags.
func loadConfig(cmd *cobra.Command, opts *Options) (config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(opts.EnvFile); err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("data-dir") {
		cfg.DataDir = opts.DataDir
	}
	if flags.Changed("log-file") {
		cfg.Log.File = opts.LogFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if flags.Changed("location") {
		p, err := config.ParseLatLon(opts.Location)
		if err != nil {
			return cfg, fmt.Errorf("--location: %w", err)
		}
		cfg.Locate.Fixed = &p
	}
	return cfg, cfg.Validate()
}

func run(cfg config.Config) error {
	closer, err := logging.Setup(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	stop := metrics.Serve(cfg.MetricsAddr)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	log.WithField("overlays", len(a.Controls)).Info("overlaymap starting")
	_, err = tea.NewProgram(tui.New(a), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func main() {
	opts := &Options{}
	root := &cobra.Command{
		Use:           "overlaymap",
		Short:         "Terminal map viewer for emergency preparedness overlays",
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&opts.Config, "config", "c", "", "YAML config file")
	pf.StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file with OVERLAYMAP_* settings")
	pf.StringVar(&opts.DataDir, "data-dir", "", "directory relative overlay sources resolve against")
	pf.StringVar(&opts.LogFile, "log-file", "", "log file (empty discards logs)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level")
	pf.StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.StringVar(&opts.Location, "location", "", "fixed \"lat,lon\" for center-on-me")

	// config subcommand: print the effective configuration
	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(cfg)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "overlaymap:", err)
		os.Exit(1)
	}
}
