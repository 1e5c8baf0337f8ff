package main

import (
	"fmt"
	"os"

	"github.com/Rigvedsarougi/Project-A/internal/app"
	"github.com/Rigvedsarougi/Project-A/internal/collector"
	"github.com/Rigvedsarougi/Project-A/internal/collector/yahoo"
	"github.com/Rigvedsarougi/Project-A/internal/config"
	"github.com/Rigvedsarougi/Project-A/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "quant",
	Short: "SMA crossover research and paper trading",
	Long: `quant fetches daily price history, computes technical indicators,
backtests an SMA crossover strategy and replays it against a simulated
whole-share paper account.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadConfig reads the configured file or falls back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func newProvider(cfg *config.Config) (collector.Provider, error) {
	switch cfg.Provider.Name {
	case "yahoo":
		return yahoo.New(yahoo.WithTimeout(cfg.Provider.Timeout)), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider.Name)
	}
}

// newApp builds the pipeline and its metrics registry from config.
func newApp(cfg *config.Config, log *zap.Logger) (*app.App, *metrics.Registry, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, err
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	return app.New(cfg, provider, reg, log), reg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
