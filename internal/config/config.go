package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Rigvedsarougi/Project-A/internal/core"
	"github.com/spf13/viper"
)

// Bounds for the crossover windows, matching the platform's input
// limits.
const (
	MinShortWindow = 5
	MaxShortWindow = 50
	MinLongWindow  = 20
	MaxLongWindow  = 200
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Paper    PaperConfig    `mapstructure:"paper"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Export   ExportConfig   `mapstructure:"export"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MaxSessions int    `mapstructure:"max_sessions"`
}

type ProviderConfig struct {
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// StrategyConfig holds the default crossover windows.
type StrategyConfig struct {
	ShortWindow int `mapstructure:"short_window"`
	LongWindow  int `mapstructure:"long_window"`
}

// PaperConfig holds the default paper trading account settings.
type PaperConfig struct {
	InitialCapital float64 `mapstructure:"initial_capital"`
	Commission     float64 `mapstructure:"commission"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			MaxSessions: 100,
		},
		Provider: ProviderConfig{
			Name:    "yahoo",
			Timeout: 10 * time.Second,
		},
		Strategy: StrategyConfig{
			ShortWindow: 20,
			LongWindow:  50,
		},
		Paper: PaperConfig{
			InitialCapital: 10000,
			Commission:     0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Export: ExportConfig{
			Type: "localfs",
			Path: "reports",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if err := c.Paper.Validate(); err != nil {
		return err
	}

	switch c.Export.Type {
	case "localfs", "s3":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("export type must be localfs or s3, got %q", c.Export.Type))
	}
	if c.Export.Type == "s3" && c.Export.S3.Bucket == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("s3 bucket required when export type is s3"))
	}

	return nil
}

// Validate checks the window bounds.
func (s StrategyConfig) Validate() error {
	if s.ShortWindow < MinShortWindow || s.ShortWindow > MaxShortWindow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("short window must be in [%d,%d], got %d", MinShortWindow, MaxShortWindow, s.ShortWindow))
	}
	if s.LongWindow < MinLongWindow || s.LongWindow > MaxLongWindow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("long window must be in [%d,%d], got %d", MinLongWindow, MaxLongWindow, s.LongWindow))
	}
	if s.ShortWindow >= s.LongWindow {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("short window %d must be below long window %d", s.ShortWindow, s.LongWindow))
	}
	return nil
}

// Validate checks the account parameters.
func (p PaperConfig) Validate() error {
	if p.InitialCapital <= 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("initial capital must be positive, got %f", p.InitialCapital))
	}
	if p.Commission < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("commission cannot be negative, got %f", p.Commission))
	}
	return nil
}
