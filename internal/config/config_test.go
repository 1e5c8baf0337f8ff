package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rigvedsarougi/Project-A/internal/core"
)

func TestLoad_FromFile(t *testing.T) {
	content := []byte(`
server:
  host: "127.0.0.1"
  port: 9090

strategy:
  short_window: 10
  long_window: 60

paper:
  initial_capital: 25000
  commission: 1.5

export:
  type: localfs
  path: "/tmp/quant/reports"
`)

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Strategy.ShortWindow != 10 || cfg.Strategy.LongWindow != 60 {
		t.Errorf("strategy = %+v", cfg.Strategy)
	}
	if cfg.Paper.InitialCapital != 25000 {
		t.Errorf("initial capital = %f", cfg.Paper.InitialCapital)
	}

	// Values absent from the file keep their defaults.
	if cfg.Provider.Name != "yahoo" {
		t.Errorf("provider = %s, want default yahoo", cfg.Provider.Name)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaults_Valid(t *testing.T) {
	if err := Defaults().Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestValidate_Bounds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short window too small", func(c *Config) { c.Strategy.ShortWindow = 4 }},
		{"short window too large", func(c *Config) { c.Strategy.ShortWindow = 51 }},
		{"long window too small", func(c *Config) { c.Strategy.LongWindow = 19 }},
		{"long window too large", func(c *Config) { c.Strategy.LongWindow = 201 }},
		{"short not below long", func(c *Config) { c.Strategy.ShortWindow = 30; c.Strategy.LongWindow = 30 }},
		{"zero capital", func(c *Config) { c.Paper.InitialCapital = 0 }},
		{"negative commission", func(c *Config) { c.Paper.Commission = -0.5 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad export type", func(c *Config) { c.Export.Type = "ftp" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, core.ErrConfigInvalid) {
				t.Errorf("Validate() = %v, want ErrConfigInvalid", err)
			}
		})
	}
}

func TestValidate_S3RequiresBucket(t *testing.T) {
	cfg := Defaults()
	cfg.Export.Type = "s3"

	if err := cfg.Validate(); !errors.Is(err, core.ErrConfigMissing) {
		t.Errorf("Validate() = %v, want ErrConfigMissing", err)
	}

	cfg.Export.S3.Bucket = "reports"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}
