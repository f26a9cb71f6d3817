// Package config loads server configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Duration wraps time.Duration so config.json accepts "24h" style
// values alongside raw nanosecond integers. Environment overrides parse
// through UnmarshalText.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*d = Duration(time.Duration(t))
		return nil
	case string:
		return d.UnmarshalText([]byte(t))
	default:
		return fmt.Errorf("invalid duration value %v", v)
	}
}

func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(dur)
	return nil
}

// Config holds the runtime configuration for the nohack server.
// Environment variables override file values.
type Config struct {
	Addr         string   `json:"addr" env:"NOHACK_ADDR"`
	DBPath       string   `json:"db_path" env:"NOHACK_DB_PATH"`
	JWTSecret    string   `json:"jwt_secret" env:"NOHACK_JWT_SECRET"`
	TokenTTL     Duration `json:"token_ttl" env:"NOHACK_TOKEN_TTL"`
	RedisAddr    string   `json:"redis_addr" env:"NOHACK_REDIS_ADDR"`
	Ticks        int      `json:"ticks" env:"NOHACK_TICKS"`
	TickInterval Duration `json:"tick_interval" env:"NOHACK_TICK_INTERVAL"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		Addr:         ":8080",
		TokenTTL:     Duration(24 * time.Hour),
		Ticks:        10,
		TickInterval: Duration(2 * time.Second),
	}
}

// Load reads .nohack/config.json from dir when present, then applies
// environment overrides. A missing file is not an error; defaults carry.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, ".nohack", "config.json")
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required (set NOHACK_JWT_SECRET or jwt_secret in config)")
	}

	return cfg, nil
}

// Save writes config.json to dir, creating the .nohack directory when
// missing.
func Save(dir string, cfg *Config) error {
	confDir := filepath.Join(dir, ".nohack")
	if err := os.MkdirAll(confDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(confDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
