// Package config loads the host configuration. The visual constants of the
// aurora are compiled in and deliberately not configurable.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration document.
type Config struct {
	SSH    SSHConfig    `yaml:"ssh"`
	HTTP   HTTPConfig   `yaml:"http"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// SSHConfig configures the terminal host.
type SSHConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// HTTPConfig configures the browser host.
type HTTPConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// RenderConfig configures how hosts drive the renderer.
type RenderConfig struct {
	RefreshRate int `yaml:"refresh_rate"`
	CellWidth   int `yaml:"cell_width"`
	CellHeight  int `yaml:"cell_height"`
	MaxWidth    int `yaml:"max_width"`
	MaxHeight   int `yaml:"max_height"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SSH: SSHConfig{
			Addr:    ":2222",
			HostKey: "host_key",
		},
		HTTP: HTTPConfig{
			Enabled: true,
			Addr:    ":8080",
		},
		Render: RenderConfig{
			RefreshRate: 60,
			CellWidth:   4,
			CellHeight:  8,
			MaxWidth:    3840,
			MaxHeight:   2160,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML file over the defaults. An empty path yields the
// defaults. The PORT environment variable overrides the SSH port.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.SSH.Addr = ":" + port
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and required fields.
func (c Config) Validate() error {
	var errs []error
	if c.SSH.Addr == "" {
		errs = append(errs, errors.New("ssh.addr is required"))
	}
	if c.SSH.HostKey == "" {
		errs = append(errs, errors.New("ssh.host_key is required"))
	}
	if c.HTTP.Enabled && c.HTTP.Addr == "" {
		errs = append(errs, errors.New("http.addr is required when http is enabled"))
	}
	if c.Render.RefreshRate < 1 || c.Render.RefreshRate > 240 {
		errs = append(errs, fmt.Errorf("render.refresh_rate %d out of range [1, 240]", c.Render.RefreshRate))
	}
	if c.Render.CellWidth < 1 {
		errs = append(errs, fmt.Errorf("render.cell_width %d must be positive", c.Render.CellWidth))
	}
	if c.Render.CellHeight < 2 {
		errs = append(errs, fmt.Errorf("render.cell_height %d must be at least 2", c.Render.CellHeight))
	}
	if c.Render.MaxWidth < 1 || c.Render.MaxHeight < 1 {
		errs = append(errs, errors.New("render.max_width and render.max_height must be positive"))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
