// Package config loads yap settings.
//
// Sources, lowest priority first:
//  1. Defaults
//  2. YAML file (--config, $YAP_CONFIG, or ~/.config/yap/config.yaml)
//  3. Environment variables (YAP_*)
//  4. CLI flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/yap/internal/logging"
)

const (
	DefaultDataFile = "data/tasks.txt"
	appDir          = "yap"
	configFile      = "config.yaml"
)

type Config struct {
	DataFile      string `yaml:"data_file"`
	UserName      string `yaml:"user_name"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"` // text|json|logfmt
	LogTimestamps bool   `yaml:"log_timestamps"`
	TUI           bool   `yaml:"tui"`
}

func Default() Config {
	opts := logging.DefaultOptions()
	return Config{
		DataFile:  DefaultDataFile,
		LogLevel:  opts.Level,
		LogFormat: opts.Format,
	}
}

// DefaultPath returns $YAP_CONFIG, or the per-user config file.
func DefaultPath(getenv func(string) string) string {
	if env := strings.TrimSpace(getenv("YAP_CONFIG")); env != "" {
		return env
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDir, configFile)
	}
	home, _ := os.UserHomeDir()
	if home == "" {
		return filepath.Join("."+appDir, configFile)
	}
	return filepath.Join(home, ".config", appDir, configFile)
}

// Load returns defaults overlaid with the file at path. A missing file is
// only an error when required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if strings.TrimSpace(cfg.DataFile) == "" {
		cfg.DataFile = DefaultDataFile
	}
	return cfg, nil
}

// ApplyEnv overrides fields from YAP_* variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv("YAP_DATA_FILE")); v != "" {
		c.DataFile = v
	}
	if v := strings.TrimSpace(getenv("YAP_USER_NAME")); v != "" {
		c.UserName = v
	}
	if v := strings.TrimSpace(getenv("YAP_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("YAP_LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data_file must not be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormatter(c.LogFormat); err != nil {
		return err
	}
	return nil
}

func (c Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.ReportTimestamp = c.LogTimestamps
	return opts
}

// Save writes cfg as YAML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
