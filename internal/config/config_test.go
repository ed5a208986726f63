package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.DataFile != DefaultDataFile {
		t.Errorf("DataFile: got %q, want %q", cfg.DataFile, DefaultDataFile)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load optional: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
	if _, err := Load(path, true); err == nil {
		t.Fatal("expected error when required file is missing")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_file: ~/notes/tasks.txt\nuser_name: Sam\nlog_level: debug\ntui: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataFile != "~/notes/tasks.txt" || cfg.UserName != "Sam" || cfg.LogLevel != "debug" || !cfg.TUI {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat should keep default, got %q", cfg.LogFormat)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data_file: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, false); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"YAP_DATA_FILE":  "/tmp/yap.txt",
		"YAP_USER_NAME":  "Robin",
		"YAP_LOG_LEVEL":  "info",
		"YAP_LOG_FORMAT": "",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.DataFile != "/tmp/yap.txt" || cfg.UserName != "Robin" || cfg.LogLevel != "info" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("empty env var should not override, got %q", cfg.LogFormat)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"empty data file", func(c *Config) { c.DataFile = " " }, true},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }, true},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate: err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.UserName = "Alex"
	want.LogFormat = "json"
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDefaultPathPrefersEnv(t *testing.T) {
	env := map[string]string{"YAP_CONFIG": "/tmp/elsewhere.yaml"}
	if got := DefaultPath(func(k string) string { return env[k] }); got != "/tmp/elsewhere.yaml" {
		t.Fatalf("got %q", got)
	}
	got := DefaultPath(func(string) string { return "" })
	if filepath.Base(got) != "config.yaml" {
		t.Errorf("unexpected default path %q", got)
	}
}

func TestLogOptionsFollowConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\nlog_format: json\nlog_timestamps: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	opts := cfg.LogOptions()
	if opts.Level != "debug" || opts.Format != "json" || !opts.ReportTimestamp {
		t.Errorf("unexpected options: %+v", opts)
	}
	if Default().LogOptions().ReportTimestamp {
		t.Error("timestamps should be off by default")
	}
}
