package config

import (
	"testing"
	"time"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Console.AudioMode != AudioModeNavigated {
		t.Fatalf("audio mode = %q", cfg.Console.AudioMode)
	}
	if cfg.Backend.Timeout != 0 {
		t.Fatalf("backend timeout should default to none, got %v", cfg.Backend.Timeout)
	}
	if cfg.Journal.Retention != 720*time.Hour {
		t.Fatalf("retention = %v", cfg.Journal.Retention)
	}
	if len(cfg.Upload.AudioExtensions) != 4 {
		t.Fatalf("audio extensions = %v", cfg.Upload.AudioExtensions)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENVMON_BACKEND__BASE_URL", "http://backend:5000")
	t.Setenv("ENVMON_CONSOLE__AUDIO_MODE", "inline")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://backend:5000" {
		t.Fatalf("base url = %q", cfg.Backend.BaseURL)
	}
	if cfg.Console.AudioMode != AudioModeInline {
		t.Fatalf("audio mode = %q", cfg.Console.AudioMode)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := map[string]func(*Config){
		"relative backend": func(c *Config) { c.Backend.BaseURL = "/api" },
		"audio mode":       func(c *Config) { c.Console.AudioMode = "both" },
		"session store":    func(c *Config) { c.Session.Store = "memcached" },
		"journal driver":   func(c *Config) { c.Journal.Driver = "mysql" },
		"upload size":      func(c *Config) { c.Upload.MaxFileSize = 0 },
		"log level":        func(c *Config) { c.Monitoring.LogLevel = "verbose" },
	}
	for name, mutate := range tests {
		cfg := Default()
		mutate(cfg)
		if err := validateConfig(cfg); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv("ENVMON_MONITORING__LOG_LEVEL", " Debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.Monitoring.LoggerLevel(); got != "DEBUG" {
		t.Fatalf("logger level = %q", got)
	}
	if got := Default().Monitoring.LoggerLevel(); got != "INFO" {
		t.Fatalf("default logger level = %q", got)
	}
}
