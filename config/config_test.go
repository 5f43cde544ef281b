package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "5000" {
		t.Errorf("port = %q, want 5000", cfg.App.Port)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout != 60*time.Second {
		t.Errorf("timeout = %s, want 60s", cfg.Gemini.Timeout)
	}
	if cfg.Gemini.SystemInstruction != DefaultSystemInstruction {
		t.Errorf("system instruction not defaulted")
	}
	if len(cfg.CORS.AllowOrigins) != 2 {
		t.Fatalf("expected 2 allowed origins, got %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Gemini.APIKey != "" {
		t.Errorf("expected empty api key, got %q", cfg.Gemini.APIKey)
	}
}

func TestLoadAPIKeyFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "google-key" {
		t.Fatalf("api key = %q, want google-key", cfg.Gemini.APIKey)
	}

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gemini.APIKey != "gemini-key" {
		t.Fatalf("api key = %q, want gemini-key", cfg.Gemini.APIKey)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "analyst.yml")
	body := []byte("app:\n  port: \"9090\"\ngemini:\n  model: gemini-2.5-pro\n  timeout: 5s\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANALYST_GEMINI_MODEL", "gemini-from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.App.Port)
	}
	if cfg.Gemini.Model != "gemini-from-env" {
		t.Errorf("model = %q, want env override", cfg.Gemini.Model)
	}
	if cfg.Gemini.Timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", cfg.Gemini.Timeout)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load("does-not-exist.yml"); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.App.Port = "5000"
		c.App.Mode = "release"
		c.Gemini.Model = "m"
		c.Gemini.Timeout = time.Second
		c.CORS.AllowOrigins = []string{"http://localhost:5173"}
		return c
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.App.Port = " " }},
		{"bad mode", func(c *Config) { c.App.Mode = "prod" }},
		{"empty model", func(c *Config) { c.Gemini.Model = "" }},
		{"zero timeout", func(c *Config) { c.Gemini.Timeout = 0 }},
		{"no origins", func(c *Config) { c.CORS.AllowOrigins = nil }},
		{"wildcard origin", func(c *Config) { c.CORS.AllowOrigins = []string{"*"} }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestDialRabbitDisabled(t *testing.T) {
	cfg := &Config{}
	conn, ch, err := DialRabbit(cfg)
	if err != nil || conn != nil || ch != nil {
		t.Fatalf("expected disabled rabbit, got conn=%v ch=%v err=%v", conn, ch, err)
	}
}
