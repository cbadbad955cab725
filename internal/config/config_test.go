package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HORIZONX_CONFIG", "MODE", "PROCESS_INTERVAL", "NETWORK_INTERVAL",
		"HTTP_ADDR", "JWT_SECRET", "ALLOWED_ORIGINS", "DB_PATH",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "PROCESS_LIMIT", "NETWORK_LIMIT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != ModeTUI {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeTUI)
	}
	if cfg.ProcessInterval != time.Second || cfg.NetworkInterval != time.Second {
		t.Errorf("intervals = %v/%v, want 1s/1s", cfg.ProcessInterval, cfg.NetworkInterval)
	}
	if cfg.ProcessLimit != 30 || cfg.NetworkLimit != 6 {
		t.Errorf("limits = %d/%d, want 30/6", cfg.ProcessLimit, cfg.NetworkLimit)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODE", "Serve")
	t.Setenv("PROCESS_INTERVAL", "250ms")
	t.Setenv("NETWORK_INTERVAL", "nonsense")
	t.Setenv("ALLOWED_ORIGINS", "http://a, ,http://b")
	t.Setenv("PROCESS_LIMIT", "-3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != ModeServe {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeServe)
	}
	if cfg.ProcessInterval != 250*time.Millisecond {
		t.Errorf("ProcessInterval = %v, want 250ms", cfg.ProcessInterval)
	}
	if cfg.NetworkInterval != time.Second {
		t.Errorf("NetworkInterval = %v, want fallback 1s", cfg.NetworkInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.ProcessLimit != 30 {
		t.Errorf("ProcessLimit = %d, want fallback 30", cfg.ProcessLimit)
	}
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "horizonx.yaml")
	data := "mode: stream\nnetwork_limit: 3\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HORIZONX_CONFIG", path)
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mode != ModeStream {
		t.Errorf("Mode = %q, want %q", cfg.Mode, ModeStream)
	}
	if cfg.NetworkLimit != 3 {
		t.Errorf("NetworkLimit = %d, want 3", cfg.NetworkLimit)
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, env should win over file", cfg.LogFormat)
	}
}

func TestLoadMissingYAMLIsNotAnError(t *testing.T) {
	clearEnv(t)
	t.Setenv("HORIZONX_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := defaultConfig()
	cfg.Mode = "gui"
	cfg.LogLevel = "trace"
	cfg.ProcessLimit = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}

	for _, want := range []string{"mode", "loglevel", "processlimit"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}
