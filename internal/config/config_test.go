package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored, got %v", err)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("MOONMASH_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("MOONMASH_TEST_VALUE", "from-env")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("MOONMASH_TEST_VALUE"); got != "from-env" {
		t.Fatalf("expected env to win, got %q", got)
	}
}

func TestApplyFileOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "port: 9000\ncacheBackend: sqlite\ncacheDSN: moonmash.db\n")
	cfg := Default()
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("apply file: %v", err)
	}
	if cfg.Port != 9000 || cfg.CacheBackend != "sqlite" || cfg.CacheDSN != "moonmash.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.MaxImageBytes != Default().MaxImageBytes {
		t.Fatalf("expected untouched default, got %d", cfg.MaxImageBytes)
	}
}

func TestApplyFileRejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "cacheBackend: memcached\n")
	cfg := Default()
	err := cfg.ApplyFile(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported cache backend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := writeConfig(t, "port: 9000\nallowedOrigin: http://file.example\n")
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("MAX_IMAGE_BYTES", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("expected env port 9100, got %d", cfg.Port)
	}
	if cfg.AllowedOrigin != "http://file.example" {
		t.Fatalf("expected file origin, got %q", cfg.AllowedOrigin)
	}
	if cfg.MaxImageBytes != Default().MaxImageBytes {
		t.Fatalf("expected invalid env value to be ignored, got %d", cfg.MaxImageBytes)
	}
}
