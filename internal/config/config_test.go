package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected host localhost, got %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 8460 {
		t.Errorf("Expected port 8460, got %d", cfg.Server.Port)
	}
	if cfg.Events.SubscriberBuffer != 10 {
		t.Errorf("Expected subscriber buffer 10, got %d", cfg.Events.SubscriberBuffer)
	}
	if cfg.Database.Path == "" {
		t.Error("Expected a default database path")
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "tablero")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	content := "server:\n  port: 9000\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Expected port 9000 from the file, got %d", cfg.Server.Port)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Expected default host to fill in, got %q", cfg.Server.Host)
	}
	if cfg.Events.SubscriberBuffer != 10 {
		t.Errorf("Expected default subscriber buffer, got %d", cfg.Events.SubscriberBuffer)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	cfg.applyDefaults()
	cfg.Server.Port = 9001
	cfg.Database.Path = "/tmp/tablero-test.db"

	if err := cfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if loaded.Server.Port != 9001 {
		t.Errorf("Expected port 9001, got %d", loaded.Server.Port)
	}
	if loaded.Database.Path != "/tmp/tablero-test.db" {
		t.Errorf("Expected saved database path, got %q", loaded.Database.Path)
	}
}

func TestLoad_InvalidYaml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "tablero")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected an error for malformed yaml")
	}
}
