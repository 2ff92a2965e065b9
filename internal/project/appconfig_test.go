package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/WallSplit/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultReferenceWidth = 3840
	cfg.DefaultReferenceHeight = 2160
	cfg.DefaultScalePercent = 75
	cfg.Theme = "dark"
	cfg.LastOutputDir = "/tmp/out"

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultReferenceWidth != 3840 {
		t.Errorf("expected DefaultReferenceWidth=3840, got %d", loaded.DefaultReferenceWidth)
	}
	if loaded.DefaultScalePercent != 75 {
		t.Errorf("expected DefaultScalePercent=75, got %d", loaded.DefaultScalePercent)
	}
	if loaded.Theme != "dark" {
		t.Errorf("expected Theme=dark, got %s", loaded.Theme)
	}
	if loaded.LastOutputDir != "/tmp/out" {
		t.Errorf("expected LastOutputDir=/tmp/out, got %s", loaded.LastOutputDir)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultReferenceWidth != defaults.DefaultReferenceWidth {
		t.Errorf("expected default reference width %d, got %d", defaults.DefaultReferenceWidth, cfg.DefaultReferenceWidth)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "dir", "config.json")

	cfg := model.DefaultAppConfig()
	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig should create parent dirs: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}
}

func TestAppConfigParametersFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	// Stored defaults out of range fall back to the built-in parameters.
	data := []byte(`{"default_reference_width":-1,"default_reference_height":1440,"default_scale_percent":50}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	params := cfg.Parameters()
	defaults := model.DefaultParameters()
	if params != defaults {
		t.Errorf("expected fallback to defaults %+v, got %+v", defaults, params)
	}
}
