package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Detector.PatternThreshold != 0.2 {
		t.Errorf("PatternThreshold = %v, want 0.2", cfg.Detector.PatternThreshold)
	}
	if cfg.Detector.StyleThreshold != 0.3 {
		t.Errorf("StyleThreshold = %v, want 0.3", cfg.Detector.StyleThreshold)
	}
	if cfg.Index.HotSpotLimit != 20 {
		t.Errorf("HotSpotLimit = %d, want 20", cfg.Index.HotSpotLimit)
	}
	if cfg.Index.PublicAPIDisplayLimit != 50 {
		t.Errorf("PublicAPIDisplayLimit = %d, want 50", cfg.Index.PublicAPIDisplayLimit)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("missing config should fall back to defaults, got error: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
}

func TestSaveAndLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Detector.PatternThreshold = 0.35
	cfg.Scan.IncludeTests = true

	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".rasr", "config.json")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if loaded.Detector.PatternThreshold != 0.35 {
		t.Errorf("PatternThreshold = %v, want 0.35", loaded.Detector.PatternThreshold)
	}
	if !loaded.Scan.IncludeTests {
		t.Error("IncludeTests should survive the roundtrip")
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Detector.StyleThreshold = 1.5

	if err := cfg.Validate(); err == nil {
		t.Error("threshold above 1 should fail validation")
	}
}
