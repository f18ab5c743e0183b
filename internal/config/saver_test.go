package config

import (
	"path/filepath"
	"testing"
)

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.Flags.ShowHidden = true
	cfg.UI.Height = 40
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !loaded.Flags.ShowHidden {
		t.Error("showHidden lost in round trip")
	}
	if loaded.UI.Height != 40 {
		t.Errorf("height = %d, want 40", loaded.UI.Height)
	}
	if loaded.UI.ToastDuration != cfg.UI.ToastDuration {
		t.Errorf("toast duration = %v, want %v", loaded.UI.ToastDuration, cfg.UI.ToastDuration)
	}
	if loaded.Watch.Debounce != cfg.Watch.Debounce {
		t.Errorf("debounce = %v, want %v", loaded.Watch.Debounce, cfg.Watch.Debounce)
	}
}
