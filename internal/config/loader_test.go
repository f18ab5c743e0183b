package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Flags.Gitignore != "auto" {
		t.Errorf("got gitignore %q, want 'auto'", cfg.Flags.Gitignore)
	}
	if cfg.Flags.ShowHidden {
		t.Error("hidden files should be off by default")
	}
	if !cfg.UI.Preview {
		t.Error("preview should be enabled by default")
	}
	if len(cfg.Verbs) == 0 {
		t.Error("default verb table should not be empty")
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("should not error on missing file: %v", err)
	}
	if cfg == nil {
		t.Error("should return default config")
	}
}

func TestLoadFrom_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	content := []byte(`{
		"flags": {
			"showHidden": true,
			"gitignore": "no"
		},
		"ui": {
			"preview": false,
			"toastDuration": "10s"
		},
		"verbs": [
			{"name": "terminal", "invocation": "term", "execution": "$SHELL"}
		]
	}`)

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if !cfg.Flags.ShowHidden {
		t.Error("showHidden should be true")
	}
	if cfg.Flags.Gitignore != "no" {
		t.Errorf("got gitignore %q, want 'no'", cfg.Flags.Gitignore)
	}
	if cfg.UI.Preview {
		t.Error("preview should be disabled")
	}
	if cfg.UI.ToastDuration != 10*time.Second {
		t.Errorf("got toast duration %v, want 10s", cfg.UI.ToastDuration)
	}
	// Configured verbs extend the defaults, they do not replace them.
	found := false
	for _, v := range cfg.Verbs {
		if v.Invocation == "term" {
			found = true
		}
	}
	if !found {
		t.Error("configured verb missing")
	}
	if len(cfg.Verbs) <= 1 {
		t.Error("default verbs should still be present")
	}
	// Defaults survive for untouched sections.
	if !cfg.Watch.Enabled {
		t.Error("watch should still be enabled (default)")
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	if err := os.WriteFile(path, []byte(`{invalid`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("should error on invalid JSON")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Flags.Gitignore = "sometimes"
	cfg.UI.Height = -3
	cfg.UI.ToastDuration = -time.Second

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
	if cfg.Flags.Gitignore != "auto" {
		t.Errorf("invalid gitignore mode should fall back to auto, got %q", cfg.Flags.Gitignore)
	}
	if cfg.UI.Height != 0 {
		t.Errorf("negative height should be corrected, got %d", cfg.UI.Height)
	}
	if cfg.UI.ToastDuration <= 0 {
		t.Error("non-positive toast duration should be corrected")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input  string
		expect string
	}{
		{"~/projects", filepath.Join(home, "projects")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tc := range tests {
		if got := ExpandPath(tc.input); got != tc.expect {
			t.Errorf("ExpandPath(%q) = %q, want %q", tc.input, got, tc.expect)
		}
	}
}
