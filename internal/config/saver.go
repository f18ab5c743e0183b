package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Flags FlagsConfig     `json:"flags"`
	UI    saveUIConfig    `json:"ui"`
	Watch saveWatchConfig `json:"watch"`
	Verbs []VerbConfig    `json:"verbs"`
}

type saveUIConfig struct {
	Height        int    `json:"height"`
	Preview       bool   `json:"preview"`
	Editor        string `json:"editor,omitempty"`
	ToastDuration string `json:"toastDuration"`
}

type saveWatchConfig struct {
	Enabled  bool   `json:"enabled"`
	Debounce string `json:"debounce"`
}

func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Flags: cfg.Flags,
		UI: saveUIConfig{
			Height:        cfg.UI.Height,
			Preview:       cfg.UI.Preview,
			Editor:        cfg.UI.Editor,
			ToastDuration: cfg.UI.ToastDuration.String(),
		},
		Watch: saveWatchConfig{
			Enabled:  cfg.Watch.Enabled,
			Debounce: cfg.Watch.Debounce.String(),
		},
		Verbs: cfg.Verbs,
	}
}

// SaveTo writes the config as indented JSON.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(toSaveConfig(cfg), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// EnsureDefault writes the default config to the standard location on first
// run, so users have a file to edit. An existing file is left alone.
func EnsureDefault() (string, error) {
	path := ConfigPath()
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	return path, SaveTo(path, Default())
}
