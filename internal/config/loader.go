package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/arbor"
	configFile = "config.json"
)

// rawConfig is the JSON-unmarshaling intermediary.
type rawConfig struct {
	Flags rawFlagsConfig `json:"flags"`
	UI    rawUIConfig    `json:"ui"`
	Watch rawWatchConfig `json:"watch"`
	Verbs []VerbConfig   `json:"verbs"`
}

type rawFlagsConfig struct {
	ShowHidden *bool  `json:"showHidden"`
	ShowSizes  *bool  `json:"showSizes"`
	ShowPerms  *bool  `json:"showPerms"`
	OnlyDirs   *bool  `json:"onlyDirs"`
	Gitignore  string `json:"gitignore"`
}

type rawUIConfig struct {
	Height        *int   `json:"height"`
	Preview       *bool  `json:"preview"`
	Editor        string `json:"editor"`
	ToastDuration string `json:"toastDuration"`
}

type rawWatchConfig struct {
	Enabled  *bool  `json:"enabled"`
	Debounce string `json:"debounce"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/arbor/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil // Return defaults on error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)

	for i := range cfg.Verbs {
		v := &cfg.Verbs[i]
		if v.Invocation == "" || v.Execution == "" {
			slog.Warn("verb entry missing invocation or execution", "name", v.Name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Flags
	if raw.Flags.ShowHidden != nil {
		cfg.Flags.ShowHidden = *raw.Flags.ShowHidden
	}
	if raw.Flags.ShowSizes != nil {
		cfg.Flags.ShowSizes = *raw.Flags.ShowSizes
	}
	if raw.Flags.ShowPerms != nil {
		cfg.Flags.ShowPerms = *raw.Flags.ShowPerms
	}
	if raw.Flags.OnlyDirs != nil {
		cfg.Flags.OnlyDirs = *raw.Flags.OnlyDirs
	}
	if raw.Flags.Gitignore != "" {
		cfg.Flags.Gitignore = raw.Flags.Gitignore
	}

	// UI
	if raw.UI.Height != nil {
		cfg.UI.Height = *raw.UI.Height
	}
	if raw.UI.Preview != nil {
		cfg.UI.Preview = *raw.UI.Preview
	}
	if raw.UI.Editor != "" {
		cfg.UI.Editor = raw.UI.Editor
	}
	if raw.UI.ToastDuration != "" {
		if d, err := time.ParseDuration(raw.UI.ToastDuration); err == nil {
			cfg.UI.ToastDuration = d
		}
	}

	// Watch
	if raw.Watch.Enabled != nil {
		cfg.Watch.Enabled = *raw.Watch.Enabled
	}
	if raw.Watch.Debounce != "" {
		if d, err := time.ParseDuration(raw.Watch.Debounce); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	// Verbs: configured entries are appended after the defaults so they
	// shadow same-invocation defaults in the verb table.
	if len(raw.Verbs) > 0 {
		cfg.Verbs = append(cfg.Verbs, raw.Verbs...)
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// Dir returns the config directory, also used for the debug log file.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}
