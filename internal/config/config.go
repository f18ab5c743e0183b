// Package config loads the user configuration: default flags, UI options,
// and the external verb table.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Flags FlagsConfig  `json:"flags"`
	UI    UIConfig     `json:"ui"`
	Watch WatchConfig  `json:"watch"`
	Verbs []VerbConfig `json:"verbs"`
}

// FlagsConfig sets the flags the tree starts with. Command-line flags
// override these.
type FlagsConfig struct {
	ShowHidden bool   `json:"showHidden"`
	ShowSizes  bool   `json:"showSizes"`
	ShowPerms  bool   `json:"showPerms"`
	OnlyDirs   bool   `json:"onlyDirs"`
	Gitignore  string `json:"gitignore"` // "no", "yes" or "auto"
}

// UIConfig configures appearance and the preview pane.
type UIConfig struct {
	Height        int           `json:"height"` // max tree rows, 0 = fill the terminal
	Preview       bool          `json:"preview"`
	Editor        string        `json:"editor"` // used by the open verb, defaults to $EDITOR
	ToastDuration time.Duration `json:"-"`
}

// WatchConfig configures the filesystem watcher that refreshes the tree.
type WatchConfig struct {
	Enabled  bool          `json:"enabled"`
	Debounce time.Duration `json:"-"`
}

// VerbConfig declares one external verb. The execution template may use
// {file}, {directory} and {parent}.
type VerbConfig struct {
	Name       string `json:"name"`
	Invocation string `json:"invocation"`
	Execution  string `json:"execution"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Flags: FlagsConfig{
			Gitignore: "auto",
		},
		UI: UIConfig{
			Preview:       true,
			ToastDuration: 4 * time.Second,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 300 * time.Millisecond,
		},
		Verbs: []VerbConfig{
			{Name: "edit", Invocation: "edit", Execution: "$EDITOR {file}"},
			{Name: "view", Invocation: "view", Execution: "less {file}"},
		},
	}
}

// Validate checks the configuration and corrects out-of-range values.
func (c *Config) Validate() error {
	switch c.Flags.Gitignore {
	case "no", "yes", "auto":
	default:
		c.Flags.Gitignore = "auto"
	}
	if c.UI.Height < 0 {
		c.UI.Height = 0
	}
	if c.UI.ToastDuration <= 0 {
		c.UI.ToastDuration = 4 * time.Second
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = 300 * time.Millisecond
	}
	return nil
}
