package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/arbor/internal/app"
	"github.com/marcus/arbor/internal/config"
	"github.com/marcus/arbor/internal/version"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	hiddenFlag   = flag.Bool("hidden", false, "show hidden entries")
	sizesFlag    = flag.Bool("sizes", false, "show recursive sizes")
	permsFlag    = flag.Bool("perms", false, "show permission bits")
	onlyDirsFlag = flag.Bool("only-dirs", false, "show directories only")
	gitignore    = flag.String("gitignore", "", "respect .gitignore files: no, yes or auto")
	heightFlag   = flag.Int("height", 0, "max tree rows (0 = fill the terminal)")
	debugFlag    = flag.Bool("debug", false, "write a debug log to the config directory")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("arbor version %s\n", version.Effective(Version))
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyFlagOverrides(cfg)

	logger, closeLog := setupLogger(*debugFlag)
	defer closeLog()

	// First run: leave a config file for the user to edit.
	if *configPath == "" {
		if _, err := config.EnsureDefault(); err != nil {
			logger.Warn("could not write default config", "err", err)
		}
	}

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	root, err = filepath.Abs(config.ExpandPath(root))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve root: %v\n", err)
		os.Exit(1)
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Not a directory: %s\n", root)
		os.Exit(1)
	}

	model := app.New(root, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}

	// The print_path verb prints the selection after the terminal is
	// restored, for shell integration.
	if m, ok := final.(app.Model); ok && m.ExitPath() != "" {
		fmt.Println(m.ExitPath())
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// applyFlagOverrides lets command-line flags win over the config file.
func applyFlagOverrides(cfg *config.Config) {
	if *hiddenFlag {
		cfg.Flags.ShowHidden = true
	}
	if *sizesFlag {
		cfg.Flags.ShowSizes = true
	}
	if *permsFlag {
		cfg.Flags.ShowPerms = true
	}
	if *onlyDirsFlag {
		cfg.Flags.OnlyDirs = true
	}
	if *gitignore != "" {
		cfg.Flags.Gitignore = *gitignore
	}
	if *heightFlag > 0 {
		cfg.UI.Height = *heightFlag
	}
	_ = cfg.Validate()
}

// setupLogger routes slog to a file in debug mode. Logging to the terminal
// would fight the alternate screen, so the default is to discard.
func setupLogger(debug bool) (*slog.Logger, func()) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	dir := config.Dir()
	if dir == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	_ = os.MkdirAll(dir, 0o755)
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { f.Close() }
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: arbor [options] [directory]\n\n")
		fmt.Fprintf(os.Stderr, "An interactive tree navigator with fuzzy filtering.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
