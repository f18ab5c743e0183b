// Package gitignore resolves whether directory entries are excluded by
// .gitignore rules. A Filter is the chain of ignore files applicable to one
// directory; filters extend downward as the tree is listed, and reset at
// nested repository boundaries so every entry is judged by its nearest
// enclosing repository only.
package gitignore

import (
	"os"
	"path/filepath"
	"strings"
)

// Mode controls whether ignore rules are applied.
type Mode int

const (
	ModeNo Mode = iota
	ModeYes
	ModeAuto
)

// ParseMode converts a CLI/config value into a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "no", "false", "":
		return ModeNo, true
	case "yes", "true":
		return ModeYes, true
	case "auto":
		return ModeAuto, true
	}
	return ModeNo, false
}

func (m Mode) String() string {
	switch m {
	case ModeYes:
		return "yes"
	case ModeAuto:
		return "auto"
	default:
		return "no"
	}
}

// Toggle cycles no -> yes -> auto -> no.
func (m Mode) Toggle() Mode {
	switch m {
	case ModeNo:
		return ModeYes
	case ModeYes:
		return ModeAuto
	default:
		return ModeNo
	}
}

// Filter is an immutable chain of parsed ignore files, outermost first.
// A nil *Filter never excludes anything.
type Filter struct {
	files []*ignoreFile
}

// NewFilter builds the filter applicable to root by collecting .gitignore
// files from root upward to the nearest repository boundary. Under ModeAuto
// it returns nil when no .git directory exists at or above root; under
// ModeNo it always returns nil.
func NewFilter(root string, mode Mode) *Filter {
	if mode == ModeNo {
		return nil
	}
	if mode == ModeAuto && !InRepository(root) {
		return nil
	}

	// Walk upward, stopping above the directory that holds .git: rules
	// from outside the repository do not apply inside it.
	var chain []*ignoreFile
	dir := root
	for {
		if f := loadIgnoreFile(filepath.Join(dir, ".gitignore"), dir); f != nil {
			// Prepend: outer files come first, nearer files later.
			chain = append([]*ignoreFile{f}, chain...)
		}
		if isRepoRoot(dir) {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return &Filter{files: chain}
}

// InRepository reports whether a .git directory exists at dir or above it.
func InRepository(dir string) bool {
	for {
		if isRepoRoot(dir) {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}

// Extend returns the filter applicable inside dir, a directory already
// accepted by f. When dir is itself a repository root (a nested checkout)
// the outer chain is dropped so resolution scopes to the nearest repository.
func (f *Filter) Extend(dir string) *Filter {
	if f == nil {
		return nil
	}
	chain := f.files
	if isRepoRoot(dir) {
		chain = nil
	}
	if nested := loadIgnoreFile(filepath.Join(dir, ".gitignore"), dir); nested != nil {
		extended := make([]*ignoreFile, len(chain), len(chain)+1)
		copy(extended, chain)
		return &Filter{files: append(extended, nested)}
	}
	if len(chain) == len(f.files) {
		return f
	}
	return &Filter{files: chain}
}

// Accepts reports whether the entry at path (with base name and kind) passes
// the ignore rules. Rules from nearer .gitignore files override outer ones;
// within one file the last matching rule wins.
func (f *Filter) Accepts(path, name string, isDir bool) bool {
	if f == nil {
		return true
	}
	for i := len(f.files) - 1; i >= 0; i-- {
		if decision, ok := f.files[i].match(path, name, isDir); ok {
			return !decision
		}
	}
	return true
}
