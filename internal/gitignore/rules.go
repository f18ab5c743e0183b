package gitignore

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// rule is one parsed .gitignore line.
type rule struct {
	pattern  string // normalized glob, slash-separated, no leading slash
	negate   bool   // "!" prefix: re-includes a previously excluded entry
	dirOnly  bool   // trailing "/": matches directories only
	anchored bool   // contains a slash: relative to the ignore file's directory
}

// ignoreFile is a parsed .gitignore, rules in file order.
type ignoreFile struct {
	dir   string // directory containing the file
	rules []rule
}

// Parsed files are cached by path and revalidated with a content hash, so
// rebuilds and the background walk don't re-read unchanged files.
var (
	cacheMu sync.Mutex
	cache   = map[string]*cachedFile{}
)

type cachedFile struct {
	sum  uint64
	file *ignoreFile
}

// loadIgnoreFile reads and parses dir/.gitignore, returning nil when the file
// is absent or unreadable. Malformed lines are skipped individually.
func loadIgnoreFile(path, dir string) *ignoreFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	sum := xxhash.Sum64(data)

	cacheMu.Lock()
	if c, ok := cache[path]; ok && c.sum == sum {
		cacheMu.Unlock()
		return c.file
	}
	cacheMu.Unlock()

	f := parseIgnoreFile(data, dir)

	cacheMu.Lock()
	cache[path] = &cachedFile{sum: sum, file: f}
	cacheMu.Unlock()
	return f
}

func parseIgnoreFile(data []byte, dir string) *ignoreFile {
	f := &ignoreFile{dir: dir}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		if r, ok := parseRule(scanner.Text()); ok {
			f.rules = append(f.rules, r)
		}
	}
	return f
}

// parseRule parses one line. Returns false for blanks, comments, and lines
// that cannot form a valid pattern.
func parseRule(line string) (rule, bool) {
	// Trailing spaces are insignificant unless escaped; we don't support
	// escaped trailing spaces, which no real-world ignore file needs.
	line = strings.TrimRight(line, " \t")
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	var r rule
	if strings.HasPrefix(line, "!") {
		r.negate = true
		line = line[1:]
	}
	if strings.HasPrefix(line, "\\#") || strings.HasPrefix(line, "\\!") {
		line = line[1:]
	}
	if strings.HasSuffix(line, "/") {
		r.dirOnly = true
		line = strings.TrimRight(line, "/")
	}
	if strings.HasPrefix(line, "/") {
		r.anchored = true
		line = strings.TrimPrefix(line, "/")
	} else if strings.Contains(line, "/") {
		// A slash anywhere in the pattern anchors it to the ignore
		// file's directory, per gitignore semantics.
		r.anchored = true
	}
	if line == "" {
		return rule{}, false
	}
	r.pattern = line
	return r, true
}

// match reports (excluded, matched) for the entry against this file's rules.
// The last matching rule in the file decides.
func (f *ignoreFile) match(entryPath, name string, isDir bool) (bool, bool) {
	rel, err := filepath.Rel(f.dir, entryPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false, false
	}
	rel = filepath.ToSlash(rel)

	for i := len(f.rules) - 1; i >= 0; i-- {
		r := f.rules[i]
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(rel, name) {
			return !r.negate, true
		}
	}
	return false, false
}

func (r rule) matches(rel, name string) bool {
	if r.anchored {
		return matchSegments(strings.Split(r.pattern, "/"), strings.Split(rel, "/"))
	}
	// Unanchored patterns match the base name at any depth.
	ok, err := path.Match(r.pattern, name)
	return err == nil && ok
}

// matchSegments matches glob pattern segments against path segments with
// "**" support. Invalid glob segments never match (the malformed-line
// contract: a bad pattern is inert, not fatal).
func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			// "**" swallows zero or more leading segments.
			for skip := 0; skip <= len(segs); skip++ {
				if matchSegments(pat[1:], segs[skip:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pat[0], segs[0])
		if err != nil || !ok {
			return false
		}
		pat = pat[1:]
		segs = segs[1:]
	}
	// A directory pattern also excludes everything beneath the directory.
	return true
}
