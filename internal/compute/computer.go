// Package compute asynchronously annotates tree nodes with the expensive
// attributes: recursive sizes, permission bits, and ignore status. One task
// runs per root; results are tagged with a generation counter so anything
// arriving after a root change is discarded instead of polluting the new
// arena.
package compute

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/marcus/arbor/internal/gitignore"
	"github.com/marcus/arbor/internal/nav"
)

const (
	// Entries are delivered in batches to keep channel traffic low while
	// still letting the UI show partial data early.
	batchSize = 64
	// Parallel workers for the first-level subtrees.
	walkers = 4
)

// Entry is one computed annotation, keyed by absolute path.
type Entry struct {
	Path    string
	Size    int64
	Perm    os.FileMode
	Ignored bool
}

// ResultMsg carries a batch of computed entries. Gen identifies the root the
// batch was computed for; the receiver drops batches from earlier
// generations. Done marks the final batch of a walk.
type ResultMsg struct {
	Gen     uint64
	Entries []Entry
	Done    bool
}

// Computer owns the lifecycle of the background walk. It is the only writer
// of computed attributes; the UI loop drains Results and applies batches to
// its arena.
type Computer struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	results chan ResultMsg
}

// New creates an idle computer.
func New() *Computer {
	return &Computer{results: make(chan ResultMsg, 16)}
}

// Results is the channel the UI loop listens on.
func (c *Computer) Results() <-chan ResultMsg { return c.results }

// Gen returns the current generation. Batches with a different Gen are
// stale.
func (c *Computer) Gen() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// Start cancels any in-flight walk, bumps the generation, and launches a new
// walk of root. known holds sizes already present in the arena; their
// subtrees are not recomputed. Returns the new generation.
func (c *Computer) Start(root string, flags nav.Flags, filter *gitignore.Filter, respectIgnore bool, known map[string]int64) uint64 {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.mu.Unlock()

	w := &walker{
		ctx:           ctx,
		gen:           gen,
		flags:         flags,
		respectIgnore: respectIgnore,
		known:         known,
		results:       c.results,
	}
	go w.run(root, filter)
	return gen
}

// Stop cancels the in-flight walk, if any.
func (c *Computer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// walker performs one generation's subtree walk.
type walker struct {
	ctx           context.Context
	gen           uint64
	flags         nav.Flags
	respectIgnore bool
	known         map[string]int64

	mu      sync.Mutex
	batch   []Entry
	results chan<- ResultMsg
}

func (w *walker) run(root string, filter *gitignore.Filter) {
	info, err := os.Lstat(root)
	if err != nil {
		w.send(ResultMsg{Gen: w.gen, Done: true})
		return
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		w.emit(Entry{Path: root, Size: 0, Perm: info.Mode().Perm()})
		w.flush(true)
		return
	}

	// First-level subtrees walk in parallel; everything deeper is
	// sequential within its worker.
	g, _ := errgroup.WithContext(w.ctx)
	g.SetLimit(walkers)
	sums := make([]int64, len(entries))
	for i, e := range entries {
		g.Go(func() error {
			size, ok := w.walk(filepath.Join(root, e.Name()), e, filter)
			if ok {
				sums[i] = size
			}
			return nil
		})
	}
	_ = g.Wait()

	if w.ctx.Err() == nil {
		var total int64
		for _, s := range sums {
			total += s
		}
		w.emit(Entry{Path: root, Size: total, Perm: info.Mode().Perm()})
	}
	w.flush(true)
}

// walk computes the recursive size of one entry. The boolean is false when
// the entry does not count toward its parent (filtered out or cancelled).
func (w *walker) walk(path string, d fs.DirEntry, filter *gitignore.Filter) (int64, bool) {
	if w.ctx.Err() != nil {
		return 0, false
	}

	name := d.Name()
	if !w.flags.ShowHidden && isHidden(name) {
		return 0, false
	}
	isDir := d.IsDir()
	ignored := w.respectIgnore && !filter.Accepts(path, name, isDir)
	if ignored {
		w.emit(Entry{Path: path, Ignored: true})
		return 0, false
	}

	// A subtree whose size survived the previous generation is reused
	// wholesale; its entries are already in the arena.
	if size, ok := w.known[path]; ok {
		return size, true
	}

	info, err := d.Info()
	if err != nil {
		return 0, false
	}

	if !isDir {
		// Symlinks count their own entry size, never their target's.
		size := info.Size()
		w.emit(Entry{Path: path, Size: size, Perm: info.Mode().Perm()})
		return size, true
	}

	var total int64
	children, err := os.ReadDir(path)
	if err == nil {
		childFilter := filter.Extend(path)
		for _, child := range children {
			if size, ok := w.walk(filepath.Join(path, child.Name()), child, childFilter); ok {
				total += size
			}
			if w.ctx.Err() != nil {
				return 0, false
			}
		}
	}
	w.emit(Entry{Path: path, Size: total, Perm: info.Mode().Perm()})
	return total, true
}

func (w *walker) emit(e Entry) {
	w.mu.Lock()
	w.batch = append(w.batch, e)
	full := len(w.batch) >= batchSize
	var out []Entry
	if full {
		out = w.batch
		w.batch = nil
	}
	w.mu.Unlock()
	if full {
		w.send(ResultMsg{Gen: w.gen, Entries: out})
	}
}

func (w *walker) flush(done bool) {
	w.mu.Lock()
	out := w.batch
	w.batch = nil
	w.mu.Unlock()
	if len(out) > 0 || done {
		w.send(ResultMsg{Gen: w.gen, Entries: out, Done: done})
	}
}

// send delivers a batch unless the walk was cancelled; a cancelled
// generation must not linger blocking on a channel nobody drains.
func (w *walker) send(msg ResultMsg) {
	select {
	case w.results <- msg:
	case <-w.ctx.Done():
	}
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}
