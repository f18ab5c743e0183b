package app

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Max directories added to one watcher, to bound kernel watch descriptors on
// very large trees.
const maxWatchDirs = 4096

// Watcher reports filesystem changes under the current root as debounced,
// coalesced events. Consumers only learn that "something changed"; the tree
// is rebuilt wholesale.
type Watcher struct {
	events chan struct{}
	delay  time.Duration

	mu       sync.Mutex
	closed   bool
	debounce *time.Timer
	stop     func()
}

// NewWatcher watches root and its subdirectories.
func NewWatcher(root string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}
	count := 1
	addWatchTree(fsw, root, &count)

	w := &Watcher{
		events: make(chan struct{}, 1),
		delay:  debounce,
		stop:   func() { fsw.Close() },
	}

	go func() {
		defer func() {
			w.mu.Lock()
			w.closed = true
			if w.debounce != nil {
				w.debounce.Stop()
			}
			w.mu.Unlock()
			close(w.events)
		}()

		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						addWatchTree(fsw, event.Name, &count)
					}
				}
				w.bump()

			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return w, nil
}

// bump restarts the debounce timer; the event fires once activity settles.
func (w *Watcher) bump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.closed {
			return
		}
		select {
		case w.events <- struct{}{}:
		default:
		}
	})
}

// Events is the coalesced change notification channel.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Stop shuts the watcher down and closes the event channel.
func (w *Watcher) Stop() { w.stop() }

func addWatchTree(fsw *fsnotify.Watcher, root string, count *int) {
	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root && (name == ".git" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}
		if *count >= maxWatchDirs {
			return filepath.SkipAll
		}
		if fsw.Add(path) == nil {
			*count++
		}
		return nil
	})
}
