// Package nav owns the navigation state: the current root, pattern and
// display flags, plus the LIFO history used by back/escape.
package nav

import "github.com/marcus/arbor/internal/gitignore"

// Flags are the display toggles. Plain value struct, copied into every
// snapshot; never shared by pointer.
type Flags struct {
	ShowHidden bool
	Gitignore  gitignore.Mode
	OnlyDirs   bool
	ShowSizes  bool
	ShowPerms  bool
}

// State is one navigation snapshot: enough to restore the view exactly.
type State struct {
	Root      string // absolute path of the displayed root
	Pattern   string // raw fuzzy input
	Flags     Flags
	Selection string // absolute path of the selected entry, "" when none
}

// History is a strictly LIFO stack of navigation snapshots. A snapshot is
// pushed right before a root change replaces it.
type History struct {
	states []State
}

// Push appends a snapshot.
func (h *History) Push(s State) {
	h.states = append(h.states, s)
}

// Pop removes and returns the most recent snapshot. The second return is
// false when the stack is empty, which callers treat as "nothing to go back
// to" (clear pattern, or quit).
func (h *History) Pop() (State, bool) {
	if len(h.states) == 0 {
		return State{}, false
	}
	s := h.states[len(h.states)-1]
	h.states = h.states[:len(h.states)-1]
	return s, true
}

// Len returns the stack depth.
func (h *History) Len() int { return len(h.states) }
