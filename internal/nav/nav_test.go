package nav

import (
	"fmt"
	"testing"

	"github.com/marcus/arbor/internal/gitignore"
)

func TestHistory_LIFO(t *testing.T) {
	var h History
	if _, ok := h.Pop(); ok {
		t.Fatal("empty history should not pop")
	}

	pushed := make([]State, 0, 5)
	for i := 0; i < 5; i++ {
		s := State{
			Root:      fmt.Sprintf("/proj/dir%d", i),
			Pattern:   fmt.Sprintf("pat%d", i),
			Selection: fmt.Sprintf("/proj/dir%d/sel", i),
			Flags: Flags{
				ShowHidden: i%2 == 0,
				Gitignore:  gitignore.ModeAuto,
				ShowSizes:  i > 2,
			},
		}
		pushed = append(pushed, s)
		h.Push(s)
	}
	if h.Len() != 5 {
		t.Fatalf("Len = %d, want 5", h.Len())
	}

	// Popping N times restores the exact states in reverse order.
	for i := 4; i >= 0; i-- {
		got, ok := h.Pop()
		if !ok {
			t.Fatalf("pop %d failed", i)
		}
		if got != pushed[i] {
			t.Errorf("pop %d = %+v, want %+v", i, got, pushed[i])
		}
	}
	if h.Len() != 0 {
		t.Errorf("Len after draining = %d, want 0", h.Len())
	}
	if _, ok := h.Pop(); ok {
		t.Error("drained history should not pop")
	}
}

func TestFlags_ValueSemantics(t *testing.T) {
	var h History
	f := Flags{ShowHidden: true, Gitignore: gitignore.ModeYes}
	h.Push(State{Root: "/a", Flags: f})

	// Mutating the caller's copy must not reach the stored snapshot.
	f.ShowHidden = false
	f.Gitignore = gitignore.ModeNo

	got, _ := h.Pop()
	if !got.Flags.ShowHidden || got.Flags.Gitignore != gitignore.ModeYes {
		t.Error("snapshot flags should be independent of the caller's copy")
	}
}
