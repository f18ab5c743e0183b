package fuzzy

import (
	"strings"
	"testing"
)

func TestMatch_Subsequence(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		candidate string
		want      bool
	}{
		{"exact", "main", "main.rs", true},
		{"scattered", "mr", "main.rs", true},
		{"case insensitive", "MAKE", "makefile", true},
		{"case insensitive candidate", "make", "Makefile", true},
		{"out of order", "rm", "main.rs", false},
		{"missing char", "mrz", "main.rs", false},
		{"no r after m", "mr", "Makefile", false},
		{"empty pattern", "", "anything", true},
		{"empty candidate", "a", "", false},
		{"both empty", "", "", true},
		{"unicode", "é", "café", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Compile(tt.pattern)
			_, got := p.Match(tt.candidate)
			if got != tt.want {
				t.Errorf("Compile(%q).Match(%q) matched=%v, want %v", tt.pattern, tt.candidate, got, tt.want)
			}
		})
	}
}

// The matched-iff-subsequence law from a small generated corpus.
func TestMatch_SubsequenceLaw(t *testing.T) {
	patterns := []string{"", "a", "ab", "abc", "mr", "go", "xyz"}
	candidates := []string{"", "a", "ba", "cab", "main.rs", "golang", "abacus", "zzz"}

	isSubsequence := func(pattern, candidate string) bool {
		pattern = strings.ToLower(pattern)
		candidate = strings.ToLower(candidate)
		pi := 0
		for _, r := range candidate {
			if pi < len([]rune(pattern)) && r == []rune(pattern)[pi] {
				pi++
			}
		}
		return pi == len([]rune(pattern))
	}

	for _, pat := range patterns {
		p := Compile(pat)
		for _, cand := range candidates {
			_, got := p.Match(cand)
			want := isSubsequence(pat, cand)
			if got != want {
				t.Errorf("Match(%q, %q) = %v, want %v", pat, cand, got, want)
			}
		}
	}
}

func TestMatch_ScoreOrdering(t *testing.T) {
	score := func(pattern, candidate string) int {
		m, ok := Compile(pattern).Match(candidate)
		if !ok {
			t.Fatalf("expected %q to match %q", pattern, candidate)
		}
		return m.Score
	}

	// Contiguous run beats a scattered match.
	if score("main", "main.rs") <= score("main", "m1a2i3n4.txt") {
		t.Error("contiguous match should outscore scattered match")
	}

	// Segment start beats mid-segment.
	if score("rs", "src/rs.go") <= score("rs", "cursor.go") {
		t.Error("segment-start match should outscore mid-segment match")
	}

	// Shorter gap beats longer gap.
	if score("mr", "main.rs") <= score("mr", "mainframe_parser.rs") {
		t.Error("shorter gap should outscore longer gap")
	}

	// Matched scores are always positive.
	if s := score("z", strings.Repeat("a", 100)+"z"); s < 1 {
		t.Errorf("matched score = %d, want >= 1", s)
	}
}

func TestMatch_Determinism(t *testing.T) {
	p := Compile("abc")
	first, ok := p.Match("a1b2c3")
	if !ok {
		t.Fatal("expected match")
	}
	for i := 0; i < 10; i++ {
		m, ok := p.Match("a1b2c3")
		if !ok || m.Score != first.Score || len(m.Positions) != len(first.Positions) {
			t.Fatal("matching is not deterministic")
		}
	}
}

func TestMatch_Positions(t *testing.T) {
	m, ok := Compile("mr").Match("main.rs")
	if !ok {
		t.Fatal("expected match")
	}
	want := []int{0, 5}
	if len(m.Positions) != len(want) {
		t.Fatalf("positions = %v, want %v", m.Positions, want)
	}
	for i := range want {
		if m.Positions[i] != want[i] {
			t.Fatalf("positions = %v, want %v", m.Positions, want)
		}
	}
}

func TestMatch_EmptyPatternNeutral(t *testing.T) {
	m, ok := Compile("").Match("whatever")
	if !ok {
		t.Fatal("empty pattern must match everything")
	}
	if m.Score != 0 || len(m.Positions) != 0 {
		t.Errorf("empty pattern match = %+v, want neutral score and no positions", m)
	}
}

func TestRanges(t *testing.T) {
	m, ok := Compile("mai").Match("main.rs")
	if !ok {
		t.Fatal("expected match")
	}
	ranges := m.Ranges("main.rs")
	if len(ranges) != 1 {
		t.Fatalf("ranges = %v, want one contiguous range", ranges)
	}
	if ranges[0].Start != 0 || ranges[0].End != 3 {
		t.Errorf("range = %+v, want [0,3)", ranges[0])
	}

	m, ok = Compile("mr").Match("main.rs")
	if !ok {
		t.Fatal("expected match")
	}
	ranges = m.Ranges("main.rs")
	if len(ranges) != 2 {
		t.Fatalf("ranges = %v, want two ranges", ranges)
	}
}
