// Package fuzzy implements the subsequence scorer used to rank tree entries
// and to resolve verb invocations against the verb table.
package fuzzy

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scoring weights. Chosen so that contiguous runs and segment starts dominate
// plain scattered matches, and long gaps demote a candidate without ever
// turning a real match into a non-match.
const (
	bonusChar      = 2  // every matched character
	bonusRun       = 6  // matched character adjacent to the previous match
	bonusSegment   = 8  // match at start of string or after a path separator
	gapPenaltyCap  = 10 // max penalty per unmatched stretch
	tailPenaltyCap = 6  // max penalty for unmatched trailing characters
)

// Range is a half-open [Start, End) byte interval of the candidate string.
// Used by views to highlight the matched characters.
type Range struct {
	Start int
	End   int
}

// Match is the outcome of testing a candidate against a Pattern.
// A higher score is a better match. Scores of real matches are always >= 1
// so that "matched" and "scores positively" coincide.
type Match struct {
	Score     int
	Positions []int // byte offsets of matched characters, ascending
}

// Ranges collapses adjacent matched positions into highlight ranges.
func (m Match) Ranges(candidate string) []Range {
	if len(m.Positions) == 0 {
		return nil
	}
	var ranges []Range
	cur := Range{Start: m.Positions[0], End: m.Positions[0]}
	for _, pos := range m.Positions {
		if pos > cur.End {
			ranges = append(ranges, cur)
			cur = Range{Start: pos, End: pos}
		}
		_, size := utf8.DecodeRuneInString(candidate[pos:])
		cur.End = pos + size
	}
	return append(ranges, cur)
}

// Pattern is a compiled fuzzy query. Compile once per keystroke, then test
// against many candidates.
type Pattern struct {
	raw   string
	runes []rune // lowercased
}

// Compile builds a Pattern from the raw user input.
func Compile(raw string) Pattern {
	return Pattern{
		raw:   raw,
		runes: []rune(strings.ToLower(raw)),
	}
}

// Raw returns the input the pattern was compiled from.
func (p Pattern) Raw() string { return p.raw }

// IsEmpty reports whether the pattern filters nothing.
func (p Pattern) IsEmpty() bool { return len(p.runes) == 0 }

// candChar is one rune of a candidate with its byte offset.
type candChar struct {
	r       rune // lowercased
	byteIdx int
	segHead bool // first rune of the string or of a path segment
}

// Match tests candidate against the pattern. It returns false when the
// candidate does not contain the pattern's characters as a case-insensitive
// subsequence. The empty pattern matches everything with a neutral score and
// no highlighted positions.
//
// Every occurrence of the pattern's first character is tried as a starting
// point and the best-scoring run wins, so "rs" prefers the segment start in
// "src/rs.go" over the earlier scattered characters.
func (p Pattern) Match(candidate string) (Match, bool) {
	if len(p.runes) == 0 {
		return Match{}, true
	}

	chars := make([]candChar, 0, len(candidate))
	segHead := true
	for byteIdx, r := range candidate {
		chars = append(chars, candChar{
			r:       unicode.ToLower(r),
			byteIdx: byteIdx,
			segHead: segHead,
		})
		segHead = r == '/' || r == '\\'
	}

	best := Match{}
	found := false
	for start, c := range chars {
		if c.r != p.runes[0] {
			continue
		}
		if m, ok := p.matchFrom(chars, start, len(candidate)); ok {
			if !found || m.Score > best.Score {
				best = m
				found = true
			}
		} else {
			// No later start can complete the subsequence either.
			break
		}
	}
	if !found {
		return Match{}, false
	}
	return best, true
}

// matchFrom runs a greedy subsequence match beginning at chars[start], which
// is known to equal the pattern's first rune.
func (p Pattern) matchFrom(chars []candChar, start, candLen int) (Match, bool) {
	score := 0
	positions := make([]int, 0, len(p.runes))
	pi := 0
	gap := start // unmatched runes before the first match
	last := -2   // index in chars of the previous match

	for i := start; i < len(chars); i++ {
		if pi >= len(p.runes) {
			break
		}
		c := chars[i]
		if c.r != p.runes[pi] {
			gap++
			continue
		}
		score += bonusChar
		if i == last+1 && pi > 0 {
			score += bonusRun
		}
		if c.segHead {
			score += bonusSegment
		}
		score -= min(gap, gapPenaltyCap)
		gap = 0
		last = i
		positions = append(positions, c.byteIdx)
		pi++
	}

	if pi < len(p.runes) {
		return Match{}, false
	}
	tail := candLen - chars[last].byteIdx - 1
	score -= min(tail, tailPenaltyCap)
	if score < 1 {
		score = 1
	}
	return Match{Score: score, Positions: positions}, true
}
