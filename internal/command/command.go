// Package command parses the input line into its pattern and verb parts and
// names the actions the key handler can request. Parsing is independent of
// application state; verbs are resolved later, against the verb table.
package command

import "strings"

// Parts is the parsed form of the visible input: an optional fuzzy pattern
// followed by an optional verb invocation. HasVerb is true as soon as the
// separator is typed, so ":" alone means "verb mode, nothing typed yet".
type Parts struct {
	Pattern string
	Verb    string
	HasVerb bool
}

const separators = " \t:"

// Parse splits raw at the first ':' or whitespace. Everything before is the
// pattern, the first token after is the verb invocation.
func Parse(raw string) Parts {
	i := strings.IndexAny(raw, separators)
	if i < 0 {
		return Parts{Pattern: raw}
	}
	p := Parts{Pattern: raw[:i], HasVerb: true}
	rest := strings.TrimLeft(raw[i:], separators)
	if j := strings.IndexAny(rest, " \t"); j >= 0 {
		rest = rest[:j]
	}
	p.Verb = rest
	return p
}

// Kind enumerates what the user is asking for.
type Kind int

const (
	KindUnparsed Kind = iota
	KindMoveSelection
	KindScrollPage
	KindOpenSelection
	KindVerb
	KindVerbEdit
	KindPatternEdit
	KindBack
	KindNext
	KindHelp
)

// Action is one requested operation. Delta carries the direction for
// selection moves and page scrolls; Text carries the verb invocation or the
// pattern being edited.
type Action struct {
	Kind  Kind
	Delta int
	Text  string
}

// ActionFor interprets the parsed input. finished is true when the user
// pressed enter: a typed verb then executes instead of being edited, and a
// bare pattern opens the selection.
func ActionFor(p Parts, finished bool) Action {
	if p.HasVerb {
		k := KindVerbEdit
		if finished {
			k = KindVerb
		}
		return Action{Kind: k, Text: p.Verb}
	}
	if finished {
		return Action{Kind: KindOpenSelection}
	}
	return Action{Kind: KindPatternEdit, Text: p.Pattern}
}

// MoveSelection requests moving the selection by delta lines.
func MoveSelection(delta int) Action { return Action{Kind: KindMoveSelection, Delta: delta} }

// ScrollPage requests scrolling by delta pages.
func ScrollPage(delta int) Action { return Action{Kind: KindScrollPage, Delta: delta} }
