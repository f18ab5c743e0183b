package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		raw     string
		pattern string
		verb    string
		hasVerb bool
	}{
		{"", "", "", false},
		{"mair", "mair", "", false},
		{":q", "", "q", true},
		{":", "", "", true},
		{"mair:e", "mair", "e", true},
		{"mair :e", "mair", "e", true},
		{"mair e", "mair", "e", true},
		{"mair:", "mair", "", true},
		{"src edit extra", "src", "edit", true},
	}
	for _, tt := range tests {
		got := Parse(tt.raw)
		if got.Pattern != tt.pattern || got.Verb != tt.verb || got.HasVerb != tt.hasVerb {
			t.Errorf("Parse(%q) = %+v, want pattern=%q verb=%q hasVerb=%v",
				tt.raw, got, tt.pattern, tt.verb, tt.hasVerb)
		}
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		raw      string
		finished bool
		kind     Kind
		text     string
	}{
		{"mair", false, KindPatternEdit, "mair"},
		{"", false, KindPatternEdit, ""},
		{"mair", true, KindOpenSelection, ""},
		{":q", false, KindVerbEdit, "q"},
		{":q", true, KindVerb, "q"},
		{"mair:e", true, KindVerb, "e"},
		{":", true, KindVerb, ""},
	}
	for _, tt := range tests {
		got := ActionFor(Parse(tt.raw), tt.finished)
		if got.Kind != tt.kind || got.Text != tt.text {
			t.Errorf("ActionFor(Parse(%q), %v) = %+v, want kind=%d text=%q",
				tt.raw, tt.finished, got, tt.kind, tt.text)
		}
	}
}

func TestMoveHelpers(t *testing.T) {
	if a := MoveSelection(-1); a.Kind != KindMoveSelection || a.Delta != -1 {
		t.Errorf("MoveSelection = %+v", a)
	}
	if a := ScrollPage(1); a.Kind != KindScrollPage || a.Delta != 1 {
		t.Errorf("ScrollPage = %+v", a)
	}
}
