package version

import "testing"

func TestEffective_InjectedWins(t *testing.T) {
	if got := Effective("1.2.3"); got != "1.2.3" {
		t.Errorf("Effective = %q, want the injected version", got)
	}
}

func TestEffective_FallbackNonEmpty(t *testing.T) {
	if got := Effective(""); got == "" {
		t.Error("Effective must never be empty")
	}
}
