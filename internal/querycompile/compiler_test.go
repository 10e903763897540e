package querycompile

import (
	"strings"
	"testing"
)

func TestCompileEmptyInput(t *testing.T) {
	got := Compile("")
	if got.Primary != "" {
		t.Errorf("Primary = %q, want empty", got.Primary)
	}
	if got.Fallback != "" {
		t.Errorf("Fallback = %q, want empty", got.Fallback)
	}
}

func TestCompileSingleTokenOmitsFallback(t *testing.T) {
	got := Compile("Datenschutz")
	if got.Primary != "Datenschutz*" {
		t.Errorf("Primary = %q, want Datenschutz*", got.Primary)
	}
	if got.Fallback != "" {
		t.Errorf("Fallback = %q, want empty for single-token input", got.Fallback)
	}
}

func TestCompileMultiTokenUsesAndOr(t *testing.T) {
	got := Compile("Daten schutz")
	if got.Primary != "Daten* AND schutz*" {
		t.Errorf("Primary = %q, want %q", got.Primary, "Daten* AND schutz*")
	}
	if got.Fallback != "Daten* OR schutz*" {
		t.Errorf("Fallback = %q, want %q", got.Fallback, "Daten* OR schutz*")
	}
}

func TestCompileStripsDoubleQuotes(t *testing.T) {
	got := Compile(`say "hello"`)
	want := "say* AND hello*"
	if got.Primary != want {
		t.Errorf("Primary = %q, want %q", got.Primary, want)
	}
	if count(got.Primary, '"') != 0 {
		t.Errorf("Primary = %q still contains a double quote", got.Primary)
	}
}

func TestCompileLeavesPlainUnicodeTokenUnquoted(t *testing.T) {
	got := Compile("§823")
	if got.Primary != "§823*" {
		t.Errorf("Primary = %q, want §823* (no reserved chars to quote)", got.Primary)
	}
}

func TestCompileQuotesColonAndParens(t *testing.T) {
	got := Compile("bdsg:1 (x)")
	for _, tok := range []string{`"bdsg:1"*`, `"(x)"*`} {
		if !strings.Contains(got.Primary, tok) {
			t.Errorf("Primary = %q, want it to contain %q", got.Primary, tok)
		}
	}
	if count(got.Primary, '"')%2 != 0 {
		t.Errorf("Primary = %q has an unmatched double quote", got.Primary)
	}
}

func TestCompileDeterministic(t *testing.T) {
	a := Compile("alpha beta gamma")
	b := Compile("alpha beta gamma")
	if a != b {
		t.Errorf("Compile is not deterministic: %+v != %+v", a, b)
	}
}

func count(s string, r byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == r {
			n++
		}
	}
	return n
}
