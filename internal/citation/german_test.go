package citation

import (
	"reflect"
	"testing"
)

func TestGermanParseParagraphLowercase(t *testing.T) {
	g := German{}
	got := g.Parse("§ 823 abs. 1 bgb")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Normalized != "§ 823 Abs. 1 BGB" {
		t.Errorf("Normalized = %q, want %q", got.Normalized, "§ 823 Abs. 1 BGB")
	}
	if got.Parsed["code"] != "BGB" {
		t.Errorf("parsed.code = %q, want BGB", got.Parsed["code"])
	}
	if got.Parsed["section"] != "823" {
		t.Errorf("parsed.section = %q, want 823", got.Parsed["section"])
	}
	if got.Parsed["paragraph"] != "1" {
		t.Errorf("parsed.paragraph = %q, want 1", got.Parsed["paragraph"])
	}
}

func TestGermanParseArticleForm(t *testing.T) {
	g := German{}
	got := g.Parse("Artikel 1 Absatz 1 GG")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Normalized != "Art. 1 Abs. 1 GG" {
		t.Errorf("Normalized = %q, want %q", got.Normalized, "Art. 1 Abs. 1 GG")
	}
	if got.Type != "article" {
		t.Errorf("Type = %q, want article", got.Type)
	}
}

func TestGermanParseDoubledMarkerForList(t *testing.T) {
	g := German{}
	got := g.Parse("§§ 1, 2 BGB")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Parsed["marker"] != "§§" {
		t.Errorf("marker = %q, want §§", got.Parsed["marker"])
	}
	want := []string{"§ 1 BGB", "§ 2 BGB"}
	if !reflect.DeepEqual(got.LookupCitations, want) {
		t.Errorf("LookupCitations = %v, want %v", got.LookupCitations, want)
	}
}

func TestGermanParseDoubledMarkerForRange(t *testing.T) {
	g := German{}
	got := g.Parse("§ 1 bis 3 BGB")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Parsed["marker"] != "§§" {
		t.Errorf("marker = %q, want §§ for a range", got.Parsed["marker"])
	}
	want := []string{"§ 1 BGB", "§ 2 BGB", "§ 3 BGB"}
	if !reflect.DeepEqual(got.LookupCitations, want) {
		t.Errorf("LookupCitations = %v, want %v", got.LookupCitations, want)
	}
}

func TestGermanParseSingleSectionKeepsSingleMarker(t *testing.T) {
	g := German{}
	got := g.Parse("§ 1 Absatz 1 BDSG")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Parsed["marker"] != "§" {
		t.Errorf("marker = %q, want § for a single section", got.Parsed["marker"])
	}
}

func TestGermanParseUnsupportedStringReturnsNil(t *testing.T) {
	g := German{}
	if got := g.Parse("not a citation at all"); got != nil {
		t.Errorf("Parse(%q) = %+v, want nil", "not a citation at all", got)
	}
}

func TestGermanParseIdempotentOnNormalizedForm(t *testing.T) {
	g := German{}
	first := g.Parse("§ 823 abs. 1 bgb")
	if first == nil {
		t.Fatalf("first Parse returned nil")
	}
	second := g.Parse(first.Normalized)
	if second == nil {
		t.Fatalf("second Parse of normalized form %q returned nil", first.Normalized)
	}
	if second.Normalized != first.Normalized {
		t.Errorf("Normalized not idempotent: first %q, second %q", first.Normalized, second.Normalized)
	}
	if !reflect.DeepEqual(second.Parsed, first.Parsed) {
		t.Errorf("Parsed not idempotent: first %v, second %v", first.Parsed, second.Parsed)
	}
}

func TestGermanParseSentenceAndNumberTail(t *testing.T) {
	g := German{}
	got := g.Parse("§ 15 S. 2 Nr. 3 StGB")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Parsed["sentence"] != "2" {
		t.Errorf("parsed.sentence = %q, want 2", got.Parsed["sentence"])
	}
	if got.Parsed["number"] != "3" {
		t.Errorf("parsed.number = %q, want 3", got.Parsed["number"])
	}
	if got.Normalized != "§ 15 S. 2 Nr. 3 STGB" {
		t.Errorf("Normalized = %q, want %q", got.Normalized, "§ 15 S. 2 Nr. 3 STGB")
	}
}

func TestGermanParseBuchstabeLetterLowercased(t *testing.T) {
	g := German{}
	got := g.Parse("§ 1 Nr. 2 Buchst. A BGB")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Parsed["letter"] != "a" {
		t.Errorf("parsed.letter = %q, want a", got.Parsed["letter"])
	}
	if got.Normalized != "§ 1 Nr. 2 Buchst. a BGB" {
		t.Errorf("Normalized = %q, want %q", got.Normalized, "§ 1 Nr. 2 Buchst. a BGB")
	}
}
