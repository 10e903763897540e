package citation

import "testing"

func TestSwedishParse(t *testing.T) {
	g := Swedish{}
	got := g.Parse("sfs 2018:218")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Normalized != "SFS 2018:218" {
		t.Errorf("Normalized = %q, want SFS 2018:218", got.Normalized)
	}
	if got.Parsed["year"] != "2018" || got.Parsed["number"] != "218" {
		t.Errorf("Parsed = %v, want year=2018 number=218", got.Parsed)
	}
}

func TestSwedishParseRejectsUnrelatedString(t *testing.T) {
	g := Swedish{}
	if got := g.Parse("§ 1 BGB"); got != nil {
		t.Errorf("Parse(%q) = %+v, want nil", "§ 1 BGB", got)
	}
}

func TestNorwegianParse(t *testing.T) {
	g := Norwegian{}
	got := g.Parse("lov-2005-06-17-62")
	if got == nil {
		t.Fatalf("Parse returned nil, want a match")
	}
	if got.Normalized != "LOV-2005-06-17-62" {
		t.Errorf("Normalized = %q, want LOV-2005-06-17-62", got.Normalized)
	}
	if got.Parsed["year"] != "2005" || got.Parsed["month"] != "06" || got.Parsed["day"] != "17" {
		t.Errorf("Parsed = %v, want year=2005 month=06 day=17", got.Parsed)
	}
}

func TestForReturnsRegisteredGrammars(t *testing.T) {
	if _, ok := For("de").(German); !ok {
		t.Errorf("For(de) did not return German")
	}
	if _, ok := For("se").(Swedish); !ok {
		t.Errorf("For(se) did not return Swedish")
	}
	if _, ok := For("no").(Norwegian); !ok {
		t.Errorf("For(no) did not return Norwegian")
	}
	if For("xx") != nil {
		t.Errorf("For(xx) = %v, want nil", For("xx"))
	}
}
