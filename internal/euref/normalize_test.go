package euref

import "testing"

func TestIdentifiersMatchAcrossShapes(t *testing.T) {
	pairs := [][2]string{
		{"EU 2016/679", "2016/679"},
		{"EU 2016/679", "32016R0679"},
		{"2016/679", "32016R0679"},
		{"2016/679/EU", "EU 2016/679"},
	}
	for _, p := range pairs {
		if !IdentifiersMatch(p[0], p[1]) {
			t.Errorf("IdentifiersMatch(%q, %q) = false, want true", p[0], p[1])
		}
	}
}

func TestIdentifiersMatchRejectsDifferentActs(t *testing.T) {
	if IdentifiersMatch("EU 2016/679", "EU 2016/680") {
		t.Errorf("IdentifiersMatch should not equate different acts")
	}
}

func TestIdentifiersMatchFallsBackToLiteralForUnparseable(t *testing.T) {
	if !IdentifiersMatch("foo-bar", "foo-bar") {
		t.Errorf("IdentifiersMatch should fall back to literal comparison for unparseable input")
	}
	if IdentifiersMatch("foo-bar", "baz-qux") {
		t.Errorf("IdentifiersMatch(foo-bar, baz-qux) = true, want false")
	}
}

func TestFormatStripsLeadingZeros(t *testing.T) {
	if got := Format("eu", "2016", "0042"); got != "EU 2016/42" {
		t.Errorf("Format = %q, want %q", got, "EU 2016/42")
	}
}
