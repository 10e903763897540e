package euref

import (
	"testing"

	"github.com/thornvik/juricore/internal/models"
)

func TestExtractCelexIdentifier(t *testing.T) {
	matches := Extract("siehe 32016R0679 fuer Details")
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want exactly one match", matches)
	}
	if matches[0].EuID != "EU 2016/679" {
		t.Errorf("EuID = %q, want %q", matches[0].EuID, "EU 2016/679")
	}
	if matches[0].EuType != models.EuRegulation {
		t.Errorf("EuType = %q, want regulation (letter R)", matches[0].EuType)
	}
	if matches[0].Confidence != 0.99 {
		t.Errorf("Confidence = %v, want 0.99", matches[0].Confidence)
	}
}

func TestExtractTypedPrefixWithParenthesizedJurisdiction(t *testing.T) {
	matches := Extract("Richtlinie (EU) 2016/680 ueber den Datenschutz")
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want exactly one match", matches)
	}
	if matches[0].EuID != "EU 2016/680" {
		t.Errorf("EuID = %q, want EU 2016/680", matches[0].EuID)
	}
	if matches[0].EuType != models.EuDirective {
		t.Errorf("EuType = %q, want directive", matches[0].EuType)
	}
	if matches[0].Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", matches[0].Confidence)
	}
}

func TestExtractTypedSuffixPreemptsGenericSuffix(t *testing.T) {
	matches := Extract("im Sinne der Verordnung 2016/679/EU")
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want exactly one match (typed-suffix claims the span)", matches)
	}
	if matches[0].EuType != models.EuRegulation {
		t.Errorf("EuType = %q, want regulation", matches[0].EuType)
	}
	if matches[0].Confidence != 0.94 {
		t.Errorf("Confidence = %v, want 0.94 (typed suffix)", matches[0].Confidence)
	}
}

func TestExtractGenericPrefix(t *testing.T) {
	matches := Extract("gemaess EU Nr. 2016/679 gilt")
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want exactly one match", matches)
	}
	if matches[0].EuType != models.EuAct {
		t.Errorf("EuType = %q, want act", matches[0].EuType)
	}
	if matches[0].Confidence != 0.90 {
		t.Errorf("Confidence = %v, want 0.90", matches[0].Confidence)
	}
}

func TestExtractGenericSuffix(t *testing.T) {
	matches := Extract("siehe 2016/679/EU fuer Details")
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want exactly one match", matches)
	}
	if matches[0].EuType != models.EuAct {
		t.Errorf("EuType = %q, want act", matches[0].EuType)
	}
	if matches[0].Confidence != 0.89 {
		t.Errorf("Confidence = %v, want 0.89", matches[0].Confidence)
	}
}

func TestExtractThreeDistinctMentionsYieldThreeDistinctPairs(t *testing.T) {
	text := "Nach der Richtlinie (EU) 2016/679 und 32016R0679 sowie 2016/679/EU gelten besondere Regeln."
	matches := Extract(text)
	if len(matches) != 3 {
		t.Fatalf("Extract = %+v, want 3 matches (one per detector claim)", matches)
	}
	seen := map[string]bool{}
	for _, m := range matches {
		key := string(m.EuType) + "|" + m.EuID
		if seen[key] {
			t.Errorf("duplicate (type,id) pair %q, want each pair exactly once", key)
		}
		seen[key] = true
	}
}

func TestExtractContextSnippetSurroundsMatch(t *testing.T) {
	text := "Einleitungstext. Die Verarbeitung richtet sich nach 32016R0679 und den Durchfuehrungsbestimmungen."
	matches := Extract(text)
	if len(matches) != 1 {
		t.Fatalf("Extract = %+v, want one match", matches)
	}
	if matches[0].ContextSnippet == "" {
		t.Errorf("ContextSnippet is empty")
	}
}

func TestExtractEmptyTextYieldsNoMatches(t *testing.T) {
	if matches := Extract(""); matches != nil {
		t.Errorf("Extract(\"\") = %+v, want nil", matches)
	}
}

func TestExtractNoReferencesInPlainText(t *testing.T) {
	matches := Extract("Dieser Paragraph regelt die Anwendung des BDSG ohne weitere Verweise.")
	if len(matches) != 0 {
		t.Errorf("Extract = %+v, want no matches", matches)
	}
}
