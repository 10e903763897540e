package adapter

import (
	"strings"

	"github.com/thornvik/juricore/internal/citation"
)

// ParseCitation delegates to the wired Citation Grammar. It returns nil
// when the grammar does not recognize s, the same "no partial parses"
// contract Grammar.Parse itself documents.
func (a *German) ParseCitation(s string) *ParsedCitationResult {
	parsed := a.grammar.Parse(s)
	if parsed == nil {
		return nil
	}
	return &ParsedCitationResult{
		Original:   s,
		Normalized: parsed.Normalized,
		Parsed:     parsed.Parsed,
	}
}

// ValidateCitation checks grammar conformance and, when the Store is
// present, corpus membership (spec §4.6): a citation can be
// well-formed but absent from the indexed corpus, which is reported as
// invalid with a distinct reason rather than conflated with a
// malformed string.
func (a *German) ValidateCitation(s string) ValidationResult {
	parsed := a.grammar.Parse(s)
	if parsed == nil {
		return ValidationResult{Valid: false, Reason: "does not match a recognized German citation shape"}
	}
	if !a.storeAvailable() {
		return ValidationResult{Valid: true, Normalized: parsed.Normalized}
	}
	if len(a.getByCitation(parsed.Normalized)) == 0 {
		found := false
		for _, lookup := range parsed.LookupCitations {
			if len(a.getByCitation(lookup)) > 0 {
				found = true
				break
			}
		}
		if !found {
			return ValidationResult{
				Valid:      false,
				Normalized: parsed.Normalized,
				Reason:     "well-formed but not present in the indexed corpus",
			}
		}
	}
	return ValidationResult{Valid: true, Normalized: parsed.Normalized}
}

// FormatCitation renders s in the requested style: "default" (the
// grammar's own normalized form), "short" (drops any subdivision tail,
// keeping only the section or article marker and code), or "pinpoint"
// (normalized form, unchanged — a citation that already names a
// specific subdivision has nothing further to pin down).
func (a *German) FormatCitation(s string, style string) FormatResult {
	parsed := a.grammar.Parse(s)
	if parsed == nil {
		return FormatResult{
			Original:  s,
			Formatted: strings.TrimSpace(s),
			Style:     orDefault(style),
			Valid:     false,
			Reason:    "does not match a recognized German citation shape",
		}
	}

	switch style {
	case "", "default", "pinpoint":
		return FormatResult{Original: s, Formatted: parsed.Normalized, Style: orDefault(style), Valid: true}
	case "short":
		return FormatResult{Original: s, Formatted: shortForm(parsed), Style: style, Valid: true}
	default:
		return FormatResult{Original: s, Style: style, Valid: false, Reason: "unknown format style"}
	}
}

func orDefault(style string) string {
	if style == "" {
		return "default"
	}
	return style
}

// shortForm reduces a parsed citation to its marker and code, dropping
// paragraph/sentence/letter tails: "§ 1 BDSG" stays as-is; "Art. 1
// Abs. 2 Satz 3 GG" becomes "Art. 1 GG".
func shortForm(p *citation.ParsedCitation) string {
	marker := p.Parsed["marker"]
	code := p.Parsed["code"]
	number := p.Parsed["section"]
	if number == "" {
		number = p.Parsed["article"]
	}
	if marker == "" || code == "" || number == "" {
		return p.Normalized
	}
	return strings.TrimSpace(marker + " " + number + " " + code)
}
