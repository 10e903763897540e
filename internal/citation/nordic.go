package citation

import (
	"fmt"
	"regexp"
	"strings"
)

// Swedish recognizes the "SFS YYYY:N" statute citation form. It exists
// mainly to prove the Grammar interface generalizes past German's
// tail-component shape to a single flat regex.
type Swedish struct{}

var swedishRe = regexp.MustCompile(`(?i)^SFS\s*(\d{4}):(\d+)$`)

func (Swedish) Parse(s string) *ParsedCitation {
	s = collapseWhitespace(s)
	m := swedishRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year, number := m[1], m[2]
	normalized := fmt.Sprintf("SFS %s:%s", year, number)
	return &ParsedCitation{
		Type:       "sfs",
		Normalized: normalized,
		Parsed: map[string]string{
			"year":   year,
			"number": number,
			"marker": "SFS",
		},
		LookupCitations: []string{normalized},
	}
}

// Norwegian recognizes the "LOV-YYYY-MM-DD-N" statute citation form.
type Norwegian struct{}

var norwegianRe = regexp.MustCompile(`(?i)^LOV-(\d{4})-(\d{2})-(\d{2})-(\d+)$`)

func (Norwegian) Parse(s string) *ParsedCitation {
	s = collapseWhitespace(strings.ToUpper(s))
	m := norwegianRe.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	year, month, day, number := m[1], m[2], m[3], m[4]
	normalized := fmt.Sprintf("LOV-%s-%s-%s-%s", year, month, day, number)
	return &ParsedCitation{
		Type:       "lov",
		Normalized: normalized,
		Parsed: map[string]string{
			"year":   year,
			"month":  month,
			"day":    day,
			"number": number,
			"marker": "LOV",
		},
		LookupCitations: []string{normalized},
	}
}
