package citation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// German recognizes the two citation shapes described in spec §4.3:
// paragraph form (§/§§ <section spec> <tail> <code>) and article form
// (Art./Artikel <n> <tail> <code>). Both shapes share the same optional,
// ordered subdivision tail: Abs./Absatz, S./Satz, Nr./Nummer,
// Buchst./Buchstabe.
type German struct{}

var (
	// codeGroup allows a plain abbreviation (BGB, GG, BDSG) optionally
	// followed by a roman-numeral book suffix (SGB II, SGB V).
	codeGroup = `([A-Za-zÄÖÜäöüß]+(?:\s+[IVXLCM]+)?)`

	tailGroup = `(?:\s*(Abs\.?|Absatz)\s+(\d+[a-z]?))?` +
		`(?:\s*(S\.?|Satz)\s+(\d+[a-z]?))?` +
		`(?:\s*(Nr\.?|Nummer)\s+(\d+[a-z]?))?` +
		`(?:\s*(Buchst\.?|Buchstabe)\s+([a-zA-Z]))?`

	paragraphRe = regexp.MustCompile(`(?i)^(§§?)\s*` +
		`(\d+[a-z]?(?:\s*(?:,|-|bis)\s*\d+[a-z]?)*)` +
		tailGroup +
		`\s*,?\s*` + codeGroup + `$`)

	articleRe = regexp.MustCompile(`(?i)^(Art\.?|Artikel)\s+(\d+[a-z]?)` +
		tailGroup +
		`\s*,?\s*` + codeGroup + `$`)

	// rangeSplitRe splits a section spec into its comma-separated segments.
	rangeSplitRe = regexp.MustCompile(`\s*,\s*`)
	// rangePairRe recognizes a two-sided range within one segment.
	rangePairRe = regexp.MustCompile(`(?i)^(\d+)([a-z]?)\s*(?:-|bis)\s*(\d+)([a-z]?)$`)
)

// Parse implements Grammar.
func (German) Parse(s string) *ParsedCitation {
	s = collapseWhitespace(s)
	if s == "" {
		return nil
	}

	if m := paragraphRe.FindStringSubmatch(s); m != nil {
		return parseParagraphMatch(m)
	}
	if m := articleRe.FindStringSubmatch(s); m != nil {
		return parseArticleMatch(m)
	}
	return nil
}

// paragraphRe/articleRe submatch index layout (both share the tail group):
//
//	[0] full match
//	[1] marker (§ or §§) / Art.|Artikel
//	[2] section spec / article number
//	[3] Abs.|Absetz literal   [4] Abs. value
//	[5] S.|Satz literal       [6] S. value
//	[7] Nr.|Nummer literal    [8] Nr. value
//	[9] Buchst.|Buchstabe lit [10] Buchst. value
//	[11] code
const (
	idxAbsVal    = 4
	idxSatzVal   = 6
	idxNrVal     = 8
	idxBuchstVal = 10
	idxCode      = 11
)

func parseParagraphMatch(m []string) *ParsedCitation {
	sectionSpec := collapseWhitespace(m[2])
	code := normalizeCode(m[idxCode])

	numbers, hasRangeOrList := splitSectionSpec(sectionSpec)
	marker := "§"
	if hasRangeOrList {
		marker = "§§"
	}

	parsed := map[string]string{
		"section": sectionSpec,
		"code":    code,
		"marker":  marker,
	}
	tail := buildTail(m, parsed)

	normalized := joinNonEmpty(marker, sectionSpec) + tail + " " + code
	normalized = collapseWhitespace(normalized)

	lookups := make([]string, 0, len(numbers))
	for _, n := range numbers {
		lookups = append(lookups, fmt.Sprintf("§ %s %s", n, code))
	}

	return &ParsedCitation{
		Type:            "paragraph",
		Normalized:      normalized,
		Parsed:          parsed,
		LookupCitations: lookups,
	}
}

func parseArticleMatch(m []string) *ParsedCitation {
	articleNum := collapseWhitespace(m[2])
	code := normalizeCode(m[idxCode])

	parsed := map[string]string{
		"article": articleNum,
		"code":    code,
		"marker":  "Art.",
	}
	tail := buildTail(m, parsed)

	normalized := collapseWhitespace(fmt.Sprintf("Art. %s%s %s", articleNum, tail, code))

	return &ParsedCitation{
		Type:            "article",
		Normalized:      normalized,
		Parsed:          parsed,
		LookupCitations: []string{fmt.Sprintf("Art. %s %s", articleNum, code)},
	}
}

// buildTail reads the shared tail submatch slots, records them in parsed,
// and returns the canonical tail suffix (leading space included per
// present component, none if the tail is empty).
func buildTail(m []string, parsed map[string]string) string {
	var b strings.Builder
	if v := m[idxAbsVal]; v != "" {
		parsed["paragraph"] = v
		b.WriteString(" Abs. " + lowerTrailingLetter(v))
	}
	if v := m[idxSatzVal]; v != "" {
		parsed["sentence"] = v
		b.WriteString(" S. " + lowerTrailingLetter(v))
	}
	if v := m[idxNrVal]; v != "" {
		parsed["number"] = v
		b.WriteString(" Nr. " + lowerTrailingLetter(v))
	}
	if v := m[idxBuchstVal]; v != "" {
		letter := strings.ToLower(v)
		parsed["letter"] = letter
		b.WriteString(" Buchst. " + letter)
	}
	return b.String()
}

// lowerTrailingLetter lower-cases a trailing letter suffix on a section
// number like "1a" while leaving the digits untouched.
func lowerTrailingLetter(v string) string {
	if v == "" {
		return v
	}
	last := v[len(v)-1]
	if last >= 'A' && last <= 'Z' {
		return v[:len(v)-1] + strings.ToLower(string(last))
	}
	return v
}

func normalizeCode(code string) string {
	return strings.ToUpper(collapseWhitespace(code))
}

// splitSectionSpec expands a section spec into its ordered, deduplicated
// individual section numbers (ranges expanded when both bounds are pure
// digits, list entries passed through as-is) and reports whether the
// spec is itself a range or a list (comma-count > 0, or a "bis"/"-"
// range present anywhere).
func splitSectionSpec(spec string) (numbers []string, hasRangeOrList bool) {
	segments := rangeSplitRe.Split(spec, -1)
	hasRangeOrList = len(segments) > 1

	seen := make(map[string]struct{})
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if pm := rangePairRe.FindStringSubmatch(seg); pm != nil {
			hasRangeOrList = true
			if pm[2] == "" && pm[4] == "" {
				start, _ := strconv.Atoi(pm[1])
				end, _ := strconv.Atoi(pm[3])
				if start <= end && end-start < 500 {
					for n := start; n <= end; n++ {
						numbers = appendUnique(numbers, seen, strconv.Itoa(n))
					}
					continue
				}
			}
			// Letter-suffixed bounds can't be safely expanded; keep both ends.
			numbers = appendUnique(numbers, seen, pm[1]+pm[2])
			numbers = appendUnique(numbers, seen, pm[3]+pm[4])
			continue
		}
		numbers = appendUnique(numbers, seen, seg)
	}
	return numbers, hasRangeOrList
}

func appendUnique(list []string, seen map[string]struct{}, v string) []string {
	if _, ok := seen[v]; ok {
		return list
	}
	seen[v] = struct{}{}
	return append(list, v)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
