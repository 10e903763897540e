// Package euref extracts cross-references to external EU legal acts
// from document text, the way the citation package extracts structure
// from citation strings: a fixed set of ordered, regex-driven
// detectors feeding a single normalization step.
package euref

import (
	"regexp"
	"strings"

	"github.com/thornvik/juricore/internal/models"
)

// Match is one raw detector hit before per-document deduplication.
type Match struct {
	EuID           string
	EuType         models.EuReferenceType
	Confidence     float64
	ContextSnippet string
}

type span struct{ start, end int }

func (s span) overlaps(o span) bool {
	return s.start < o.end && o.start < s.end
}

// detector is one entry in the ordered chain (spec §4.9). build turns
// a single regex submatch into a Match; it returns ok=false if the
// submatch doesn't yield a usable identifier (should not normally
// happen given the regex already constrains the shape). defers, when
// set, lets a detector decline a match it technically fired on so a
// later detector gets a chance at the same span.
type detector struct {
	re     *regexp.Regexp
	build  func(m []string) (eu models.EuReferenceType, id string, confidence float64, ok bool)
	defers func(text string, loc []int) bool
}

var celexRe = regexp.MustCompile(`(?i)\b(?:CELEX:\s*)?(3(\d{4})([RLDC])(\d{4}))\b`)
var typedPrefixRe = regexp.MustCompile(`(?i)\b(Richtlinie|Directive|Verordnung|Regulation)\s*(?:\(?(EU|EG|EWG)\)?\s*)?(\d{4})/(\d{1,6})\b`)
var typedSuffixRe = regexp.MustCompile(`(?i)\b(Richtlinie|Directive|Verordnung|Regulation)\s+(\d{4})/(\d{1,6})/(EU|EG|EWG)\b`)
var genericPrefixRe = regexp.MustCompile(`(?i)\b(EU|EG|EWG)\s+(?:Nr\.?\s*)?(\d{4})/(\d{1,6})\b`)
var genericSuffixRe = regexp.MustCompile(`(?i)\b(\d{4})/(\d{1,6})/(EU|EG|EWG)\b`)

// trailingJurisdictionRe recognizes a "/EU"-style jurisdiction suffix
// immediately following a typed-prefix match, so that form is left
// for the typed-suffix detector instead.
var trailingJurisdictionRe = regexp.MustCompile(`(?i)^/(EU|EG|EWG)\b`)

var detectors = []detector{
	{re: celexRe, build: buildCelex},
	{re: typedPrefixRe, build: buildTypedPrefix, defers: deferToTypedSuffix},
	{re: typedSuffixRe, build: buildTypedSuffix},
	{re: genericPrefixRe, build: buildGenericPrefix},
	{re: genericSuffixRe, build: buildGenericSuffix},
}

func deferToTypedSuffix(text string, loc []int) bool {
	return trailingJurisdictionRe.MatchString(text[loc[1]:])
}

func buildCelex(m []string) (models.EuReferenceType, string, float64, bool) {
	year, letter, number := m[2], strings.ToUpper(m[3]), m[4]
	id := Format("EU", year, number)
	return celexLetterType(letter), id, 0.99, true
}

func celexLetterType(letter string) models.EuReferenceType {
	switch letter {
	case "R":
		return models.EuRegulation
	case "L":
		return models.EuDirective
	case "D":
		return models.EuDecision
	default:
		return models.EuAct
	}
}

func buildTypedPrefix(m []string) (models.EuReferenceType, string, float64, bool) {
	jur := m[2]
	if jur == "" {
		jur = "EU"
	}
	id := Format(jur, m[3], m[4])
	return typeWordType(m[1]), id, 0.95, true
}

func buildTypedSuffix(m []string) (models.EuReferenceType, string, float64, bool) {
	id := Format(m[4], m[2], m[3])
	return typeWordType(m[1]), id, 0.94, true
}

func typeWordType(word string) models.EuReferenceType {
	switch strings.ToLower(word) {
	case "richtlinie", "directive":
		return models.EuDirective
	case "verordnung", "regulation":
		return models.EuRegulation
	default:
		return models.EuAct
	}
}

func buildGenericPrefix(m []string) (models.EuReferenceType, string, float64, bool) {
	return models.EuAct, Format(m[1], m[2], m[3]), 0.90, true
}

func buildGenericSuffix(m []string) (models.EuReferenceType, string, float64, bool) {
	return models.EuAct, Format(m[3], m[1], m[2]), 0.89, true
}

// contextRadius is the ±90 character window spec §4.9 names.
const contextRadius = 90

// Extract scans text with every detector in order, each claiming the
// byte spans of its matches so a later, lower-confidence detector
// cannot re-detect a substring a more specific one already consumed
// (e.g. a typed-suffix match "Richtlinie 2016/679/EU" pre-empts the
// generic-suffix pattern from also matching its "2016/679/EU" tail).
func Extract(text string) []Match {
	if text == "" {
		return nil
	}
	runes := []rune(text)

	var claimed []span
	var out []Match

	for _, d := range detectors {
		locs := d.re.FindAllStringSubmatchIndex(text, -1)
		for _, loc := range locs {
			sp := span{start: loc[0], end: loc[1]}
			if overlapsAny(sp, claimed) {
				continue
			}
			if d.defers != nil && d.defers(text, loc) {
				continue
			}
			m := submatchStrings(text, loc)
			euType, id, confidence, ok := d.build(m)
			if !ok {
				continue
			}
			claimed = append(claimed, sp)
			out = append(out, Match{
				EuID:           id,
				EuType:         euType,
				Confidence:     confidence,
				ContextSnippet: contextSnippet(runes, text, loc[0], loc[1]),
			})
		}
	}
	return out
}

func overlapsAny(sp span, claimed []span) bool {
	for _, c := range claimed {
		if sp.overlaps(c) {
			return true
		}
	}
	return false
}

func submatchStrings(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		a, b := loc[2*i], loc[2*i+1]
		if a < 0 || b < 0 {
			continue
		}
		out[i] = text[a:b]
	}
	return out
}

// contextSnippet returns up to contextRadius runes of surrounding text
// on either side of the byte range [start,end), operating on runes so
// multi-byte characters (umlauts, the § sign) are never split.
func contextSnippet(runes []rune, text string, byteStart, byteEnd int) string {
	runeStart := runeIndexForByte(text, byteStart)
	runeEnd := runeIndexForByte(text, byteEnd)

	lo := runeStart - contextRadius
	if lo < 0 {
		lo = 0
	}
	hi := runeEnd + contextRadius
	if hi > len(runes) {
		hi = len(runes)
	}
	return strings.TrimSpace(string(runes[lo:hi]))
}

func runeIndexForByte(text string, byteOffset int) int {
	return len([]rune(text[:byteOffset]))
}
