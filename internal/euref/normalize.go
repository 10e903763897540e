package euref

import (
	"regexp"
	"strings"
)

// Format renders the normalized EU identifier form spec §4.9 names:
// "<JUR> <year>/<number>", jurisdiction upper-cased and the number
// stripped of leading zeros.
func Format(jur, year, number string) string {
	return strings.ToUpper(jur) + " " + year + "/" + stripLeadingZeros(number)
}

func stripLeadingZeros(number string) string {
	trimmed := strings.TrimLeft(number, "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// identifier is a parsed EU act reference reduced to its three parts.
type identifier struct {
	jur, year, number string
}

var (
	celexWholeRe = regexp.MustCompile(`(?i)^(?:CELEX:\s*)?3(\d{4})([RLDC])(\d{4})$`)
	// "EU 2016/679", "EU2016/679"
	jurPrefixRe = regexp.MustCompile(`(?i)^(EU|EG|EWG)\s*(\d{4})/(\d{1,6})$`)
	// "2016/679/EU"
	jurSuffixRe = regexp.MustCompile(`(?i)^(\d{4})/(\d{1,6})/(EU|EG|EWG)$`)
	// bare "2016/679"
	bareRe = regexp.MustCompile(`^(\d{4})/(\d{1,6})$`)
)

// parseIdentifier accepts any of the shapes the extractor produces, or
// a bare CELEX/number-pair string supplied directly by a caller (e.g.
// an euId argument on get_national_implementations), and reduces it
// to a jurisdiction/year/number triple. ok is false when raw matches
// none of the known shapes.
func parseIdentifier(raw string) (identifier, bool) {
	s := strings.TrimSpace(raw)

	if m := celexWholeRe.FindStringSubmatch(s); m != nil {
		return identifier{jur: "EU", year: m[1], number: m[3]}, true
	}
	if m := jurPrefixRe.FindStringSubmatch(s); m != nil {
		return identifier{jur: strings.ToUpper(m[1]), year: m[2], number: m[3]}, true
	}
	if m := jurSuffixRe.FindStringSubmatch(s); m != nil {
		return identifier{jur: strings.ToUpper(m[3]), year: m[1], number: m[2]}, true
	}
	if m := bareRe.FindStringSubmatch(s); m != nil {
		return identifier{jur: "EU", year: m[1], number: m[2]}, true
	}
	return identifier{}, false
}

func (id identifier) full() string {
	return Format(id.jur, id.year, id.number)
}

func (id identifier) bare() string {
	return id.year + "/" + stripLeadingZeros(id.number)
}

// IdentifiersMatch reports whether two EU act identifiers denote the
// same act, tolerating the presence or absence of a jurisdiction
// prefix and leading zeros on the number: "EU 2016/679", "2016/679"
// and "32016R0679" all match each other.
func IdentifiersMatch(a, b string) bool {
	pa, oka := parseIdentifier(a)
	pb, okb := parseIdentifier(b)
	if !oka || !okb {
		return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
	}
	if pa.full() == pb.full() {
		return true
	}
	return pa.bare() == pb.bare()
}

// normalizedKey is the per-(identifier,type) dedup key used both
// within one document's matches and across a whole document set.
func normalizedKey(euID string, euType string) string {
	id, ok := parseIdentifier(euID)
	norm := euID
	if ok {
		norm = id.full()
	}
	return norm + "|" + strings.ToLower(euType)
}
