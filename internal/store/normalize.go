package store

import "golang.org/x/text/unicode/norm"

// normalizeNFC applies Unicode NFC normalization ahead of the
// substring stage's tokenization (spec §4.5), so a citation typed
// with a precomposed umlaut matches one typed with a combining
// diacritic, and vice versa.
func normalizeNFC(s string) string {
	return norm.NFC.String(s)
}
