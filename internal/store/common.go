package store

import "strings"

// searchSpec parameterizes the shared FTS/fallback search helpers over
// one of the three primary tables.
type searchSpec struct {
	table    string
	ftsTable string

	// extraWhere is a SQL fragment beginning with " AND " (or empty),
	// applied identically across the exact/FTS/substring stages so
	// case-law's court/date filters narrow every tier (spec §4.5).
	extraWhere string
	extraArgs  []any

	likeTitleCol    string
	likeCitationCol string
	likeSnippetCol  string
}

// clampLimit enforces spec §5's backpressure rule: every query path
// clamps limit to [1, 100] (200 for the EU-linkage family, handled by
// its own caller).
func clampLimit(limit, max int) int {
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}

// dedupByID merges result slices in priority order (stages earlier in
// the list take precedence, spec §4.5), keeping each id's first
// occurrence and stopping once limit unique ids have been collected.
func dedupByID[T any](limit int, idOf func(T) string, stages ...[]T) []T {
	seen := make(map[string]struct{}, limit)
	out := make([]T, 0, limit)
	for _, stage := range stages {
		for _, item := range stage {
			if len(out) >= limit {
				return out
			}
			id := idOf(item)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// substringTokens splits a query into the tokens the substring stage
// requires: NFC-normalized, whitespace-split, length >= 2 (spec §4.5).
func substringTokens(query string) []string {
	normalized := normalizeNFC(query)
	fields := strings.Fields(normalized)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 2 {
			out = append(out, f)
		}
	}
	return out
}
