package store

import (
	"database/sql"

	"github.com/thornvik/juricore/internal/models"
)

// expandedCaseLawThreshold is the row count above which case-law
// coverage is reported as "expanded" rather than merely "basic". No
// ingestion script emits a separate table for this, so the Store
// derives it from scale alone — a deliberate, documented choice (see
// DESIGN.md) rather than a schema requirement.
const expandedCaseLawThreshold = 500

// Capabilities returns the process-cached Capability Set, computing it
// on first call (spec §3, §5). An unopened Store (corpus file absent)
// reports an empty set, never an error; adapters decide on a seed-data
// fallback through Present instead.
func (s *Store) Capabilities() models.CapabilitySet {
	s.capOnce.Do(s.computeCapabilities)
	return s.caps
}

// Meta returns the process-cached corpus metadata, computing it on the
// same one-shot guard as Capabilities.
func (s *Store) Meta() Meta {
	s.capOnce.Do(s.computeCapabilities)
	return s.meta
}

func (s *Store) computeCapabilities() {
	caps := models.CapabilitySet{}
	db, err := s.requireDB()
	if err != nil {
		s.caps = caps
		s.meta = Meta{Tier: "absent", SchemaVersion: currentSchemaVersion}
		return
	}

	lawCount := tableCountIfExists(db, "law_documents")
	caseCount := tableCountIfExists(db, "case_law_documents")
	prepCount := tableCountIfExists(db, "preparatory_works")

	caps[models.CapCoreLegislation] = lawCount > 0
	caps[models.CapBasicCaseLaw] = caseCount > 0
	caps[models.CapExpandedCaseLaw] = caseCount >= expandedCaseLawThreshold
	caps[models.CapFullPreparatoryWork] = prepCount > 0
	// The EU extractor scans whatever document text is already fetched;
	// it needs no table of its own, only a corpus to scan.
	caps[models.CapEuReferences] = lawCount > 0 || caseCount > 0
	caps[models.CapAgencyGuidance] = tableExists(db, "agency_guidance")

	s.caps = caps
	s.meta = Meta{
		Tier:          tierLabel(lawCount, caseCount, prepCount),
		SchemaVersion: currentSchemaVersion,
		BuiltAt:       lastIngestionFinish(db),
		Builder:       "juricore-ingest",
	}
}

func tableCountIfExists(db *sql.DB, table string) int {
	if !tableExists(db, table) {
		return 0
	}
	return rowCount(db, table)
}

func tierLabel(lawCount, caseCount, prepCount int) string {
	switch {
	case lawCount > 0 && caseCount > 0 && prepCount > 0:
		return "full"
	case lawCount > 0:
		return "partial"
	default:
		return "empty"
	}
}

func lastIngestionFinish(db *sql.DB) string {
	if !tableExists(db, "ingestion_runs") {
		return ""
	}
	var finishedAt sql.NullString
	err := db.QueryRow(`SELECT finished_at FROM ingestion_runs WHERE finished_at IS NOT NULL ORDER BY id DESC LIMIT 1`).Scan(&finishedAt)
	if err != nil || !finishedAt.Valid {
		return ""
	}
	return finishedAt.String
}
