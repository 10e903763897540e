package store

import (
	"database/sql"
	"fmt"
)

// IngestionRunRow is one ingestion_runs row, read-only provenance the
// core never writes itself.
type IngestionRunRow struct {
	SourceID     string
	StartedAt    string
	FinishedAt   string
	Status       string
	IngestedLaws int
	SkippedLaws  int
	ErrorCount   int
}

// IngestionHistory returns the most recent ingestion_runs rows, newest
// first, optionally filtered to a single sourceId. It is the Store
// side of the additive get_ingestion_history diagnostic.
func (s *Store) IngestionHistory(sourceID string, limit int) ([]IngestionRunRow, error) {
	db, err := s.requireDB()
	if err != nil {
		return nil, err
	}
	if !tableExists(db, "ingestion_runs") {
		return nil, nil
	}
	limit = clampLimit(limit, 100)

	query := `SELECT source_id, started_at, finished_at, status, ingested_laws, skipped_laws, error_count
		FROM ingestion_runs`
	args := []any{}
	if sourceID != "" {
		query += ` WHERE source_id = ?`
		args = append(args, sourceID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: ingestion history: %w", err)
	}
	defer rows.Close()

	var out []IngestionRunRow
	for rows.Next() {
		var r IngestionRunRow
		var finishedAt sql.NullString
		if err := rows.Scan(&r.SourceID, &r.StartedAt, &finishedAt, &r.Status,
			&r.IngestedLaws, &r.SkippedLaws, &r.ErrorCount); err != nil {
			return nil, fmt.Errorf("store: ingestion history scan: %w", err)
		}
		r.FinishedAt = nullStr(finishedAt)
		out = append(out, r)
	}
	return out, rows.Err()
}
