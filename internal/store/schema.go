// Package store provides read-only access to the indexed German-law
// corpus: three primary tables (law_documents, case_law_documents,
// preparatory_works), each with a trigger-synced FTS5 companion, plus
// an ingestion_runs provenance log. It mirrors the schema the
// out-of-scope ingestion scripts create, the way the teacher project's
// internal/index package owns the schema its own Sync/Watch pipeline
// writes to — except this Store never writes.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/thornvik/juricore/internal/apperr"
	"github.com/thornvik/juricore/internal/models"
)

// schemaSQL creates the three primary tables plus ingestion_runs. The
// FTS5 companion tables and their sync triggers are applied separately
// by initFTS, which has a build-tag-gated implementation for binaries
// compiled with and without FTS5 support — the same split the teacher
// project's fts_fts5.go/fts_fallback.go make for its single-table
// index. It is applied idempotently so a freshly-created empty
// database (used by tests, or a corpus snapshot missing one of the
// three sources) still exposes every table the capability probe
// checks for. Production corpora are built by the out-of-scope
// ingestion scripts against this same schema.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS law_documents (
  id TEXT PRIMARY KEY,
  country TEXT NOT NULL,
  statute_id TEXT NOT NULL,
  section_ref TEXT NOT NULL,
  kind TEXT NOT NULL,
  title TEXT NOT NULL,
  citation TEXT,
  source_url TEXT,
  effective_date TEXT,
  text_snippet TEXT,
  metadata_json TEXT,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(statute_id, section_ref)
);
CREATE INDEX IF NOT EXISTS idx_law_documents_statute ON law_documents(statute_id);
CREATE INDEX IF NOT EXISTS idx_law_documents_citation ON law_documents(citation);

CREATE TABLE IF NOT EXISTS case_law_documents (
  id TEXT PRIMARY KEY,
  country TEXT NOT NULL,
  case_id TEXT NOT NULL UNIQUE,
  ecli TEXT,
  court TEXT,
  decision_date TEXT,
  file_number TEXT,
  decision_type TEXT,
  title TEXT NOT NULL,
  citation TEXT,
  source_url TEXT NOT NULL,
  text_snippet TEXT,
  metadata_json TEXT,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_case_law_case_id ON case_law_documents(case_id);
CREATE INDEX IF NOT EXISTS idx_case_law_ecli ON case_law_documents(ecli);
CREATE INDEX IF NOT EXISTS idx_case_law_court ON case_law_documents(court);
CREATE INDEX IF NOT EXISTS idx_case_law_decision_date ON case_law_documents(decision_date);

CREATE TABLE IF NOT EXISTS preparatory_works (
  id TEXT PRIMARY KEY,
  country TEXT NOT NULL,
  dip_id TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  statute_id TEXT,
  statute_citation TEXT,
  work_type TEXT,
  publication_date TEXT,
  source_url TEXT NOT NULL,
  text_snippet TEXT,
  metadata_json TEXT,
  updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_prep_works_statute_id ON preparatory_works(statute_id);
CREATE INDEX IF NOT EXISTS idx_prep_works_publication_date ON preparatory_works(publication_date);

CREATE TABLE IF NOT EXISTS ingestion_runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source_id TEXT NOT NULL,
  started_at TEXT NOT NULL,
  finished_at TEXT,
  status TEXT NOT NULL,
  total_laws INTEGER NOT NULL DEFAULT 0,
  ingested_laws INTEGER NOT NULL DEFAULT 0,
  skipped_laws INTEGER NOT NULL DEFAULT 0,
  ingested_sections INTEGER NOT NULL DEFAULT 0,
  skipped_sections INTEGER NOT NULL DEFAULT 0,
  error_count INTEGER NOT NULL DEFAULT 0,
  error_sample TEXT,
  notes TEXT
);
`

// Meta describes a corpus snapshot the way the Store found it: a loose
// tier label, a fixed schema version this binary was built against,
// and provenance derived from the ingestion_runs log.
type Meta struct {
	Tier          string `json:"tier"`
	SchemaVersion string `json:"schema_version"`
	BuiltAt       string `json:"built_at,omitempty"`
	Builder       string `json:"builder,omitempty"`
}

const currentSchemaVersion = "1"

// Store is a read-only handle onto the corpus database. It is safe for
// concurrent use; the Capability Set and Meta are computed once, under
// a one-shot guard, and cached for the process lifetime (spec §5).
type Store struct {
	db      *sql.DB
	present bool

	capOnce sync.Once
	caps    models.CapabilitySet
	meta    Meta
}

// Open opens path read-only. A missing file is not an error: present
// is left false and every subsequent read returns apperr.ErrUnavailable,
// letting adapters fall back to seed data (spec §4.5 opening semantics).
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return &Store{}, nil
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{db: db, present: true}, nil
}

// OpenRW opens path for read-write access and applies the schema plus
// FTS companions. It backs OpenMemory and is also used directly by
// tests that need to seed rows before exercising read-only search
// paths against the same handle.
func OpenRW(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open rw: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	if err := initFTS(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply fts schema: %w", err)
	}
	return &Store{db: db, present: true}, nil
}

// OpenMemory opens an in-process, read-write database and applies the
// schema. It exists for tests and for tools that build a corpus
// snapshot in-process; production access always goes through Open.
func OpenMemory() (*Store, error) {
	return OpenRW("file::memory:?cache=shared")
}

// Close releases the underlying connection. Closing an unopened
// (file-absent) Store is a no-op.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Present reports whether the corpus file was found at Open time.
func (s *Store) Present() bool {
	return s.present
}

func (s *Store) requireDB() (*sql.DB, error) {
	if !s.present || s.db == nil {
		return nil, apperr.ErrUnavailable
	}
	return s.db, nil
}

func tableExists(db *sql.DB, name string) bool {
	var n int
	err := db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
	return err == nil && n > 0
}

func rowCount(db *sql.DB, table string) int {
	var n int
	// table names here are always our own constants, never user input.
	if err := db.QueryRow(`SELECT count(*) FROM ` + table).Scan(&n); err != nil {
		return 0
	}
	return n
}
