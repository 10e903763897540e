package store

import (
	"database/sql"
	"encoding/json"

	"github.com/thornvik/juricore/internal/models"
)

func decodeMetadata(raw sql.NullString) map[string]any {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw.String), &m); err != nil {
		return nil
	}
	return m
}

func nullStr(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func scanLawDocument(row scanner) (models.Document, error) {
	var (
		id, country, statuteID, sectionRef, kind, title string
		citation, sourceURL, effectiveDate, snippet      sql.NullString
		metadataJSON                                     sql.NullString
		updatedAt                                        string
	)
	if err := row.Scan(&id, &country, &statuteID, &sectionRef, &kind, &title,
		&citation, &sourceURL, &effectiveDate, &snippet, &metadataJSON, &updatedAt); err != nil {
		return models.Document{}, err
	}
	meta := decodeMetadata(metadataJSON)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["statute_id"] = statuteID
	meta["section_ref"] = sectionRef
	meta["updated_at"] = updatedAt

	return models.Document{
		ID:            id,
		Jurisdiction:  country,
		Kind:          models.DocumentKind(kind),
		Title:         title,
		Citation:      nullStr(citation),
		SourceURL:     nullStr(sourceURL),
		EffectiveDate: nullStr(effectiveDate),
		TextSnippet:   nullStr(snippet),
		Metadata:      meta,
	}, nil
}

func scanCaseLawDocument(row scanner) (models.Document, error) {
	var (
		id, country, caseID, title, sourceURL string
		ecli, court, decisionDate, fileNumber, decisionType, citation, snippet sql.NullString
		metadataJSON                                                          sql.NullString
		updatedAt                                                             string
	)
	if err := row.Scan(&id, &country, &caseID, &ecli, &court, &decisionDate, &fileNumber,
		&decisionType, &title, &citation, &sourceURL, &snippet, &metadataJSON, &updatedAt); err != nil {
		return models.Document{}, err
	}
	meta := decodeMetadata(metadataJSON)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["case_id"] = caseID
	if nullStr(ecli) != "" {
		meta["ecli"] = nullStr(ecli)
	}
	if nullStr(fileNumber) != "" {
		meta["file_number"] = nullStr(fileNumber)
	}
	if nullStr(decisionType) != "" {
		meta["decision_type"] = nullStr(decisionType)
	}
	if nullStr(court) != "" {
		meta["court"] = nullStr(court)
	}
	meta["updated_at"] = updatedAt

	return models.Document{
		ID:            id,
		Jurisdiction:  country,
		Kind:          models.KindCase,
		Title:         title,
		Citation:      nullStr(citation),
		SourceURL:     sourceURL,
		EffectiveDate: nullStr(decisionDate),
		TextSnippet:   nullStr(snippet),
		Metadata:      meta,
	}, nil
}

func scanPreparatoryWork(row scanner) (models.Document, error) {
	var (
		id, country, dipID, title, sourceURL string
		statuteID, statuteCitation, workType, pubDate, snippet sql.NullString
		metadataJSON                                           sql.NullString
		updatedAt                                              string
	)
	if err := row.Scan(&id, &country, &dipID, &title, &statuteID, &statuteCitation,
		&workType, &pubDate, &sourceURL, &snippet, &metadataJSON, &updatedAt); err != nil {
		return models.Document{}, err
	}
	meta := decodeMetadata(metadataJSON)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["dip_id"] = dipID
	if nullStr(workType) != "" {
		meta["work_type"] = nullStr(workType)
	}
	if nullStr(statuteID) != "" {
		meta["statute_id"] = nullStr(statuteID)
	}
	meta["updated_at"] = updatedAt

	return models.Document{
		ID:            id,
		Jurisdiction:  country,
		Kind:          models.KindPreparatoryWork,
		Title:         title,
		Citation:      nullStr(statuteCitation),
		SourceURL:     sourceURL,
		EffectiveDate: nullStr(pubDate),
		TextSnippet:   nullStr(snippet),
		Metadata:      meta,
	}, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const lawDocumentColumns = `id, country, statute_id, section_ref, kind, title, citation, source_url, effective_date, text_snippet, metadata_json, updated_at`
const caseLawColumns = `id, country, case_id, ecli, court, decision_date, file_number, decision_type, title, citation, source_url, text_snippet, metadata_json, updated_at`
const preparatoryWorkColumns = `id, country, dip_id, title, statute_id, statute_citation, work_type, publication_date, source_url, text_snippet, metadata_json, updated_at`
