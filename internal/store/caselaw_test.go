package store

import "testing"

func insertCaseLawDocument(t *testing.T, s *Store, id, caseID, court, decisionDate, title, citation string) {
	t.Helper()
	_, err := s.db.Exec(`
		INSERT INTO case_law_documents (id, country, case_id, court, decision_date, title, citation, source_url)
		VALUES (?, 'de', ?, ?, ?, ?, ?, 'https://example.invalid')
	`, id, caseID, court, decisionDate, title, citation)
	if err != nil {
		t.Fatalf("insert case law document: %v", err)
	}
}

func TestSearchCaseLawExactMatchesCaseID(t *testing.T) {
	s := testStore(t)
	insertCaseLawDocument(t, s, "bgh:1", "VI ZR 1/20", "BGH", "2020-05-01", "A decision on liability", "")

	docs, err := s.SearchCaseLaw("VI ZR 1/20", 5, CaseLawFilters{})
	if err != nil {
		t.Fatalf("SearchCaseLaw: %v", err)
	}
	if len(docs) == 0 || docs[0].ID != "bgh:1" {
		t.Fatalf("SearchCaseLaw = %+v, want bgh:1 first via exact case_id match", docs)
	}
}

func TestSearchCaseLawCourtFilter(t *testing.T) {
	s := testStore(t)
	insertCaseLawDocument(t, s, "bgh:1", "VI ZR 1/20", "Bundesgerichtshof", "2020-05-01", "Haftung bei Datenschutzverstoss", "")
	insertCaseLawDocument(t, s, "lg:1", "1 O 1/20", "Landgericht Koeln", "2020-05-01", "Haftung bei Datenschutzverstoss", "")

	docs, err := s.SearchCaseLaw("Haftung", 10, CaseLawFilters{Court: "Bundesgerichtshof"})
	if err != nil {
		t.Fatalf("SearchCaseLaw: %v", err)
	}
	for _, d := range docs {
		if d.ID == "lg:1" {
			t.Errorf("SearchCaseLaw with court filter returned %q, which does not match the filter", d.ID)
		}
	}
	if len(docs) != 1 || docs[0].ID != "bgh:1" {
		t.Fatalf("SearchCaseLaw = %+v, want only bgh:1", docs)
	}
}

func TestSearchCaseLawDateRangeFilter(t *testing.T) {
	s := testStore(t)
	insertCaseLawDocument(t, s, "old:1", "1/19", "BGH", "2019-01-01", "Datenschutz Grundsatz", "")
	insertCaseLawDocument(t, s, "new:1", "1/21", "BGH", "2021-01-01", "Datenschutz Grundsatz", "")

	docs, err := s.SearchCaseLaw("Datenschutz", 10, CaseLawFilters{DateFrom: "2020-01-01"})
	if err != nil {
		t.Fatalf("SearchCaseLaw: %v", err)
	}
	for _, d := range docs {
		if d.ID == "old:1" {
			t.Errorf("SearchCaseLaw with dateFrom filter returned a decision predating it: %q", d.ID)
		}
	}
}

func TestGetDocumentFindsCaseLawAfterStatutesMiss(t *testing.T) {
	s := testStore(t)
	insertCaseLawDocument(t, s, "bgh:1", "VI ZR 1/20", "BGH", "2020-05-01", "A decision", "")

	doc, err := s.GetDocument("bgh:1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc == nil || doc.Kind != "case" {
		t.Fatalf("GetDocument = %+v, want the case law row", doc)
	}
}
