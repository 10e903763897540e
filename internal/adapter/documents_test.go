package adapter

import (
	"testing"

	"github.com/thornvik/juricore/internal/store"
)

func newSeedOnlyAdapter() *German {
	return NewGerman(Config{})
}

func TestSearchDocumentsFallsBackToSeedWhenStoreUnavailable(t *testing.T) {
	a := newSeedOnlyAdapter()
	res, err := a.SearchDocuments("BDSG", 10)
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if res.Total == 0 {
		t.Fatalf("SearchDocuments(%q) returned no results from the seed fixture", "BDSG")
	}
	if res.Documents[0].ID != "seed:bdsg:1" {
		t.Errorf("SearchDocuments(%q)[0].ID = %q, want seed:bdsg:1", "BDSG", res.Documents[0].ID)
	}
}

func TestSearchDocumentsExactCitationSortsFirst(t *testing.T) {
	a := newSeedOnlyAdapter()
	res, err := a.SearchDocuments("§ 823 BGB", 10)
	if err != nil {
		t.Fatalf("SearchDocuments: %v", err)
	}
	if len(res.Documents) == 0 || res.Documents[0].ID != "seed:bgb:823" {
		t.Fatalf("SearchDocuments(%q) = %v, want seed:bgb:823 first", "§ 823 BGB", res.Documents)
	}
}

func TestGetDocumentByIDFromSeed(t *testing.T) {
	a := newSeedOnlyAdapter()
	doc, err := a.GetDocument("seed:gg:1")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc == nil {
		t.Fatal("GetDocument(seed:gg:1) = nil, want the Grundgesetz fixture")
	}
	if doc.Citation != "Art. 1 GG" {
		t.Errorf("GetDocument(seed:gg:1).Citation = %q, want %q", doc.Citation, "Art. 1 GG")
	}
}

func TestGetDocumentUnknownIDReturnsNil(t *testing.T) {
	a := newSeedOnlyAdapter()
	doc, err := a.GetDocument("seed:does-not-exist")
	if err != nil {
		t.Fatalf("GetDocument: %v", err)
	}
	if doc != nil {
		t.Errorf("GetDocument(unknown) = %v, want nil", doc)
	}
}

func TestSearchCaseLawWithoutStoreIsEmpty(t *testing.T) {
	a := newSeedOnlyAdapter()
	res, err := a.SearchCaseLaw("irrelevant", 10, store.CaseLawFilters{})
	if err != nil {
		t.Fatalf("SearchCaseLaw: %v", err)
	}
	if res.Total != 0 {
		t.Errorf("SearchCaseLaw without a Store returned %d results, want 0", res.Total)
	}
}
