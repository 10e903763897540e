package adapter

import (
	"context"
	"testing"

	"github.com/thornvik/juricore/internal/models"
)

func TestBuildLegalStanceAggregatesStatutesAndKeyCitations(t *testing.T) {
	a := newSeedOnlyAdapter()
	got, err := a.BuildLegalStance(context.Background(), StanceRequest{Query: "BDSG", Limit: 5})
	if err != nil {
		t.Fatalf("BuildLegalStance: %v", err)
	}
	if len(got.Statutes) == 0 {
		t.Fatal("BuildLegalStance returned no statutes for a query that matches the seed fixture")
	}
	if len(got.CaseLaw) != 0 {
		t.Errorf("CaseLaw = %v, want empty when IncludeCaseLaw is false", got.CaseLaw)
	}
	if len(got.KeyCitations) == 0 {
		t.Fatal("KeyCitations is empty, want the statute's citation")
	}
	if got.KeyCitations[0] != got.Statutes[0].Citation {
		t.Errorf("KeyCitations[0] = %q, want %q", got.KeyCitations[0], got.Statutes[0].Citation)
	}
}

func TestBuildLegalStanceKeyCitationsAreDeduplicated(t *testing.T) {
	citations := unionCitations(10, nil)
	if len(citations) != 0 {
		t.Errorf("unionCitations(empty) = %v, want empty", citations)
	}

	first := []models.Document{{Citation: "§ 1 BDSG"}, {Citation: "§ 1 BDSG"}}
	second := []models.Document{{Citation: "§ 1 BDSG"}, {Citation: "§ 2 BDSG"}}
	citations = unionCitations(10, first, second)
	if len(citations) != 2 || citations[0] != "§ 1 BDSG" || citations[1] != "§ 2 BDSG" {
		t.Errorf("unionCitations(duplicates) = %v, want [§ 1 BDSG § 2 BDSG]", citations)
	}
}
