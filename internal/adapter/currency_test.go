package adapter

import "testing"

func TestCheckCurrencyWithoutStoreAndNoSeedHitIsUnknown(t *testing.T) {
	a := newSeedOnlyAdapter()
	got, err := a.CheckCurrency(CurrencyRequest{StatuteID: "nonexistent"})
	if err != nil {
		t.Fatalf("CheckCurrency: %v", err)
	}
	if got.Status != "unknown" {
		t.Errorf("Status = %q, want unknown", got.Status)
	}
}

func TestCheckCurrencySeedHitIsLikelyInForce(t *testing.T) {
	a := newSeedOnlyAdapter()
	got, err := a.CheckCurrency(CurrencyRequest{StatuteID: "bdsg"})
	if err != nil {
		t.Fatalf("CheckCurrency: %v", err)
	}
	if got.Status != "likely_in_force" {
		t.Errorf("Status = %q, want likely_in_force", got.Status)
	}
	if got.Evidence == nil || got.Evidence.Matches == 0 {
		t.Errorf("Evidence = %v, want at least one match", got.Evidence)
	}
	if got.SourceDate == "" {
		t.Errorf("SourceDate is empty, want the seed fixture's effective_date")
	}
}

func TestCheckCurrencyAsOfDateBeforeSourceDateIsUnknown(t *testing.T) {
	a := newSeedOnlyAdapter()
	got, err := a.CheckCurrency(CurrencyRequest{StatuteID: "bdsg", AsOfDate: "2000-01-01"})
	if err != nil {
		t.Fatalf("CheckCurrency: %v", err)
	}
	if got.Status != "unknown" {
		t.Errorf("Status = %q, want unknown for an asOfDate before sourceDate", got.Status)
	}
}
