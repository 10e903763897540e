package adapter

import (
	"context"
	"testing"
)

func TestRunIngestionWithoutBinaryIsZeroed(t *testing.T) {
	a := newSeedOnlyAdapter()
	report := a.RunIngestion(context.Background(), IngestionRequest{SourceID: "gesetze-im-internet.de"})
	if report.RunID == "" {
		t.Error("RunID is empty, want a generated correlation id")
	}
	if report.IngestedCount != 0 || report.SkippedCount != 0 {
		t.Errorf("report = %+v, want zeroed counts when no ingestion binary is configured", report)
	}
	if report.FinishedAt == "" {
		t.Error("FinishedAt is empty, want a timestamp even on the no-op path")
	}
}

func TestRunIngestionRejectsUnknownSourceID(t *testing.T) {
	a := NewGerman(Config{IngestionBinary: "/usr/bin/true"})
	report := a.RunIngestion(context.Background(), IngestionRequest{SourceID: "not-a-real-source"})
	if report.IngestedCount != 0 || report.SkippedCount != 0 {
		t.Errorf("report = %+v, want zeroed counts for an unrecognized sourceId", report)
	}
}

func TestGetIngestionHistoryWithoutStoreIsEmpty(t *testing.T) {
	a := newSeedOnlyAdapter()
	got, err := a.GetIngestionHistory("", 10)
	if err != nil {
		t.Fatalf("GetIngestionHistory: %v", err)
	}
	if got.Total != 0 {
		t.Errorf("Total = %d, want 0 without a Store", got.Total)
	}
}
