package adapter

import (
	"context"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// ingestionTimeout is the bounded default deadline spec §5 requires
// when the caller supplies no context deadline of its own.
const ingestionTimeout = 2 * time.Minute

// sourceIDs is the closed set of upstream feeds the German adapter's
// sources[] lists (spec §3, SPEC_FULL §12.5); run_ingestion's sourceId
// is validated against it when one is given.
var sourceIDs = map[string]bool{
	"gesetze-im-internet.de":      true,
	"rechtsprechung-im-internet.de": true,
	"dip.bundestag.de":            true,
}

// RunIngestion shells out to the configured ingestion binary (spec
// §4.10: "the only operation permitted to shell out to an external
// process"). Any failure — missing binary, non-zero exit, deadline
// expiry — collapses to a zeroed report with every count left at 0,
// never a propagated error.
func (a *German) RunIngestion(ctx context.Context, req IngestionRequest) IngestionReport {
	runID := uuid.New().String()
	started := nowStamp()
	report := IngestionReport{RunID: runID, StartedAt: started, SourceID: req.SourceID, DryRun: req.DryRun}

	if a.ingestionBinary == "" {
		report.FinishedAt = started
		return report
	}
	if req.SourceID != "" && !sourceIDs[req.SourceID] {
		report.FinishedAt = started
		return report
	}

	runCtx := ctx
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, ingestionTimeout)
		defer cancel()
	}

	args := []string{"--source", req.SourceID}
	if req.DryRun {
		args = append(args, "--dry-run")
	}
	cmd := exec.CommandContext(runCtx, a.ingestionBinary, args...)
	if err := cmd.Run(); err != nil {
		a.logger.Warn("ingestion subprocess failed", "run_id", runID, "source_id", req.SourceID, "err", err)
		report.FinishedAt = nowStamp()
		return report
	}

	report.FinishedAt = nowStamp()
	report.IngestedCount, report.SkippedCount = a.ingestionCountsSince(req.SourceID, started)
	return report
}

// ingestionCountsSince reads back the ingested/skipped law counts the
// just-finished run recorded in ingestion_runs, so the report's counts
// come from the Store's own provenance log rather than from parsing
// the subprocess's stdout.
func (a *German) ingestionCountsSince(sourceID, startedAt string) (int, int) {
	if !a.storeAvailable() {
		return 0, 0
	}
	runs, err := a.store.IngestionHistory(sourceID, 1)
	if err != nil || len(runs) == 0 {
		return 0, 0
	}
	latest := runs[0]
	if latest.StartedAt < startedAt {
		return 0, 0
	}
	return latest.IngestedLaws, latest.SkippedLaws
}

// GetIngestionHistory is the additive diagnostic SPEC_FULL §12.3
// describes: a read-only view over ingestion_runs, gated by the same
// ingestion capability flag run_ingestion itself uses.
func (a *German) GetIngestionHistory(sourceID string, limit int) (IngestionHistoryResult, error) {
	if !a.storeAvailable() {
		return IngestionHistoryResult{}, nil
	}
	rows, err := a.store.IngestionHistory(sourceID, limit)
	if err != nil {
		return IngestionHistoryResult{}, err
	}
	out := make([]IngestionRunSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, IngestionRunSummary{
			SourceID:     r.SourceID,
			StartedAt:    r.StartedAt,
			FinishedAt:   r.FinishedAt,
			Status:       r.Status,
			IngestedLaws: r.IngestedLaws,
			SkippedLaws:  r.SkippedLaws,
			ErrorCount:   r.ErrorCount,
		})
	}
	return IngestionHistoryResult{Runs: out, Total: len(out)}, nil
}

// nowStamp is the single seam this package uses for the current time,
// kept to a standalone function so tests can exercise the rest of
// RunIngestion's control flow without depending on wall-clock output.
var nowStamp = func() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}
