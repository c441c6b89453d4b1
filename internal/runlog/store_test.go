package runlog_test

import (
	"context"
	"testing"
	"time"

	"filmtag/internal/engine"
	"filmtag/internal/testsupport"
)

func sampleOutcome(runID string) *engine.Outcome {
	return &engine.Outcome{
		RunID: runID,
		Tasks: []engine.TaskOutcome{
			{Path: "roll1/frame01.jpg", Status: engine.StatusApplied},
			{Path: "roll1/frame02.jpg", Status: engine.StatusFailed, Detail: "File not found", Retries: 2},
			{Path: "roll1/frame03.jpg", Status: engine.StatusSkipped, Detail: "run cancelled"},
		},
		Applied:  1,
		Failed:   1,
		Skipped:  1,
		Payloads: 1,
		Duration: 1500 * time.Millisecond,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	t.Parallel()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	if err := store.RecordRun(ctx, sampleOutcome("run-1"), started, "timestamp"); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if run.RunID != "run-1" || run.Strategy != "timestamp" {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Applied != 1 || run.Failed != 1 || run.Skipped != 1 || run.Payloads != 1 {
		t.Fatalf("unexpected counts: %+v", run)
	}
	if !run.StartedAt.Equal(started) {
		t.Fatalf("started at %v, want %v", run.StartedAt, started)
	}
	if run.Duration != 1500*time.Millisecond {
		t.Fatalf("duration %v, want 1.5s", run.Duration)
	}
}

func TestRecordRunReplacesSameID(t *testing.T) {
	t.Parallel()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	started := time.Now().UTC()
	if err := store.RecordRun(ctx, sampleOutcome("run-1"), started, "sequence"); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	second := sampleOutcome("run-1")
	second.Tasks[1].Status = engine.StatusApplied
	second.Applied = 2
	second.Failed = 0
	if err := store.RecordRun(ctx, second, started, "sequence"); err != nil {
		t.Fatalf("RecordRun again: %v", err)
	}

	runs, err := store.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected replacement, got %d runs", len(runs))
	}
	if runs[0].Failed != 0 || runs[0].Applied != 2 {
		t.Fatalf("expected updated counts: %+v", runs[0])
	}

	failures, err := store.Failures(ctx, "run-1")
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected failures cleared on replace, got %+v", failures)
	}
}

func TestFailuresRoundTrip(t *testing.T) {
	t.Parallel()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.RecordRun(ctx, sampleOutcome("run-7"), time.Now().UTC(), "hybrid"); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}

	failures, err := store.Failures(ctx, "run-7")
	if err != nil {
		t.Fatalf("Failures: %v", err)
	}
	if len(failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(failures))
	}
	if failures[0].PhotoPath != "roll1/frame02.jpg" || failures[0].Retries != 2 {
		t.Fatalf("unexpected failure: %+v", failures[0])
	}
}

func TestListRunsOrderAndLimit(t *testing.T) {
	t.Parallel()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"run-a", "run-b", "run-c"} {
		if err := store.RecordRun(ctx, sampleOutcome(id), base.Add(time.Duration(i)*time.Hour), "sequence"); err != nil {
			t.Fatalf("RecordRun %s: %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected limit of 2, got %d", len(runs))
	}
	if runs[0].RunID != "run-c" || runs[1].RunID != "run-b" {
		t.Fatalf("expected newest first, got %s then %s", runs[0].RunID, runs[1].RunID)
	}
}
