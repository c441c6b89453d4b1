package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"filmtag/internal/batch"
	"filmtag/internal/logging"
	"filmtag/internal/services"
	"filmtag/internal/services/exiftool"
)

// Applier executes one argfile payload and reports per-file results.
// *exiftool.Client satisfies it.
type Applier interface {
	Apply(ctx context.Context, argfilePath string, taskCount int) ([]exiftool.FileResult, error)
}

// Options tunes run behavior.
type Options struct {
	// Concurrency bounds the worker pool. Zero or less matches the
	// number of available processing units.
	Concurrency int
	// Retries is the number of re-attempts after the first failure of a
	// payload. Only transient failures are retried.
	Retries int
	// Backoff is the delay before the first retry; it doubles on each
	// subsequent attempt.
	Backoff time.Duration
	// PayloadTimeout caps a single payload attempt. Zero disables it.
	PayloadTimeout time.Duration
	// WorkDir receives the rendered argfiles. A temporary directory is
	// created when empty.
	WorkDir string
	Logger  *slog.Logger
}

// Engine dispatches payloads from a plan to a bounded worker pool.
type Engine struct {
	applier Applier
	opts    Options
	logger  *slog.Logger
	sleep   func(context.Context, time.Duration) error
}

// New validates options and constructs an engine.
func New(applier Applier, opts Options) (*Engine, error) {
	if applier == nil {
		return nil, services.Wrap(services.ErrConfiguration, "execute", "new-engine", "applier required", nil)
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	if opts.Retries < 0 {
		return nil, services.Wrap(services.ErrConfiguration, "execute", "new-engine", "retries cannot be negative", nil)
	}
	return &Engine{
		applier: applier,
		opts:    opts,
		logger:  logging.NewComponentLogger(opts.Logger, "engine"),
		sleep:   sleepContext,
	}, nil
}

// Execute runs every payload in the plan and merges the results. The
// returned outcome covers all tasks: payloads that never ran because the
// context was cancelled surface as skipped, never as silently absent.
func (e *Engine) Execute(ctx context.Context, plan *batch.Plan) (*Outcome, error) {
	if plan == nil || len(plan.Payloads) == 0 {
		return nil, services.Wrap(services.ErrValidation, "execute", "run", "plan has no payloads", nil)
	}

	runID := uuid.NewString()
	ctx = logging.WithStage(services.WithRunID(ctx, runID), "execute")
	logger := logging.WithContext(ctx, e.logger)

	workDir := e.opts.WorkDir
	if workDir == "" {
		dir, err := os.MkdirTemp("", "filmtag-run-")
		if err != nil {
			return nil, services.Wrap(services.ErrConfiguration, "execute", "run", "create work directory", err)
		}
		defer os.RemoveAll(dir)
		workDir = dir
	}

	started := time.Now()
	results := newCollector()
	payloads := make(chan batch.Payload)

	var wg sync.WaitGroup
	for i := 0; i < e.opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for payload := range payloads {
				results.recordAll(e.runPayload(ctx, logger, workDir, payload))
			}
		}()
	}

dispatch:
	for _, payload := range plan.Payloads {
		select {
		case payloads <- payload:
		case <-ctx.Done():
			results.recordAll(skipPayload(payload, "run cancelled before dispatch"))
			continue dispatch
		}
	}
	close(payloads)
	wg.Wait()

	outcome := &Outcome{
		RunID:    runID,
		Tasks:    results.snapshot(),
		Payloads: len(plan.Payloads),
		Duration: time.Since(started),
	}
	for _, task := range outcome.Tasks {
		switch task.Status {
		case StatusApplied:
			outcome.Applied++
		case StatusFailed:
			outcome.Failed++
		case StatusSkipped:
			outcome.Skipped++
		}
	}

	logger.Info("run finished",
		logging.Int("payloads", outcome.Payloads),
		logging.Int("applied", outcome.Applied),
		logging.Int("failed", outcome.Failed),
		logging.Int("skipped", outcome.Skipped),
		logging.Duration("duration", outcome.Duration),
	)
	return outcome, nil
}

// runPayload writes the argfile and attempts the payload until it
// succeeds, exhausts its retries, or hits a terminal error.
func (e *Engine) runPayload(ctx context.Context, logger *slog.Logger, workDir string, payload batch.Payload) []TaskOutcome {
	plog := logger.With(logging.String(logging.FieldPayload, payload.ID), logging.Int(logging.FieldShard, payload.Shard))

	if ctx.Err() != nil {
		return skipPayload(payload, "run cancelled")
	}

	argfilePath := filepath.Join(workDir, payload.ID+".args")
	if err := os.WriteFile(argfilePath, payload.Body, 0o644); err != nil {
		wrapped := services.Wrap(services.ErrConfiguration, "execute", "write-argfile", "write payload argfile", err)
		return failPayload(payload, wrapped.Error(), 0)
	}

	var lastErr error
	for attempt := 0; attempt <= e.opts.Retries; attempt++ {
		if attempt > 0 {
			delay := e.opts.Backoff << (attempt - 1)
			plog.Warn("retrying payload",
				logging.Int(logging.FieldAttempt, attempt),
				logging.Duration("backoff", delay),
				logging.Error(lastErr),
			)
			if err := e.sleep(ctx, delay); err != nil {
				return skipPayload(payload, "run cancelled during backoff")
			}
		}

		fileResults, err := e.apply(ctx, argfilePath, len(payload.Tasks))
		if err == nil {
			plog.Info("payload applied", logging.Int("tasks", len(payload.Tasks)), logging.Int(logging.FieldAttempt, attempt))
			return mergeFileResults(payload, fileResults, attempt)
		}
		lastErr = err
		if !services.Retryable(err) {
			plog.Error("payload failed", logging.Error(err))
			return failPayload(payload, err.Error(), attempt)
		}
	}

	plog.Error("payload retries exhausted", logging.Int("attempts", e.opts.Retries+1), logging.Error(lastErr))
	detail := "retries exhausted"
	if lastErr != nil {
		detail = fmt.Sprintf("retries exhausted: %v", lastErr)
	}
	return failPayload(payload, detail, e.opts.Retries)
}

func (e *Engine) apply(ctx context.Context, argfilePath string, taskCount int) ([]exiftool.FileResult, error) {
	if e.opts.PayloadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.PayloadTimeout)
		defer cancel()
	}
	return e.applier.Apply(ctx, argfilePath, taskCount)
}

func mergeFileResults(payload batch.Payload, fileResults []exiftool.FileResult, retries int) []TaskOutcome {
	outcomes := make([]TaskOutcome, 0, len(payload.Tasks))
	for i, task := range payload.Tasks {
		outcome := TaskOutcome{Path: task.Path, Status: StatusApplied, Retries: retries}
		if i < len(fileResults) && !fileResults[i].Updated {
			outcome.Status = StatusFailed
			outcome.Detail = fileResults[i].Detail
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func failPayload(payload batch.Payload, detail string, retries int) []TaskOutcome {
	outcomes := make([]TaskOutcome, 0, len(payload.Tasks))
	for _, task := range payload.Tasks {
		outcomes = append(outcomes, TaskOutcome{Path: task.Path, Status: StatusFailed, Detail: detail, Retries: retries})
	}
	return outcomes
}

func skipPayload(payload batch.Payload, detail string) []TaskOutcome {
	outcomes := make([]TaskOutcome, 0, len(payload.Tasks))
	for _, task := range payload.Tasks {
		outcomes = append(outcomes, TaskOutcome{Path: task.Path, Status: StatusSkipped, Detail: detail})
	}
	return outcomes
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
