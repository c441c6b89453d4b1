package engine

import (
	"context"
	"log/slog"
	"time"

	"filmtag/internal/batch"
	"filmtag/internal/config"
	"filmtag/internal/services/exiftool"
)

// Run plans and executes the given tasks in one call using the settings
// from cfg. It is the high-level entry used by the CLI; callers that need
// to inspect the plan first build it themselves and call Execute.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, tasks []batch.Task) (*Outcome, error) {
	plan, err := batch.BuildPlan(tasks, batch.Options{
		MaxTasks: cfg.Batch.MaxPayloadTasks,
		MaxBytes: cfg.Batch.MaxPayloadBytes,
		Shards:   cfg.Batch.Shards,
		Argfile: batch.ArgfileOptions{
			OverwriteInPlace: cfg.ExifTool.OverwriteInPlace,
			PreserveModTime:  cfg.ExifTool.PreserveModTime,
		},
	})
	if err != nil {
		return nil, err
	}

	client, err := exiftool.New(cfg.ExifToolBinary())
	if err != nil {
		return nil, err
	}

	eng, err := New(client, Options{
		Concurrency:    cfg.Engine.Concurrency,
		Retries:        cfg.ExifTool.Retries,
		Backoff:        time.Duration(cfg.ExifTool.RetryBackoffMS) * time.Millisecond,
		PayloadTimeout: time.Duration(cfg.ExifTool.PayloadTimeout) * time.Second,
		Logger:         logger,
	})
	if err != nil {
		return nil, err
	}
	return eng.Execute(ctx, plan)
}
