package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"filmtag/internal/engine"
	"filmtag/internal/logging"
	"filmtag/internal/preflight"
	"filmtag/internal/runlog"
	"filmtag/internal/services/exiftool"
)

type outcomeView struct {
	RunID    string            `json:"run_id"`
	Applied  int               `json:"applied"`
	Failed   int               `json:"failed"`
	Skipped  int               `json:"skipped"`
	Payloads int               `json:"payloads"`
	Duration string            `json:"duration"`
	Failures []taskOutcomeView `json:"failures,omitempty"`
}

type taskOutcomeView struct {
	Photo   string `json:"photo"`
	Detail  string `json:"detail,omitempty"`
	Retries int    `json:"retries"`
}

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var jsonFlag bool
	var shardsFlag int
	var skipPreflight bool
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "apply <shoot-log> <photo-dir>",
		Short: "Write shoot log metadata into the matched photos",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags.offsetSet = cmd.Flags().Changed("offset")
			logger := ctx.ensureLogger(cmd)
			out := cmd.OutOrStdout()

			if !skipPreflight {
				checks := preflight.RunAll(cmd.Context(), cfg)
				if !preflight.Passed(checks) {
					printChecks(out, checks)
					return fmt.Errorf("preflight checks failed")
				}
			}

			runLock := flock.New(filepath.Join(cfg.Paths.StateDir, "filmtag.lock"))
			locked, err := runLock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another filmtag run is already in progress")
			}
			defer func() {
				_ = runLock.Unlock()
			}()

			result, err := runMatch(cmd, ctx, cfg, args[0], args[1], formatFlag, flags)
			if err != nil {
				return err
			}
			if result.Matched == 0 {
				return fmt.Errorf("no photos matched any shoot log record")
			}

			plan, err := buildPlan(cfg, result, shardsFlag)
			if err != nil {
				return err
			}

			client, err := exiftool.New(cfg.ExifToolBinary())
			if err != nil {
				return err
			}
			eng, err := engine.New(client, engine.Options{
				Concurrency:    cfg.Engine.Concurrency,
				Retries:        cfg.ExifTool.Retries,
				Backoff:        time.Duration(cfg.ExifTool.RetryBackoffMS) * time.Millisecond,
				PayloadTimeout: time.Duration(cfg.ExifTool.PayloadTimeout) * time.Second,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			started := time.Now()
			outcome, err := eng.Execute(cmd.Context(), plan)
			if err != nil {
				return err
			}

			if store, serr := runlog.Open(cfg); serr != nil {
				logger.Warn("run journal unavailable", logging.Error(serr))
			} else {
				if rerr := store.RecordRun(cmd.Context(), outcome, started, string(result.Strategy)); rerr != nil {
					logger.Warn("record run", logging.Error(rerr))
				}
				_ = store.Close()
			}

			if jsonFlag {
				return writeJSON(cmd, newOutcomeView(outcome))
			}
			printOutcome(out, outcome)
			if outcome.Failed > 0 {
				return fmt.Errorf("%d of %d photos failed", outcome.Failed, len(outcome.Tasks))
			}
			return nil
		},
	}

	addMatchFlags(cmd, flags, &formatFlag)
	cmd.Flags().IntVar(&shardsFlag, "shards", 0, "Number of round-robin shards (overrides config)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before running")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the run outcome as JSON")
	return cmd
}

func newOutcomeView(outcome *engine.Outcome) outcomeView {
	view := outcomeView{
		RunID:    outcome.RunID,
		Applied:  outcome.Applied,
		Failed:   outcome.Failed,
		Skipped:  outcome.Skipped,
		Payloads: outcome.Payloads,
		Duration: outcome.Duration.Round(time.Millisecond).String(),
	}
	for _, task := range outcome.Failures() {
		view.Failures = append(view.Failures, taskOutcomeView{
			Photo:   task.Path,
			Detail:  task.Detail,
			Retries: task.Retries,
		})
	}
	return view
}
