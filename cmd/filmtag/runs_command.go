package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filmtag/internal/runlog"
)

type runView struct {
	RunID    string `json:"run_id"`
	Started  string `json:"started"`
	Duration string `json:"duration"`
	Strategy string `json:"strategy"`
	Payloads int    `json:"payloads"`
	Applied  int    `json:"applied"`
	Failed   int    `json:"failed"`
	Skipped  int    `json:"skipped"`
}

type failureView struct {
	Photo   string `json:"photo"`
	Detail  string `json:"detail,omitempty"`
	Retries int    `json:"retries"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show past tagging runs, or the failures of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runlog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return showFailures(cmd, store, args[0], jsonFlag)
			}
			return listRuns(cmd, store, limitFlag, jsonFlag)
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit results as JSON")
	return cmd
}

func listRuns(cmd *cobra.Command, store *runlog.Store, limit int, asJSON bool) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		views := make([]runView, 0, len(runs))
		for _, run := range runs {
			views = append(views, runView{
				RunID:    run.RunID,
				Started:  run.StartedAt.Local().Format("2006-01-02 15:04:05"),
				Duration: run.Duration.Round(time.Millisecond).String(),
				Strategy: run.Strategy,
				Payloads: run.Payloads,
				Applied:  run.Applied,
				Failed:   run.Failed,
				Skipped:  run.Skipped,
			})
		}
		return writeJSON(cmd, views)
	}

	headers := []string{"Run", "Started", "Duration", "Strategy", "Applied", "Failed", "Skipped"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.RunID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Duration.Round(time.Millisecond).String(),
			run.Strategy,
			fmt.Sprintf("%d", run.Applied),
			fmt.Sprintf("%d", run.Failed),
			fmt.Sprintf("%d", run.Skipped),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintf(out, "%d runs\n", len(runs))
	return nil
}

func showFailures(cmd *cobra.Command, store *runlog.Store, runID string, asJSON bool) error {
	failures, err := store.Failures(cmd.Context(), runID)
	if err != nil {
		return err
	}

	if asJSON {
		views := make([]failureView, 0, len(failures))
		for _, failure := range failures {
			views = append(views, failureView{
				Photo:   failure.PhotoPath,
				Detail:  failure.Detail,
				Retries: failure.Retries,
			})
		}
		return writeJSON(cmd, views)
	}

	out := cmd.OutOrStdout()
	if len(failures) == 0 {
		fmt.Fprintf(out, "No failures recorded for run %s\n", runID)
		return nil
	}

	headers := []string{"Photo", "Detail", "Retries"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(failures))
	for _, failure := range failures {
		rows = append(rows, []string{failure.PhotoPath, failure.Detail, fmt.Sprintf("%d", failure.Retries)})
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	return nil
}
