package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmtag/internal/batch"
	"filmtag/internal/config"
	"filmtag/internal/match"
)

type payloadView struct {
	ID    string `json:"id"`
	Shard int    `json:"shard"`
	Tasks int    `json:"tasks"`
	Bytes int    `json:"bytes"`
}

type planView struct {
	Payloads  []payloadView `json:"payloads"`
	TaskCount int           `json:"task_count"`
}

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var jsonFlag bool
	var shardsFlag int
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "plan <shoot-log> <photo-dir>",
		Short: "Preview the payloads a tagging run would execute",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			flags.offsetSet = cmd.Flags().Changed("offset")

			result, err := runMatch(cmd, ctx, cfg, args[0], args[1], formatFlag, flags)
			if err != nil {
				return err
			}
			plan, err := buildPlan(cfg, result, shardsFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				view := planView{TaskCount: plan.TaskCount}
				for _, payload := range plan.Payloads {
					view.Payloads = append(view.Payloads, payloadView{
						ID:    payload.ID,
						Shard: payload.Shard,
						Tasks: len(payload.Tasks),
						Bytes: len(payload.Body),
					})
				}
				return writeJSON(cmd, view)
			}

			headers := []string{"Payload", "Shard", "Tasks", "Bytes"}
			aligns := []columnAlignment{alignLeft, alignRight, alignRight, alignRight}
			rows := make([][]string, 0, len(plan.Payloads))
			for _, payload := range plan.Payloads {
				rows = append(rows, []string{
					payload.ID,
					fmt.Sprintf("%d", payload.Shard),
					fmt.Sprintf("%d", len(payload.Tasks)),
					fmt.Sprintf("%d", len(payload.Body)),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			fmt.Fprintf(out, "%d tasks across %d payloads\n", plan.TaskCount, len(plan.Payloads))
			return nil
		},
	}

	addMatchFlags(cmd, flags, &formatFlag)
	cmd.Flags().IntVar(&shardsFlag, "shards", 0, "Number of round-robin shards (overrides config)")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the plan as JSON")
	return cmd
}

func buildPlan(cfg *config.Config, result *match.Result, shardsFlag int) (*batch.Plan, error) {
	shards := cfg.Batch.Shards
	if shardsFlag > 0 {
		shards = shardsFlag
	}
	tasks := batch.TasksFromResult(result)
	return batch.BuildPlan(tasks, batch.Options{
		MaxTasks: cfg.Batch.MaxPayloadTasks,
		MaxBytes: cfg.Batch.MaxPayloadBytes,
		Shards:   shards,
		Argfile: batch.ArgfileOptions{
			OverwriteInPlace: cfg.ExifTool.OverwriteInPlace,
			PreserveModTime:  cfg.ExifTool.PreserveModTime,
		},
	})
}
