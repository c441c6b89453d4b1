package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type pairingView struct {
	Photo     string `json:"photo"`
	Record    int    `json:"record,omitempty"`
	Matched   bool   `json:"matched"`
	Timestamp string `json:"timestamp,omitempty"`
}

type matchView struct {
	Strategy string        `json:"strategy"`
	Matched  int           `json:"matched"`
	Total    int           `json:"total"`
	Pairings []pairingView `json:"pairings"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var jsonFlag bool
	flags := &matchFlags{}

	cmd := &cobra.Command{
		Use:   "match <shoot-log> <photo-dir>",
		Short: "Pair shoot log records with scanned photos",
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

			if jsonFlag {
				view := matchView{
					Strategy: string(result.Strategy),
					Matched:  result.Matched,
					Total:    result.Total,
				}
				for _, assignment := range result.Assignments {
					pairing := pairingView{Photo: assignment.Photo.Name(), Matched: assignment.Record != nil}
					if assignment.Record != nil {
						pairing.Record = assignment.Record.Index + 1
						pairing.Timestamp = formatTimestamp(assignment.Record.Timestamp)
					}
					view.Pairings = append(view.Pairings, pairing)
				}
				return writeJSON(cmd, view)
			}

			headers := []string{"Photo", "Record", "Timestamp"}
			aligns := []columnAlignment{alignLeft, alignRight, alignLeft}
			rows := make([][]string, 0, len(result.Assignments))
			for _, assignment := range result.Assignments {
				row := []string{assignment.Photo.Name(), "-", "-"}
				if assignment.Record != nil {
					row[1] = fmt.Sprintf("%d", assignment.Record.Index+1)
					row[2] = formatTimestamp(assignment.Record.Timestamp)
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			fmt.Fprintf(out, "Strategy: %s  Matched: %d/%d (%s)\n",
				result.Strategy, result.Matched, result.Total, formatRate(result.Matched, result.Total))
			return nil
		},
	}

	addMatchFlags(cmd, flags, &formatFlag)
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit pairings as JSON")
	return cmd
}

func addMatchFlags(cmd *cobra.Command, flags *matchFlags, formatFlag *string) {
	cmd.Flags().StringVarP(formatFlag, "format", "f", "", "Shoot log format (json, csv, text); detected when omitted")
	cmd.Flags().StringVarP(&flags.strategy, "strategy", "s", "", "Match strategy (sequence, timestamp, hybrid)")
	cmd.Flags().IntVar(&flags.toleranceMinutes, "tolerance", 0, "Timestamp tolerance in minutes")
	cmd.Flags().IntVar(&flags.offset, "offset", 0, "Sequence offset between records and photos")
}
