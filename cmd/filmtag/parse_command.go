package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"filmtag/internal/shootlog"
)

type recordView struct {
	Index     int               `json:"index"`
	Timestamp *time.Time        `json:"timestamp,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func newParseCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "parse <shoot-log>",
		Short: "Parse a shoot log and show its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := loadRecords(args[0], formatFlag)
			if err != nil {
				return err
			}

			if jsonFlag {
				views := make([]recordView, 0, len(records))
				for _, record := range records {
					view := recordView{Index: record.Index, Timestamp: record.Timestamp}
					if len(record.Fields) > 0 {
						view.Fields = make(map[string]string, len(record.Fields))
						for field, value := range record.Fields {
							view.Fields[string(field)] = value
						}
					}
					views = append(views, view)
				}
				return writeJSON(cmd, views)
			}

			headers := []string{"#", "Timestamp"}
			aligns := []columnAlignment{alignRight, alignLeft}
			shown := visibleFields(records)
			for _, field := range shown {
				headers = append(headers, titleLabel(string(field)))
				aligns = append(aligns, alignLeft)
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				row := []string{fmt.Sprintf("%d", record.Index+1), formatTimestamp(record.Timestamp)}
				for _, field := range shown {
					value, _ := record.Value(field)
					if value == "" {
						value = "-"
					}
					row = append(row, value)
				}
				rows = append(rows, row)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			fmt.Fprintf(out, "%d records\n", len(records))
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "", "Shoot log format (json, csv, text); detected when omitted")
	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit records as JSON")
	return cmd
}

// visibleFields returns the fields that appear in at least one record, in
// display order, so the table skips all-empty columns.
func visibleFields(records []shootlog.Record) []shootlog.Field {
	var shown []shootlog.Field
	for _, field := range shootlog.Fields {
		for _, record := range records {
			if _, ok := record.Value(field); ok {
				shown = append(shown, field)
				break
			}
		}
	}
	return shown
}
