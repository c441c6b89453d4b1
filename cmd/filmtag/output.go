package main

import (
	"fmt"
	"io"
	"time"

	"filmtag/internal/engine"
	"filmtag/internal/preflight"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func printChecks(out io.Writer, checks []preflight.Result) {
	colorize := isTerminal(out)
	headers := []string{"Check", "Status", "Detail"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignLeft}
	rows := make([][]string, 0, len(checks))
	for _, check := range checks {
		status := "FAIL"
		if check.Passed {
			status = "OK"
		}
		if colorize {
			if check.Passed {
				status = ansiGreen + status + ansiReset
			} else {
				status = ansiRed + status + ansiReset
			}
		}
		rows = append(rows, []string{check.Name, status, check.Detail})
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}

func printOutcome(out io.Writer, outcome *engine.Outcome) {
	fmt.Fprintf(out, "Run %s finished in %s\n", outcome.RunID, outcome.Duration.Round(time.Millisecond))
	fmt.Fprintf(out, "Applied: %d  Failed: %d  Skipped: %d  Payloads: %d\n",
		outcome.Applied, outcome.Failed, outcome.Skipped, outcome.Payloads)

	failures := outcome.Failures()
	if len(failures) == 0 {
		return
	}
	headers := []string{"Photo", "Detail", "Retries"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight}
	rows := make([][]string, 0, len(failures))
	for _, task := range failures {
		rows = append(rows, []string{task.Path, task.Detail, fmt.Sprintf("%d", task.Retries)})
	}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
}
