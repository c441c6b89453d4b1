package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"filmtag/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the environment before a tagging run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			checks := preflight.RunAll(cmd.Context(), cfg)
			if jsonFlag {
				return writeJSON(cmd, checks)
			}

			printChecks(cmd.OutOrStdout(), checks)
			if !preflight.Passed(checks) {
				return fmt.Errorf("preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit check results as JSON")
	return cmd
}
