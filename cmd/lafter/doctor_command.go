package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lafter/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check model, keyword table, directories, queue, and LLM access",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			failed := preflight.Failed(results)

			if asJSON {
				if err := writeJSON(cmd, results); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, result := range results {
					fmt.Fprintln(out, renderStatusLine(result.Name, result.Passed, result.Detail, colorize))
				}
				if !cfg.LLMEnabled() {
					fmt.Fprintln(out, renderStatusLine("Title LLM", true, "skipped (no API key)", colorize))
				}
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit check results as JSON")
	return cmd
}
