package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lafter/internal/batch"
	"lafter/internal/preflight"
	"lafter/internal/queue"
)

type batchFlags struct {
	limit      int
	asJSON     bool
	skipChecks bool
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Run classification passes over the queue",
	}

	batchCmd.AddCommand(newBatchPassCommand(ctx, "model",
		"Classify pending videos with the rule/model classifier",
		func(ctx context.Context, r *batch.Runner, limit int) (batch.Summary, error) {
			return r.RunModel(ctx, limit)
		}))
	batchCmd.AddCommand(newBatchPassCommand(ctx, "llm",
		"Re-check model-rejected videos with the LLM",
		func(ctx context.Context, r *batch.Runner, limit int) (batch.Summary, error) {
			return r.RunLLM(ctx, limit)
		}))

	return batchCmd
}

type batchPass func(context.Context, *batch.Runner, int) (batch.Summary, error)

func newBatchPassCommand(ctx *commandContext, name, short string, pass batchPass) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !flags.skipChecks {
				if err := requireChecks(cfg.Classifier.ModelPath, cfg.Classifier.KeywordsPath); err != nil {
					return err
				}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cls, err := ctx.loadClassifier()
			if err != nil {
				return err
			}
			adapter, err := ctx.loadLLM()
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *queue.Store) error {
				runner, err := batch.NewRunner(cfg, store, cls, batch.WithLLM(adapter), batch.WithLogger(logger))
				if err != nil {
					return err
				}
				summary, err := pass(cmd.Context(), runner, flags.limit)
				if err != nil {
					return err
				}
				if flags.asJSON {
					return writeJSON(cmd, summary)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]column{leftCol("Run"), leftCol("Pass"), rightCol("Processed"), rightCol("Comedy"), rightCol("Other"), rightCol("Parse failures"), rightCol("Transport failures")},
					[][]string{{
						summary.RunID,
						summary.Pass,
						fmt.Sprint(summary.Processed),
						fmt.Sprint(summary.Comedy),
						fmt.Sprint(summary.Other),
						fmt.Sprint(summary.ParseFailures),
						fmt.Sprint(summary.TransportFailures),
					}},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&flags.limit, "limit", "n", 0, "Maximum videos to process (capped by batch.max_items)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Emit the run summary as JSON")
	cmd.Flags().BoolVar(&flags.skipChecks, "skip-checks", false, "Skip the model and keyword preflight checks")
	return cmd
}

// requireChecks fails fast when the classifier inputs are unusable.
func requireChecks(modelPath, keywordsPath string) error {
	failed := preflight.Failed([]preflight.Result{
		preflight.CheckModel(modelPath),
		preflight.CheckKeywords(keywordsPath),
	})
	if len(failed) == 0 {
		return nil
	}
	details := make([]string, 0, len(failed))
	for _, result := range failed {
		details = append(details, fmt.Sprintf("%s: %s", result.Name, result.Detail))
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
}
