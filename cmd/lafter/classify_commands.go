package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lafter/internal/classifier"
	"lafter/internal/label"
	"lafter/internal/titlellm"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify TITLE...",
		Short: "Classify titles with the rule/model classifier",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cls, err := ctx.loadClassifier()
			if err != nil {
				return err
			}
			results := cls.ClassifyBatch(args)
			if asJSON {
				return writeJSON(cmd, results)
			}
			colorize := shouldColorize(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), renderTable(
				[]column{titleCol("Title"), titleCol("Normalized"), rightCol("Probability"), leftCol("Label")},
				buildClassifyRows(results, colorize),
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit results as JSON")
	return cmd
}

func buildClassifyRows(results []classifier.Result, colorize bool) [][]string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		rows = append(rows, []string{
			result.Title,
			result.NormalizedTitle,
			strconv.FormatFloat(result.Probability, 'f', 4, 64),
			labelText(result.Label, colorize),
		})
	}
	return rows
}

func labelText(l label.Label, colorize bool) string {
	text := l.String()
	if !colorize {
		return text
	}
	if l == label.Comedy {
		return ansiGreen + text + ansiReset
	}
	return ansiYellow + text + ansiReset
}

func newClassifyLLMCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify-llm TITLE",
		Short: "Classify a title with the LLM adapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := ctx.loadLLM()
			if err != nil {
				return err
			}
			if !adapter.Enabled() {
				return errLLMUnconfigured
			}
			verdict, err := adapter.Classify(cmd.Context(), args[0])
			if err != nil {
				var parseErr *titlellm.ParseError
				if errors.As(err, &parseErr) && strings.TrimSpace(parseErr.Raw) != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "raw reply: %s\n", parseErr.Raw)
				}
				return err
			}
			if asJSON {
				return writeJSON(cmd, verdict)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Title: %s\n", verdict.Title)
			fmt.Fprintf(out, "Label: %s (%d)\n", labelText(verdict.Label, shouldColorize(out)), int(verdict.Label))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the verdict as JSON")
	return cmd
}
