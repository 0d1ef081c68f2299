package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lafter/internal/config"
	"lafter/internal/predict"
)

func newPredictCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var outputDir string

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score a titles CSV and write prediction CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(inputPath) == "" {
				return errors.New("--input is required")
			}
			input, err := config.ExpandPath(strings.TrimSpace(inputPath))
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			dir := strings.TrimSpace(outputDir)
			if dir == "" {
				dir = "."
			}
			if dir, err = config.ExpandPath(dir); err != nil {
				return fmt.Errorf("resolve output directory: %w", err)
			}

			cls, err := ctx.loadClassifier()
			if err != nil {
				return err
			}
			outputs := predict.DefaultOutputs(dir)
			counts, err := predict.Run(cls, input, outputs)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scored %d titles (threshold %.2f)\n", counts.Total, counts.Threshold)
			fmt.Fprint(out, renderTable(
				[]column{leftCol("File"), rightCol("Rows")},
				[][]string{
					{outputs.All, fmt.Sprint(counts.Total)},
					{outputs.Positive, fmt.Sprint(counts.Positive)},
					{outputs.Negative, fmt.Sprint(counts.Negative)},
				},
			))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV with a title column")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for prediction CSVs (default: current directory)")
	return cmd
}
