package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lafter/internal/config"
	"lafter/internal/dataset"
)

func newDatasetCommand(ctx *commandContext) *cobra.Command {
	datasetCmd := &cobra.Command{
		Use:   "dataset",
		Short: "Training dataset utilities",
	}
	datasetCmd.AddCommand(newDatasetBuildCommand())
	return datasetCmd
}

func newDatasetBuildCommand() *cobra.Command {
	var dir string
	var opts dataset.BuildOptions

	cmd := &cobra.Command{
		Use:         "build",
		Short:       "Build labeled and unlabeled title CSVs from D1 exports",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			base := strings.TrimSpace(dir)
			if base == "" {
				base = "."
			}
			base, err := config.ExpandPath(base)
			if err != nil {
				return fmt.Errorf("resolve dataset directory: %w", err)
			}
			resolved := dataset.DefaultBuildOptions(base)
			override(&resolved.ComedyExport, opts.ComedyExport)
			override(&resolved.OtherExport, opts.OtherExport)
			override(&resolved.PendingExport, opts.PendingExport)
			override(&resolved.LabeledOutput, opts.LabeledOutput)
			override(&resolved.UnlabeledOutput, opts.UnlabeledOutput)

			result, err := dataset.Build(resolved)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %d labeled titles to %s\n", result.Labeled, resolved.LabeledOutput)
			if result.PendingSkipped {
				fmt.Fprintf(out, "Pending export %s not found; unlabeled CSV skipped\n", resolved.PendingExport)
			} else {
				fmt.Fprintf(out, "Wrote %d unlabeled titles to %s\n", result.Unlabeled, resolved.UnlabeledOutput)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory holding the exports and receiving the CSVs")
	cmd.Flags().StringVar(&opts.ComedyExport, "comedy", "", "Export of approved (comedy) videos")
	cmd.Flags().StringVar(&opts.OtherExport, "other", "", "Export of rejected videos")
	cmd.Flags().StringVar(&opts.PendingExport, "pending", "", "Export of pending videos")
	cmd.Flags().StringVar(&opts.LabeledOutput, "labeled-out", "", "Labeled CSV destination")
	cmd.Flags().StringVar(&opts.UnlabeledOutput, "unlabeled-out", "", "Unlabeled CSV destination")
	return cmd
}

func override(target *string, value string) {
	if v := strings.TrimSpace(value); v != "" {
		*target = v
	}
}
