package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmitryk0z/income-predictor/pkg/report"
)

var showDetail bool

// evaluateCmd runs the full pipeline and prints the accuracy summary
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Train on the training split and score the test split",
	Long: `Fetches the data set, cleans it, splits it, builds the classifier from the
training split and scores every test record.

Example:
  income evaluate --file adult.data --percent 80`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().BoolVar(&showDetail, "detail", false, "Also print the confusion matrix")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}

	res, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("Run finished",
		zap.String("run_id", res.RunID),
		zap.Int("discarded", res.Clean.Discarded()))

	out := cmd.OutOrStdout()
	if err := report.Summary(out, res.Report); err != nil {
		return err
	}
	if showDetail {
		return report.Detail(out, res.Report)
	}
	return nil
}
