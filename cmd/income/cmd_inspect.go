package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitryk0z/income-predictor/pkg/report"
)

// inspectCmd prints the classifier built from the training split
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the thresholds and sentiment table as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		res, _, err := p.Train(cmd.Context())
		if err != nil {
			return err
		}
		return report.Classifier(cmd.OutOrStdout(), res.Classifier)
	},
}
