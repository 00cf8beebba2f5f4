package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitryk0z/income-predictor/pkg/report"
)

var chartOut string

// chartCmd renders the numeric thresholds
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render class means and thresholds of the numeric attributes",
	Long: `Builds the classifier and draws a grouped bar chart of the >50K mean, the
<=50K mean and the threshold of every numeric attribute. The image format
follows the extension of --out (png, svg, pdf, ...).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		res, _, err := p.Train(cmd.Context())
		if err != nil {
			return err
		}
		if err := report.SaveThresholdChart(chartOut, res.Classifier); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved threshold chart to %s\n", chartOut)
		return nil
	},
}

func init() {
	chartCmd.Flags().StringVarP(&chartOut, "out", "o", "thresholds.png", "Output image path")
	chartCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(chartOut) == "" {
			return fmt.Errorf("--out must not be empty")
		}
		return nil
	}
}
