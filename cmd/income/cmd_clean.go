package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/dataprep"
)

var (
	cleanOut     string
	cleanPreview int
)

// cleanCmd writes the cleaned records of a local data file as CSV
var cleanCmd = &cobra.Command{
	Use:   "clean [input]",
	Short: "Clean a raw data file into the 5 numeric / 6 categorical layout",
	Long: `Reads a raw Adult data file (or stdin when input is "-"), drops incomplete
and malformed rows and the unused columns, and writes the result as CSV with
a header row.

Example:
  income clean adult.data --out adult.clean.csv
  income clean adult.data --preview 5`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanOut, "out", "o", "", "Write CSV here instead of stdout")
	cleanCmd.Flags().IntVar(&cleanPreview, "preview", 0, "Only print the first N records")
}

func runClean(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("error opening data file: %w", err)
		}
		defer f.Close()
		in = f
	}

	res, err := dataprep.CleanReader(in,
		dataprep.WithMissingMarker(cfg.Cleaning.MissingMarker),
		dataprep.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("Records cleaned",
		zap.Int("records", len(res.Records)),
		zap.Int("incomplete", res.Stats.Incomplete),
		zap.Int("rejected", res.Stats.Rejected))

	out := cmd.OutOrStdout()
	if cleanOut != "" {
		f, err := os.Create(cleanOut)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	records := res.Records
	if cleanPreview > 0 && cleanPreview < len(records) {
		records = records[:cleanPreview]
	}
	return writeRecords(out, records)
}

func writeRecords(w io.Writer, records []data.Record) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(data.Census.Attributes)+1)
	for _, a := range data.Census.Attributes {
		header = append(header, a.Name)
	}
	header = append(header, "income")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	for _, r := range records {
		row := append(r.Values(), r.Label.String())
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
