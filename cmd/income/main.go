package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dmitryk0z/income-predictor/pkg/config"
	"github.com/dmitryk0z/income-predictor/pkg/pipeline"
)

var (
	// Global flags
	configPath   string
	dataURL      string
	dataFile     string
	trainPercent float64
	verbose      bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "income",
	Short: "Predict whether a census record earns more than $50K a year",
	Long: `income builds a midpoint/sentiment classifier from the UCI Adult data set
and reports how well it predicts the income band of held-out records.

The data set is split positionally: the first train-percent of the cleaned
records trains the classifier, the rest is used for scoring.

Run without a subcommand to evaluate.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if lvl, err := zapcore.ParseLevel(cfg.Logging.Level); err == nil && cfg.Logging.Level != "" {
			zcfg.Level = zap.NewAtomicLevelAt(lvl)
		}
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runEvaluate,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "income.yaml", "Path to YAML configuration")
	rootCmd.PersistentFlags().StringVar(&dataURL, "url", "", "Data set URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "file", "f", "", "Local data set file (overrides config and --url)")
	rootCmd.PersistentFlags().Float64VarP(&trainPercent, "percent", "p", 0, "Share of records used for training, in percent (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(evaluateCmd, inspectCmd, chartCmd, cleanCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("url") {
		c.Source.URL = dataURL
		c.Source.Path = ""
	}
	if flags.Changed("file") {
		c.Source.Path = dataFile
	}
	if flags.Changed("percent") {
		c.Split.TrainPercent = trainPercent
	}
	return c, nil
}

func newPipeline() (*pipeline.Pipeline, error) {
	return pipeline.New(cfg, pipeline.WithLogger(logger))
}

func printError(w io.Writer, err error) {
	bar := strings.Repeat("=", 50)
	fmt.Fprintf(w, "%s\nSomething bad happened.\n%v\n%s\n", bar, err, bar)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
