package pipeline

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dmitryk0z/income-predictor/pkg/config"
	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/dataprep"
	"github.com/dmitryk0z/income-predictor/pkg/loader"
	"github.com/dmitryk0z/income-predictor/pkg/model"
)

// Result is everything one run produces.
type Result struct {
	RunID      string
	Clean      dataprep.Stats
	TrainSize  int
	TestSize   int
	Classifier *model.Classifier
	Report     model.Report
}

// Pipeline runs fetch, clean, split, build and evaluate in order.
type Pipeline struct {
	cfg    *config.Config
	source data.Source
	logger *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSource overrides the source derived from the configuration.
func WithSource(s data.Source) Option { return func(p *Pipeline) { p.source = s } }

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option { return func(p *Pipeline) { p.logger = l } }

// New validates cfg and returns a pipeline for it.
func New(cfg *config.Config, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{cfg: cfg, logger: zap.NewNop()}
	for _, o := range opts {
		o(p)
	}
	if p.source == nil {
		p.source = NewSource(cfg, p.logger)
	}
	return p, nil
}

// NewSource picks a file source when a path is configured, HTTP otherwise.
func NewSource(cfg *config.Config, logger *zap.Logger) data.Source {
	if cfg.Source.Path != "" {
		return data.FileSource{Path: cfg.Source.Path}
	}
	return data.NewHTTPSource(cfg.Source.URL, cfg.Source.AllowedContentTypes, http.DefaultClient, logger)
}

// Train runs every stage but evaluation. The returned Result has an empty Report.
func (p *Pipeline) Train(ctx context.Context) (*Result, []data.Record, error) {
	res := &Result{RunID: uuid.NewString()}
	log := p.logger.With(zap.String("run_id", res.RunID))

	timeout, err := p.cfg.FetchTimeout()
	if err != nil {
		return nil, nil, err
	}
	fetchCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	raw, err := p.source.Fetch(fetchCtx)
	if err != nil {
		return nil, nil, err
	}
	log.Info("Data set acquired", zap.Int("bytes", len(raw)))

	cleaned := dataprep.Clean(raw,
		dataprep.WithMissingMarker(p.cfg.Cleaning.MissingMarker),
		dataprep.WithLogger(log))
	res.Clean = cleaned.Stats
	log.Info("Records cleaned",
		zap.Int("records", len(cleaned.Records)),
		zap.Int("incomplete", cleaned.Stats.Incomplete),
		zap.Int("rejected", cleaned.Stats.Rejected))

	train, test, err := loader.TrainTestSplit(cleaned.Records, p.cfg.Split.TrainPercent)
	if err != nil {
		return nil, nil, err
	}
	res.TrainSize, res.TestSize = len(train), len(test)
	log.Info("Data set split",
		zap.Float64("train_percent", p.cfg.Split.TrainPercent),
		zap.Int("train", len(train)),
		zap.Int("test", len(test)))

	res.Classifier, err = model.Build(train)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build classifier")
	}
	log.Debug("Classifier built",
		zap.Float64s("thresholds", thresholds(res.Classifier)),
		zap.Int("categorical_values", len(res.Classifier.Values())))

	return res, test, nil
}

// Run executes the whole pipeline and scores the test split.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res, test, err := p.Train(ctx)
	if err != nil {
		return nil, err
	}

	res.Report, err = model.Evaluate(res.Classifier, test)
	if err != nil {
		return nil, errors.Wrap(err, "evaluate classifier")
	}
	p.logger.Info("Classifier evaluated",
		zap.String("run_id", res.RunID),
		zap.Int("total", res.Report.Total),
		zap.Int("incorrect", res.Report.Incorrect),
		zap.Float64("accuracy", res.Report.Accuracy))
	return res, nil
}

func thresholds(c *model.Classifier) []float64 {
	th := c.Thresholds()
	return th[:]
}
