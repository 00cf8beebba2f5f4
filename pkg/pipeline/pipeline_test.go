package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dmitryk0z/income-predictor/pkg/config"
	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/model"
)

var rows = []string{
	"52, Self-emp-not-inc, 209642, HS-grad, 9, Married-civ-spouse, Exec-managerial, Husband, White, Male, 0, 0, 45, United-States, >50K",
	"39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K",
	"54, ?, 180211, Some-college, 10, Married-civ-spouse, ?, Husband, Asian-Pac-Islander, Male, 0, 0, 60, South, >50K",
	"31, Private, 45781, Masters, 14, Never-married, Prof-specialty, Not-in-family, White, Female, 14084, 0, 50, United-States, >50K",
	"28, Private, 338409, Bachelors, 13, Married-civ-spouse, Prof-specialty, Wife, Black, Female, 0, 0, 40, Cuba, <=50K",
	"broken",
	"37, Private, 284582, Masters, 14, Married-civ-spouse, Exec-managerial, Wife, White, Female, 0, 0, 40, United-States, <=50K",
	"42, Private, 159449, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 5178, 0, 40, United-States, >50K",
	"23, Private, 122272, Bachelors, 13, Never-married, Adm-clerical, Own-child, White, Female, 0, 0, 30, United-States, <=50K",
	"40, Private, 121772, Assoc-voc, 11, Married-civ-spouse, Craft-repair, Husband, Asian-Pac-Islander, Male, 0, 0, 40, ?, >50K",
	"19, Private, 168294, HS-grad, 9, Never-married, Craft-repair, Own-child, White, Male, 0, 0, 40, United-States, <=50K",
	"45, Private, 386940, Bachelors, 13, Divorced, Exec-managerial, Own-child, White, Male, 0, 1408, 40, United-States, <=50K",
}

func newPipeline(t *testing.T, raw string, opts ...Option) *Pipeline {
	t.Helper()
	p, err := New(config.DefaultConfig(), append([]Option{WithSource(data.StringSource(raw))}, opts...)...)
	require.NoError(t, err)
	return p
}

func TestPipeline_Run(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := newPipeline(t, strings.Join(rows, "\n"), WithLogger(zap.New(core)))

	res, err := p.Run(context.Background())
	require.NoError(t, err)

	// 12 lines, 2 incomplete, 1 malformed, 9 records: 6 train, 3 test
	assert.Equal(t, 2, res.Clean.Incomplete)
	assert.Equal(t, 1, res.Clean.Rejected)
	assert.Equal(t, 6, res.TrainSize)
	assert.Equal(t, 3, res.TestSize)
	assert.Equal(t, 3, res.Report.Total)
	assert.Equal(t, res.Report.Total, res.Report.Correct+res.Report.Incorrect)
	assert.GreaterOrEqual(t, res.Report.Accuracy, 0.0)
	assert.LessOrEqual(t, res.Report.Accuracy, 100.0)
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, 1, logs.FilterMessage("Record rejected").Len())
	for _, e := range logs.FilterMessage("Classifier evaluated").AllUntimed() {
		assert.Equal(t, res.RunID, e.ContextMap()["run_id"])
	}
}

func TestPipeline_MatchesStages(t *testing.T) {
	p := newPipeline(t, strings.Join(rows, "\n"))

	res, test, err := p.Train(context.Background())
	require.NoError(t, err)
	require.Len(t, test, 3)

	want, err := model.Evaluate(res.Classifier, test)
	require.NoError(t, err)
	got, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got.Report)
	assert.Equal(t, res.Classifier.Thresholds(), got.Classifier.Thresholds())
}

func TestPipeline_DegenerateTraining(t *testing.T) {
	// 1 record: the 75% prefix is empty.
	p := newPipeline(t, rows[0])
	_, err := p.Run(context.Background())
	assert.True(t, errors.Is(err, model.ErrInsufficientData), "got %v", err)

	cfg := config.DefaultConfig()
	cfg.Split.TrainPercent = 99
	p, err = New(cfg, WithSource(data.StringSource(strings.Join([]string{rows[0], rows[1]}, "\n"))))
	require.NoError(t, err)
	_, err = p.Run(context.Background())
	assert.True(t, errors.Is(err, model.ErrInsufficientData), "got %v", err)
}

func TestPipeline_HighTrainPercent(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Split.TrainPercent = 99
	// 4 records at 99%: 3 train, 1 test.
	raw := strings.Join([]string{rows[0], rows[1], rows[3], rows[4]}, "\n")
	p, err := New(cfg, WithSource(data.StringSource(raw)))
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.TrainSize)
	assert.Equal(t, 1, res.TestSize)
}

func TestPipeline_AcquisitionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte(strings.Join(rows, "\n")))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Source.URL = srv.URL
	p, err := New(cfg)
	require.NoError(t, err)

	_, err = p.Run(context.Background())
	assert.True(t, errors.Is(err, data.ErrAcquisition))
	assert.True(t, errors.Is(err, data.ErrContentType))
}

func TestPipeline_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-httpd-php")
		_, _ = w.Write([]byte(strings.Join(rows, "\n")))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Source.URL = srv.URL
	p, err := New(cfg)
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Report.Total)
}

func TestPipeline_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adult.data")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(rows, "\n")), 0o644))

	cfg := config.DefaultConfig()
	cfg.Source.Path = path
	p, err := New(cfg)
	require.NoError(t, err)

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, res.TrainSize)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Split.TrainPercent = 0
	_, err := New(cfg)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestPipeline_TimeoutChangedAfterNew(t *testing.T) {
	cfg := config.DefaultConfig()
	p, err := New(cfg, WithSource(data.StringSource(strings.Join(rows, "\n"))))
	require.NoError(t, err)

	cfg.Source.Timeout = "soon"
	_, err = p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}
