package loader

import (
	"github.com/pkg/errors"

	"github.com/dmitryk0z/income-predictor/pkg/data"
)

// ErrBadPercent is returned for a training share outside (0, 100).
var ErrBadPercent = errors.New("train percent must be between 0 and 100 exclusive")

// TrainTestSplit splits records into a training prefix holding
// floor(len*trainPercent/100) records and a test suffix holding the rest.
// The split is positional; records keep their input order.
func TrainTestSplit(records []data.Record, trainPercent float64) (train, test []data.Record, err error) {
	if trainPercent <= 0 || trainPercent >= 100 {
		return nil, nil, errors.Wrapf(ErrBadPercent, "got %v", trainPercent)
	}
	nTrain := SplitIndex(len(records), trainPercent)
	return records[:nTrain:nTrain], records[nTrain:], nil
}

// SplitIndex returns the position of the first test record.
func SplitIndex(n int, trainPercent float64) int {
	return int(float64(n) * trainPercent / 100)
}
