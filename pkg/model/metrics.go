package model

import (
	"math"

	"github.com/pkg/errors"

	"github.com/dmitryk0z/income-predictor/pkg/data"
)

// ErrEmptyTestSet is returned by Evaluate when there is nothing to score.
var ErrEmptyTestSet = errors.New("empty test set")

// Confusion is a binary confusion matrix with >50K as the positive class.
type Confusion struct {
	TP, FP, FN, TN int
}

func (c *Confusion) add(truth, pred data.Label) {
	switch {
	case pred == data.Above50K && truth == data.Above50K:
		c.TP++
	case pred == data.Above50K:
		c.FP++
	case truth == data.Above50K:
		c.FN++
	default:
		c.TN++
	}
}

// PrecisionRecallF1 returns the usual scores, zero where undefined.
func (c Confusion) PrecisionRecallF1() (prec, rec, f1 float64) {
	if c.TP+c.FP > 0 {
		prec = float64(c.TP) / float64(c.TP+c.FP)
	}
	if c.TP+c.FN > 0 {
		rec = float64(c.TP) / float64(c.TP+c.FN)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}

// Report is the outcome of scoring a test set.
type Report struct {
	Total     int
	Correct   int
	Incorrect int
	Accuracy  float64 // percent, two decimals
	Confusion Confusion
}

// Evaluate predicts every record and compares against its label.
func Evaluate(p Predictor, records []data.Record) (Report, error) {
	if len(records) == 0 {
		return Report{}, ErrEmptyTestSet
	}
	rep := Report{Total: len(records)}
	for _, r := range records {
		pred := p.Predict(r)
		rep.Confusion.add(r.Label, pred)
		if pred != r.Label {
			rep.Incorrect++
		}
	}
	rep.Correct = rep.Total - rep.Incorrect
	rep.Accuracy = Accuracy(rep.Incorrect, rep.Total)
	return rep, nil
}

// Accuracy is the share of correct predictions in percent, rounded to two
// decimal places. total must be positive.
func Accuracy(incorrect, total int) float64 {
	pct := math.Abs(float64(incorrect)/float64(total)*100 - 100)
	return math.Round(pct*100) / 100
}
