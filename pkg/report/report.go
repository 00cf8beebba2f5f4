// Package report renders pipeline results for people: the one line summary,
// a YAML dump of the classifier and a chart of the numeric thresholds.
package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/model"
)

// Summary writes the accuracy line for a test run.
func Summary(w io.Writer, r model.Report) error {
	_, err := fmt.Fprintf(w,
		"TOTAL RECORDS (TEST DATASET): %d | CORRECT CLASSIFICATIONS: %d | INCORRECT CLASSIFICATIONS: %d | ACCURACY SCORE: %.2f %%\n",
		r.Total, r.Correct, r.Incorrect, r.Accuracy)
	return err
}

// Detail writes the confusion matrix and derived scores.
func Detail(w io.Writer, r model.Report) error {
	prec, rec, f1 := r.Confusion.PrecisionRecallF1()
	c := r.Confusion
	_, err := fmt.Fprintf(w,
		"TP: %d | FP: %d | FN: %d | TN: %d | PRECISION: %.4f | RECALL: %.4f | F1: %.4f\n",
		c.TP, c.FP, c.FN, c.TN, prec, rec, f1)
	return err
}

type laneDump struct {
	Attribute    string  `yaml:"attribute"`
	Threshold    float64 `yaml:"threshold"`
	PositiveMean float64 `yaml:"positive_mean"`
	NegativeMean float64 `yaml:"negative_mean"`
	Min          float64 `yaml:"min"`
	Max          float64 `yaml:"max"`
}

type sentimentDump struct {
	Value     string          `yaml:"value"`
	Sentiment model.Sentiment `yaml:"sentiment"`
}

type classifierDump struct {
	Schema     map[string][]string `yaml:"schema"`
	Thresholds []laneDump          `yaml:"thresholds"`
	Sentiment  []sentimentDump     `yaml:"sentiment"`
}

// Classifier writes thresholds and the sentiment table as YAML. Sentiment
// entries keep the order in which values were first seen during training.
func Classifier(w io.Writer, c *model.Classifier) error {
	d := classifierDump{Schema: schemaDump(data.Census)}
	for _, l := range c.Lanes() {
		d.Thresholds = append(d.Thresholds, laneDump{
			Attribute:    l.Name,
			Threshold:    l.Threshold,
			PositiveMean: l.PositiveMean,
			NegativeMean: l.NegativeMean,
			Min:          l.Min,
			Max:          l.Max,
		})
	}
	for _, v := range c.Values() {
		s, _ := c.Sentiment(v)
		d.Sentiment = append(d.Sentiment, sentimentDump{Value: v, Sentiment: s})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

// schemaDump lists the attribute names of every lane, keyed by kind.
func schemaDump(s data.Schema) map[string][]string {
	out := map[string][]string{}
	for i := 0; i < data.NumNumeric; i++ {
		out[data.Numeric.String()] = append(out[data.Numeric.String()], s.NumericName(i))
	}
	for i := 0; i < data.NumCategorical; i++ {
		out[data.Categorical.String()] = append(out[data.Categorical.String()], s.CategoricalName(i))
	}
	return out
}
