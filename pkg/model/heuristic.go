package model

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/dmitryk0z/income-predictor/pkg/data"
	"github.com/dmitryk0z/income-predictor/pkg/stats"
)

// ErrInsufficientData is returned when a class has no samples for some lane,
// which would otherwise leave a mean undefined.
var ErrInsufficientData = errors.New("insufficient training data")

// LaneStats summarizes one numeric lane of the training set.
type LaneStats struct {
	Name         string
	PositiveMean float64 // mean over >50K records
	NegativeMean float64 // mean over <=50K records
	Threshold    float64
	Min, Max     float64 // over all training records
}

// Classifier is the midpoint/sentiment heuristic. It is immutable once built.
type Classifier struct {
	thresholds [data.NumNumeric]float64
	lanes      [data.NumNumeric]LaneStats
	sentiment  map[string]Sentiment
	values     []string // distinct categorical values, first occurrence first
}

// New returns a classifier from precomputed parts. Lane statistics other than
// the threshold are left zero. A map has no first-occurrence order, so Values
// lists the sentiment keys sorted.
func New(thresholds [data.NumNumeric]float64, sentiment map[string]Sentiment) *Classifier {
	c := &Classifier{thresholds: thresholds, sentiment: make(map[string]Sentiment, len(sentiment))}
	for v, s := range sentiment {
		c.sentiment[v] = s
		c.values = append(c.values, v)
	}
	sort.Strings(c.values)
	for i := range c.lanes {
		c.lanes[i] = LaneStats{Name: data.Census.NumericName(i), Threshold: thresholds[i]}
	}
	return c
}

// Build computes a classifier from labeled training records.
//
// Every numeric lane gets the midpoint between its mean over >50K records and
// its mean over <=50K records. Every categorical value is Positive when it
// occurs more often per >50K record than per <=50K record, Negative when less
// often and Neutral otherwise. Occurrences are counted across all categorical
// lanes of a class.
func Build(records []data.Record) (*Classifier, error) {
	if len(records) == 0 {
		return nil, errors.Wrap(ErrInsufficientData, "empty training set")
	}

	var (
		numeric [data.NumNumeric][2][]float64
		perRec  [2]int
		counts  = map[string]*[2]int{}
		order   []string
	)

	for _, r := range records {
		c := class(r.Label)
		perRec[c]++
		for lane, v := range r.Numeric {
			numeric[lane][c] = append(numeric[lane][c], float64(v))
		}
		for _, v := range r.Categorical {
			n, ok := counts[v]
			if !ok {
				n = new([2]int)
				counts[v] = n
				order = append(order, v)
			}
			n[c]++
		}
	}

	cl := &Classifier{sentiment: make(map[string]Sentiment, len(order)), values: order}

	for lane := range numeric {
		name := data.Census.NumericName(lane)
		neg, pos := numeric[lane][0], numeric[lane][1]
		if len(pos) == 0 || len(neg) == 0 {
			return nil, errors.Wrapf(ErrInsufficientData, "attribute lane %d (%s): %d >50K and %d <=50K samples",
				lane, name, len(pos), len(neg))
		}
		st := LaneStats{
			Name:         name,
			PositiveMean: stats.Mean(pos),
			NegativeMean: stats.Mean(neg),
		}
		st.Threshold = stats.Midpoint(st.PositiveMean, st.NegativeMean)
		loN, hiN := stats.MinMax(neg)
		loP, hiP := stats.MinMax(pos)
		st.Min, st.Max = min(loN, loP), max(hiN, hiP)

		cl.lanes[lane] = st
		cl.thresholds[lane] = st.Threshold
	}

	for _, v := range order {
		n := counts[v]
		posRate := stats.Ratio(n[1], perRec[1])
		negRate := stats.Ratio(n[0], perRec[0])
		switch {
		case posRate > negRate:
			cl.sentiment[v] = Positive
		case posRate < negRate:
			cl.sentiment[v] = Negative
		default:
			cl.sentiment[v] = Neutral
		}
	}

	return cl, nil
}

// Thresholds returns the midpoint of every numeric lane.
func (c *Classifier) Thresholds() [data.NumNumeric]float64 { return c.thresholds }

// Lanes returns the per lane training statistics.
func (c *Classifier) Lanes() [data.NumNumeric]LaneStats { return c.lanes }

// Sentiment reports the sentiment of a categorical value. Unknown values are Neutral.
func (c *Classifier) Sentiment(v string) (Sentiment, bool) {
	s, ok := c.sentiment[v]
	return s, ok
}

// SentimentTable returns a copy of the sentiment table.
func (c *Classifier) SentimentTable() map[string]Sentiment {
	out := make(map[string]Sentiment, len(c.sentiment))
	for k, v := range c.sentiment {
		out[k] = v
	}
	return out
}

// Values lists the categorical values seen in training.
func (c *Classifier) Values() []string {
	return append([]string(nil), c.values...)
}

// Votes counts the Positive and Negative votes r collects. Numeric values
// strictly above their lane threshold vote Positive, all others Negative.
// Neutral and unseen categorical values abstain.
func (c *Classifier) Votes(r data.Record) (pos, neg int) {
	for lane, v := range r.Numeric {
		if float64(v) > c.thresholds[lane] {
			pos++
		} else {
			neg++
		}
	}
	for _, v := range r.Categorical {
		switch c.sentiment[v] {
		case Positive:
			pos++
		case Negative:
			neg++
		}
	}
	return pos, neg
}

// Predict implements Predictor. Ties go to <=50K.
func (c *Classifier) Predict(r data.Record) data.Label {
	if pos, neg := c.Votes(r); pos > neg {
		return data.Above50K
	}
	return data.AtMost50K
}
