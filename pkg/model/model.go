package model

import "github.com/dmitryk0z/income-predictor/pkg/data"

// Predictor assigns an income band to a record.
type Predictor interface {
	Predict(r data.Record) data.Label
}

// Sentiment is the vote a categorical value casts.
type Sentiment int

const (
	Neutral Sentiment = iota
	Positive
	Negative
)

func (s Sentiment) String() string {
	switch s {
	case Positive:
		return "pos"
	case Negative:
		return "neg"
	}
	return "neutral"
}

// MarshalText lets sentiment tables encode as readable maps.
func (s Sentiment) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// class indexes per-label accumulators.
func class(l data.Label) int {
	if l == data.Above50K {
		return 1
	}
	return 0
}
