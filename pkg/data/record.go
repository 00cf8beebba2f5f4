package data

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Label is the income band of a record.
type Label int

const (
	AtMost50K Label = iota
	Above50K
)

func (l Label) String() string {
	if l == Above50K {
		return ">50K"
	}
	return "<=50K"
}

// ErrUnknownLabel is returned by ParseLabel for anything that is not an income band.
var ErrUnknownLabel = errors.New("unknown income label")

// ParseLabel accepts the training spelling (">50K") and the test file
// spelling with a trailing period (">50K.").
func ParseLabel(s string) (Label, error) {
	switch strings.TrimSuffix(s, ".") {
	case ">50K":
		return Above50K, nil
	case "<=50K":
		return AtMost50K, nil
	}
	return AtMost50K, errors.Wrapf(ErrUnknownLabel, "%q", s)
}

// Record is one cleaned row of the census data set.
type Record struct {
	Numeric     [NumNumeric]int
	Categorical [NumCategorical]string
	Label       Label
}

// Values returns the attribute values in schema order, label excluded.
func (r Record) Values() []string {
	out := make([]string, 0, len(Census.Attributes))
	for _, a := range Census.Attributes {
		if a.Kind == Numeric {
			out = append(out, strconv.Itoa(r.Numeric[a.Lane]))
		} else {
			out = append(out, r.Categorical[a.Lane])
		}
	}
	return out
}
