package dataprep

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dmitryk0z/income-predictor/pkg/data"
)

// MissingMarker is the token the Adult data set uses for an unrecorded value.
const MissingMarker = "?"

// ErrMalformed marks a record that cannot be mapped onto the census schema.
var ErrMalformed = errors.New("malformed record")

// Stats counts what the cleaner threw away.
type Stats struct {
	Lines      int // lines inspected, leading and trailing blank lines excluded
	Incomplete int // records with a missing-value marker, dropped silently
	Rejected   int // malformed records, dropped with a diagnostic
}

// Discarded is the total number of lines that produced no record.
func (s Stats) Discarded() int { return s.Incomplete + s.Rejected }

// Result is the output of a cleaning pass.
type Result struct {
	Records []data.Record
	Stats   Stats
}

type cleaner struct {
	marker string
	logger *zap.Logger
}

// Option configures Clean and CleanReader.
type Option func(*cleaner)

// WithMissingMarker replaces the "?" missing-value token.
func WithMissingMarker(m string) Option { return func(c *cleaner) { c.marker = m } }

// WithLogger sets the logger rejection diagnostics are written to.
func WithLogger(l *zap.Logger) Option { return func(c *cleaner) { c.logger = l } }

func newCleaner(opts []Option) *cleaner {
	c := &cleaner{marker: MissingMarker, logger: zap.NewNop()}
	for _, o := range opts {
		o(c)
	}
	if c.marker == "" {
		c.marker = MissingMarker
	}
	return c
}

// Clean turns raw comma separated text into census records.
//
// Spaces next to commas are removed before splitting, so "39, State-gov" and
// "39 ,State-gov" both yield the fields "39" and "State-gov". Records holding
// the missing-value marker are dropped without a diagnostic. Records that do
// not fit the schema are logged, counted and skipped. Input order is kept.
func Clean(raw string, opts ...Option) Result {
	c := newCleaner(opts)
	var res Result
	raw = strings.TrimSpace(normalizeSpacing(raw))
	if raw == "" {
		return res
	}
	for _, line := range strings.Split(raw, "\n") {
		c.line(line, &res)
	}
	return res
}

// CleanReader is Clean over a stream. Lines are normalized one at a time and
// may be of any length.
func CleanReader(r io.Reader, opts ...Option) (Result, error) {
	c := newCleaner(opts)
	var res Result
	br := bufio.NewReader(r)
	var blank int
	for {
		s, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return res, errors.Wrap(err, "read records")
		}
		if err == io.EOF && s == "" {
			break
		}
		line := normalizeSpacing(strings.TrimSuffix(s, "\n"))
		// Blank lines only count once something follows them, matching the
		// trimming Clean applies to the whole text.
		if strings.TrimSpace(line) == "" {
			blank++
			continue
		}
		if res.Stats.Lines > 0 {
			for ; blank > 0; blank-- {
				c.line("", &res)
			}
		}
		blank = 0
		c.line(line, &res)
		if err == io.EOF {
			break
		}
	}
	return res, nil
}

func normalizeSpacing(s string) string {
	return strings.NewReplacer(", ", ",", " ,", ",").Replace(s)
}

func (c *cleaner) line(line string, res *Result) {
	res.Stats.Lines++
	line = strings.TrimRight(line, "\r")
	fields := strings.Split(line, ",")

	for _, f := range fields {
		if strings.TrimSpace(f) == c.marker {
			res.Stats.Incomplete++
			return
		}
	}

	rec, err := parseRecord(fields)
	if err != nil {
		res.Stats.Rejected++
		c.logger.Warn("Record rejected",
			zap.String("record", strings.TrimSpace(fields[0])),
			zap.Error(err))
		return
	}
	res.Records = append(res.Records, rec)
}

// parseRecord maps a raw row onto the census schema, dropping fnlwgt,
// education and native-country.
func parseRecord(fields []string) (data.Record, error) {
	var rec data.Record
	if len(fields) == 1 && strings.TrimSpace(fields[0]) == "" {
		return rec, errors.Wrap(ErrMalformed, "empty record")
	}
	if len(fields) != data.RawColumns {
		return rec, errors.Wrapf(ErrMalformed, "expected %d fields, got %d", data.RawColumns, len(fields))
	}

	for _, a := range data.Census.Attributes {
		v := strings.TrimSpace(fields[a.Raw])
		if a.Kind == data.Categorical {
			rec.Categorical[a.Lane] = v
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return rec, errors.Wrapf(ErrMalformed, "%s is not an integer: %q", a.Name, v)
		}
		rec.Numeric[a.Lane] = n
	}

	label, err := data.ParseLabel(strings.TrimSpace(fields[data.LabelColumn]))
	if err != nil {
		return rec, errors.Wrap(ErrMalformed, err.Error())
	}
	rec.Label = label
	return rec, nil
}
