package report

import (
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/dmitryk0z/income-predictor/pkg/model"
)

// ThresholdChart builds a grouped bar chart with the >50K mean, the <=50K
// mean and the midpoint threshold of every numeric lane.
func ThresholdChart(c *model.Classifier) (*plot.Plot, error) {
	lanes := c.Lanes()
	names := make([]string, len(lanes))
	pos := make(plotter.Values, len(lanes))
	neg := make(plotter.Values, len(lanes))
	mid := make(plotter.Values, len(lanes))
	for i, l := range lanes {
		names[i] = l.Name
		pos[i] = l.PositiveMean
		neg[i] = l.NegativeMean
		mid[i] = l.Threshold
	}

	p := plot.New()
	p.Title.Text = "Numeric attribute thresholds"
	p.Y.Label.Text = "Value"

	w := vg.Points(14)
	series := []struct {
		label  string
		values plotter.Values
	}{
		{">50K mean", pos},
		{"<=50K mean", neg},
		{"threshold", mid},
	}
	for i, s := range series {
		bars, err := plotter.NewBarChart(s.values, w)
		if err != nil {
			return nil, errors.Wrapf(err, "bar chart %q", s.label)
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = w * vg.Length(i-1)
		p.Add(bars)
		p.Legend.Add(s.label, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)
	return p, nil
}

// WriteThresholdChart renders the chart in the given format ("png", "svg", ...).
func WriteThresholdChart(out io.Writer, c *model.Classifier, format string) error {
	p, err := ThresholdChart(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return errors.Wrap(err, "render chart")
	}
	_, err = wt.WriteTo(out)
	return err
}

// SaveThresholdChart writes the chart to path; the format follows the extension.
func SaveThresholdChart(path string, c *model.Classifier) error {
	p, err := ThresholdChart(c)
	if err != nil {
		return err
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
