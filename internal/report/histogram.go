package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/scentesia/neuroaudio/internal/frequency"
)

// renderHistogram draws the bucket counts of a summary as a PNG bar chart
// with mean and median reference lines. Buckets come precomputed from the
// statistics engine so the chart always matches the report table, including
// the degenerate single-bucket case.
func renderHistogram(sum frequency.Summary) ([]byte, error) {
	counts := make(plotter.Values, len(sum.Buckets))
	labels := make([]string, len(sum.Buckets))
	maxCount := 0.0
	for i, b := range sum.Buckets {
		counts[i] = float64(b.Count)
		labels[i] = fmt.Sprintf("%.3g-%.3g", b.Low, b.High)
		if counts[i] > maxCount {
			maxCount = counts[i]
		}
	}

	p := plot.New()
	p.Title.Text = "Frequency Distribution"
	p.X.Label.Text = "Frequency (THz)"
	p.Y.Label.Text = "Count"
	p.X.Tick.Label.Rotation = -0.6
	p.X.Tick.Label.XAlign = -0.8

	bars, err := plotter.NewBarChart(counts, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("%w: build histogram: %v", ErrRender, err)
	}
	bars.LineStyle.Width = vg.Length(0.5)
	p.Add(bars)
	p.NominalX(labels...)

	mean, err := referenceLine(sum, sum.Mean, maxCount, color.RGBA{R: 200, A: 255})
	if err != nil {
		return nil, fmt.Errorf("%w: mean line: %v", ErrRender, err)
	}
	median, err := referenceLine(sum, sum.Median, maxCount, color.RGBA{G: 140, A: 255})
	if err != nil {
		return nil, fmt.Errorf("%w: median line: %v", ErrRender, err)
	}
	p.Add(mean, median)
	p.Legend.Add(fmt.Sprintf("Mean %.4g", sum.Mean), mean)
	p.Legend.Add(fmt.Sprintf("Median %.4g", sum.Median), median)
	p.Legend.Top = true

	w, err := p.WriterTo(7*vg.Inch, 3.5*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("%w: encode histogram: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: write histogram: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// referenceLine builds a dashed vertical line at the given frequency value,
// translated into the nominal bar-index coordinate space.
func referenceLine(sum frequency.Summary, value, height float64, col color.Color) (*plotter.Line, error) {
	x := nominalX(sum, value)
	line, err := plotter.NewLine(plotter.XYs{{X: x, Y: 0}, {X: x, Y: height}})
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = col
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	return line, nil
}

// nominalX maps a frequency value onto the bar-chart axis, where bucket i
// occupies [i-0.5, i+0.5]. A zero-width distribution sits on its one bar.
func nominalX(sum frequency.Summary, value float64) float64 {
	if sum.Max == sum.Min {
		return 0
	}
	span := sum.Max - sum.Min
	pos := (value - sum.Min) / span * float64(len(sum.Buckets))
	return pos - 0.5
}
