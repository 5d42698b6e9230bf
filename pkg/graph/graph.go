package graph

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/eth-easl/complexitygraph/pkg/common"
	"github.com/eth-easl/complexitygraph/pkg/fit"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

const (
	DefaultWidth  = 9 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

var bandColor = color.NRGBA{R: 31, G: 119, B: 180, A: 26}

// PlotComplexity draws the median time per input size with its 25-75
// percentile band. With referenceCurves set, every fitted candidate is
// overlaid, more opaque and thicker the higher its score.
func PlotComplexity(res *fit.Result, m *common.TimingMatrix, referenceCurves bool) (*plot.Plot, error) {
	if res == nil || m == nil {
		return nil, fmt.Errorf("nothing to plot")
	}
	if len(res.Sizes) != m.Rows() {
		return nil, fmt.Errorf("%w: %d fitted sizes, %d matrix rows", common.ErrSizeMismatch, len(res.Sizes), m.Rows())
	}

	// Sizes need not be sorted nor evenly spaced; draw them in x order.
	order := sortedOrder(res.Sizes)

	low, median, high := m.Percentiles(0.25), m.Percentiles(0.5), m.Percentiles(0.75)

	p := plot.New()
	p.Title.Text = "Linear scale complexity"
	p.X.Label.Text = "N"
	p.Y.Label.Text = "Time (relative)"

	band, err := plotter.NewPolygon(bandXYs(res.Sizes, order, low, high))
	if err != nil {
		return nil, err
	}
	band.Color = bandColor
	band.LineStyle.Width = 0
	p.Add(band)

	medianLine, medianPoints, err := plotter.NewLinePoints(toXYs(res.Sizes, order, median))
	if err != nil {
		return nil, err
	}
	medianLine.LineStyle.Color = color.Black
	medianLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	medianPoints.GlyphStyle.Color = color.Black
	medianPoints.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(medianLine, medianPoints)

	if referenceCurves {
		lines, names := referenceLines(res)
		for i, line := range lines {
			p.Add(line)
			p.Legend.Add(names[i], line)
		}
	}

	p.Y.Min = 0
	p.Y.Max = floats.Max(low) * 1.1

	return p, nil
}

// SaveComplexity renders PlotComplexity into path. The format follows the
// file extension (png, svg, pdf, ...).
func SaveComplexity(path string, res *fit.Result, m *common.TimingMatrix, referenceCurves bool) error {
	p, err := PlotComplexity(res, m, referenceCurves)
	if err != nil {
		return err
	}

	if err := p.Save(DefaultWidth, DefaultHeight, path); err != nil {
		return err
	}
	log.Debugf("Complexity plot written to %s", path)

	return nil
}

// referenceLines builds one line per usable candidate, coefficient applied.
func referenceLines(res *fit.Result) ([]*plotter.Line, []string) {
	order := sortedOrder(res.Sizes)

	var lines []*plotter.Line
	var names []string
	for i, f := range res.Fits {
		if f.Err != nil {
			continue
		}

		line, err := plotter.NewLine(toXYs(res.Sizes, order, f.Predict(res.Sizes)))
		if err != nil {
			log.Warnf("Skipping reference curve %s: %v", f.Name, err)
			continue
		}
		line.LineStyle.Color = withAlpha(plotutil.Color(i), math.Min(1.0, f.Score+0.1))
		line.LineStyle.Width = vg.Points(1 + f.Score*5)

		lines = append(lines, line)
		names = append(names, f.Name)
	}

	return lines, names
}

func sortedOrder(sizes []int) []int {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return sizes[order[i]] < sizes[order[j]]
	})

	return order
}

func toXYs(sizes []int, order []int, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(order))
	for k, i := range order {
		pts[k].X = float64(sizes[i])
		pts[k].Y = ys[i]
	}

	return pts
}

// bandXYs traces the lower edge left to right and the upper edge back.
func bandXYs(sizes []int, order []int, low, high []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, 2*len(order))
	for _, i := range order {
		pts = append(pts, plotter.XY{X: float64(sizes[i]), Y: low[i]})
	}
	for k := len(order) - 1; k >= 0; k-- {
		i := order[k]
		pts = append(pts, plotter.XY{X: float64(sizes[i]), Y: high[i]})
	}

	return pts
}

func withAlpha(c color.Color, alpha float64) color.NRGBA {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	nrgba.A = uint8(math.Round(alpha * 255))

	return nrgba
}
