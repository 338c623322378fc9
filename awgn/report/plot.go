package report

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/alan-christopher/awgnber/awgn"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	_ "gonum.org/v1/plot/vg/vgimg"
)

// ErrNothingToPlot is returned by WritePlot when no result has a positive,
// finite BER at a finite SNR, leaving nothing to draw on a log axis.
var ErrNothingToPlot = errors.New("no positive BER to plot")

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// WritePlot renders simulated and theoretical BER against SNR on a log scale
// and writes the chart to w as a PNG. Points with a zero BER, which a log axis
// cannot show, are left out.
func WritePlot(w io.Writer, s awgn.Scheme, results []awgn.Result) error {
	sim, theory := berSeries(results)
	if len(sim) == 0 && len(theory) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("BER vs SNR over AWGN (%s)", s)
	p.X.Label.Text = "SNR (dB)"
	p.Y.Label.Text = "BER"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}
	p.Add(plotter.NewGrid())

	if len(sim) > 0 {
		l, pts, err := plotter.NewLinePoints(sim)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(0)
		pts.Color = plotutil.Color(0)
		pts.Shape = draw.CrossGlyph{}
		p.Add(l, pts)
		p.Legend.Add("Simulated BER", l, pts)
	}
	if len(theory) > 0 {
		l, err := plotter.NewLine(theory)
		if err != nil {
			return err
		}
		l.Color = plotutil.Color(1)
		l.Width = vg.Points(1.5)
		l.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(l)
		p.Legend.Add("Theoretical BER", l)
	}
	p.Y.Min, p.Y.Max = logRange(sim, theory)

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func berSeries(results []awgn.Result) (sim, theory plotter.XYs) {
	for _, r := range results {
		if math.IsInf(r.SNRdB, 0) || math.IsNaN(r.SNRdB) {
			continue
		}
		if r.BER > 0 {
			sim = append(sim, plotter.XY{X: r.SNRdB, Y: r.BER})
		}
		if r.TheoreticalBER > 0 {
			theory = append(theory, plotter.XY{X: r.SNRdB, Y: r.TheoreticalBER})
		}
	}
	return sim, theory
}

// logRange returns a y range covering every point, widened to a decade either
// side when all points coincide so that it stays positive.
func logRange(series ...plotter.XYs) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, xys := range series {
		for _, xy := range xys {
			lo = math.Min(lo, xy.Y)
			hi = math.Max(hi, xy.Y)
		}
	}
	if lo == hi {
		lo, hi = lo/10, hi*10
	}
	return lo, hi
}
