package main

import (
	"fmt"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"graphplot/app/lang"
	"graphplot/app/plot"
)

// Render draws the visible curves and special points of s to path. The
// image format follows the file extension (png, svg, pdf, ...). One image
// pixel is one canvas pixel.
func Render(s *plot.Session, path string, pixelStep float64) error {
	v := s.Viewport()
	p := gonumplot.New()
	p.X.Label.Text = lang.Variable
	p.Add(plotter.NewGrid())

	reg := s.Registry()
	for i := 0; i < plot.SlotCount; i++ {
		curve, err := s.Curve(i, pixelStep)
		if err != nil {
			return err
		}
		first := true
		for _, seg := range segments(curve) {
			line, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("render %c: %w", reg.Name(i), err)
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			if first {
				p.Legend.Add(fmt.Sprintf("%c(%s)", reg.Name(i), lang.Variable), line)
				first = false
			}
		}
	}

	if points := s.Points(); len(points) > 0 {
		xys := make(plotter.XYs, len(points))
		for i, pt := range points {
			xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("render points: %w", err)
		}
		sc.GlyphStyle.Radius = vg.Points(2.5)
		p.Add(sc)
	}

	// Adding plotters widens the axes to their data; pin them to the view.
	p.X.Min, p.X.Max = v.MinX, v.MaxX
	p.Y.Min, p.Y.Max = v.MinY, v.MaxY

	if err := p.Save(vg.Length(v.Width), vg.Length(v.Height), path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// segments splits a sampled curve at undefined samples.
func segments(curve []plot.CurvePoint) []plotter.XYs {
	var out []plotter.XYs
	var cur plotter.XYs
	for _, c := range curve {
		if !c.OK {
			if len(cur) > 1 {
				out = append(out, cur)
			}
			cur = nil
			continue
		}
		cur = append(cur, plotter.XY{X: c.X, Y: c.Y})
	}
	if len(cur) > 1 {
		out = append(out, cur)
	}
	return out
}
