// Package chart renders day series as PNG line charts.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strings"
	"unicode"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"loadpv/pkg/contracts/domain"
)

// DPI of the rendered image; width and height are given in pixels.
const DPI = 96

// maxTickLabels caps how many tick labels are printed. Every point keeps its
// tick mark; only the text is thinned out.
const maxTickLabels = 24

var lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// Latin1 reports whether every rune of s is in Latin-1, the range the
// default plot fonts and the core PDF fonts can draw.
func Latin1(s string) bool {
	for _, r := range s {
		if r > unicode.MaxLatin1 {
			return false
		}
	}
	return true
}

// Title builds the chart title for a dataset. A village name the plot
// fonts cannot draw is left out.
func Title(meta domain.DatasetMeta, empty bool) string {
	parts := []string{meta.Title}
	if meta.Village != "" && Latin1(meta.Village) {
		parts = append(parts, meta.Village)
	}
	if meta.Date != "" {
		parts = append(parts, meta.Date)
	}
	title := strings.Join(parts, ", ")
	if empty {
		title += " (no data)"
	}
	return title
}

// RenderPNG draws series as a line chart with one x tick per time label and
// the y axis starting at zero. An empty series renders empty axes.
func RenderPNG(meta domain.DatasetMeta, series domain.DaySeries, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", width, height)
	}

	p := plot.New()
	p.Title.Text = Title(meta, series.Empty())
	p.X.Label.Text = "Time"
	p.Y.Label.Text = meta.Unit
	p.Add(plotter.NewGrid())

	if series.Empty() {
		p.X.Min, p.X.Max = 0, 1
		p.Y.Min, p.Y.Max = 0, 1
	} else {
		points := make(plotter.XYs, len(series))
		for i, pt := range series {
			points[i].X = float64(i)
			points[i].Y = pt.Value
		}

		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, fmt.Errorf("failed to build line: %w", err)
		}
		line.Color = lineColor
		line.Width = vg.Points(1.5)
		p.Add(line)

		p.X.Tick.Marker = labelTicks(series.Labels())
		p.X.Min = 0
		p.X.Max = math.Max(1, float64(len(series)-1))
		p.Y.Min = math.Min(0, minValue(series))
		if p.Y.Max <= p.Y.Min {
			p.Y.Max = p.Y.Min + 1
		}
	}

	w := vg.Length(width) * vg.Inch / DPI
	h := vg.Length(height) * vg.Inch / DPI
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create png canvas: %w", err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// labelTicks places a tick at every index and labels at most maxTickLabels
// of them.
func labelTicks(labels []string) plot.ConstantTicks {
	step := int(math.Ceil(float64(len(labels)) / maxTickLabels))
	if step < 1 {
		step = 1
	}

	ticks := make(plot.ConstantTicks, len(labels))
	for i, l := range labels {
		ticks[i].Value = float64(i)
		if i%step == 0 {
			ticks[i].Label = l
		}
	}
	return ticks
}

func minValue(series domain.DaySeries) float64 {
	m := series[0].Value
	for _, p := range series[1:] {
		m = math.Min(m, p.Value)
	}
	return m
}
