package render

import (
	"riskboard/internal/surface"
	"riskboard/internal/theme"
)

const (
	sparkPadding   = 4.0
	sparkLineWidth = 1.5
	sparkDotRadius = 2.5
)

// Sparkline repaints c with a line over history and a dot on the latest value.
// The vertical scale always covers 0..100 and widens for outliers. Histories
// shorter than two points leave the canvas cleared.
func Sparkline(c surface.Canvas, history []float64, current int, th theme.Theme) {
	c.Clear()
	if len(history) < 2 {
		return
	}
	w, h := c.Size()
	lo, hi := 0.0, 100.0
	for _, v := range history {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	innerW := float64(w) - 2*sparkPadding
	innerH := float64(h) - 2*sparkPadding
	step := innerW / float64(len(history)-1)

	pts := make([]surface.Point, len(history))
	for i, v := range history {
		pts[i] = surface.Point{
			X: sparkPadding + float64(i)*step,
			Y: sparkPadding + (1-(v-lo)/span)*innerH,
		}
	}
	col := RiskColor(current, th)
	c.Polyline(pts, col, sparkLineWidth)
	c.Dot(pts[len(pts)-1], sparkDotRadius, col)
}
