package render

import (
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskboard/internal/risk"
	"riskboard/internal/surface"
	"riskboard/internal/theme"
)

const (
	trendPadLeft   = 40.0
	trendPadRight  = 12.0
	trendPadTop    = 10.0
	trendPadBottom = 24.0

	trendGridLines = 5
	maxTimeLabels  = 6
	trendFontSize  = 10.0
	trendLineWidth = 2.0
	pinRadius      = 3.5
)

var (
	defaultLine = drawing.Color{R: 0x3b, G: 0x82, B: 0xf6, A: 255}
	defaultGrid = drawing.Color{R: 0x33, G: 0x33, B: 0x33, A: 255}
	defaultText = drawing.Color{R: 0x99, G: 0x99, B: 0x99, A: 255}
	defaultPin  = drawing.Color{R: 0xf5, G: 0x9e, B: 0x0b, A: 255}
)

// TimeZone is the zone used for time-of-day labels.
var TimeZone = time.Local

// Trend repaints c with the aggregate risk history. Fewer than two points
// leave the canvas untouched.
func Trend(c surface.Canvas, history []risk.HistoryPoint, th theme.Theme) {
	n := len(history)
	if n < 2 {
		return
	}
	c.Clear()
	w, h := c.Size()
	chartW := float64(w) - trendPadLeft - trendPadRight
	chartH := float64(h) - trendPadTop - trendPadBottom
	bottom := trendPadTop + chartH

	gridCol := th.ColorOr("--chart-grid", defaultGrid)
	textCol := th.ColorOr("--chart-text", defaultText)
	for i := 0; i < trendGridLines; i++ {
		pct := i * 100 / (trendGridLines - 1)
		y := bottom - float64(pct)/100*chartH
		c.Line(surface.Point{X: trendPadLeft, Y: y}, surface.Point{X: trendPadLeft + chartW, Y: y}, gridCol, 1)
		c.Text(fmt.Sprintf("%d%%", pct), surface.Point{X: trendPadLeft - 6, Y: y + 3}, surface.AlignRight, trendFontSize, textCol)
	}

	step := chartW / float64(n-1)
	pts := make([]surface.Point, n)
	for i, p := range history {
		pts[i] = surface.Point{X: trendPadLeft + float64(i)*step, Y: bottom - p.Risk/100*chartH}
	}
	c.Polyline(pts, th.ColorOr("--chart-line", defaultLine), trendLineWidth)

	pinCol := th.ColorOr("--chart-pin", defaultPin)
	for i, p := range history {
		if p.Pinned {
			c.Dot(pts[i], pinRadius, pinCol)
		}
	}

	labels := maxTimeLabels
	if n < labels {
		labels = n
	}
	stride := n / labels
	for k := 0; k < labels; k++ {
		i := k * stride
		ts := history[i].Timestamp
		if !ts.Valid() {
			continue
		}
		c.Text(ts.In(TimeZone).Format("15:04"), surface.Point{X: pts[i].X, Y: bottom + 16}, surface.AlignCenter, trendFontSize, textCol)
	}
}
