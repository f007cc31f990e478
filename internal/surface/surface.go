// Package surface describes the regions the dashboard renders into.
//
// A Set is addressed by stable string ids. Every method reports whether the
// region exists; callers skip missing regions without treating it as an error.
package surface

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskboard/internal/risk"
)

type Set interface {
	SetText(id, text string) bool
	SetClass(id, class string) bool
	SetProperty(id, name, value string) bool
	Canvas(id string) (Canvas, bool)
}

// Point is a position in canvas pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Align controls horizontal text anchoring.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Canvas is a raster drawing region.
type Canvas interface {
	Size() (width, height int)
	Clear()
	Line(from, to Point, stroke drawing.Color, width float64)
	Polyline(points []Point, stroke drawing.Color, width float64)
	Dot(at Point, radius float64, fill drawing.Color)
	Text(body string, at Point, align Align, size float64, color drawing.Color)
}

// Fixed region ids.
const (
	GaugeFill     = "gauge-fill"
	TotalRisk     = "total-risk"
	AlertLevel    = "alert-level"
	Countdown     = "countdown"
	LastUpdated   = "last-updated"
	ElevatedCount = "elevated-count"
	TrendChart    = "trend-chart"
)

func SignalValue(key risk.SignalKey) string     { return string(key) + "-value" }
func SignalDetail(key risk.SignalKey) string    { return string(key) + "-detail" }
func SignalCard(key risk.SignalKey) string      { return string(key) + "-card" }
func SignalSparkline(key risk.SignalKey) string { return string(key) + "-sparkline" }
