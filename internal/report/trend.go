// Package report renders a standalone trend chart image for sharing.
package report

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vicanso/go-charts/v2"

	"riskboard/internal/render"
	"riskboard/internal/risk"
)

// Trend keeps the latest snapshot and renders its aggregate history as a PNG.
type Trend struct {
	mu     sync.Mutex
	latest *risk.Snapshot
	cache  *chartCache
}

func NewTrend() *Trend {
	return &Trend{cache: newChartCache()}
}

// SnapshotChanged records the newest rendered snapshot.
func (t *Trend) SnapshotChanged(_, cur *risk.Snapshot) {
	t.mu.Lock()
	t.latest = cur
	t.mu.Unlock()
}

// Latest returns the most recent snapshot seen, or nil.
func (t *Trend) Latest() *risk.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest
}

// PNG renders the latest snapshot's trend.
func (t *Trend) PNG() ([]byte, error) {
	s := t.Latest()
	if s == nil {
		return nil, errors.New("no data yet")
	}
	return t.Render(s)
}

// Render draws s's aggregate history on a 0..100 scale with the peak marked.
// Results are cached per last_updated.
func (t *Trend) Render(s *risk.Snapshot) ([]byte, error) {
	if s == nil || s.TotalRisk == nil || len(s.TotalRisk.History) < 2 {
		return nil, errors.New("not enough data points")
	}
	cacheKey := "trend|" + s.LastUpdated
	if img, ok := t.cache.get(cacheKey); ok {
		return img, nil
	}

	hist := s.TotalRisk.History
	values := make([]float64, len(hist))
	xLabels := make([]string, len(hist))
	for i, p := range hist {
		values[i] = p.Risk
		if p.Timestamp.Valid() {
			xLabels[i] = p.Timestamp.In(render.TimeZone).Format("Jan 02 15:04")
		}
	}
	yMin, yMax := 0.0, 100.0
	for _, v := range values {
		if v > yMax {
			yMax = v
		}
	}

	seriesList := charts.NewSeriesListDataFromValues([][]float64{values}, charts.ChartTypeLine)
	seriesList[0].Name = "Total risk"
	seriesList[0].MarkPoint = charts.SeriesMarkPoint{
		Data: []charts.SeriesMarkData{{Type: charts.SeriesMarkDataTypeMax}},
	}
	alert := risk.AlertLevel(s.TotalRisk.Score())
	painter, err := charts.Render(charts.ChartOption{SeriesList: seriesList},
		charts.TitleTextOptionFunc("Total risk • "+alert.Label, fmt.Sprintf("%d now • %d points", s.TotalRisk.Score(), len(hist))),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: xLabels, BoundaryGap: charts.FalseFlag(), SplitNumber: 6}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 4}),
		charts.ThemeOptionFunc(charts.ThemeDark),
		charts.WidthOptionFunc(800),
		charts.HeightOptionFunc(400),
	)
	if err != nil {
		return nil, err
	}
	img, err := painter.Bytes()
	if err != nil {
		return nil, err
	}
	t.cache.set(cacheKey, img)
	return img, nil
}
