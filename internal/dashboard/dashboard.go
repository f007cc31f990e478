// Package dashboard turns polled snapshots into region updates.
package dashboard

import (
	"fmt"
	"strconv"

	"riskboard/internal/countdown"
	"riskboard/internal/render"
	"riskboard/internal/risk"
	"riskboard/internal/surface"
	"riskboard/internal/theme"
)

// GaugeArc is the stroke length of a full gauge sweep.
const GaugeArc = 251.2

// Dashboard owns the last rendered snapshot and the countdown. All methods
// must be called from the same goroutine.
type Dashboard struct {
	surfaces  surface.Set
	theme     theme.Theme
	clock     countdown.Clock
	countdown *countdown.Countdown

	last *risk.Snapshot
}

func New(surfaces surface.Set, th theme.Theme, clock countdown.Clock, sched countdown.Scheduler) *Dashboard {
	return &Dashboard{
		surfaces:  surfaces,
		theme:     th,
		clock:     clock,
		countdown: countdown.New(surfaces, clock, sched),
	}
}

// Render repaints every region from s and records it as the last rendered
// snapshot. A nil snapshot is ignored.
func (d *Dashboard) Render(s *risk.Snapshot) {
	if s == nil {
		return
	}
	d.last = s

	if tr := s.TotalRisk; tr != nil {
		d.renderTotal(tr)
	}
	for _, key := range risk.SignalKeys {
		if sig := s.Signal(key); sig != nil {
			d.renderSignal(key, sig)
		}
	}

	d.countdown.Start(s.LastUpdated)
	if t, err := risk.ParseTimestamp(s.LastUpdated); err == nil {
		d.surfaces.SetText(surface.LastUpdated, countdown.TimeAgo(t, d.clock.Now()))
	}
}

// Resize redraws the last rendered snapshot, if there is one.
func (d *Dashboard) Resize() {
	if d.last == nil {
		return
	}
	d.Render(d.last)
}

// SetTheme swaps the palette and redraws the last snapshot with it.
func (d *Dashboard) SetTheme(th theme.Theme) {
	d.theme = th
	d.Resize()
}

// Last returns the most recently rendered snapshot or nil.
func (d *Dashboard) Last() *risk.Snapshot { return d.last }

// Countdown exposes the countdown for inspection.
func (d *Dashboard) Countdown() *countdown.Countdown { return d.countdown }

func (d *Dashboard) renderTotal(tr *risk.Aggregate) {
	score := tr.Score()
	bucket := risk.CardBucket(score)
	d.surfaces.SetProperty(surface.GaugeFill, "stroke-dashoffset", fmt.Sprintf("%.1f", gaugeOffset(score)))
	d.surfaces.SetClass(surface.GaugeFill, bucket.Class())
	d.surfaces.SetText(surface.TotalRisk, strconv.Itoa(score))
	d.surfaces.SetClass(surface.TotalRisk, bucket.Class())

	alert := risk.AlertLevel(score)
	d.surfaces.SetText(surface.AlertLevel, alert.Label)
	d.surfaces.SetClass(surface.AlertLevel, alert.Style)

	if tr.ElevatedCount != nil {
		d.surfaces.SetText(surface.ElevatedCount, fmt.Sprintf("%d of %d signals elevated", *tr.ElevatedCount, len(risk.SignalKeys)))
	}
	if tr.History != nil {
		if c, ok := d.surfaces.Canvas(surface.TrendChart); ok {
			render.Trend(c, tr.History, d.theme)
		}
	}
}

func (d *Dashboard) renderSignal(key risk.SignalKey, sig *risk.Signal) {
	score := sig.Score()
	d.surfaces.SetText(surface.SignalValue(key), strconv.Itoa(score))
	d.surfaces.SetText(surface.SignalDetail(key), sig.Detail)
	d.surfaces.SetClass(surface.SignalCard(key), risk.CardBucket(score).Class())
	if sig.History != nil {
		if c, ok := d.surfaces.Canvas(surface.SignalSparkline(key)); ok {
			render.Sparkline(c, sig.History, score, d.theme)
		}
	}
}

// gaugeOffset is the unfilled part of the gauge arc for a score.
func gaugeOffset(score int) float64 {
	frac := float64(score) / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return GaugeArc - GaugeArc*frac
}
