// Package board is the in-memory page the dashboard renders into. It holds
// text regions and raster canvases keyed by id and is safe for concurrent
// readers while the render loop writes.
package board

import (
	"sort"
	"sync"

	"riskboard/internal/risk"
	"riskboard/internal/surface"
)

// CanvasSpec sizes a canvas. With a positive Share the width follows the
// viewport; Width is used until a viewport is known.
type CanvasSpec struct {
	ID     string
	Width  int
	Height int
	Share  float64
	Min    int
}

// Layout lists the regions that exist on the page.
type Layout struct {
	Regions  []string
	Canvases []CanvasSpec
}

// DefaultLayout has every fixed region and all six signal cards.
func DefaultLayout() Layout {
	l := Layout{
		Regions: []string{
			surface.GaugeFill, surface.TotalRisk, surface.AlertLevel,
			surface.Countdown, surface.LastUpdated, surface.ElevatedCount,
		},
		Canvases: []CanvasSpec{
			{ID: surface.TrendChart, Width: 800, Height: 240, Share: 0.9, Min: 240},
		},
	}
	for _, k := range risk.SignalKeys {
		l.Regions = append(l.Regions, surface.SignalValue(k), surface.SignalDetail(k), surface.SignalCard(k))
		l.Canvases = append(l.Canvases, CanvasSpec{ID: surface.SignalSparkline(k), Width: 140, Height: 40, Share: 0.12, Min: 80})
	}
	return l
}

// Region is the state of one non-canvas region.
type Region struct {
	Text  string            `json:"text"`
	Class string            `json:"class,omitempty"`
	Props map[string]string `json:"props,omitempty"`
}

// CanvasInfo describes a canvas in a State.
type CanvasInfo struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// State is a point-in-time copy of the board.
type State struct {
	Regions  map[string]Region `json:"regions"`
	Canvases []CanvasInfo      `json:"canvases"`
	Viewport int               `json:"viewport"`
}

type Board struct {
	mu       sync.RWMutex
	regions  map[string]*Region
	canvases map[string]*RasterCanvas
	specs    map[string]CanvasSpec
	viewport int
	onResize func()
}

func New(l Layout) *Board {
	b := &Board{
		regions:  map[string]*Region{},
		canvases: map[string]*RasterCanvas{},
		specs:    map[string]CanvasSpec{},
	}
	for _, id := range l.Regions {
		b.regions[id] = &Region{Props: map[string]string{}}
	}
	for _, cs := range l.Canvases {
		b.specs[cs.ID] = cs
		b.canvases[cs.ID] = NewRasterCanvas(cs.Width, cs.Height)
	}
	return b
}

// OnResize registers the callback run after the viewport changes.
func (b *Board) OnResize(fn func()) {
	b.mu.Lock()
	b.onResize = fn
	b.mu.Unlock()
}

func (b *Board) SetText(id, text string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[id]
	if ok {
		r.Text = text
	}
	return ok
}

func (b *Board) SetClass(id, class string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[id]
	if ok {
		r.Class = class
	}
	return ok
}

func (b *Board) SetProperty(id, name, value string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, ok := b.regions[id]
	if ok {
		r.Props[name] = value
	}
	return ok
}

func (b *Board) Canvas(id string) (surface.Canvas, bool) {
	c, ok := b.RasterCanvas(id)
	if !ok {
		return nil, false
	}
	return c, true
}

// RasterCanvas returns the concrete canvas for id.
func (b *Board) RasterCanvas(id string) (*RasterCanvas, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.canvases[id]
	return c, ok
}

// SetViewport resizes fluid canvases for a new page width and fires the
// resize callback. Repeating the current width does nothing.
func (b *Board) SetViewport(width int) {
	b.mu.Lock()
	if width <= 0 || width == b.viewport {
		b.mu.Unlock()
		return
	}
	b.viewport = width
	for id, cs := range b.specs {
		w := cs.Width
		if cs.Share > 0 {
			w = int(float64(width) * cs.Share)
			if w < cs.Min {
				w = cs.Min
			}
		}
		b.canvases[id].Resize(w, cs.Height)
	}
	fn := b.onResize
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// State copies the current region and canvas state.
func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	st := State{Regions: make(map[string]Region, len(b.regions)), Viewport: b.viewport}
	for id, r := range b.regions {
		props := make(map[string]string, len(r.Props))
		for k, v := range r.Props {
			props[k] = v
		}
		st.Regions[id] = Region{Text: r.Text, Class: r.Class, Props: props}
	}
	for id, c := range b.canvases {
		w, h := c.Size()
		st.Canvases = append(st.Canvases, CanvasInfo{ID: id, Width: w, Height: h})
	}
	sort.Slice(st.Canvases, func(i, j int) bool { return st.Canvases[i].ID < st.Canvases[j].ID })
	return st
}
