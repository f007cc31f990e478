package board

import (
	"bytes"
	"errors"
	"log"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"riskboard/internal/surface"
)

var (
	fontOnce    sync.Once
	defaultFont *truetype.Font
)

func canvasFont() *truetype.Font {
	fontOnce.Do(func() {
		f, err := chart.GetDefaultFont()
		if err != nil {
			log.Printf("board: no default font, canvas text disabled: %v", err)
			return
		}
		defaultFont = f
	})
	return defaultFont
}

// RasterCanvas is a PNG-backed canvas drawn with the go-chart raster renderer.
type RasterCanvas struct {
	mu   sync.Mutex
	w, h int
	r    chart.Renderer
}

func NewRasterCanvas(width, height int) *RasterCanvas {
	c := &RasterCanvas{w: width, h: height}
	c.Clear()
	return c
}

func (c *RasterCanvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w, c.h
}

// Clear swaps in a fresh transparent surface.
func (c *RasterCanvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *RasterCanvas) reset() {
	r, err := chart.PNG(c.w, c.h)
	if err != nil {
		log.Printf("board: canvas %dx%d: %v", c.w, c.h, err)
		return
	}
	if f := canvasFont(); f != nil {
		r.SetFont(f)
	}
	c.r = r
}

// Resize changes the canvas dimensions and clears it.
func (c *RasterCanvas) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.w, c.h = width, height
	c.reset()
}

func (c *RasterCanvas) Line(from, to surface.Point, stroke drawing.Color, width float64) {
	c.Polyline([]surface.Point{from, to}, stroke, width)
}

func (c *RasterCanvas) Polyline(points []surface.Point, stroke drawing.Color, width float64) {
	if len(points) < 2 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.r == nil {
		return
	}
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(px(points[0].X), px(points[0].Y))
	for _, p := range points[1:] {
		c.r.LineTo(px(p.X), px(p.Y))
	}
	c.r.Stroke()
}

func (c *RasterCanvas) Dot(at surface.Point, radius float64, fill drawing.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.r == nil {
		return
	}
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(fill)
	c.r.Circle(radius, px(at.X), px(at.Y))
	c.r.Fill()
}

func (c *RasterCanvas) Text(body string, at surface.Point, align surface.Align, size float64, color drawing.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.r == nil || canvasFont() == nil {
		return
	}
	c.r.SetFontColor(color)
	c.r.SetFontSize(size)
	x := px(at.X)
	switch align {
	case surface.AlignRight:
		x -= c.r.MeasureText(body).Width()
	case surface.AlignCenter:
		x -= c.r.MeasureText(body).Width() / 2
	}
	c.r.Text(body, x, px(at.Y))
}

// PNG encodes the current contents.
func (c *RasterCanvas) PNG() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.r == nil {
		c.reset()
		if c.r == nil {
			return nil, errors.New("canvas unavailable")
		}
	}
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func px(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}
