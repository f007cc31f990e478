package surface

import (
	"fmt"
	"sync"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Recorder is an in-memory Set that keeps region state and logs canvas
// operations. Only ids registered with Add or AddCanvas exist.
type Recorder struct {
	mu       sync.Mutex
	text     map[string]string
	class    map[string]string
	props    map[string]map[string]string
	canvases map[string]*RecordingCanvas
}

func NewRecorder() *Recorder {
	return &Recorder{
		text:     map[string]string{},
		class:    map[string]string{},
		props:    map[string]map[string]string{},
		canvases: map[string]*RecordingCanvas{},
	}
}

// Add registers plain regions.
func (r *Recorder) Add(ids ...string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		if _, ok := r.props[id]; !ok {
			r.props[id] = map[string]string{}
		}
	}
	return r
}

// AddCanvas registers a canvas region of the given size.
func (r *Recorder) AddCanvas(id string, width, height int) *RecordingCanvas {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := &RecordingCanvas{W: width, H: height}
	r.canvases[id] = c
	return c
}

func (r *Recorder) SetText(id, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.props[id]; !ok {
		return false
	}
	r.text[id] = text
	return true
}

func (r *Recorder) SetClass(id, class string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.props[id]; !ok {
		return false
	}
	r.class[id] = class
	return true
}

func (r *Recorder) SetProperty(id, name, value string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.props[id]
	if !ok {
		return false
	}
	p[name] = value
	return true
}

func (r *Recorder) Canvas(id string) (Canvas, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.canvases[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (r *Recorder) Text(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text[id]
}

func (r *Recorder) Class(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.class[id]
}

func (r *Recorder) Property(id, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.props[id][name]
}

// Op is one recorded canvas call.
type Op struct {
	Kind   string
	Points []Point
	Color  drawing.Color
	Width  float64
	Text   string
	Align  Align
}

func (o Op) String() string {
	if o.Kind == "text" {
		return fmt.Sprintf("text %q at %v", o.Text, o.Points)
	}
	return fmt.Sprintf("%s %v", o.Kind, o.Points)
}

// RecordingCanvas records drawing calls instead of rasterizing them.
type RecordingCanvas struct {
	mu  sync.Mutex
	W   int
	H   int
	Ops []Op
}

func (c *RecordingCanvas) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.W, c.H
}

func (c *RecordingCanvas) Clear() { c.add(Op{Kind: "clear"}) }

func (c *RecordingCanvas) Line(from, to Point, stroke drawing.Color, width float64) {
	c.add(Op{Kind: "line", Points: []Point{from, to}, Color: stroke, Width: width})
}

func (c *RecordingCanvas) Polyline(points []Point, stroke drawing.Color, width float64) {
	pts := make([]Point, len(points))
	copy(pts, points)
	c.add(Op{Kind: "polyline", Points: pts, Color: stroke, Width: width})
}

func (c *RecordingCanvas) Dot(at Point, radius float64, fill drawing.Color) {
	c.add(Op{Kind: "dot", Points: []Point{at}, Color: fill, Width: radius})
}

func (c *RecordingCanvas) Text(body string, at Point, align Align, size float64, color drawing.Color) {
	c.add(Op{Kind: "text", Points: []Point{at}, Text: body, Align: align, Color: color, Width: size})
}

func (c *RecordingCanvas) add(op Op) {
	c.mu.Lock()
	c.Ops = append(c.Ops, op)
	c.mu.Unlock()
}

// Kinds returns the recorded op kinds, optionally filtered.
func (c *RecordingCanvas) Kinds(filter ...string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []string{}
	for _, op := range c.Ops {
		if len(filter) == 0 {
			out = append(out, op.Kind)
			continue
		}
		for _, f := range filter {
			if op.Kind == f {
				out = append(out, op.Kind)
			}
		}
	}
	return out
}

// Filter returns recorded ops of one kind.
func (c *RecordingCanvas) Filter(kind string) []Op {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Op
	for _, op := range c.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset drops recorded ops.
func (c *RecordingCanvas) Reset() {
	c.mu.Lock()
	c.Ops = nil
	c.mu.Unlock()
}
