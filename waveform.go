package main

import (
	"image"
	"image/color"
	"time"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// SampleSource yields the current waveform, 128 meaning silence.
type SampleSource interface {
	Sample() []byte
}

// Surface is a resizable 2D drawing target. Each frame starts with Clear.
type Surface interface {
	Resize(width, height int)
	Clear(bg color.NRGBA)
	Stroke(pts []f32.Point, c color.NRGBA, width float32)
}

// Renderer draws the oscilloscope once per frame while running.
type Renderer struct {
	host    Host
	src     SampleSource
	surface Surface
	style   Style

	width, height int
	running       bool
	gen           int
	pts           []f32.Point
}

func NewRenderer(host Host, src SampleSource, surface Surface, style Style, width, height int) *Renderer {
	r := &Renderer{host: host, src: src, surface: surface, style: style}
	r.Resize(width, height)
	return r
}

// Resize must follow every viewport change so vertices stay in bounds.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.surface.Resize(width, height)
}

// Start begins the frame loop. It is a no-op while running.
func (r *Renderer) Start() {
	if r.running {
		return
	}
	r.running = true
	r.gen++
	r.next()
}

// Stop cancels the pending frame. Start may be called again afterwards.
func (r *Renderer) Stop() {
	r.running = false
	r.gen++
}

func (r *Renderer) Running() bool { return r.running }

func (r *Renderer) next() {
	gen := r.gen
	r.host.RequestFrame(func(time.Time) {
		if !r.running || gen != r.gen {
			return
		}
		r.renderFrame()
		r.next()
	})
}

// renderFrame overwrites the surface with the current waveform.
func (r *Renderer) renderFrame() {
	samples := r.src.Sample()
	r.surface.Clear(r.style.Background)
	r.pts = scopePoints(r.pts, samples, r.width, r.height)
	r.surface.Stroke(r.pts, r.style.Scope, r.style.LineWidth)
}

// scopePoints lays samples evenly across width, scaling amplitude to half the
// height around the midline, and ends on the midline at the right edge.
func scopePoints(dst []f32.Point, samples []byte, width, height int) []f32.Point {
	dst = dst[:0]
	mid := float32(height) / 2
	if len(samples) > 0 {
		step := float32(width) / float32(len(samples))
		for i, s := range samples {
			v := float32(s)/128 - 1
			dst = append(dst, f32.Pt(float32(i)*step, v*mid+mid))
		}
	}
	return append(dst, f32.Pt(float32(width), mid))
}

// canvas is the gio Surface. Drawing records into its own ops and Layout
// replays the last frame.
type canvas struct {
	ops   op.Ops
	size  image.Point
	calls []op.CallOp
}

func (c *canvas) Resize(width, height int) {
	c.size = image.Pt(width, height)
}

func (c *canvas) Clear(bg color.NRGBA) {
	c.ops.Reset()
	c.calls = c.calls[:0]
	m := op.Record(&c.ops)
	paint.FillShape(&c.ops, bg, clip.Rect{Max: c.size}.Op())
	c.calls = append(c.calls, m.Stop())
}

func (c *canvas) Stroke(pts []f32.Point, col color.NRGBA, width float32) {
	if len(pts) < 2 {
		return
	}
	m := op.Record(&c.ops)
	var path clip.Path
	path.Begin(&c.ops)
	path.MoveTo(pts[0])
	for _, p := range pts[1:] {
		path.LineTo(p)
	}
	paint.FillShape(&c.ops, col, clip.Stroke{
		Path:  path.End(),
		Width: width,
	}.Op())
	c.calls = append(c.calls, m.Stop())
}

func (c *canvas) Layout(gtx layout.Context) layout.Dimensions {
	defer clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops).Pop()
	for _, call := range c.calls {
		call.Add(gtx.Ops)
	}
	return layout.Dimensions{Size: gtx.Constraints.Max}
}
