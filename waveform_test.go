package main

import (
	"image/color"
	"testing"

	"gioui.org/f32"
)

type recordingSurface struct {
	width, height int
	clears        int
	bg            color.NRGBA
	strokes       [][]f32.Point
}

func (s *recordingSurface) Resize(w, h int) { s.width, s.height = w, h }

func (s *recordingSurface) Clear(bg color.NRGBA) {
	s.clears++
	s.bg = bg
	s.strokes = nil
}

func (s *recordingSurface) Stroke(pts []f32.Point, _ color.NRGBA, _ float32) {
	s.strokes = append(s.strokes, append([]f32.Point(nil), pts...))
}

type fixedSamples []byte

func (f fixedSamples) Sample() []byte { return f }

func flat(n int) fixedSamples {
	b := make(fixedSamples, n)
	for i := range b {
		b[i] = 128
	}
	return b
}

func TestScopePointsFlatLine(t *testing.T) {
	pts := scopePoints(nil, flat(1024), 800, 600)
	if len(pts) != 1025 {
		t.Fatalf("expected 1025 vertices, got %d", len(pts))
	}
	for i, p := range pts {
		if p.Y != 300 {
			t.Fatalf("vertex %d at y=%v, want 300", i, p.Y)
		}
	}
	if last := pts[len(pts)-1]; last.X != 800 {
		t.Fatalf("closing vertex at x=%v, want 800", last.X)
	}
}

func TestScopePointsSpacing(t *testing.T) {
	pts := scopePoints(nil, flat(4), 100, 50)
	want := []float32{0, 25, 50, 75, 100}
	for i, x := range want {
		if pts[i].X != x {
			t.Fatalf("vertex %d at x=%v, want %v", i, pts[i].X, x)
		}
	}
}

func TestScopePointsSymmetricAmplitude(t *testing.T) {
	const h = 200
	for _, d := range []byte{1, 32, 64, 127} {
		pts := scopePoints(nil, []byte{128 + d, 128 - d}, 10, h)
		up := pts[0].Y - h/2
		down := h/2 - pts[1].Y
		if up != down {
			t.Fatalf("offset %d: +%v vs -%v", d, up, down)
		}
		if want := float32(d) / 128 * h / 2; up != want {
			t.Fatalf("offset %d: got %v, want %v", d, up, want)
		}
	}
	pts := scopePoints(nil, []byte{0}, 10, h)
	if pts[0].Y != 0 {
		t.Fatalf("sample 0 should reach the top edge, got %v", pts[0].Y)
	}
}

func TestScopePointsEmpty(t *testing.T) {
	pts := scopePoints(nil, nil, 40, 20)
	if len(pts) != 1 || pts[0] != f32.Pt(40, 10) {
		t.Fatalf("got %v", pts)
	}
}

func TestRendererFrameLoop(t *testing.T) {
	host := newManualHost()
	surf := &recordingSurface{}
	style := defaultConfig().Style
	r := NewRenderer(host, flat(16), surf, style, 320, 240)
	if surf.width != 320 || surf.height != 240 {
		t.Fatalf("surface not resized on construction: %dx%d", surf.width, surf.height)
	}

	r.Start()
	r.Start()
	if len(host.frames) != 1 {
		t.Fatalf("expected one pending frame, got %d", len(host.frames))
	}
	for i := 0; i < 3; i++ {
		host.frame()
	}
	if surf.clears != 3 {
		t.Fatalf("expected 3 frames drawn, got %d", surf.clears)
	}
	if surf.bg != style.Background {
		t.Fatalf("cleared to %v, want %v", surf.bg, style.Background)
	}
	if len(surf.strokes) != 1 {
		t.Fatalf("each frame should stroke once, got %d", len(surf.strokes))
	}
	for _, p := range surf.strokes[0] {
		if p.Y != 120 {
			t.Fatalf("flat signal drawn at y=%v", p.Y)
		}
	}

	r.Resize(100, 50)
	host.frame()
	if last := surf.strokes[0][len(surf.strokes[0])-1]; last != f32.Pt(100, 25) {
		t.Fatalf("resize not applied, closing vertex %v", last)
	}

	r.Stop()
	host.frame()
	if surf.clears != 4 {
		t.Fatalf("frame drawn after Stop")
	}
	if len(host.frames) != 0 {
		t.Fatalf("loop rescheduled after Stop")
	}

	r.Start()
	host.frame()
	if surf.clears != 5 || !r.Running() {
		t.Fatal("restart did not draw")
	}
}

func TestRendererStopStartDropsStaleFrame(t *testing.T) {
	host := newManualHost()
	surf := &recordingSurface{}
	r := NewRenderer(host, flat(4), surf, defaultConfig().Style, 10, 10)
	r.Start()
	r.Stop()
	r.Start()
	host.frame()
	if surf.clears != 1 {
		t.Fatalf("stale frame drew: %d clears", surf.clears)
	}
	if len(host.frames) != 1 {
		t.Fatalf("expected a single live loop, got %d pending", len(host.frames))
	}
}
