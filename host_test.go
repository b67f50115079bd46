package main

import (
	"sort"
	"testing"
	"time"
)

type manualTimer struct {
	at  time.Time
	seq int
	fn  func()
}

// manualHost is a Host driven by the test: the clock only moves on advance
// and frames only run on frame.
type manualHost struct {
	now      time.Time
	frames   []func(time.Time)
	timers   []manualTimer
	seq      int
	requests int
}

func newManualHost() *manualHost {
	return &manualHost{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (h *manualHost) RequestFrame(fn func(time.Time)) {
	h.requests++
	h.frames = append(h.frames, fn)
}

func (h *manualHost) AfterFunc(d time.Duration, fn func()) {
	h.seq++
	h.timers = append(h.timers, manualTimer{at: h.now.Add(d), seq: h.seq, fn: fn})
}

func (h *manualHost) Now() time.Time { return h.now }

// advance moves the clock by d, firing due timers in deadline order.
func (h *manualHost) advance(d time.Duration) {
	target := h.now.Add(d)
	for {
		sort.Slice(h.timers, func(i, j int) bool {
			if h.timers[i].at.Equal(h.timers[j].at) {
				return h.timers[i].seq < h.timers[j].seq
			}
			return h.timers[i].at.Before(h.timers[j].at)
		})
		if len(h.timers) == 0 || h.timers[0].at.After(target) {
			break
		}
		t := h.timers[0]
		h.timers = h.timers[1:]
		h.now = t.at
		t.fn()
	}
	h.now = target
}

// frame runs the callbacks queued before it.
func (h *manualHost) frame() {
	frames := h.frames
	h.frames = nil
	for _, fn := range frames {
		fn(h.now)
	}
}

func (h *manualHost) step(d time.Duration) {
	h.advance(d)
	h.frame()
}

func TestWindowHostRunsQueuedFrames(t *testing.T) {
	invalidated := 0
	h := newWindowHost(func() { invalidated++ })

	var got []time.Time
	var tick func(time.Time)
	tick = func(now time.Time) {
		got = append(got, now)
		h.RequestFrame(tick)
	}
	h.RequestFrame(tick)

	t0 := time.Unix(100, 0)
	h.runFrame(t0)
	if len(got) != 1 || !got[0].Equal(t0) {
		t.Fatalf("first frame: got %v", got)
	}
	// The rescheduled callback waits for the next frame.
	h.runFrame(t0.Add(time.Second))
	if len(got) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(got))
	}
	if invalidated != 3 {
		t.Fatalf("expected 3 invalidations, got %d", invalidated)
	}
}

func TestWindowHostPostedRunBeforeFrames(t *testing.T) {
	h := newWindowHost(func() {})
	var order []string
	h.RequestFrame(func(time.Time) { order = append(order, "frame") })
	h.post(func() {
		order = append(order, "posted")
		h.RequestFrame(func(time.Time) { order = append(order, "frame from posted") })
	})
	h.runFrame(time.Now())

	want := []string{"posted", "frame", "frame from posted"}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestWindowHostAfterFuncPostsToFrame(t *testing.T) {
	wake := make(chan struct{}, 1)
	h := newWindowHost(func() {
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	fired := false
	h.AfterFunc(time.Millisecond, func() { fired = true })

	select {
	case <-wake:
	case <-time.After(time.Second):
		t.Fatal("timer never woke the window")
	}
	if fired {
		t.Fatal("timer callback ran outside runFrame")
	}
	h.runFrame(time.Now())
	if !fired {
		t.Fatal("timer callback did not run on frame")
	}
}
