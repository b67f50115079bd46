package main

import (
	"sync"
	"time"
)

// Host runs work on the UI goroutine, either on the next display frame or
// after a fixed delay.
type Host interface {
	RequestFrame(fn func(now time.Time))
	AfterFunc(d time.Duration, fn func())
	Now() time.Time
}

// windowHost queues callbacks for the gio event loop. Every enqueue wakes the
// window so a FrameEvent follows, and runFrame drains the queues from it.
type windowHost struct {
	mu         sync.Mutex
	frames     []func(time.Time)
	posted     []func()
	invalidate func()
}

func newWindowHost(invalidate func()) *windowHost {
	return &windowHost{invalidate: invalidate}
}

func (h *windowHost) RequestFrame(fn func(time.Time)) {
	h.mu.Lock()
	h.frames = append(h.frames, fn)
	h.mu.Unlock()
	h.invalidate()
}

// AfterFunc fires fn on the frame after d elapses, never on the timer goroutine.
func (h *windowHost) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { h.post(fn) })
}

func (h *windowHost) Now() time.Time { return time.Now() }

func (h *windowHost) post(fn func()) {
	h.mu.Lock()
	h.posted = append(h.posted, fn)
	h.mu.Unlock()
	h.invalidate()
}

// runFrame runs expired timers, then the frame callbacks queued so far.
// Callbacks that request another frame are queued for the next one.
func (h *windowHost) runFrame(now time.Time) {
	h.mu.Lock()
	posted := h.posted
	h.posted = nil
	h.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	h.mu.Lock()
	frames := h.frames
	h.frames = nil
	h.mu.Unlock()
	for _, fn := range frames {
		fn(now)
	}
}
