package main

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// TapStreamer wraps another streamer and keeps the most recent mono samples
// in a ring for the scope. Stream runs on the speaker goroutine.
type TapStreamer struct {
	s beep.Streamer // underlying streamer

	mu    sync.Mutex
	ring  []float64
	pos   int
	ended bool
}

func newTapStreamer(s beep.Streamer, size int) *TapStreamer {
	return &TapStreamer{s: s, ring: make([]float64, size)}
}

// Err just passes through the error from the wrapped streamer.
func (t *TapStreamer) Err() error {
	return t.s.Err()
}

// Stream records what the wrapped streamer produced. Frames it could not
// fill are recorded as silence, and a short or failed read marks the tap as
// ended: the speaker stops pulling a drained streamer.
func (t *TapStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.s.Stream(samples)
	t.mu.Lock()
	for i := 0; i < len(samples); i++ {
		v := 0.0
		if i < n {
			v = (samples[i][0] + samples[i][1]) / 2
		}
		t.ring[t.pos] = v
		t.pos = (t.pos + 1) % len(t.ring)
	}
	if !ok || n < len(samples) {
		t.ended = true
	}
	t.mu.Unlock()
	return n, ok
}

// Ended reports whether the wrapped streamer has run out.
func (t *TapStreamer) Ended() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ended
}

// latest copies the newest len(dst) samples into dst, oldest first.
func (t *TapStreamer) latest(dst []float64) {
	size := len(t.ring)
	n := len(dst)
	if n > size {
		n = size
	}
	t.mu.Lock()
	start := (t.pos - n + size) % size
	for i := 0; i < n; i++ {
		dst[i] = t.ring[(start+i)%size]
	}
	t.mu.Unlock()
}
