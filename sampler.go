package main

import (
	"errors"
	"fmt"

	"github.com/gopxl/beep/v2"
)

// ErrPlaybackBlocked reports that the audio output refused to start.
var ErrPlaybackBlocked = errors.New("audio playback blocked")

// Output is the audible end of the graph.
type Output interface {
	Play(s beep.Streamer) error
}

// Sampler analyses a live signal and exposes its time-domain waveform as
// unsigned bytes centered on 128. The buffer length is half the transform
// size and never changes.
type Sampler struct {
	transformSize int
	tap           *TapStreamer
	frame         []float64
	buf           []byte
}

// NewSampler rounds invalid transform sizes to the default. A transform size
// must be a power of two of at least 32.
func NewSampler(transformSize int) *Sampler {
	if transformSize < 32 || transformSize&(transformSize-1) != 0 {
		transformSize = defaultTransformSize
	}
	s := &Sampler{
		transformSize: transformSize,
		frame:         make([]float64, transformSize/2),
		buf:           make([]byte, transformSize/2),
	}
	for i := range s.buf {
		s.buf[i] = 128
	}
	return s
}

// Initialize routes src through the analysis tap into out and starts
// playback. It must follow a user interaction. A failed start is reported as
// ErrPlaybackBlocked; the sampler then keeps returning silence.
func (s *Sampler) Initialize(src beep.Streamer, out Output) error {
	if s.tap != nil {
		return nil
	}
	tap := newTapStreamer(src, s.transformSize)
	if err := out.Play(tap); err != nil {
		return fmt.Errorf("%w: %v", ErrPlaybackBlocked, err)
	}
	s.tap = tap
	return nil
}

// Len is the number of samples Sample returns.
func (s *Sampler) Len() int { return len(s.buf) }

// Sample refreshes the buffer in place from the newest audio and returns it.
// The slice is owned by the sampler and is overwritten by the next call.
// Once the source has run out every sample is 128.
func (s *Sampler) Sample() []byte {
	if s.tap == nil {
		return s.buf
	}
	if s.tap.Ended() {
		for i := range s.buf {
			s.buf[i] = 128
		}
		return s.buf
	}
	s.tap.latest(s.frame)
	for i, v := range s.frame {
		s.buf[i] = toByteSample(v)
	}
	return s.buf
}

// toByteSample maps [-1, 1] to [0, 255] with 128 as silence.
func toByteSample(v float64) byte {
	return clampByte(128 * (1 + v))
}
