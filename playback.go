package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// ErrUnknownFormat is returned for files that are neither mp3 nor wav.
var ErrUnknownFormat = errors.New("unknown audio format")

// droneFreqs are the partials of the fallback signal, in Hz.
var droneFreqs = []float64{55, 82.5, 110.4, 221}

// speakerOutput plays through the system speaker. Init may only happen once
// per process.
type speakerOutput struct {
	sampleRate beep.SampleRate
	buffer     time.Duration
}

func (o speakerOutput) Play(s beep.Streamer) error {
	if err := speaker.Init(o.sampleRate, o.sampleRate.N(o.buffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	speaker.Play(s)
	return nil
}

// audioSource picks the signal for the scope: a track chosen in the file
// dialog, else the -audio file, else the synthesized drone.
type audioSource struct {
	path   string
	track  io.ReadCloser
	rate   beep.SampleRate
	volume float64
	log    *slog.Logger
}

// Choose replaces any previously chosen track.
func (a *audioSource) Choose(rc io.ReadCloser) {
	if a.track != nil {
		closeLogged(a.track, a.log, "previous audio file")
	}
	a.track = rc
}

// Open always yields a playable streamer. Decode failures fall back to the
// drone and are only logged.
func (a *audioSource) Open() (beep.Streamer, error) {
	rc := a.track
	if rc == nil && a.path != "" {
		f, err := os.Open(a.path)
		if err != nil {
			a.log.Warn("open audio file", "path", a.path, "error", err)
		} else {
			rc = f
		}
	}
	if rc != nil {
		s, format, err := decodeTrack(rc, a.log)
		if err == nil {
			a.log.Info("playing track", "rate", format.SampleRate, "channels", format.NumChannels)
			return a.shape(s, format.SampleRate), nil
		}
		a.log.Warn("decode audio, using drone", "error", err)
		closeLogged(rc, a.log, "undecodable audio file")
	}
	s, err := drone(a.rate)
	if err != nil {
		return nil, err
	}
	a.log.Info("playing drone", "partials", len(droneFreqs))
	return a.shape(s, a.rate), nil
}

// shape resamples to the output rate and applies the fixed volume.
func (a *audioSource) shape(s beep.Streamer, from beep.SampleRate) beep.Streamer {
	if from != a.rate {
		s = beep.Resample(4, from, a.rate, s)
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: a.volume}
}

// decodeTrack sniffs the container and decodes it. Tags are logged when the
// reader can seek.
func decodeTrack(rc io.ReadCloser, log *slog.Logger) (beep.StreamSeekCloser, beep.Format, error) {
	if rs, ok := rc.(io.ReadSeeker); ok {
		logTags(rs, log)
	}
	kind, rc, err := detectMagicBytes(rc)
	if err != nil {
		return nil, beep.Format{}, err
	}
	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch kind {
	case ".mp3":
		s, format, err = mp3.Decode(rc)
	case ".wav":
		s, format, err = wav.Decode(rc)
	default:
		return nil, beep.Format{}, ErrUnknownFormat
	}
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", kind, err)
	}
	return s, format, nil
}

func logTags(rs io.ReadSeeker, log *slog.Logger) {
	m, err := tag.ReadFrom(rs)
	if _, serr := rs.Seek(0, io.SeekStart); serr != nil {
		log.Warn("rewind after tag read", "error", serr)
	}
	if err != nil {
		if !errors.Is(err, tag.ErrNoTagsFound) {
			log.Debug("read tags", "error", err)
		}
		return
	}
	log.Info("track tags", "title", m.Title(), "artist", m.Artist(), "album", m.Album(), "format", m.Format())
}

// drone mixes a few quiet sine partials so the scope has something to draw.
func drone(rate beep.SampleRate) (beep.Streamer, error) {
	voices := make([]beep.Streamer, 0, len(droneFreqs))
	for _, f := range droneFreqs {
		tone, err := generators.SineTone(rate, f)
		if err != nil {
			return nil, fmt.Errorf("sine %v Hz: %w", f, err)
		}
		voices = append(voices, &effects.Volume{Streamer: tone, Base: 2, Volume: -2.5})
	}
	return beep.Mix(voices...), nil
}

// readCloserWrapper wraps an io.Reader and an io.Closer so that it satisfies io.ReadCloser.
type readCloserWrapper struct {
	io.Reader
	c io.Closer
}

func (rcw *readCloserWrapper) Close() error {
	return rcw.c.Close()
}

// detectMagicBytes reads the first 12 bytes to determine the file type,
// then returns a new io.ReadCloser that starts from byte position 0.
func detectMagicBytes(r io.ReadCloser) (string, io.ReadCloser, error) {
	const headerSize = 12
	header := make([]byte, headerSize)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read magic bytes: %w", err)
	}
	header = header[:n]

	var fileType string
	switch {
	case len(header) >= 12 && string(header[:4]) == "RIFF" && string(header[8:12]) == "WAVE":
		fileType = ".wav"
	case len(header) >= 3 && string(header[:3]) == "ID3":
		fileType = ".mp3"
	case len(header) >= 2 && header[0] == 0xFF && (header[1]&0xF6) == 0xF2:
		fileType = ".mp3"
	}

	// Prepend the already-read header back onto the remaining stream.
	newReader := io.MultiReader(bytes.NewReader(header), r)
	return fileType, &readCloserWrapper{Reader: newReader, c: r}, nil
}
