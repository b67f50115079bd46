package main

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ScheduleEntry is a log line due once the sequence has run for Offset.
type ScheduleEntry struct {
	Offset  time.Duration
	Message string
}

// ValidateSchedule checks that offsets are non-negative and strictly
// increasing. The scheduler assumes this and does not check it itself.
func ValidateSchedule(entries []ScheduleEntry) error {
	for i, e := range entries {
		if e.Offset < 0 {
			return fmt.Errorf("entry %d: negative offset %v", i, e.Offset)
		}
		if i > 0 && e.Offset <= entries[i-1].Offset {
			return fmt.Errorf("entry %d: offset %v not after %v", i, e.Offset, entries[i-1].Offset)
		}
	}
	return nil
}

// Progress is the completion fraction of the sequence, in [0, 1].
type Progress struct {
	Fraction float64
}

func progressAt(elapsed, total time.Duration) Progress {
	if total <= 0 {
		return Progress{Fraction: 1}
	}
	return Progress{Fraction: clamp01(float64(elapsed) / float64(total))}
}

// Percent is the whole-number percentage, truncated.
func (p Progress) Percent() string {
	return strconv.Itoa(int(p.Fraction*100)) + "%"
}

// Bar is the bar fill, rounded to one decimal place of a percent.
func (p Progress) Bar() float32 {
	return float32(math.Round(p.Fraction*1000) / 1000)
}

// Scheduler maps wall-clock time since Start onto the progress fraction and
// emits each schedule entry once, in order. It ticks once per frame until the
// fraction reaches 1, then calls OnComplete after a fixed pause.
type Scheduler struct {
	host     Host
	total    time.Duration
	pause    time.Duration
	schedule []ScheduleEntry

	cursor  int
	start   time.Time
	started bool
	done    bool

	OnProgress func(Progress)
	OnEntry    func(ScheduleEntry)
	OnComplete func()
}

func NewScheduler(host Host, total, pause time.Duration, schedule []ScheduleEntry) *Scheduler {
	return &Scheduler{
		host:     host,
		total:    total,
		pause:    pause,
		schedule: schedule,
	}
}

// Start records the reference instant and requests the first tick. Later
// calls are ignored.
func (s *Scheduler) Start(ref time.Time) {
	if s.started {
		return
	}
	s.started = true
	s.start = ref
	s.host.RequestFrame(s.Tick)
}

// Tick evaluates the timeline at now. Offsets are compared with elapsed
// wall-clock time, so a late frame fires every entry it passed over.
func (s *Scheduler) Tick(now time.Time) {
	if !s.started || s.done {
		return
	}
	elapsed := now.Sub(s.start)
	p := progressAt(elapsed, s.total)
	if s.OnProgress != nil {
		s.OnProgress(p)
	}

	for s.cursor < len(s.schedule) && elapsed >= s.schedule[s.cursor].Offset {
		e := s.schedule[s.cursor]
		s.cursor++
		if s.OnEntry != nil {
			s.OnEntry(e)
		}
	}

	if p.Fraction < 1 {
		s.host.RequestFrame(s.Tick)
		return
	}
	s.done = true
	s.host.AfterFunc(s.pause, func() {
		if s.OnComplete != nil {
			s.OnComplete()
		}
	})
}

// Fired is how many entries have been emitted.
func (s *Scheduler) Fired() int { return s.cursor }

// Done reports whether the fraction has reached 1.
func (s *Scheduler) Done() bool { return s.done }
