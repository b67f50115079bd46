package main

import (
	"log/slog"

	"github.com/gopxl/beep/v2"
)

// View is one of the three mutually exclusive screens.
type View int

const (
	ViewInitial View = iota
	ViewInProgress
	ViewFinal
)

// ViewSwitcher shows and hides views.
type ViewSwitcher interface {
	Show(View)
	Hide(View)
}

type seqState int

const (
	stateIdle seqState = iota
	stateRevealing
	stateScheduling
	stateFinished
)

func (s seqState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRevealing:
		return "revealing"
	case stateScheduling:
		return "scheduling"
	case stateFinished:
		return "finished"
	}
	return "unknown"
}

// transitions lists the only legal successor of each state.
var transitions = map[seqState]seqState{
	stateIdle:       stateRevealing,
	stateRevealing:  stateScheduling,
	stateScheduling: stateFinished,
}

// SequenceDeps are the collaborators a Controller drives.
type SequenceDeps struct {
	Host    Host
	Views   ViewSwitcher
	Sink    LogSink
	Surface Surface
	Output  Output
	Source  func() (beep.Streamer, error)
	Log     *slog.Logger
}

// Controller runs the one-shot sequence: reveal the command, then run the
// timeline, then show the final view.
type Controller struct {
	cfg   Config
	deps  SequenceDeps
	log   *slog.Logger
	state seqState

	sampler  *Sampler
	renderer *Renderer
	sched    *Scheduler
	progress Progress
	detach   []func()
}

func NewController(cfg Config, deps SequenceDeps) *Controller {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{cfg: cfg, deps: deps, log: log}
	c.sampler = NewSampler(cfg.TransformSize)
	c.renderer = NewRenderer(deps.Host, c.sampler, deps.Surface, cfg.Style, 0, 0)
	c.sched = NewScheduler(deps.Host, cfg.Total, cfg.CompletionPause, cfg.Schedule)
	c.sched.OnProgress = func(p Progress) { c.progress = p }
	c.sched.OnEntry = func(e ScheduleEntry) { deps.Sink.AppendLine(e.Message) }
	c.sched.OnComplete = c.finish
	return c
}

// AddInput registers the detach function of a trigger input. Every input is
// detached on the first successful Trigger.
func (c *Controller) AddInput(detach func()) {
	c.detach = append(c.detach, detach)
}

// advance moves to the next state if to is its legal successor.
func (c *Controller) advance(to seqState) bool {
	next, ok := transitions[c.state]
	if !ok || next != to {
		return false
	}
	c.log.Debug("sequence", "from", c.state, "to", to)
	c.state = to
	return true
}

// Trigger starts the sequence. Only the first call has any effect; it
// reports whether this call started it.
func (c *Controller) Trigger() bool {
	if !c.advance(stateRevealing) {
		return false
	}
	for _, d := range c.detach {
		d()
	}
	c.detach = nil

	c.deps.Views.Hide(ViewInitial)
	c.deps.Views.Show(ViewInProgress)
	c.startAudio()
	c.renderer.Start()
	c.deps.Sink.AppendAnimatedLine(c.cfg.Command, c.beginSchedule)
	return true
}

// startAudio never fails the sequence; the scope draws silence instead.
func (c *Controller) startAudio() {
	if c.deps.Source == nil || c.deps.Output == nil {
		return
	}
	src, err := c.deps.Source()
	if err != nil {
		c.log.Warn("audio source unavailable", "error", err)
		return
	}
	if err := c.sampler.Initialize(src, c.deps.Output); err != nil {
		c.log.Warn("audio playback failed, continuing without sound", "error", err)
	}
}

func (c *Controller) beginSchedule() {
	if !c.advance(stateScheduling) {
		return
	}
	c.sched.Start(c.deps.Host.Now())
}

func (c *Controller) finish() {
	if !c.advance(stateFinished) {
		return
	}
	c.deps.Views.Hide(ViewInProgress)
	c.deps.Views.Show(ViewFinal)
	if c.cfg.StopScopeOnFinish {
		c.renderer.Stop()
	}
	c.log.Info("sequence finished", "entries", c.sched.Fired())
}

// Resize forwards viewport changes to the scope.
func (c *Controller) Resize(width, height int) { c.renderer.Resize(width, height) }

func (c *Controller) Progress() Progress { return c.progress }

// Idle reports whether the sequence is still waiting for its trigger.
func (c *Controller) Idle() bool { return c.state == stateIdle }
