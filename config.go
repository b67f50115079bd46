package main

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"gioui.org/io/key"
	"github.com/gopxl/beep/v2"
)

const defaultTransformSize = 2048

// Style holds the fixed colors of the scope and the views.
type Style struct {
	Background color.NRGBA
	Scope      color.NRGBA
	Text       color.NRGBA
	Accent     color.NRGBA
	LineWidth  float32
}

// Config collects every constant of the sequence. Only AudioPath is set from
// the command line.
type Config struct {
	Title     string
	AudioPath string

	TriggerKey key.Name
	Command    string
	TypeDelay  time.Duration

	Total           time.Duration
	CompletionPause time.Duration
	Schedule        []ScheduleEntry

	TransformSize int
	SampleRate    beep.SampleRate
	OutputBuffer  time.Duration
	Volume        float64 // base 2 exponent, 0 is unity gain

	// StopScopeOnFinish stops the oscilloscope once the final view is shown.
	// By default it keeps drawing behind the final view.
	StopScopeOnFinish bool

	Style Style
}

func defaultConfig() Config {
	return Config{
		Title:           "escape",
		TriggerKey:      triggerKeyName("u"),
		Command:         "sudo apt-get purge --auto-remove reality",
		TypeDelay:       50 * time.Millisecond,
		Total:           162 * time.Second,
		CompletionPause: 1500 * time.Millisecond,
		Schedule:        defaultSchedule(),
		TransformSize:   defaultTransformSize,
		SampleRate:      44100,
		OutputBuffer:    100 * time.Millisecond,
		Volume:          -0.5,
		Style: Style{
			Background: color.NRGBA{R: 8, G: 8, B: 8, A: 255},
			Scope:      color.NRGBA{R: 0, G: 255, B: 65, A: 255},
			Text:       color.NRGBA{R: 190, G: 255, B: 200, A: 255},
			Accent:     color.NRGBA{R: 0, G: 160, B: 40, A: 255},
			LineWidth:  2,
		},
	}
}

// Validate checks the timeline constants. It runs once at start-up; the
// scheduler itself assumes a valid schedule.
func (c Config) Validate() error {
	if c.Total <= 0 {
		return fmt.Errorf("total duration %v must be positive", c.Total)
	}
	if err := ValidateSchedule(c.Schedule); err != nil {
		return fmt.Errorf("schedule: %w", err)
	}
	return nil
}

func defaultSchedule() []ScheduleEntry {
	return []ScheduleEntry{
		{1 * time.Second, "Reading package lists... Done"},
		{15 * time.Second, "Removing reality-core (2.0.26-1) ..."},
		{45 * time.Second, "Disconnecting from the grid ..."},
		{80 * time.Second, "Purging configuration files for memory ..."},
		{120 * time.Second, "Releasing held locks on time ..."},
		{150 * time.Second, "Cleaning up residual dependencies ..."},
		{162 * time.Second, "Processing triggers for escape ... Done"},
	}
}

// triggerKeyName maps a letter to the name gio reports for it. Gio names
// letter keys in upper case whatever the shift state, so matching by name is
// case-insensitive.
func triggerKeyName(letter string) key.Name {
	return key.Name(strings.ToUpper(letter))
}
