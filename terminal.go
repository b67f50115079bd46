package main

import "time"

// LogSink is an append-only list of terminal lines.
type LogSink interface {
	AppendLine(text string)
	AppendAnimatedLine(text string, onDone func())
}

// TermLine is one terminal row. Revealing lines show a blinking cursor.
type TermLine struct {
	Text      string
	Revealing bool
}

// Terminal is the LogSink behind the in-progress view.
type Terminal struct {
	host  Host
	delay time.Duration
	lines []TermLine
}

func NewTerminal(host Host, delay time.Duration) *Terminal {
	return &Terminal{host: host, delay: delay}
}

func (t *Terminal) AppendLine(text string) {
	t.lines = append(t.lines, TermLine{Text: text})
}

// AppendAnimatedLine reveals text one rune per delay. onDone runs exactly
// once, in the step that appends the last rune, after the cursor is removed.
func (t *Terminal) AppendAnimatedLine(text string, onDone func()) {
	runes := []rune(text)
	idx := len(t.lines)
	t.lines = append(t.lines, TermLine{Revealing: true})

	finish := func() {
		t.lines[idx].Revealing = false
		if onDone != nil {
			onDone()
		}
	}
	if len(runes) == 0 {
		finish()
		return
	}

	n := 0
	var step func()
	step = func() {
		n++
		t.lines[idx].Text = string(runes[:n])
		if n < len(runes) {
			t.host.AfterFunc(t.delay, step)
			return
		}
		finish()
	}
	t.host.AfterFunc(t.delay, step)
}

// Lines returns the rows oldest first. The slice must not be modified.
func (t *Terminal) Lines() []TermLine { return t.lines }
