package main

import (
	"image"
	"log/slog"

	"gioui.org/io/key"
	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
)

type C = layout.Context
type D = layout.Dimensions

const monoFace = "Go Mono"

// UI owns the window-side state: which view is visible, the trigger inputs and
// the widgets of each view.
type UI struct {
	cfg  Config
	th   *material.Theme
	host *windowHost
	expl *explorer.Explorer
	log  *slog.Logger

	ctrl   *Controller
	term   *Terminal
	canvas *canvas
	source *audioSource

	visible     [3]bool
	size        image.Point
	keyArmed    bool
	buttonArmed bool

	uninstallButton widget.Clickable
	chooseButton    widget.Clickable
	lines           widget.List
}

func newUI(cfg Config, th *material.Theme, host *windowHost, expl *explorer.Explorer, log *slog.Logger) *UI {
	u := &UI{
		cfg:         cfg,
		th:          th,
		host:        host,
		expl:        expl,
		log:         log,
		canvas:      new(canvas),
		keyArmed:    true,
		buttonArmed: true,
	}
	u.visible[ViewInitial] = true
	u.lines.List = layout.List{Axis: layout.Vertical, ScrollToEnd: true}
	u.term = NewTerminal(host, cfg.TypeDelay)
	u.source = &audioSource{path: cfg.AudioPath, rate: cfg.SampleRate, volume: cfg.Volume, log: log}
	u.ctrl = NewController(cfg, SequenceDeps{
		Host:    host,
		Views:   u,
		Sink:    u.term,
		Surface: u.canvas,
		Output:  speakerOutput{sampleRate: cfg.SampleRate, buffer: cfg.OutputBuffer},
		Source:  u.source.Open,
		Log:     log,
	})
	u.ctrl.AddInput(func() { u.keyArmed = false })
	u.ctrl.AddInput(func() { u.buttonArmed = false })
	return u
}

func (u *UI) Show(v View) { u.visible[v] = true }
func (u *UI) Hide(v View) { u.visible[v] = false }

// frame handles one FrameEvent: resize, run queued work, read input, draw.
func (u *UI) frame(gtx C) D {
	if sz := gtx.Constraints.Max; sz != u.size {
		u.size = sz
		u.ctrl.Resize(sz.X, sz.Y)
	}
	paint.Fill(gtx.Ops, u.cfg.Style.Background)
	u.host.runFrame(gtx.Now)
	u.handleInput(gtx)

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(u.canvas.Layout),
		layout.Stacked(func(gtx C) D {
			gtx.Constraints.Min = gtx.Constraints.Max
			switch {
			case u.visible[ViewInitial]:
				return u.layoutInitial(gtx)
			case u.visible[ViewInProgress]:
				return u.layoutProgress(gtx)
			case u.visible[ViewFinal]:
				return u.layoutFinal(gtx)
			}
			return D{Size: gtx.Constraints.Max}
		}),
	)
}

func (u *UI) handleInput(gtx C) {
	if u.keyArmed {
		for {
			ev, ok := gtx.Event(key.Filter{Name: u.cfg.TriggerKey, Optional: key.ModShift})
			if !ok {
				break
			}
			if e, ok := ev.(key.Event); ok && e.State == key.Press {
				u.ctrl.Trigger()
			}
		}
	}
	if u.buttonArmed && u.uninstallButton.Clicked(gtx) {
		u.ctrl.Trigger()
	}
	if u.ctrl.Idle() && u.chooseButton.Clicked(gtx) {
		go u.chooseAudio()
	}
}

// chooseAudio blocks on the native dialog, so it runs off the UI goroutine
// and hands the result back through the host.
func (u *UI) chooseAudio() {
	rc, err := u.expl.ChooseFile(".mp3", ".wav")
	if err != nil {
		u.log.Warn("choose audio file", "error", err)
		return
	}
	u.host.post(func() {
		if !u.ctrl.Idle() {
			closeLogged(rc, u.log, "chosen audio file")
			return
		}
		u.source.Choose(rc)
		u.log.Info("audio file chosen")
	})
}

func (u *UI) layoutInitial(gtx C) D {
	return layout.Center.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				title := material.H3(u.th, u.cfg.Title)
				title.Color = u.cfg.Style.Scope
				title.Font.Typeface = monoFace
				return title.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx C) D {
				hint := material.Body1(u.th, "Press "+string(u.cfg.TriggerKey)+" to uninstall")
				hint.Color = u.cfg.Style.Text
				hint.Font.Typeface = monoFace
				return hint.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(16)}.Layout),
			layout.Rigid(func(gtx C) D {
				return layout.Flex{}.Layout(gtx,
					layout.Rigid(material.Button(u.th, &u.uninstallButton, "Uninstall").Layout),
					layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
					layout.Rigid(material.Button(u.th, &u.chooseButton, "Choose audio").Layout),
				)
			}),
		)
	})
}

func (u *UI) layoutProgress(gtx C) D {
	p := u.ctrl.Progress()
	return layout.UniformInset(unit.Dp(24)).Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
			layout.Flexed(1, func(gtx C) D {
				lines := u.term.Lines()
				return material.List(u.th, &u.lines).Layout(gtx, len(lines), func(gtx C, i int) D {
					txt := lines[i].Text
					if lines[i].Revealing && blinkOn(gtx.Now) {
						txt += "█"
					}
					lbl := material.Body1(u.th, txt)
					lbl.Color = u.cfg.Style.Text
					lbl.Font.Typeface = monoFace
					return lbl.Layout(gtx)
				})
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx C) D {
				bar := material.ProgressBar(u.th, p.Bar())
				bar.Color = u.cfg.Style.Scope
				bar.TrackColor = u.cfg.Style.Accent
				bar.TrackColor.A = 80
				return bar.Layout(gtx)
			}),
			layout.Rigid(func(gtx C) D {
				lbl := material.Caption(u.th, p.Percent())
				lbl.Color = u.cfg.Style.Text
				lbl.Font.Typeface = monoFace
				lbl.Alignment = text.End
				return lbl.Layout(gtx)
			}),
		)
	})
}

func (u *UI) layoutFinal(gtx C) D {
	return layout.Center.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				lbl := material.H4(u.th, "Uninstall complete.")
				lbl.Color = u.cfg.Style.Scope
				lbl.Font.Typeface = monoFace
				return lbl.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: unit.Dp(12)}.Layout),
			layout.Rigid(func(gtx C) D {
				lbl := material.Body1(u.th, "Nothing left to remove.")
				lbl.Color = u.cfg.Style.Text
				lbl.Font.Typeface = monoFace
				return lbl.Layout(gtx)
			}),
		)
	})
}
