// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"flag"
	"log/slog"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
)

func main() {
	cfg := defaultConfig()
	flag.StringVar(&cfg.AudioPath, "audio", "", "mp3 or wav file to play and analyse (default: synthesized drone)")
	level := flag.String("log-level", "info", "log level: debug, info, warn or error")
	flag.BoolVar(&cfg.StopScopeOnFinish, "stop-scope", false, "stop the oscilloscope once the final view is shown")
	flag.Parse()

	logger := newLogger(os.Stderr, *level)
	slog.SetDefault(logger)
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	go func() {
		w := new(app.Window)
		w.Option(app.Title(cfg.Title))
		w.Option(app.Size(unit.Dp(960), unit.Dp(600)))
		if err := loop(w, cfg, logger); err != nil {
			logger.Error("window closed", "error", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(w *app.Window, cfg Config, logger *slog.Logger) error {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Palette.Fg = cfg.Style.Text
	th.Palette.Bg = cfg.Style.Background
	th.Palette.ContrastBg = cfg.Style.Accent
	th.Palette.ContrastFg = cfg.Style.Background

	expl := explorer.NewExplorer(w)
	ui := newUI(cfg, th, newWindowHost(w.Invalidate), expl, logger)

	var ops op.Ops
	for {
		e := w.Event()
		expl.ListenEvents(e)
		switch evt := e.(type) {
		case app.DestroyEvent:
			return evt.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, evt)
			ui.frame(gtx)
			evt.Frame(gtx.Ops)
		}
	}
}
