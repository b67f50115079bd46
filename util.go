package main

import (
	"io"
	"log/slog"
	"time"
)

// closeLogged closes c and logs a failure at debug level.
func closeLogged(c io.Closer, log *slog.Logger, what string) {
	if err := c.Close(); err != nil {
		log.Debug("close "+what, "error", err)
	}
}

func clampByte(v float64) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return byte(v)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// blinkOn toggles every half second for the terminal cursor.
func blinkOn(now time.Time) bool {
	return now.UnixMilli()/500%2 == 0
}
