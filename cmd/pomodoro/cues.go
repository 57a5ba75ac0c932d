package main

import (
	"io"
	"log/slog"

	"pomodoro/internal/notify"
)

// terminalCuePlayer rings on the error stream. Bubble Tea owns stdout while
// the terminal UI runs.
func terminalCuePlayer(stderr io.Writer) notify.CuePlayer {
	return notify.NewBellPlayer(stderr)
}

// desktopCuePlayer rings on stdout, which is only audible when the app was
// started from a terminal.
func desktopCuePlayer(stdout io.Writer, logger *slog.Logger) notify.CuePlayer {
	logger.Debug("audio cues use the terminal bell; they are silent without a terminal")
	return notify.NewBellPlayer(stdout)
}
