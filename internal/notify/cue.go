package notify

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

// Cue names an audio cue.
type Cue string

const (
	CueButton     Cue = "button"
	CuePomodoro   Cue = "pomodoro"
	CueShortBreak Cue = "shortBreak"
	CueLongBreak  Cue = "longBreak"
)

// CueFor maps a finished interval to its cue.
func CueFor(mode model.Mode) Cue {
	switch mode {
	case model.ModeShortBreak:
		return CueShortBreak
	case model.ModeLongBreak:
		return CueLongBreak
	default:
		return CuePomodoro
	}
}

// CuePlayer plays audio cues.
type CuePlayer interface {
	Play(cue Cue) error
}

// BellPlayer rings the terminal bell: once for the button and a pomodoro,
// twice for a short break, three times for a long break.
type BellPlayer struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewBellPlayer writes bells to writer.
func NewBellPlayer(writer io.Writer) *BellPlayer {
	return &BellPlayer{writer: writer}
}

// Play rings the bell for cue.
func (player *BellPlayer) Play(cue Cue) error {
	count := 1
	switch cue {
	case CueShortBreak:
		count = 2
	case CueLongBreak:
		count = 3
	}

	player.mu.Lock()
	defer player.mu.Unlock()
	if _, err := player.writer.Write(bytes.Repeat([]byte{'\a'}, count)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Cues plays the cue of every completed interval.
type Cues struct {
	player CuePlayer
	logger *slog.Logger
}

// NewCues wraps player as a timer observer.
func NewCues(player CuePlayer, logger *slog.Logger) *Cues {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Cues{player: player, logger: logger}
}

// HandleEvent plays the cue mapped to the finished mode.
func (cues *Cues) HandleEvent(event timer.Event) {
	if event.Type != timer.EventIntervalCompleted {
		return
	}
	cues.Play(CueFor(event.Mode))
}

// Play plays cue, logging failures.
func (cues *Cues) Play(cue Cue) {
	if cues.player == nil {
		return
	}
	if err := cues.player.Play(cue); err != nil {
		cues.logger.Debug("play cue", "cue", cue, "error", err)
	}
}
