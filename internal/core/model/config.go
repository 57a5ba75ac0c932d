package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig indicates a non-positive preset or cadence.
var ErrInvalidConfig = errors.New("invalid timer config")

// TimerConfig holds the nominal interval lengths and the long-break cadence.
type TimerConfig struct {
	Pomodoro          int
	ShortBreak        int
	LongBreak         int
	LongBreakInterval int
}

// DefaultTimerConfig returns the classic 25/5/15 preset with a long break every 4 pomodoros.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		Pomodoro:          25,
		ShortBreak:        5,
		LongBreak:         15,
		LongBreakInterval: 4,
	}
}

// Minutes returns the nominal length of mode in minutes.
func (config TimerConfig) Minutes(mode Mode) int {
	switch mode {
	case ModePomodoro:
		return config.Pomodoro
	case ModeShortBreak:
		return config.ShortBreak
	case ModeLongBreak:
		return config.LongBreak
	default:
		return 0
	}
}

// Duration returns the nominal length of mode.
func (config TimerConfig) Duration(mode Mode) time.Duration {
	return time.Duration(config.Minutes(mode)) * time.Minute
}

// Validate reports whether every preset and the cadence are positive.
func (config TimerConfig) Validate() error {
	for _, mode := range Modes() {
		if config.Minutes(mode) <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, mode)
		}
	}
	if config.LongBreakInterval <= 0 {
		return fmt.Errorf("%w: long break interval must be positive", ErrInvalidConfig)
	}
	return nil
}
