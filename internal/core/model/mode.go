package model

import (
	"errors"
	"fmt"
)

// ErrUnknownMode indicates a mode name outside the three presets.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the kind of interval the timer is counting down.
type Mode string

const (
	ModePomodoro   Mode = "pomodoro"
	ModeShortBreak Mode = "shortBreak"
	ModeLongBreak  Mode = "longBreak"
)

// Modes returns all modes in display order.
func Modes() []Mode {
	return []Mode{ModePomodoro, ModeShortBreak, ModeLongBreak}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(value string) (Mode, error) {
	mode := Mode(value)
	if !mode.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, value)
	}
	return mode, nil
}

// Valid reports whether mode is one of the presets.
func (mode Mode) Valid() bool {
	switch mode {
	case ModePomodoro, ModeShortBreak, ModeLongBreak:
		return true
	default:
		return false
	}
}

// IsBreak reports whether mode is a short or long break.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// Label returns a human readable name.
func (mode Mode) Label() string {
	switch mode {
	case ModePomodoro:
		return "Pomodoro"
	case ModeShortBreak:
		return "Short break"
	case ModeLongBreak:
		return "Long break"
	default:
		return string(mode)
	}
}

// Prompt is the line shown to the user while mode is active.
func (mode Mode) Prompt() string {
	if mode == ModePomodoro {
		return "Get back to work!"
	}
	return "Take a break!"
}
