package preferences

import (
	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
)

// Settings defines editable user preferences.
type Settings struct {
	PomodoroMinutes   int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	Notifications     notify.Permission
	LogLevel          string
}

// DefaultSettings returns default settings for Pomodoro.
func DefaultSettings() Settings {
	defaults := model.DefaultTimerConfig()
	return Settings{
		PomodoroMinutes:   defaults.Pomodoro,
		ShortBreakMinutes: defaults.ShortBreak,
		LongBreakMinutes:  defaults.LongBreak,
		LongBreakInterval: defaults.LongBreakInterval,
		Notifications:     notify.PermissionDefault,
		LogLevel:          "info",
	}
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Pomodoro:          settings.PomodoroMinutes,
		ShortBreak:        settings.ShortBreakMinutes,
		LongBreak:         settings.LongBreakMinutes,
		LongBreakInterval: settings.LongBreakInterval,
	}
}
