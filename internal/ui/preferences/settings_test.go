package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
)

func TestDefaultSettings_MatchDefaultTimerConfig(t *testing.T) {
	config := DefaultSettings().TimerConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, model.DefaultTimerConfig(), config)
}

func TestApply(t *testing.T) {
	base := DefaultSettings()

	settings := Apply(base, Form{
		Pomodoro:   "50",
		ShortBreak: "ten",
		LongBreak:  "0",
		Interval:   "3",
	})
	assert.Equal(t, 50, settings.PomodoroMinutes)
	assert.Equal(t, base.ShortBreakMinutes, settings.ShortBreakMinutes)
	assert.Equal(t, base.LongBreakMinutes, settings.LongBreakMinutes)
	assert.Equal(t, 3, settings.LongBreakInterval)
	assert.Equal(t, notify.PermissionDefault, settings.Notifications)
}

func TestApply_Notifications(t *testing.T) {
	settings := Apply(DefaultSettings(), Form{Notifications: true})
	assert.Equal(t, notify.PermissionGranted, settings.Notifications)

	settings = Apply(settings, Form{Notifications: false})
	assert.Equal(t, notify.PermissionDenied, settings.Notifications)

	settings = Apply(settings, Form{Notifications: false})
	assert.Equal(t, notify.PermissionDenied, settings.Notifications)
}
