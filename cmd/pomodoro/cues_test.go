package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/notify"
)

func TestTerminalCuePlayer_WritesToErrorStream(t *testing.T) {
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	player := terminalCuePlayer(root.ErrOrStderr())
	require.NoError(t, player.Play(notify.CueLongBreak))

	assert.Equal(t, "\a\a\a", stderr.String())
	assert.Empty(t, stdout.String())
}

func TestDesktopCuePlayer_LogsTerminalOnly(t *testing.T) {
	var logs, bells bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	player := desktopCuePlayer(&bells, logger)
	require.NoError(t, player.Play(notify.CueButton))

	assert.Equal(t, "\a", bells.String())
	assert.Contains(t, logs.String(), "level=DEBUG")
	assert.Contains(t, logs.String(), "terminal bell")
}
