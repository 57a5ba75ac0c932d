package notify

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

type sentNotification struct {
	title string
	body  string
}

type fakeSender struct {
	sent []sentNotification
	err  error
}

func (sender *fakeSender) Send(title, body string) error {
	if sender.err != nil {
		return sender.err
	}
	sender.sent = append(sender.sent, sentNotification{title: title, body: body})
	return nil
}

func completed(mode model.Mode) timer.Event {
	return timer.Event{Type: timer.EventIntervalCompleted, Mode: mode}
}

func TestGate_SendsOnlyWhenGranted(t *testing.T) {
	sender := &fakeSender{}
	gate := NewGate(GateConfig{Title: "Pomodoro", Sender: sender, Permission: PermissionDenied})

	gate.HandleEvent(completed(model.ModePomodoro))
	assert.Empty(t, sender.sent)

	gate = NewGate(GateConfig{Title: "Pomodoro", Sender: sender, Permission: PermissionGranted})
	gate.HandleEvent(timer.Event{Type: timer.EventTick, Mode: model.ModePomodoro})
	gate.HandleEvent(completed(model.ModePomodoro))
	gate.HandleEvent(completed(model.ModeShortBreak))
	gate.HandleEvent(completed(model.ModeLongBreak))

	assert.Equal(t, []sentNotification{
		{title: "Pomodoro", body: "Take a break!"},
		{title: "Pomodoro", body: "Get back to work!"},
		{title: "Pomodoro", body: "Get back to work!"},
	}, sender.sent)
}

func TestGate_RequestsPermissionOnce(t *testing.T) {
	sender := &fakeSender{}
	asked := 0
	var changes []Permission
	gate := NewGate(GateConfig{
		Sender: sender,
		Requester: RequesterFunc(func(context.Context) (Permission, error) {
			asked++
			return PermissionGranted, nil
		}),
		OnChange: func(permission Permission) {
			changes = append(changes, permission)
		},
	})
	require.Equal(t, PermissionDefault, gate.Permission())

	assert.Equal(t, PermissionGranted, gate.RequestPermission(context.Background()))
	assert.Equal(t, PermissionGranted, gate.RequestPermission(context.Background()))

	assert.Equal(t, 1, asked)
	assert.Equal(t, []Permission{PermissionGranted}, changes)
	assert.Equal(t, []sentNotification{{body: WelcomeText}}, sender.sent)
}

func TestGate_DoesNotAskAfterAnswer(t *testing.T) {
	asked := 0
	requester := RequesterFunc(func(context.Context) (Permission, error) {
		asked++
		return PermissionGranted, nil
	})

	for _, permission := range []Permission{PermissionGranted, PermissionDenied} {
		gate := NewGate(GateConfig{Sender: &fakeSender{}, Requester: requester, Permission: permission})
		assert.Equal(t, permission, gate.RequestPermission(context.Background()))
	}
	assert.Zero(t, asked)
}

func TestGate_DeniedSendsNothing(t *testing.T) {
	sender := &fakeSender{}
	gate := NewGate(GateConfig{
		Sender: sender,
		Requester: RequesterFunc(func(context.Context) (Permission, error) {
			return PermissionDenied, nil
		}),
	})

	assert.Equal(t, PermissionDenied, gate.RequestPermission(context.Background()))
	gate.HandleEvent(completed(model.ModePomodoro))
	assert.Empty(t, sender.sent)
}

func TestGate_UnsupportedWithoutSender(t *testing.T) {
	gate := NewGate(GateConfig{Permission: PermissionGranted})
	assert.Equal(t, PermissionUnsupported, gate.Permission())
	assert.Equal(t, PermissionUnsupported, gate.RequestPermission(context.Background()))
	assert.NotPanics(t, func() {
		gate.HandleEvent(completed(model.ModePomodoro))
	})
}

func TestGate_RequesterErrorsDegradeSilently(t *testing.T) {
	gate := NewGate(GateConfig{
		Sender: &fakeSender{},
		Requester: RequesterFunc(func(context.Context) (Permission, error) {
			return "", ErrUnsupported
		}),
	})
	assert.Equal(t, PermissionUnsupported, gate.RequestPermission(context.Background()))

	gate = NewGate(GateConfig{
		Sender: &fakeSender{},
		Requester: RequesterFunc(func(context.Context) (Permission, error) {
			return "", errors.New("dialog closed")
		}),
	})
	assert.Equal(t, PermissionDefault, gate.RequestPermission(context.Background()))
}

func TestGate_SetPermission(t *testing.T) {
	sender := &fakeSender{}
	gate := NewGate(GateConfig{Sender: sender})

	gate.SetPermission(PermissionGranted)
	gate.HandleEvent(completed(model.ModePomodoro))
	require.Len(t, sender.sent, 1)

	gate.SetPermission(PermissionDenied)
	gate.HandleEvent(completed(model.ModePomodoro))
	assert.Len(t, sender.sent, 1)

	unsupported := NewGate(GateConfig{})
	unsupported.SetPermission(PermissionGranted)
	assert.Equal(t, PermissionUnsupported, unsupported.Permission())
}

func TestGate_SendErrorsAreSwallowed(t *testing.T) {
	gate := NewGate(GateConfig{Sender: &fakeSender{err: errors.New("dbus down")}, Permission: PermissionGranted})
	assert.NotPanics(t, func() {
		gate.HandleEvent(completed(model.ModePomodoro))
	})
}

func TestParsePermission(t *testing.T) {
	assert.Equal(t, PermissionGranted, ParsePermission("granted"))
	assert.Equal(t, PermissionDenied, ParsePermission("denied"))
	assert.Equal(t, PermissionDefault, ParsePermission(""))
	assert.Equal(t, PermissionDefault, ParsePermission("unsupported"))
}

func TestBellPlayer(t *testing.T) {
	var out bytes.Buffer
	player := NewBellPlayer(&out)

	require.NoError(t, player.Play(CueFor(model.ModePomodoro)))
	require.NoError(t, player.Play(CueFor(model.ModeShortBreak)))
	require.NoError(t, player.Play(CueFor(model.ModeLongBreak)))
	require.NoError(t, player.Play(CueButton))

	assert.Equal(t, "\a\a\a\a\a\a\a", out.String())
}

type cueRecorder struct {
	cues []Cue
}

func (recorder *cueRecorder) Play(cue Cue) error {
	recorder.cues = append(recorder.cues, cue)
	return nil
}

func TestCues_PlaysFinishedMode(t *testing.T) {
	recorder := &cueRecorder{}
	cues := NewCues(recorder, nil)

	cues.HandleEvent(timer.Event{Type: timer.EventModeChanged, Mode: model.ModeShortBreak})
	cues.HandleEvent(completed(model.ModePomodoro))
	cues.HandleEvent(completed(model.ModeLongBreak))

	assert.Equal(t, []Cue{CuePomodoro, CueLongBreak}, recorder.cues)
	assert.NotPanics(t, func() {
		NewCues(nil, nil).Play(CueButton)
	})
}
