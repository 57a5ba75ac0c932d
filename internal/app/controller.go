package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"pomodoro/internal/core/ledger"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/notify"
)

// Options contains Controller dependencies. Zero values are usable.
type Options struct {
	Clock        clockwork.Clock
	TickInterval time.Duration
	Gate         *notify.Gate
	Player       notify.CuePlayer
	Logger       *slog.Logger
}

// Controller owns the single timer and ledger of a running process and is
// the command surface for presentation adapters.
type Controller struct {
	timer  *timer.Timer
	ledger *ledger.Ledger
	gate   *notify.Gate
	cues   *notify.Cues
	logger *slog.Logger
}

// New wires the timer, ledger, notifications and cues together.
func New(config model.TimerConfig, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	clock := options.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	sessions := ledger.New(clock)
	keeper := timer.New(config, timer.Config{
		TickInterval: options.TickInterval,
		Clock:        clock,
		Recorder:     sessions,
		Logger:       logger.With("component", "timer"),
	})

	controller := &Controller{
		timer:  keeper,
		ledger: sessions,
		gate:   options.Gate,
		cues:   notify.NewCues(options.Player, logger),
		logger: logger,
	}
	if controller.gate != nil {
		keeper.Observe(controller.gate)
	}
	keeper.Observe(controller.cues)
	keeper.Observe(timer.ObserverFunc(controller.logEvent))
	return controller
}

// RequestNotifications asks for notification permission if it was never answered.
func (controller *Controller) RequestNotifications(ctx context.Context) notify.Permission {
	if controller.gate == nil {
		return notify.PermissionUnsupported
	}
	return controller.gate.RequestPermission(ctx)
}

// Start starts the countdown.
func (controller *Controller) Start() {
	controller.timer.Start()
}

// Stop stops the countdown.
func (controller *Controller) Stop() {
	controller.timer.Stop()
}

// Toggle handles the main start/stop button, playing the button cue.
func (controller *Controller) Toggle() bool {
	controller.cues.Play(notify.CueButton)
	return controller.timer.Toggle()
}

// SwitchMode selects a mode and halts any running countdown.
func (controller *Controller) SwitchMode(mode model.Mode) error {
	return controller.timer.SwitchMode(mode)
}

// SetGoal replaces the daily goal.
func (controller *Controller) SetGoal(goal int) error {
	return controller.ledger.SetGoal(goal)
}

// SetGoalInput replaces the daily goal from user text.
func (controller *Controller) SetGoalInput(text string) error {
	err := controller.ledger.SetGoalInput(text)
	if err != nil {
		controller.logger.Debug("goal rejected", "input", text, "error", err)
	}
	return err
}

// Snapshot returns the timer state.
func (controller *Controller) Snapshot() timer.Snapshot {
	return controller.timer.Snapshot()
}

// Config returns the active presets.
func (controller *Controller) Config() model.TimerConfig {
	return controller.timer.Config()
}

// UpdateConfig replaces the presets.
func (controller *Controller) UpdateConfig(config model.TimerConfig) error {
	return controller.timer.UpdateConfig(config)
}

// SetNotifications records a permission chosen outside the prompt, such as
// from preferences.
func (controller *Controller) SetNotifications(permission notify.Permission) {
	if controller.gate != nil {
		controller.gate.SetPermission(permission)
	}
}

// Goal returns the goal progress.
func (controller *Controller) Goal() model.Progress {
	return controller.ledger.Query()
}

// History returns the completed intervals in order.
func (controller *Controller) History() []model.SessionRecord {
	return controller.ledger.Records()
}

// Observe registers a timer observer.
func (controller *Controller) Observe(observer timer.Observer) {
	controller.timer.Observe(observer)
}

// Subscribe returns a buffered channel of timer events.
func (controller *Controller) Subscribe(buffer int) <-chan timer.Event {
	return controller.timer.Subscribe(buffer)
}

// ObserveGoal registers a goal observer.
func (controller *Controller) ObserveGoal(observer ledger.GoalObserver) {
	controller.ledger.Observe(observer)
}

// Close stops the timer and releases subscribers.
func (controller *Controller) Close() {
	controller.timer.Close()
}

func (controller *Controller) logEvent(event timer.Event) {
	switch event.Type {
	case timer.EventTick:
		return
	case timer.EventIntervalCompleted:
		controller.logger.Info("interval completed",
			"mode", event.Mode,
			"minutes", event.Minutes,
			"sessions", event.Sessions)
	default:
		controller.logger.Debug("timer event",
			"type", event.Type,
			"mode", event.Mode,
			"remaining", event.Remaining.String())
	}
}
