package timer

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"pomodoro/internal/core/model"
)

// Recorder receives every completed interval.
type Recorder interface {
	RecordCompletion(mode model.Mode, durationMinutes int) model.SessionRecord
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
	Clock        clockwork.Clock
	Recorder     Recorder
	Logger       *slog.Logger
}

// Snapshot is a point-in-time copy of the timer state.
type Snapshot struct {
	Mode      model.Mode
	Minutes   int
	Remaining Remaining
	Sessions  int
	Running   bool
	EndsAt    time.Time
}

// Progress returns the elapsed fraction of the current interval in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	total := snapshot.Minutes * 60
	if total <= 0 {
		return 0
	}
	progress := float64(total-snapshot.Remaining.Total) / float64(total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

type tickHandle struct {
	stop chan struct{}
}

// Timer is the pomodoro state machine. It cycles pomodoro, short break and
// long break intervals, restarting automatically at every boundary.
type Timer struct {
	mu        sync.Mutex
	config    model.TimerConfig
	options   Config
	logger    *slog.Logger
	mode      model.Mode
	minutes   int
	remaining time.Duration
	endsAt    time.Time
	sessions  int
	counted   bool
	running   bool
	tick      *tickHandle
	closed    bool

	observers   []Observer
	events      []chan Event
	pending     []Event
	dispatching bool
	orphaned    []chan Event
}

// New creates a stopped Timer in pomodoro mode with the full pomodoro duration remaining.
func New(config model.TimerConfig, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if err := config.Validate(); err != nil {
		logger.Warn("falling back to default presets", "error", err)
		config = model.DefaultTimerConfig()
	}

	return &Timer{
		config:    config,
		options:   options,
		logger:    logger,
		mode:      model.ModePomodoro,
		minutes:   config.Minutes(model.ModePomodoro),
		remaining: config.Duration(model.ModePomodoro),
	}
}

// Config returns the presets the timer runs with.
func (timer *Timer) Config() model.TimerConfig {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.config
}

// UpdateConfig replaces the presets. A stopped timer is reset to the new
// duration of its mode; a running countdown keeps its end time and the new
// presets apply from the next interval.
func (timer *Timer) UpdateConfig(config model.TimerConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("update config: %w", err)
	}

	timer.mu.Lock()
	timer.config = config
	if !timer.running && !timer.closed {
		timer.switchLocked(timer.mode, timer.options.Clock.Now())
	}
	timer.unlockAndDispatch()
	return nil
}

// Observe registers a synchronous observer.
func (timer *Timer) Observe(observer Observer) {
	timer.mu.Lock()
	timer.observers = append(timer.observers, observer)
	timer.mu.Unlock()
}

// Subscribe registers a new observer channel. Sends never block; a full
// channel drops the event.
func (timer *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	timer.mu.Lock()
	if timer.closed {
		close(ch)
	} else {
		timer.events = append(timer.events, ch)
	}
	timer.mu.Unlock()
	return ch
}

// Start begins counting down the remaining time. It is a no-op while running.
func (timer *Timer) Start() {
	timer.mu.Lock()
	if timer.running || timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.beginLocked(timer.options.Clock.Now())
	timer.armLocked()
	timer.unlockAndDispatch()
}

// Stop halts the countdown, keeping the remaining time. It is a no-op while stopped.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	if !timer.running {
		timer.mu.Unlock()
		return
	}
	timer.haltLocked(timer.options.Clock.Now())
	timer.unlockAndDispatch()
}

// Toggle starts a stopped timer or stops a running one and reports whether it is now running.
func (timer *Timer) Toggle() bool {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return false
	}
	now := timer.options.Clock.Now()
	if timer.running {
		timer.haltLocked(now)
	} else {
		timer.beginLocked(now)
		timer.armLocked()
	}
	running := timer.running
	timer.unlockAndDispatch()
	return running
}

// SwitchMode selects mode with its full nominal duration. A running
// countdown is halted.
func (timer *Timer) SwitchMode(mode model.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("switch mode: %w: %q", model.ErrUnknownMode, mode)
	}

	timer.mu.Lock()
	now := timer.options.Clock.Now()
	if timer.running {
		timer.haltLocked(now)
	}
	timer.switchLocked(mode, now)
	timer.unlockAndDispatch()
	return nil
}

// Snapshot returns the current state. While running, the remaining time is
// recomputed from the end time.
func (timer *Timer) Snapshot() Snapshot {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	remaining := timer.remaining
	if timer.running {
		remaining = timer.endsAt.Sub(timer.options.Clock.Now())
	}
	snapshot := Snapshot{
		Mode:      timer.mode,
		Minutes:   timer.minutes,
		Remaining: RemainingFrom(remaining),
		Sessions:  timer.sessions,
		Running:   timer.running,
	}
	if timer.running {
		snapshot.EndsAt = timer.endsAt
	}
	return snapshot
}

// Close stops the countdown and closes subscriber channels.
func (timer *Timer) Close() {
	timer.mu.Lock()
	if timer.closed {
		timer.mu.Unlock()
		return
	}
	timer.closed = true
	timer.disarmLocked()
	timer.running = false
	events := timer.events
	timer.events = nil
	if timer.dispatching {
		timer.orphaned = append(timer.orphaned, events...)
		timer.mu.Unlock()
		return
	}
	timer.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (timer *Timer) run(handle *tickHandle, ticker clockwork.Ticker) {
	defer ticker.Stop()

	for {
		select {
		case <-handle.stop:
			return
		case <-ticker.Chan():
			timer.onTick(handle)
		}
	}
}

func (timer *Timer) onTick(handle *tickHandle) {
	timer.mu.Lock()
	if timer.tick != handle || !timer.running {
		timer.mu.Unlock()
		return
	}
	timer.advanceLocked(timer.options.Clock.Now())
	timer.unlockAndDispatch()
}

// advanceLocked recomputes the remaining time from the end time and, at zero,
// moves to the next interval and re-arms it on the same tick handle.
func (timer *Timer) advanceLocked(now time.Time) {
	timer.remaining = timer.endsAt.Sub(now)
	remaining := RemainingFrom(timer.remaining)
	timer.queueLocked(Event{
		Type:      EventTick,
		Mode:      timer.mode,
		Remaining: remaining,
		Minutes:   timer.minutes,
		Sessions:  timer.sessions,
		Running:   true,
		At:        now,
	})
	if remaining.Total > 0 {
		return
	}

	finished := timer.mode
	finishedMinutes := timer.minutes
	next := timer.nextModeLocked()
	timer.logger.Debug("interval completed",
		"mode", finished,
		"next", next,
		"sessions", timer.sessions,
		"overshoot", -timer.remaining)

	timer.switchLocked(next, now)
	timer.queueLocked(Event{
		Type:     EventIntervalCompleted,
		Mode:     finished,
		Minutes:  finishedMinutes,
		Sessions: timer.sessions,
		Running:  true,
		At:       now,
	})
	timer.beginLocked(now)
}

func (timer *Timer) nextModeLocked() model.Mode {
	if timer.mode != model.ModePomodoro {
		return model.ModePomodoro
	}
	if timer.sessions%timer.config.LongBreakInterval == 0 {
		return model.ModeLongBreak
	}
	return model.ModeShortBreak
}

func (timer *Timer) switchLocked(mode model.Mode, now time.Time) {
	timer.mode = mode
	timer.minutes = timer.config.Minutes(mode)
	timer.remaining = timer.config.Duration(mode)
	timer.counted = false
	timer.queueLocked(Event{
		Type:      EventModeChanged,
		Mode:      mode,
		Remaining: RemainingFrom(timer.remaining),
		Minutes:   timer.minutes,
		Sessions:  timer.sessions,
		Running:   timer.running,
		At:        now,
	})
}

// beginLocked computes the end time and counts a pomodoro the first time it
// is started.
func (timer *Timer) beginLocked(now time.Time) {
	timer.endsAt = now.Add(timer.remaining)
	if timer.mode == model.ModePomodoro && !timer.counted {
		timer.sessions++
		timer.counted = true
	}
	timer.running = true
	timer.queueLocked(Event{
		Type:      EventStarted,
		Mode:      timer.mode,
		Remaining: RemainingFrom(timer.remaining),
		Minutes:   timer.minutes,
		Sessions:  timer.sessions,
		Running:   true,
		At:        now,
	})
}

func (timer *Timer) haltLocked(now time.Time) {
	timer.disarmLocked()
	timer.remaining = timer.endsAt.Sub(now)
	timer.running = false
	timer.queueLocked(Event{
		Type:      EventStopped,
		Mode:      timer.mode,
		Remaining: RemainingFrom(timer.remaining),
		Minutes:   timer.minutes,
		Sessions:  timer.sessions,
		At:        now,
	})
}

func (timer *Timer) armLocked() {
	if timer.tick != nil {
		panic("timer: tick armed while another is live")
	}
	handle := &tickHandle{stop: make(chan struct{})}
	timer.tick = handle
	go timer.run(handle, timer.options.Clock.NewTicker(timer.options.TickInterval))
}

func (timer *Timer) disarmLocked() {
	if timer.tick == nil {
		return
	}
	close(timer.tick.stop)
	timer.tick = nil
}

func (timer *Timer) queueLocked(event Event) {
	timer.pending = append(timer.pending, event)
}

// unlockAndDispatch releases the lock and delivers queued events outside it.
// Only one goroutine delivers at a time; events queued meanwhile, including
// by observers calling back into the timer, are delivered by that goroutine
// after the current batch.
func (timer *Timer) unlockAndDispatch() {
	if timer.dispatching {
		timer.mu.Unlock()
		return
	}
	timer.dispatching = true
	for len(timer.pending) > 0 {
		events := timer.pending
		timer.pending = nil
		observers := append([]Observer(nil), timer.observers...)
		channels := append([]chan Event(nil), timer.events...)
		recorder := timer.options.Recorder
		timer.mu.Unlock()

		for _, event := range events {
			deliver(event, observers, channels, recorder)
		}

		timer.mu.Lock()
	}
	timer.dispatching = false
	orphaned := timer.orphaned
	timer.orphaned = nil
	timer.mu.Unlock()

	for _, ch := range orphaned {
		close(ch)
	}
}

func deliver(event Event, observers []Observer, channels []chan Event, recorder Recorder) {
	if event.Type == EventIntervalCompleted && recorder != nil {
		recorder.RecordCompletion(event.Mode, event.Minutes)
	}
	for _, observer := range observers {
		observer.HandleEvent(event)
	}
	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
}
