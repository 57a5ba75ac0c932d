package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"pomodoro/internal/core/model"
)

// ErrInvalidGoal indicates goal input that is negative or not a number.
var ErrInvalidGoal = errors.New("invalid goal")

// GoalObserver receives goal progress after every change.
type GoalObserver func(model.Progress)

// Ledger is the append-only history of completed intervals together with
// the daily goal tracker. It lives only as long as the process.
type Ledger struct {
	mu        sync.Mutex
	clock     clockwork.Clock
	records   []model.SessionRecord
	goal      int
	completed int
	observers []GoalObserver
}

// New creates an empty ledger. A nil clock uses the real clock.
func New(clock clockwork.Clock) *Ledger {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Ledger{clock: clock}
}

// Observe registers a goal observer.
func (ledger *Ledger) Observe(observer GoalObserver) {
	ledger.mu.Lock()
	ledger.observers = append(ledger.observers, observer)
	ledger.mu.Unlock()
}

// RecordCompletion appends a record stamped with the current time. Pomodoro
// records count toward the goal.
func (ledger *Ledger) RecordCompletion(mode model.Mode, durationMinutes int) model.SessionRecord {
	record := model.SessionRecord{
		ID:              uuid.New(),
		Mode:            mode,
		DurationMinutes: durationMinutes,
		CompletedAt:     ledger.clock.Now(),
	}

	ledger.mu.Lock()
	ledger.records = append(ledger.records, record)
	if mode != model.ModePomodoro {
		ledger.mu.Unlock()
		return record
	}
	ledger.completed++
	progress, observers := ledger.progressLocked()
	ledger.mu.Unlock()

	notify(observers, progress)
	return record
}

// SetGoal replaces the goal and restarts progress from zero. Negative values
// are rejected and leave the current goal in place.
func (ledger *Ledger) SetGoal(goal int) error {
	if goal < 0 {
		return fmt.Errorf("%w: %d is negative", ErrInvalidGoal, goal)
	}

	ledger.mu.Lock()
	ledger.goal = goal
	ledger.completed = 0
	progress, observers := ledger.progressLocked()
	ledger.mu.Unlock()

	notify(observers, progress)
	return nil
}

// SetGoalInput parses user text as a goal.
func (ledger *Ledger) SetGoalInput(text string) error {
	goal, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fmt.Errorf("%w: %q is not a whole number", ErrInvalidGoal, text)
	}
	return ledger.SetGoal(goal)
}

// Query returns the goal progress.
func (ledger *Ledger) Query() model.Progress {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return model.Progress{Completed: ledger.completed, Goal: ledger.goal}
}

// Records returns the history in completion order.
func (ledger *Ledger) Records() []model.SessionRecord {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return append([]model.SessionRecord(nil), ledger.records...)
}

// Len returns the number of records.
func (ledger *Ledger) Len() int {
	ledger.mu.Lock()
	defer ledger.mu.Unlock()
	return len(ledger.records)
}

func (ledger *Ledger) progressLocked() (model.Progress, []GoalObserver) {
	progress := model.Progress{Completed: ledger.completed, Goal: ledger.goal}
	return progress, append([]GoalObserver(nil), ledger.observers...)
}

func notify(observers []GoalObserver, progress model.Progress) {
	for _, observer := range observers {
		observer(progress)
	}
}
