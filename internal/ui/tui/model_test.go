package tui

import (
	"errors"
	"strconv"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

type fakeController struct {
	snapshot timer.Snapshot
	goal     model.Progress
	history  []model.SessionRecord
	modes    []model.Mode
	toggles  int
}

func (controller *fakeController) Toggle() bool {
	controller.toggles++
	controller.snapshot.Running = !controller.snapshot.Running
	return controller.snapshot.Running
}

func (controller *fakeController) SwitchMode(mode model.Mode) error {
	controller.modes = append(controller.modes, mode)
	controller.snapshot.Mode = mode
	controller.snapshot.Running = false
	return nil
}

func (controller *fakeController) SetGoalInput(text string) error {
	goal, err := strconv.Atoi(text)
	if err != nil || goal < 0 {
		return errors.New("invalid goal")
	}
	controller.goal = model.Progress{Goal: goal}
	return nil
}

func (controller *fakeController) Snapshot() timer.Snapshot       { return controller.snapshot }
func (controller *fakeController) Goal() model.Progress           { return controller.goal }
func (controller *fakeController) History() []model.SessionRecord { return controller.history }

func (controller *fakeController) Subscribe(int) <-chan timer.Event {
	ch := make(chan timer.Event)
	close(ch)
	return ch
}

func newFake() *fakeController {
	return &fakeController{snapshot: timer.Snapshot{
		Mode:      model.ModePomodoro,
		Minutes:   25,
		Remaining: timer.RemainingFrom(25 * time.Minute),
	}}
}

func runes(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated
}

func TestUpdate_ToggleAndModes(t *testing.T) {
	controller := newFake()
	m := New(controller)

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, 1, controller.toggles)
	assert.True(t, m.snapshot.Running)

	m = update(t, m, runes("3"))
	m = update(t, m, runes("2"))
	m = update(t, m, runes("1"))
	assert.Equal(t, []model.Mode{model.ModeLongBreak, model.ModeShortBreak, model.ModePomodoro}, controller.modes)
	assert.Equal(t, model.ModePomodoro, m.snapshot.Mode)
	assert.False(t, m.snapshot.Running)
}

func TestUpdate_Quit(t *testing.T) {
	m := New(newFake())

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_GoalEditing(t *testing.T) {
	controller := newFake()
	m := New(controller)

	m = update(t, m, runes("g"))
	require.True(t, m.editing)

	m = update(t, m, runes("q"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.editing)
	assert.Equal(t, "enter a whole number of sessions", m.status)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = update(t, m, runes("4"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.editing)
	assert.Empty(t, m.status)
	assert.Equal(t, model.Progress{Goal: 4}, m.goal)
	assert.Contains(t, m.View(), "Goal: 0/4 sessions completed")
}

func TestUpdate_GoalEditingCancel(t *testing.T) {
	controller := newFake()
	m := New(controller)

	m = update(t, m, runes("g"))
	m = update(t, m, runes("7"))
	assert.Contains(t, m.View(), "Daily goal: 7_")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.editing)
	assert.Equal(t, model.Progress{}, controller.goal)
	assert.Zero(t, controller.toggles)
}

func TestUpdate_IntervalCompletedRefreshes(t *testing.T) {
	controller := newFake()
	m := New(controller)

	completedAt := time.Date(2024, 3, 1, 10, 25, 0, 0, time.Local)
	controller.snapshot = timer.Snapshot{
		Mode:      model.ModeShortBreak,
		Minutes:   5,
		Remaining: timer.RemainingFrom(5 * time.Minute),
		Sessions:  1,
		Running:   true,
	}
	controller.goal = model.Progress{Completed: 1, Goal: 1}
	controller.history = []model.SessionRecord{
		{Mode: model.ModePomodoro, DurationMinutes: 25, CompletedAt: completedAt},
	}

	m = update(t, m, EventMsg{Event: timer.Event{Type: timer.EventIntervalCompleted, Mode: model.ModePomodoro}})
	m.now = func() time.Time { return completedAt.Add(3 * time.Minute) }

	assert.Equal(t, "Pomodoro complete. Take a break!", m.status)
	view := m.View()
	assert.Contains(t, view, "05:00")
	assert.Contains(t, view, "pomodoro session (25 minutes) at 10:25:00")
	assert.Contains(t, view, "3 minutes ago")
	assert.Contains(t, view, "goal reached!")
}

func TestView_Initial(t *testing.T) {
	view := New(newFake()).View()

	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "Get back to work!")
	assert.Contains(t, view, "stopped")
	assert.Contains(t, view, "No session history")
	assert.Contains(t, view, "Goal: 0/0 sessions completed")
}

func TestRenderState(t *testing.T) {
	m := New(newFake())
	m.snapshot.Running = true
	m.snapshot.Sessions = 2
	assert.Equal(t, "running, 2nd pomodoro", m.renderState())

	m.snapshot.Mode = model.ModeLongBreak
	assert.Equal(t, "running", m.renderState())
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		fraction float64
		filled   int
	}{
		{name: "empty", fraction: 0, filled: 0},
		{name: "half", fraction: 0.5, filled: 5},
		{name: "full", fraction: 1, filled: 10},
		{name: "clamped", fraction: 3, filled: 10},
		{name: "negative", fraction: -1, filled: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := ProgressBar(tt.fraction, 10)
			assert.Equal(t, tt.filled, countRune(bar, '█'))
			assert.Equal(t, 10-tt.filled, countRune(bar, '░'))
		})
	}
}

func countRune(text string, r rune) int {
	count := 0
	for _, c := range text {
		if c == r {
			count++
		}
	}
	return count
}
