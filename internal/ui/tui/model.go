package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

// Controller is the command surface the terminal UI drives.
type Controller interface {
	Toggle() bool
	SwitchMode(mode model.Mode) error
	SetGoalInput(text string) error
	Snapshot() timer.Snapshot
	Goal() model.Progress
	History() []model.SessionRecord
	Subscribe(buffer int) <-chan timer.Event
}

// EventMsg carries a timer event into the program.
type EventMsg struct {
	Event timer.Event
}

const (
	barWidth     = 32
	historyLimit = 8
)

// Model is the root Bubble Tea model.
type Model struct {
	controller Controller
	now        func() time.Time

	snapshot timer.Snapshot
	goal     model.Progress
	history  []model.SessionRecord

	editing bool
	input   string
	status  string
	width   int
}

// New creates a Model rendering the controller's current state.
func New(controller Controller) Model {
	m := Model{controller: controller, now: time.Now}
	m.refresh()
	return m
}

func (m *Model) refresh() {
	m.snapshot = m.controller.Snapshot()
	m.goal = m.controller.Goal()
	m.history = m.controller.History()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width

	case EventMsg:
		m.refresh()
		if msg.Event.Type == timer.EventIntervalCompleted {
			m.status = fmt.Sprintf("%s complete. %s", msg.Event.Mode.Label(), m.snapshot.Mode.Prompt())
		}

	case tea.KeyMsg:
		if m.editing {
			return m.updateGoalInput(msg), nil
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ", "space", "enter":
			m.controller.Toggle()
			m.status = ""
		case "1", "2", "3":
			mode := model.Modes()[msg.String()[0]-'1']
			if err := m.controller.SwitchMode(mode); err != nil {
				m.status = err.Error()
			} else {
				m.status = ""
			}
		case "g":
			m.editing = true
			m.input = ""
			m.status = ""
		}
		m.refresh()
	}
	return m, nil
}

func (m Model) updateGoalInput(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc", "ctrl+c":
		m.editing = false
		m.input = ""
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case "enter":
		if err := m.controller.SetGoalInput(m.input); err != nil {
			m.status = "enter a whole number of sessions"
			return m
		}
		m.editing = false
		m.input = ""
		m.status = ""
		m.goal = m.controller.Goal()
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		}
	}
	return m
}

func (m Model) View() string {
	accent := Accent(m.snapshot.Mode)

	sections := []string{
		m.renderTabs(accent),
		"",
		Clock.Foreground(accent).Render(m.snapshot.Remaining.String()),
		ProgressBar(m.snapshot.Progress(), barWidth),
		Muted.Render(m.snapshot.Mode.Prompt()),
		m.renderState(),
		"",
		m.renderGoal(),
		"",
		Title.Render("Session history"),
		m.renderHistory(),
	}
	if m.status != "" {
		sections = append(sections, "", Hot.Render(m.status))
	}
	sections = append(sections, "", Muted.Render(helpLine(m.editing)))

	return App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTabs(accent lipgloss.Color) string {
	tabs := make([]string, 0, len(model.Modes()))
	for i, mode := range model.Modes() {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		if mode == m.snapshot.Mode {
			tabs = append(tabs, Tab.Foreground(accent).Bold(true).Underline(true).Render(label))
			continue
		}
		tabs = append(tabs, Tab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderState() string {
	if !m.snapshot.Running {
		return Muted.Render("stopped")
	}
	if m.snapshot.Mode != model.ModePomodoro || m.snapshot.Sessions == 0 {
		return "running"
	}
	return fmt.Sprintf("running, %s pomodoro", humanize.Ordinal(m.snapshot.Sessions))
}

func (m Model) renderGoal() string {
	if m.editing {
		return fmt.Sprintf("Daily goal: %s_", m.input)
	}
	if m.goal.Reached() {
		return Reached.Render(m.goal.String() + " - goal reached!")
	}
	return m.goal.String()
}

func (m Model) renderHistory() string {
	if len(m.history) == 0 {
		return Muted.Render("No session history")
	}
	records := m.history
	if len(records) > historyLimit {
		records = records[len(records)-historyLimit:]
	}
	now := m.now()
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, fmt.Sprintf("%s %s",
			record.String(),
			Muted.Render("("+humanize.RelTime(record.CompletedAt, now, "ago", "from now")+")")))
	}
	return Pane.Render(strings.Join(lines, "\n"))
}

func helpLine(editing bool) string {
	if editing {
		return "enter set goal · esc cancel"
	}
	return "space start/stop · 1/2/3 mode · g goal · q quit"
}

// ProgressBar draws fraction of width cells as filled.
func ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return BarFilled.Render(strings.Repeat("█", filled)) + BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Run drives the terminal UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, controller Controller, options ...tea.ProgramOption) error {
	events := controller.Subscribe(64)
	options = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, options...)
	program := tea.NewProgram(New(controller), options...)

	go func() {
		for event := range events {
			program.Send(EventMsg{Event: event})
		}
	}()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
