package window

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

// Controller is the command surface the window drives.
type Controller interface {
	Toggle() bool
	SwitchMode(mode model.Mode) error
	SetGoalInput(text string) error
	Snapshot() timer.Snapshot
	Goal() model.Progress
	History() []model.SessionRecord
}

const emptyHistoryText = "No session history"

// Window is the main timer window.
type Window struct {
	window     fyne.Window
	controller Controller

	background   *canvas.Rectangle
	clock        *canvas.Text
	prompt       *widget.Label
	modeButtons  map[model.Mode]*widget.Button
	toggleButton *widget.Button
	progress     *widget.ProgressBar
	goalEntry    *widget.Entry
	goalLabel    *widget.Label
	goalError    *widget.Label
	history      *widget.List
	emptyHistory *widget.Label
	records      []model.SessionRecord
}

// New builds the window and renders the controller's current state.
func New(app fyne.App, controller Controller) *Window {
	w := &Window{
		window:      app.NewWindow("Pomodoro"),
		controller:  controller,
		background:  canvas.NewRectangle(ModeColor(model.ModePomodoro)),
		modeButtons: make(map[model.Mode]*widget.Button),
	}

	w.clock = canvas.NewText("25:00", color.White)
	w.clock.TextSize = 64
	w.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	w.clock.Alignment = fyne.TextAlignCenter

	w.prompt = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	modeRow := container.NewGridWithColumns(len(model.Modes()))
	for _, mode := range model.Modes() {
		mode := mode
		button := widget.NewButton(mode.Label(), func() {
			_ = w.controller.SwitchMode(mode)
		})
		w.modeButtons[mode] = button
		modeRow.Add(button)
	}

	w.toggleButton = widget.NewButton("start", func() {
		w.controller.Toggle()
	})
	w.toggleButton.Importance = widget.HighImportance

	w.progress = widget.NewProgressBar()
	w.progress.TextFormatter = func() string { return "" }

	w.goalEntry = widget.NewEntry()
	w.goalEntry.SetPlaceHolder("Daily goal")
	w.goalEntry.OnSubmitted = func(string) { w.submitGoal() }
	w.goalLabel = widget.NewLabel("")
	w.goalError = widget.NewLabel("")
	w.goalError.Importance = widget.DangerImportance
	goalRow := container.NewBorder(nil, nil, nil, widget.NewButton("Set goal", w.submitGoal), w.goalEntry)

	w.emptyHistory = widget.NewLabel(emptyHistoryText)
	w.history = widget.NewList(
		func() int { return len(w.records) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(w.records) {
				item.(*widget.Label).SetText(w.records[id].String())
			}
		},
	)

	timerPanel := container.NewVBox(modeRow, w.progress, w.clock, w.prompt, container.NewCenter(w.toggleButton))
	goalPanel := container.NewVBox(
		widget.NewLabelWithStyle("Daily goal", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		goalRow, w.goalLabel, w.goalError,
		widget.NewLabelWithStyle("Session history", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	historyPanel := container.NewStack(w.history, container.NewCenter(w.emptyHistory))

	content := container.NewBorder(
		container.NewPadded(timerPanel),
		nil, nil, nil,
		container.NewBorder(goalPanel, nil, nil, nil, historyPanel),
	)
	w.window.SetContent(container.NewStack(w.background, container.NewPadded(content)))
	w.window.Resize(fyne.NewSize(460, 620))

	w.Render(controller.Snapshot())
	w.RenderGoal(controller.Goal())
	w.RenderHistory(controller.History())
	return w
}

// Show displays the window.
func (w *Window) Show() {
	w.window.Show()
	w.window.RequestFocus()
}

// Native returns the underlying fyne window, for use as a dialog parent.
func (w *Window) Native() fyne.Window {
	return w.window
}

// Hide hides the window.
func (w *Window) Hide() {
	w.window.Hide()
}

// SetCloseIntercept replaces the default close behaviour.
func (w *Window) SetCloseIntercept(handler func()) {
	w.window.SetCloseIntercept(handler)
}

// HandleEvent re-renders on timer events. Safe to call from any goroutine.
func (w *Window) HandleEvent(event timer.Event) {
	fyne.Do(func() {
		if event.Type == timer.EventIntervalCompleted {
			w.RenderHistory(w.controller.History())
		}
		w.Render(w.controller.Snapshot())
	})
}

// HandleGoal re-renders goal progress. Safe to call from any goroutine.
func (w *Window) HandleGoal(progress model.Progress) {
	fyne.Do(func() {
		w.RenderGoal(progress)
	})
}

// Render draws the clock, active mode, progress and button state.
func (w *Window) Render(snapshot timer.Snapshot) {
	w.clock.Text = snapshot.Remaining.String()
	w.clock.Refresh()
	w.prompt.SetText(snapshot.Mode.Prompt())
	w.window.SetTitle(Title(snapshot))

	for mode, button := range w.modeButtons {
		if mode == snapshot.Mode {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.LowImportance
		}
		button.Refresh()
	}

	w.toggleButton.SetText(ToggleText(snapshot.Running))

	w.progress.Max = float64(snapshot.Minutes * 60)
	w.progress.SetValue(float64(snapshot.Minutes*60 - clampZero(snapshot.Remaining.Total)))

	w.background.FillColor = ModeColor(snapshot.Mode)
	w.background.Refresh()
}

// RenderGoal draws goal progress.
func (w *Window) RenderGoal(progress model.Progress) {
	text := progress.String()
	if progress.Reached() {
		text += " - goal reached!"
	}
	w.goalLabel.SetText(text)
}

// RenderHistory draws the history list, newest last.
func (w *Window) RenderHistory(records []model.SessionRecord) {
	w.records = records
	if len(records) == 0 {
		w.emptyHistory.Show()
	} else {
		w.emptyHistory.Hide()
	}
	w.history.Refresh()
	if len(records) > 0 {
		w.history.ScrollToBottom()
	}
}

func (w *Window) submitGoal() {
	if err := w.controller.SetGoalInput(w.goalEntry.Text); err != nil {
		w.goalError.SetText("Enter a whole number of sessions")
		return
	}
	w.goalError.SetText("")
	w.goalEntry.SetText("")
}

// Title is the window title: remaining time and the current prompt.
func Title(snapshot timer.Snapshot) string {
	return fmt.Sprintf("%s - %s", snapshot.Remaining, snapshot.Mode.Prompt())
}

// ToggleText is the main button label.
func ToggleText(running bool) string {
	if running {
		return "stop"
	}
	return "start"
}

// ModeColor is the window background for mode.
func ModeColor(mode model.Mode) color.Color {
	switch mode {
	case model.ModeShortBreak:
		return color.NRGBA{R: 0x38, G: 0x85, B: 0x8a, A: 0xff}
	case model.ModeLongBreak:
		return color.NRGBA{R: 0x39, G: 0x70, B: 0x97, A: 0xff}
	default:
		return color.NRGBA{R: 0xba, G: 0x49, B: 0x49, A: 0xff}
	}
}

func clampZero(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
