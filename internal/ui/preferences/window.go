package preferences

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/notify"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	pomodoro      *widget.Entry
	shortBreak    *widget.Entry
	longBreak     *widget.Entry
	interval      *widget.Entry
	notifications *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		pomodoro:      widget.NewEntry(),
		shortBreak:    widget.NewEntry(),
		longBreak:     widget.NewEntry(),
		interval:      widget.NewEntry(),
		notifications: widget.NewCheck("Desktop notifications", nil),
	}
	prefs.UpdateSettings(settings)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Pomodoro"), prefs.pomodoro, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("pomodoros")),
		prefs.notifications,
		widget.NewLabel("A running interval keeps its length."),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 300))
	window.SetCloseIntercept(window.Hide)

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.pomodoro.SetText(strconv.Itoa(settings.PomodoroMinutes))
	prefs.shortBreak.SetText(strconv.Itoa(settings.ShortBreakMinutes))
	prefs.longBreak.SetText(strconv.Itoa(settings.LongBreakMinutes))
	prefs.interval.SetText(strconv.Itoa(settings.LongBreakInterval))
	prefs.notifications.SetChecked(settings.Notifications == notify.PermissionGranted)
}

func (prefs *Window) handleSave() {
	settings := Apply(prefs.settings, Form{
		Pomodoro:      prefs.pomodoro.Text,
		ShortBreak:    prefs.shortBreak.Text,
		LongBreak:     prefs.longBreak.Text,
		Interval:      prefs.interval.Text,
		Notifications: prefs.notifications.Checked,
	})

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// Form is the raw text of the preferences form.
type Form struct {
	Pomodoro      string
	ShortBreak    string
	LongBreak     string
	Interval      string
	Notifications bool
}

// Apply copies valid form values onto settings. Fields that are not positive
// whole numbers keep their previous value.
func Apply(settings Settings, form Form) Settings {
	if minutes, ok := parsePositiveInt(form.Pomodoro); ok {
		settings.PomodoroMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(form.ShortBreak); ok {
		settings.ShortBreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(form.LongBreak); ok {
		settings.LongBreakMinutes = minutes
	}
	if count, ok := parsePositiveInt(form.Interval); ok {
		settings.LongBreakInterval = count
	}

	switch {
	case form.Notifications:
		settings.Notifications = notify.PermissionGranted
	case settings.Notifications == notify.PermissionGranted:
		settings.Notifications = notify.PermissionDenied
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
