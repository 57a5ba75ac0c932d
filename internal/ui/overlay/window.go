package overlay

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

// Config defines banner visuals.
type Config struct {
	Opacity  uint8
	AutoHide time.Duration
}

// Banner describes a finished interval.
type Banner struct {
	Finished  model.Mode
	Next      model.Mode
	Remaining timer.Remaining
}

// Headline is the banner title for a finished interval.
func Headline(finished model.Mode) string {
	return fmt.Sprintf("%s complete", finished.Label())
}

// Window is a small undecorated banner shown when an interval completes.
type Window struct {
	window        fyne.Window
	config        Config
	background    *canvas.Rectangle
	titleLabel    *canvas.Text
	subtitleLabel *canvas.Text
	timerLabel    *canvas.Text
	dismissButton *widget.Button
	onDismiss     func()

	mu       sync.Mutex
	hideTime *time.Timer
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the banner window; it stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: config.Opacity})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 21

	subtitleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	subtitleLabel.TextSize = 16

	timerLabel := canvas.NewText("--:--", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 16

	banner := &Window{
		window:        window,
		config:        config,
		background:    background,
		titleLabel:    titleLabel,
		subtitleLabel: subtitleLabel,
		timerLabel:    timerLabel,
	}
	banner.dismissButton = widget.NewButton("Dismiss", func() {
		banner.Hide()
		if banner.onDismiss != nil {
			banner.onDismiss()
		}
	})

	content := container.NewPadded(container.NewVBox(titleLabel, subtitleLabel, timerLabel, banner.dismissButton))
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(320, 160))
	return banner
}

// SetOnDismiss sets the dismiss handler.
func (banner *Window) SetOnDismiss(handler func()) {
	banner.onDismiss = handler
}

// Show displays the banner. Must be called on the fyne goroutine.
func (banner *Window) Show(content Banner) {
	banner.titleLabel.Text = Headline(content.Finished)
	banner.titleLabel.Refresh()
	banner.subtitleLabel.Text = content.Next.Prompt()
	banner.subtitleLabel.Refresh()
	banner.setRemainingUnsafe(content.Remaining)

	banner.window.CenterOnScreen()
	banner.window.Show()
	banner.window.RequestFocus()
	banner.scheduleHide()
}

// SetRemaining updates the countdown shown under the prompt.
func (banner *Window) SetRemaining(remaining timer.Remaining) {
	banner.setRemainingUnsafe(remaining)
}

// Hide closes the banner.
func (banner *Window) Hide() {
	banner.mu.Lock()
	if banner.hideTime != nil {
		banner.hideTime.Stop()
		banner.hideTime = nil
	}
	banner.mu.Unlock()
	banner.window.Hide()
}

func (banner *Window) scheduleHide() {
	if banner.config.AutoHide <= 0 {
		return
	}
	banner.mu.Lock()
	defer banner.mu.Unlock()
	if banner.hideTime != nil {
		banner.hideTime.Stop()
	}
	banner.hideTime = time.AfterFunc(banner.config.AutoHide, func() {
		fyne.Do(banner.Hide)
	})
}

func (banner *Window) setRemainingUnsafe(remaining timer.Remaining) {
	banner.timerLabel.Text = remaining.String()
	banner.timerLabel.Refresh()
}
