package main

import (
	"context"
	"os"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/notify"
	"pomodoro/internal/ui/overlay"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
)

const appTitle = "Pomodoro"

// fyneSender posts desktop notifications through the fyne app.
type fyneSender struct {
	app fyne.App
}

func (sender fyneSender) Send(title, body string) error {
	sender.app.SendNotification(fyne.NewNotification(title, body))
	return nil
}

// confirmRequester asks with a dialog over parent and waits for the answer.
func confirmRequester(parent func() fyne.Window) notify.Requester {
	return notify.RequesterFunc(func(ctx context.Context) (notify.Permission, error) {
		answer := make(chan notify.Permission, 1)
		fyne.Do(func() {
			dialog.ShowConfirm("Notifications",
				"Show a desktop notification when each session ends?",
				func(ok bool) {
					if ok {
						answer <- notify.PermissionGranted
						return
					}
					answer <- notify.PermissionDenied
				}, parent())
		})
		select {
		case permission := <-answer:
			return permission, nil
		case <-ctx.Done():
			return notify.PermissionDefault, ctx.Err()
		}
	})
}

func runGUI(ctx context.Context, env *environment) error {
	fyneApp := fyneapp.NewWithID("com.pomodoro.app")
	settings := env.settings.Get()
	logger := env.logger

	var mainWindow *window.Window
	gate := notify.NewGate(notify.GateConfig{
		Title:      appTitle,
		Permission: settings.Notifications,
		Sender:     fyneSender{app: fyneApp},
		Requester:  confirmRequester(func() fyne.Window { return mainWindow.Native() }),
		Logger:     logger.With("component", "notify"),
		OnChange: func(permission notify.Permission) {
			_, err := env.settings.Update(func(stored *preferences.Settings) {
				stored.Notifications = permission
			})
			if err != nil {
				logger.Warn("save notification permission", "error", err)
			}
		},
	})

	controller := app.New(settings.TimerConfig(), app.Options{
		TickInterval: time.Second,
		Gate:         gate,
		Player:       desktopCuePlayer(os.Stdout, logger),
		Logger:       logger,
	})
	defer controller.Close()

	mainWindow = window.New(fyneApp, controller)
	controller.Observe(mainWindow)
	controller.ObserveGoal(mainWindow.HandleGoal)

	banner := overlay.New(fyneApp, overlay.Config{Opacity: 220, AutoHide: 15 * time.Second})
	banner.SetOnDismiss(mainWindow.Show)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		saved, err := env.settings.Update(func(stored *preferences.Settings) {
			*stored = updated
		})
		if err != nil {
			logger.Warn("save settings", "error", err)
		}
		if err := controller.UpdateConfig(saved.TimerConfig()); err != nil {
			logger.Warn("apply presets", "error", err)
		}
		controller.SetNotifications(saved.Notifications)
	})

	quit := func() {
		controller.Close()
		fyneApp.Quit()
	}

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      func() { controller.Toggle() },
			OnMode: func(mode model.Mode) {
				_ = controller.SwitchMode(mode)
			},
			OnQuit: quit,
		})
		trayManager.SetMode(controller.Snapshot().Mode)
		mainWindow.SetCloseIntercept(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetCloseIntercept(quit)
	}

	controller.Observe(timer.ObserverFunc(func(event timer.Event) {
		snapshot := controller.Snapshot()
		fyne.Do(func() {
			if trayManager != nil {
				trayManager.Update(snapshot.Remaining.String(), snapshot.Running, snapshot.Mode)
			}
			switch event.Type {
			case timer.EventIntervalCompleted:
				banner.Show(overlay.Banner{
					Finished:  event.Mode,
					Next:      snapshot.Mode,
					Remaining: snapshot.Remaining,
				})
			case timer.EventTick:
				banner.SetRemaining(snapshot.Remaining)
			}
		})
	}))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-runCtx.Done()
		if ctx.Err() != nil {
			fyne.Do(quit)
		}
	}()
	go controller.RequestNotifications(runCtx)

	mainWindow.Show()
	fyneApp.Run()
	return nil
}
