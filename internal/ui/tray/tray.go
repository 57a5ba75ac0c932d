package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnToggle      func()
	OnMode        func(model.Mode)
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	setMenu     func(*fyne.Menu)
	statusItem  *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	modeItems   map[model.Mode]*fyne.MenuItem
	callbacks   Callbacks
	running     bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		callbacks:   callbacks,
		modeItems:   make(map[model.Mode]*fyne.MenuItem),
		statusLabel: "ready",
	}

	if app != nil {
		manager.setMenu = app.SetSystemTrayMenu
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem(ToggleLabel(false), func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	for _, mode := range model.Modes() {
		mode := mode
		manager.modeItems[mode] = fyne.NewMenuItem(mode.Label(), func() {
			if manager.callbacks.OnMode != nil {
				manager.callbacks.OnMode(mode)
			}
		})
	}

	manager.refreshStatus()
	return manager
}

// Update applies status, running state and active mode with a single menu
// rebuild.
func (manager *Manager) Update(status string, running bool, active model.Mode) {
	manager.statusLabel = status
	manager.running = running
	manager.toggleItem.Label = ToggleLabel(running)
	manager.checkMode(active)
	manager.updateStatusLabel()
	manager.refreshMenu()
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning updates the start/stop item.
func (manager *Manager) SetRunning(running bool) {
	manager.running = running
	manager.toggleItem.Label = ToggleLabel(running)
	manager.refreshStatus()
}

// SetMode checks the active mode item.
func (manager *Manager) SetMode(active model.Mode) {
	manager.checkMode(active)
	manager.refreshMenu()
}

func (manager *Manager) checkMode(active model.Mode) {
	for mode, item := range manager.modeItems {
		item.Checked = mode == active
	}
}

// ToggleLabel is the start/stop action text.
func ToggleLabel(running bool) string {
	if running {
		return "Stop"
	}
	return "Start"
}

func (manager *Manager) refreshStatus() {
	manager.updateStatusLabel()
	manager.refreshMenu()
}

func (manager *Manager) updateStatusLabel() {
	status := manager.statusLabel
	if !manager.running {
		status = fmt.Sprintf("%s (stopped)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) refreshMenu() {
	if manager.setMenu == nil {
		return
	}
	items := []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
	}
	for _, mode := range model.Modes() {
		items = append(items, manager.modeItems[mode])
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		manager.quitItem(),
	)
	manager.setMenu(fyne.NewMenu("Pomodoro", items...))
}

func (manager *Manager) quitItem() *fyne.MenuItem {
	item := fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	item.IsQuit = true
	return item
}
