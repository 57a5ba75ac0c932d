package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func TestManager_StatusAndToggle(t *testing.T) {
	toggles := 0
	manager := New(nil, Callbacks{OnToggle: func() { toggles++ }})

	assert.Equal(t, "Status: ready (stopped)", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)

	manager.SetRunning(true)
	manager.SetStatus("Pomodoro 24:59")
	assert.Equal(t, "Status: Pomodoro 24:59", manager.statusItem.Label)
	assert.Equal(t, "Stop", manager.toggleItem.Label)

	manager.toggleItem.Action()
	assert.Equal(t, 1, toggles)
}

func TestManager_ModeItems(t *testing.T) {
	var selected []model.Mode
	manager := New(nil, Callbacks{OnMode: func(mode model.Mode) {
		selected = append(selected, mode)
	}})

	manager.SetMode(model.ModeShortBreak)
	assert.True(t, manager.modeItems[model.ModeShortBreak].Checked)
	assert.False(t, manager.modeItems[model.ModePomodoro].Checked)

	manager.modeItems[model.ModeLongBreak].Action()
	manager.modeItems[model.ModePomodoro].Action()
	assert.Equal(t, []model.Mode{model.ModeLongBreak, model.ModePomodoro}, selected)
}

func TestManager_UpdateRebuildsMenuOnce(t *testing.T) {
	manager := New(nil, Callbacks{})
	var menus []*fyne.Menu
	manager.setMenu = func(menu *fyne.Menu) {
		menus = append(menus, menu)
	}

	manager.Update("24:59", true, model.ModeLongBreak)

	require.Len(t, menus, 1)
	assert.Equal(t, "Status: 24:59", manager.statusItem.Label)
	assert.Equal(t, "Stop", manager.toggleItem.Label)
	assert.True(t, manager.modeItems[model.ModeLongBreak].Checked)
	assert.False(t, manager.modeItems[model.ModePomodoro].Checked)
	assert.Equal(t, "Pomodoro", menus[0].Label)

	manager.Update("04:59", false, model.ModeShortBreak)
	require.Len(t, menus, 2)
	assert.Equal(t, "Status: 04:59 (stopped)", manager.statusItem.Label)
	assert.Equal(t, "Start", manager.toggleItem.Label)
}
