package timer

import (
	"fmt"
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventTick              EventType = "tick"
	EventModeChanged       EventType = "mode_changed"
	EventIntervalCompleted EventType = "interval_completed"
	EventStarted           EventType = "started"
	EventStopped           EventType = "stopped"
)

// Event represents a Timer update for observers.
//
// Minutes is the nominal length of Mode. For EventIntervalCompleted, Mode is
// the interval that just finished.
type Event struct {
	Type      EventType
	Mode      model.Mode
	Remaining Remaining
	Minutes   int
	Sessions  int
	Running   bool
	At        time.Time
}

// Observer receives Timer events synchronously, in emission order.
type Observer interface {
	HandleEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// HandleEvent calls fn(event).
func (fn ObserverFunc) HandleEvent(event Event) {
	fn(event)
}

// Remaining is a countdown value split for display.
type Remaining struct {
	Total   int
	Minutes int
	Seconds int
}

// RemainingFrom converts a signed duration into whole seconds, rounding up so
// that Total reaches zero exactly when the interval has elapsed.
func RemainingFrom(value time.Duration) Remaining {
	total := value / time.Second
	if value%time.Second > 0 {
		total++
	}
	seconds := int(total)
	return Remaining{
		Total:   seconds,
		Minutes: seconds / 60,
		Seconds: seconds % 60,
	}
}

// String renders MM:SS, clamped at zero.
func (remaining Remaining) String() string {
	if remaining.Total <= 0 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", remaining.Minutes, remaining.Seconds)
}
