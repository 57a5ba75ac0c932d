package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

// WelcomeText is sent once, right after permission is granted.
const WelcomeText = "Awesome! You will be notified at the start of each session"

// ErrUnsupported indicates desktop notifications are not available.
var ErrUnsupported = errors.New("notifications unsupported")

// Permission is the user's answer to the notification prompt.
type Permission string

const (
	PermissionDefault     Permission = "default"
	PermissionGranted     Permission = "granted"
	PermissionDenied      Permission = "denied"
	PermissionUnsupported Permission = "unsupported"
)

// ParsePermission maps stored values to a Permission; unknown values are default.
func ParsePermission(value string) Permission {
	switch Permission(value) {
	case PermissionGranted, PermissionDenied:
		return Permission(value)
	default:
		return PermissionDefault
	}
}

// Sender delivers a desktop notification.
type Sender interface {
	Send(title, body string) error
}

// Requester asks the user whether notifications may be shown.
type Requester interface {
	RequestPermission(ctx context.Context) (Permission, error)
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context) (Permission, error)

// RequestPermission calls fn(ctx).
func (fn RequesterFunc) RequestPermission(ctx context.Context) (Permission, error) {
	return fn(ctx)
}

// Gate sends interval notifications only after the user has granted permission.
type Gate struct {
	mu         sync.Mutex
	title      string
	permission Permission
	sender     Sender
	requester  Requester
	asked      bool
	logger     *slog.Logger
	onChange   func(Permission)
}

// GateConfig contains Gate dependencies.
type GateConfig struct {
	Title      string
	Permission Permission
	Sender     Sender
	Requester  Requester
	Logger     *slog.Logger
	// OnChange is called whenever a request changes the permission.
	OnChange func(Permission)
}

// NewGate creates a Gate. Without a Sender the permission is unsupported.
func NewGate(config GateConfig) *Gate {
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	permission := config.Permission
	if permission == "" {
		permission = PermissionDefault
	}
	if config.Sender == nil {
		permission = PermissionUnsupported
	}
	return &Gate{
		title:      config.Title,
		permission: permission,
		sender:     config.Sender,
		requester:  config.Requester,
		logger:     logger,
		onChange:   config.OnChange,
	}
}

// Permission returns the current permission.
func (gate *Gate) Permission() Permission {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	return gate.permission
}

// SetPermission overrides the permission. It is ignored when notifications
// are unsupported.
func (gate *Gate) SetPermission(permission Permission) {
	gate.mu.Lock()
	defer gate.mu.Unlock()
	if gate.permission == PermissionUnsupported {
		return
	}
	gate.permission = permission
}

// RequestPermission asks the requester once, and only while the user has not
// answered yet. A grant is confirmed with WelcomeText.
func (gate *Gate) RequestPermission(ctx context.Context) Permission {
	gate.mu.Lock()
	if gate.permission != PermissionDefault || gate.asked || gate.requester == nil {
		permission := gate.permission
		gate.mu.Unlock()
		return permission
	}
	gate.asked = true
	gate.mu.Unlock()

	permission, err := gate.requester.RequestPermission(ctx)
	if err != nil {
		gate.logger.Debug("notification permission request failed", "error", err)
		if errors.Is(err, ErrUnsupported) {
			permission = PermissionUnsupported
		} else {
			return gate.Permission()
		}
	}
	if permission == PermissionDefault {
		return permission
	}

	gate.mu.Lock()
	gate.permission = permission
	onChange := gate.onChange
	gate.mu.Unlock()

	if onChange != nil {
		onChange(permission)
	}
	if permission == PermissionGranted {
		gate.send(WelcomeText)
	}
	return permission
}

// HandleEvent notifies on interval completion.
func (gate *Gate) HandleEvent(event timer.Event) {
	if event.Type != timer.EventIntervalCompleted {
		return
	}
	if gate.Permission() != PermissionGranted {
		return
	}
	gate.send(CompletionText(event.Mode))
}

// CompletionText is the notification body after finished completes.
func CompletionText(finished model.Mode) string {
	if finished == model.ModePomodoro {
		return model.ModeShortBreak.Prompt()
	}
	return model.ModePomodoro.Prompt()
}

func (gate *Gate) send(body string) {
	if err := gate.sender.Send(gate.title, body); err != nil {
		gate.logger.Warn("send notification", "error", err)
	}
}
