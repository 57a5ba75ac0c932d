package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"pomodoro/internal/storage"
	"pomodoro/internal/ui/preferences"
)

type environment struct {
	settings *settingsStore
	logger   *slog.Logger
	logFile  io.Closer
}

// setup loads settings and builds the logger. Logs go to --log-file when set,
// otherwise to fallback.
func setup(flags *globalFlags, fallback io.Writer) (*environment, error) {
	path := flags.configPath
	if path == "" {
		defaultPath, err := storage.DefaultPath(appName)
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	settings, err := storage.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	level, err := resolveLogLevel(flags.logLevel, settings.LogLevel)
	if err != nil {
		return nil, err
	}

	env := &environment{settings: newSettingsStore(path, settings)}
	writer := fallback
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", flags.logFile, err)
		}
		env.logFile = file
		writer = file
	}
	env.logger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
	env.logger.Debug("settings loaded", "path", path)
	return env, nil
}

func (env *environment) Close() {
	if env.logFile != nil {
		_ = env.logFile.Close()
	}
}

// resolveLogLevel prefers the flag, then the settings file, then info.
func resolveLogLevel(flagLevel, configLevel string) (slog.Level, error) {
	levelStr := flagLevel
	if levelStr == "" {
		levelStr = configLevel
	}
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", levelStr)
	}
}

// settingsStore serializes changes to the settings file. The preferences
// window and the notification prompt both write to it.
type settingsStore struct {
	mu       sync.Mutex
	path     string
	settings preferences.Settings
}

func newSettingsStore(path string, settings preferences.Settings) *settingsStore {
	return &settingsStore{path: path, settings: settings}
}

func (store *settingsStore) Get() preferences.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.settings
}

func (store *settingsStore) Update(update func(*preferences.Settings)) (preferences.Settings, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := store.settings
	update(&next)
	if err := storage.SaveSettings(store.path, next); err != nil {
		return store.settings, err
	}
	store.settings = next
	return next, nil
}
