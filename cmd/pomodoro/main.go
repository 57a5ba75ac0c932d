package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/app"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/tui"
)

const appName = "pomodoro"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "Pomodoro timer with a desktop window and tray",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer env.Close()
			return runExclusive(env, func() error {
				return runGUI(cmd.Context(), env)
			})
		},
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "settings file (default: user config dir)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newConfigCmd(flags))
	return root
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The terminal belongs to the UI, so logs only go to --log-file.
			env, err := setup(flags, io.Discard)
			if err != nil {
				return err
			}
			defer env.Close()

			return runExclusive(env, func() error {
				controller := app.New(env.settings.Get().TimerConfig(), app.Options{
					TickInterval: time.Second,
					Player:       terminalCuePlayer(cmd.ErrOrStderr()),
					Logger:       env.logger,
				})
				defer controller.Close()
				return tui.Run(cmd.Context(), controller)
			})
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(flags, io.Discard)
			if err != nil {
				return err
			}
			defer env.Close()

			data, err := storage.MarshalSettings(env.settings.Get())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func runExclusive(env *environment, run func() error) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()
	env.logger.Debug("instance lock acquired", "address", guard.Address())
	return run()
}
