package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/irishmetals/skipdispatch/config"
	"github.com/irishmetals/skipdispatch/internal/bootstrap"
)

const defaultCommandTimeout = 5 * time.Minute

// commandContext is shared by every subcommand once config has loaded.
type commandContext struct {
	Ctx     context.Context
	Logger  *slog.Logger
	Config  config.AppConfig
	Timeout time.Duration
}

func main() {
	logger := bootstrap.InitLogger()
	root := newRootCommand(logger)
	if err := root.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCommand(logger *slog.Logger) *cobra.Command {
	cmdCtx := &commandContext{Logger: logger}

	root := &cobra.Command{
		Use:           "skipdispatch-admin",
		Short:         "Operational tasks for the skip dispatch database",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap.LoadConfig()
			if err != nil {
				return err
			}
			cmdCtx.Config = cfg
			cmdCtx.Ctx = cmd.Context()
			if cmdCtx.Ctx == nil {
				cmdCtx.Ctx = context.Background()
			}
			return nil
		},
	}
	root.PersistentFlags().DurationVar(&cmdCtx.Timeout, "timeout", defaultCommandTimeout, "overall command timeout")

	root.AddCommand(
		newMigrateCommand(cmdCtx),
		newSeedCommand(cmdCtx),
		newHistoryCommand(cmdCtx),
		newTrackerCommand(cmdCtx),
		newResendCommand(cmdCtx),
		newDocketCommand(cmdCtx),
	)
	return root
}
