package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/irishmetals/skipdispatch/internal/bootstrap"
	"github.com/irishmetals/skipdispatch/internal/data"
	"github.com/irishmetals/skipdispatch/internal/devseed"
	"github.com/irishmetals/skipdispatch/internal/docket"
	"github.com/irishmetals/skipdispatch/internal/service"
)

func newMigrateCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		status bool
		output string
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			return withDatabase(cmdCtx, func(ctx context.Context, db *sql.DB) error {
				if status {
					migrations, err := data.MigrationStatus(ctx, db)
					if err != nil {
						return fmt.Errorf("migration status: %w", err)
					}
					return renderMigrations(cmd.OutOrStdout(), format, migrations)
				}
				cmdCtx.Logger.Info("running database migrations")
				if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				cmdCtx.Logger.Info("migrations completed successfully")
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "list migrations and whether each is applied instead of applying them")
	addOutputFlag(cmd, &output)
	return cmd
}

func newSeedCommand(cmdCtx *commandContext) *cobra.Command {
	var allowRemote bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert demo customers and drivers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := guardRemoteHost(cmdCtx, allowRemote); err != nil {
				return err
			}
			return withDatabase(cmdCtx, func(ctx context.Context, db *sql.DB) error {
				if err := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); err != nil {
					return fmt.Errorf("run migrations: %w", err)
				}
				sum, err := devseed.Run(ctx, devseed.NewStore(db), cmdCtx.Logger)
				if err != nil {
					return fmt.Errorf("seed data: %w", err)
				}
				return writef(cmd.OutOrStdout(), "customers created: %d, drivers created: %d, skipped: %d\n",
					sum.CustomersCreated, sum.DriversCreated, sum.Skipped)
			})
		},
	}
	cmd.Flags().BoolVar(&allowRemote, "allow-remote", false, "allow seeding a non-local database")
	return cmd
}

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "history <job-id|docket-no>",
		Short: "Print the status history of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			return withLifecycle(cmdCtx, func(ctx context.Context, svc *service.JobLifecycleService) error {
				id, err := svc.ResolveJobRef(ctx, args[0])
				if err != nil {
					return err
				}
				entries, err := svc.ListHistory(ctx, id)
				if err != nil {
					return err
				}
				return renderHistory(cmd.OutOrStdout(), format, entries)
			})
		},
	}
	addOutputFlag(cmd, &output)
	return cmd
}

func newTrackerCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		output string
		limit  int
	)
	cmd := &cobra.Command{
		Use:   "tracker",
		Short: "Print where every tracked skip currently is",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(output)
			if err != nil {
				return err
			}
			return withLifecycle(cmdCtx, func(ctx context.Context, svc *service.JobLifecycleService) error {
				summary, err := svc.Tracker(ctx, limit)
				if err != nil {
					return err
				}
				return renderTracker(cmd.OutOrStdout(), format, summary)
			})
		},
	}
	addOutputFlag(cmd, &output)
	cmd.Flags().IntVar(&limit, "limit", 1000, "number of recent completions to scan")
	return cmd
}

func newResendCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resend <job-id|docket-no>",
		Short: "Send (or resend) a job to its driver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLifecycle(cmdCtx, func(ctx context.Context, svc *service.JobLifecycleService) error {
				id, err := svc.ResolveJobRef(ctx, args[0])
				if err != nil {
					return err
				}
				res, err := svc.SendJob(ctx, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if err := writef(out, "job %s is %s\ndriver link: %s\n",
					res.Job.DocketNo, res.Job.Status, res.DriverLink); err != nil {
					return err
				}
				if !res.MessageSent {
					return writef(out, "message not sent: %s\n", res.MessageError)
				}
				return writef(out, "message sent\n")
			})
		},
	}
}

func newDocketCommand(cmdCtx *commandContext) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "docket <job-id|docket-no>",
		Short: "Re-render the completion docket PDF of a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLifecycle(cmdCtx, func(ctx context.Context, svc *service.JobLifecycleService) error {
				id, err := svc.ResolveJobRef(ctx, args[0])
				if err != nil {
					return err
				}
				pdf, docketNo, err := svc.RenderDocket(ctx, id)
				if err != nil {
					return err
				}
				path := out
				if path == "" {
					path = docket.AttachmentName(docketNo)
				}
				if err := writeFileAtomic(path, pdf); err != nil {
					return err
				}
				return writef(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(pdf))
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file (default <docket-no>.pdf in the current directory)")
	return cmd
}

func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docket-*.pdf")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, os.Remove(tmp.Name()))
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write docket: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close docket: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
