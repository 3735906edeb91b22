package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/config"
)

// Version is the release of the inkwell binary
const Version = "1.0.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

func (o *RootOptions) load() (config.Config, error) {
	return config.Load(o.ConfigPath)
}

// NewRootCommand creates the root command for the inkwell CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "inkwell",
		Short:         "Inkwell - a small multi-user blog",
		Long:          "A server-rendered blog with accounts, admin-only publishing and comments.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newPromoteCommand(opts))
	cmd.AddCommand(newSessionsCommand(opts))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and run the blog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			app, err := NewApp(cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Serve(ctx)
		},
	}
}

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer repositories.Close(db)

			fmt.Fprintln(cmd.OutOrStdout(), "Database migrated successfully")
			return nil
		},
	}
}

func newPromoteCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer repositories.Close(db)

			users := services.NewUserService(repositories.NewGormUserRepository(db))
			user, err := users.Promote(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) is now an admin\n", user.Name, user.Email)
			return nil
		},
	}
}

func newSessionsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage the session store",
	}
	cmd.AddCommand(newSessionsCountCommand(opts))
	cmd.AddCommand(newSessionsClearCommand(opts))
	cmd.AddCommand(newSessionsBackupCommand(opts))
	cmd.AddCommand(newSessionsRestoreCommand(opts))
	return cmd
}

func newSessionsCountCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Show how many sessions are active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			store, err := openPersistentSessions(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := repositories.NewBadgerSessionRepository(store).Count()
			if err != nil {
				return fmt.Errorf("failed to count sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d active sessions\n", n)
			return nil
		},
	}
}

func newSessionsClearCommand(opts *RootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop every session, logging everybody out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !yes && !confirm(cmd.InOrStdin(), out, "Are you sure you want to log everybody out? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			store, err := openPersistentSessions(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			repo := repositories.NewBadgerSessionRepository(store)
			n, err := repo.Count()
			if err != nil {
				return fmt.Errorf("failed to count sessions: %w", err)
			}
			if err := repo.Clear(); err != nil {
				return fmt.Errorf("failed to clear sessions: %w", err)
			}
			fmt.Fprintf(out, "Sessions cleared successfully (%d removed)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newSessionsBackupCommand(opts *RootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a backup of the session store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join("data", "backups", fmt.Sprintf("sessions_%d.bak", time.Now().Unix()))
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			store, err := openPersistentSessions(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if _, err := repositories.NewBadgerSessionRepository(store).Backup(f); err != nil {
				return fmt.Errorf("failed to back up sessions: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions backed up successfully to %s\n", outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "backup file (default data/backups/sessions_<unix>.bak)")
	return cmd
}

func newSessionsRestoreCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <file>",
		Short: "Load a backup into the session store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			fi, err := f.Stat()
			if err != nil {
				return fmt.Errorf("failed to stat backup file: %w", err)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", args[0])
			}

			store, err := openPersistentSessions(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := repositories.NewBadgerSessionRepository(store).Restore(f); err != nil {
				return fmt.Errorf("failed to restore sessions: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sessions restored successfully")
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "inkwell version %s\n", Version)
		},
	}
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}
