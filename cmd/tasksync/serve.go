package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasksync/internal/config"
	"github.com/sandeepkv93/tasksync/internal/logging"
	"github.com/sandeepkv93/tasksync/internal/server"
	"github.com/sandeepkv93/tasksync/internal/storage"
)

func serveCmd() *cobra.Command {
	var addr string
	var dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference task service backed by SQLite",
		Long: `Run a task service implementing the HTTP contract the client expects:

  GET    /tasks       list tasks
  POST   /tasks       create {title, description}
  PATCH  /tasks/:id   toggle completion
  DELETE /tasks/:id   delete

Examples:
  tasksync serve
  tasksync serve --addr :9000 --db /tmp/tasks.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if addr == "" {
				addr = cfg.Server.Addr()
			}
			if dbPath == "" {
				dbPath = cfg.Server.DBPath
			}

			logger, err := logging.New(cfg.Env, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			repo, err := storage.OpenSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer repo.Close()
			logger.Info().Str("db", dbPath).Msg("opened storage")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(repo, logger).ListenAndServe(ctx, addr, cfg.Server.ShutdownTimeout)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to TASKSYNC_SERVER_HOST:TASKSYNC_SERVER_PORT)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (defaults to TASKSYNC_DB_PATH)")
	return cmd
}
