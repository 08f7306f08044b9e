package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tasksync/internal/config"
	"github.com/sandeepkv93/tasksync/internal/controller"
	"github.com/sandeepkv93/tasksync/internal/dispatch"
	"github.com/sandeepkv93/tasksync/internal/logging"
	"github.com/sandeepkv93/tasksync/internal/remote"
	"github.com/sandeepkv93/tasksync/internal/update"
)

type rootOptions struct {
	apiURL string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:           "tasksync",
		Short:         "Terminal to-do list synced with a remote task service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "task service base URL (overrides TASKSYNC_API_URL)")

	rootCmd.AddCommand(listCmd(opts))
	rootCmd.AddCommand(statsCmd(opts))
	rootCmd.AddCommand(addCmd(opts))
	rootCmd.AddCommand(toggleCmd(opts))
	rootCmd.AddCommand(deleteCmd(opts))
	rootCmd.AddCommand(serveCmd())
	return rootCmd
}

// session bundles what every client-side command needs.
type session struct {
	logger   zerolog.Logger
	client   *remote.Client
	closeLog func() error
}

func openSession(opts *rootOptions) (*session, error) {
	cfg, err := config.Load(opts.apiURL)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, closeLog, err := logging.OpenFile(cfg.Env, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	client, err := remote.New(cfg.API.BaseURL,
		remote.WithLogger(logger),
		remote.WithUserAgent("tasksync/"+Version),
	)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	return &session{logger: logger, client: client, closeLog: closeLog}, nil
}

func (s *session) Close() error {
	return s.closeLog()
}

// openController performs the initial fetch and fails if it does.
func (s *session) openController(cmd *cobra.Command) (*controller.Controller, error) {
	ctl, err := controller.Open(cmd.Context(), s.client, s.controllerOptions()...)
	if err != nil {
		return nil, err
	}
	return ctl, nil
}

func (s *session) controllerOptions() []controller.Option {
	return []controller.Option{
		controller.WithLogger(s.logger),
		controller.WithOnChange(func(st controller.Status) {
			s.logger.Debug().
				Str("state", string(st.State)).
				Bool("loaded", st.Loaded).
				Int("total", st.Stats.Total).
				Str("message", st.Message).
				Msg("controller state changed")
		}),
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	sess, err := openSession(opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctl := controller.New(sess.client, sess.controllerOptions()...)
	engine := dispatch.NewEngine(16)
	engine.Start()
	defer engine.Stop()

	sess.logger.Info().Str("api_url", sess.client.BaseURL()).Msg("starting tui")
	program := tea.NewProgram(
		update.NewModel(ctl, engine, update.WithLogger(sess.logger)),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tasksync failed: %w", err)
	}
	return nil
}
