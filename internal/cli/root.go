// Package cli wires the traineval command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/okian/traineval/internal/adapters/repository"
	service "github.com/okian/traineval/internal/app"
	"github.com/okian/traineval/internal/config"
	"github.com/okian/traineval/pkg/logger"
)

// appEnv holds what every subcommand needs once flags are parsed.
type appEnv struct {
	cfg *config.Config
	log logger.Logger
}

// NewRootCommand builds the command tree. Each call returns an independent tree.
func NewRootCommand() *cobra.Command {
	rt := &appEnv{}

	root := &cobra.Command{
		Use:   "traineval",
		Short: "Trainee evaluation engine",
		Long: `Records daily competency scores and attendance for the participants of a
multi-day training, derives their pass/fail summary and produces shareable
report links.

Run "traineval serve" to start the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.HiddenDefaultCmd = true
	root.PersistentFlags().String("config", "", "YAML config file (overrides $"+config.EnvConfig+")")

	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return rt.init(cmd)
	}

	root.AddCommand(
		newServeCommand(rt),
		newReportCommand(rt),
		newShareCommand(rt),
		newDecodeCommand(rt),
		newResetCommand(rt),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func (rt *appEnv) init(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.LoadFile(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := logger.InitWith(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	rt.cfg = cfg
	rt.log = log
	return nil
}

// openStorage returns the configured storage backend.
func (rt *appEnv) openStorage() (repository.Storage, error) {
	if rt.cfg.StorageBackend == config.StorageMemory {
		return repository.NewMemoryStorage(), nil
	}
	fs, err := repository.NewFileStorage(rt.cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}
	return fs, nil
}

// openService builds and starts a service over the configured storage.
func (rt *appEnv) openService(ctx context.Context) (*service.Service, error) {
	store, err := rt.openStorage()
	if err != nil {
		return nil, err
	}
	repo := repository.New(store,
		repository.WithNamespace(rt.cfg.KeyNamespace),
		repository.WithLogger(rt.log.Named("repository")),
		repository.WithMaxDays(rt.cfg.MaxDays),
	)
	svc := service.New(
		service.WithLogger(rt.log),
		service.WithRepository(repo),
		service.WithMaxDays(rt.cfg.MaxDays),
		service.WithShareOrigin(rt.cfg.ShareOrigin),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, fmt.Errorf("starting service: %w", err)
	}
	return svc, nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
