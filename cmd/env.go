package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/config"
	"github.com/papapumpkin/starfolio/internal/content"
	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/logging"
	"github.com/papapumpkin/starfolio/internal/telemetry"
	"github.com/papapumpkin/starfolio/internal/ui"
)

// env bundles what every command needs for one run.
type env struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *content.Store
	loader  *loader.Loader
	printer ui.UI
	events  *telemetry.Emitter
}

// newEnv loads configuration and wires the pipeline. Reports go to the
// command's stderr.
func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(cfg.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	e := buildEnv(cfg, logger, ui.NewWriter(cmd.ErrOrStderr()))
	if e.events, err = telemetry.NewEmitter(cfg.EventsFile); err != nil {
		return nil, err
	}
	return e, nil
}

func buildEnv(cfg config.Config, logger *zap.Logger, printer ui.UI) *env {
	store := content.Open(cfg.ContentDir, cfg.ContentExt)
	return &env{
		cfg:     cfg,
		logger:  logger,
		store:   store,
		loader:  loader.New(cfg, store, logger),
		printer: printer,
	}
}

// load runs the full pipeline, reporting a failure before returning it.
func (e *env) load() (*loader.Result, error) {
	res, err := e.loader.LoadAll()
	e.record(loadEvent(res, err))
	if err != nil {
		e.printer.Error(err)
		return nil, err
	}
	return res, nil
}

// runWithEnv adapts a function over env to a cobra RunE.
func runWithEnv(fn func(*env, *cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd)
		if err != nil {
			return err
		}
		defer func() {
			_ = e.events.Close()
			_ = e.logger.Sync()
		}()
		return fn(e, cmd, args)
	}
}
