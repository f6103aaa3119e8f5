package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate whenever a document, deep dive or the order config changes",
	Args:  cobra.NoArgs,
	RunE:  runWithEnv(runWatch),
}

func runWatch(e *env, _ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchLoop(ctx, e)
}

// watchLoop loads once, then reloads on every change until ctx ends. A
// failing initial load is reported but does not stop the watch.
func watchLoop(ctx context.Context, e *env) error {
	onReload := func(res *loader.Result, err error) {
		e.record(loadEvent(res, err))
		e.printer.Reloaded(res, err)
	}
	reloader := watch.NewReloader(e.loader.LoadAll, onReload, e.logger)
	_ = reloader.Reload()

	w, err := watch.NewWatcher(watch.Options{
		Dirs:   []string{e.cfg.DataDir, e.cfg.ContentDir},
		Exts:   []string{".yaml", ".yml", e.cfg.ContentExt},
		Files:  []string{e.cfg.OrderFile},
		Logger: e.logger,
	})
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	e.printer.Info("watching for changes (ctrl-c to stop)")
	if err := reloader.Run(ctx, w.Changes); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
