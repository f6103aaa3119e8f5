package watch

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfolio/internal/loader"
	"github.com/papapumpkin/starfolio/internal/logging"
)

// LoadFunc produces a fresh corpus, typically (*loader.Loader).LoadAll.
type LoadFunc func() (*loader.Result, error)

// Reloader owns the live snapshot. Reloads are serialized; readers never
// block and always see a complete result.
type Reloader struct {
	load     LoadFunc
	onReload func(*loader.Result, error)
	logger   *zap.Logger

	mu       sync.Mutex // held for the duration of one reload
	current  atomic.Pointer[loader.Result]
	attempts atomic.Int64
}

// NewReloader creates a Reloader. onReload, if non-nil, is called after every
// reload attempt with the new result or the error that kept the old one.
func NewReloader(load LoadFunc, onReload func(*loader.Result, error), logger *zap.Logger) *Reloader {
	return &Reloader{
		load:     load,
		onReload: onReload,
		logger:   logging.OrNop(logger),
	}
}

// Snapshot returns the last successfully loaded result, or nil before the
// first success.
func (r *Reloader) Snapshot() *loader.Result {
	return r.current.Load()
}

// Attempts returns how many reloads have run.
func (r *Reloader) Attempts() int64 {
	return r.attempts.Load()
}

// Reload loads the corpus and, on success, publishes it. On failure the
// previous snapshot stays in place and the error is returned.
func (r *Reloader) Reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.attempts.Add(1)
	res, err := r.load()
	if err != nil {
		r.logger.Warn("reload failed, keeping previous snapshot", zap.Error(err))
		if r.onReload != nil {
			r.onReload(nil, err)
		}
		return err
	}

	r.current.Store(res)
	r.logger.Info("snapshot published", zap.Int("companies", len(res.Portfolios)))
	if r.onReload != nil {
		r.onReload(res, nil)
	}
	return nil
}

// Run reloads once per burst of changes until ctx is cancelled or changes is
// closed. Changes already queued when a reload starts are folded into it.
func (r *Reloader) Run(ctx context.Context, changes <-chan Change) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c, ok := <-changes:
			if !ok {
				return nil
			}
			r.logger.Debug("change detected", zap.String("file", c.File), zap.Bool("removed", c.Removed))
			if !drain(changes) {
				_ = r.Reload()
				return nil
			}
			_ = r.Reload()
		}
	}
}

// drain discards queued changes. It reports false if changes was closed.
func drain(changes <-chan Change) bool {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return false
			}
		default:
			return true
		}
	}
}
