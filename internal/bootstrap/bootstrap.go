// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"
)

// DefaultShutdownTimeout bounds the time all shutdown hooks may take together.
const DefaultShutdownTimeout = 10 * time.Second

type hook struct {
	name string
	fn   func(ctx context.Context) error
}

// App manages application lifecycle with graceful shutdown support.
type App struct {
	mu              sync.Mutex
	hooks           []hook
	shutdownTimeout time.Duration
}

// New creates a new App.
func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// WithShutdownTimeout changes the shutdown deadline.
func (a *App) WithShutdownTimeout(timeout time.Duration) *App {
	a.shutdownTimeout = timeout
	return a
}

// AddShutdownHook registers a function to call during graceful shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, hook{name: name, fn: fn})
}

// AddCloser registers c to be closed during shutdown.
func (a *App) AddCloser(name string, c io.Closer) {
	a.AddShutdownHook(name, func(context.Context) error {
		return c.Close()
	})
}

// Run sets up signal handling and executes the run function.
// Shutdown hooks run once run returns or on OS interrupt, whichever is first.
// If run returns an error before a signal, that error is returned together
// with any hook error.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		if err := run(ctx); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down")
	case runErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].fn(ctx); err != nil {
			slog.Default().Error("shutdown hook failed", "hook", hooks[i].name, "error", err)
			errs = append(errs, fmt.Errorf("%s > %w", hooks[i].name, err))
		}
	}
	return errors.Join(errs...)
}
