// Package daemon wires the loader, filesystem watcher, and HTTP server into
// the serve mode: load the book, publish it, and re-resolve on change while
// keeping the last good tree when a reload fails.
package daemon

import (
	"context"
	"fmt"
	"log/slog"

	prom "github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/loader"
	"git.home.luguber.info/inful/booknav/internal/metrics"
	"git.home.luguber.info/inful/booknav/internal/server"
	"git.home.luguber.info/inful/booknav/internal/watch"
)

// Daemon owns the serve-mode lifecycle.
type Daemon struct {
	cfg    *config.Config
	loader *loader.Loader
	server *server.Server
}

// New builds a daemon from the tool configuration.
func New(cfg *config.Config) *Daemon {
	var registry *prom.Registry
	var rec metrics.Recorder = metrics.NoopRecorder{}
	if cfg.Server.Metrics {
		registry = prom.NewRegistry()
		rec = metrics.NewPrometheusRecorder(registry)
	}
	return &Daemon{
		cfg:    cfg,
		loader: loader.New(cfg, rec),
		server: server.New(cfg.Server.Listen, registry),
	}
}

// Run performs the initial load and serves until ctx is canceled. The
// initial load must succeed; later reload failures only log and keep the
// previous tree.
func (d *Daemon) Run(ctx context.Context) error {
	res, err := d.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	gen := d.server.Swap(res.Book, res.Issues)
	slog.Info("Navigation tree loaded",
		"generation", gen,
		"issues", len(res.Issues),
		"duration", res.Duration)

	watchPaths := []string{d.cfg.Book}
	if d.cfg.Resolver == config.ResolverFS {
		watchPaths = append(watchPaths, d.cfg.IncludesRoot)
	}
	watcher, err := watch.New(watchPaths...)
	if err != nil {
		return err
	}
	defer watcher.Stop()
	if err := watcher.Start(ctx); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return d.server.Start(ctx)
	})
	g.Go(func() error {
		d.reloadLoop(ctx, watcher)
		return nil
	})
	return g.Wait()
}

// Current exposes the server's snapshot, for tests.
func (d *Daemon) Current() *server.State {
	return d.server.Current()
}

func (d *Daemon) reloadLoop(ctx context.Context, watcher *watch.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-watcher.C():
			res, err := d.loader.Load(ctx)
			if err != nil {
				slog.Error("Reload failed, keeping previous tree", "error", err)
				continue
			}
			gen := d.server.Swap(res.Book, res.Issues)
			slog.Info("Navigation tree reloaded",
				"generation", gen,
				"issues", len(res.Issues),
				"duration", res.Duration)
		}
	}
}
