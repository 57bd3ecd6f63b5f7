package commands

import (
	"context"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/booknav/internal/daemon"
)

// ServeCmd implements the 'serve' command: load the book, serve the resolved
// tree as JSON, and re-resolve when the book or its fragments change.
type ServeCmd struct {
	Listen  string `short:"l" help:"Listen address (overrides config)"`
	Metrics bool   `help:"Expose Prometheus metrics on /metrics"`
}

// Run executes the serve command.
func (cmd *ServeCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cmd.Listen != "" {
		cfg.Server.Listen = cmd.Listen
	}
	if cmd.Metrics {
		cfg.Server.Metrics = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return daemon.New(cfg).Run(ctx)
}
