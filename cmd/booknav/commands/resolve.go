package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/booknav/internal/loader"
)

// ResolveCmd implements the 'resolve' command: splice all includes and emit
// the resolved book for the rendering system.
type ResolveCmd struct {
	Path   string `arg:"" optional:"" help:"Book file to resolve (defaults to the configured book)"`
	Format string `short:"f" default:"yaml" enum:"yaml,json" help:"Output format (yaml or json)"`
}

// Run executes the resolve command.
func (cmd *ResolveCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	path := cfg.Book
	if cmd.Path != "" {
		path = cmd.Path
	}

	res, err := loader.New(cfg, nil).LoadPath(context.Background(), path)
	if err != nil {
		return err
	}

	switch cmd.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Book); err != nil {
			return fmt.Errorf("encoding book: %w", err)
		}
	default:
		out, err := yaml.Marshal(res.Book)
		if err != nil {
			return fmt.Errorf("encoding book: %w", err)
		}
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	}
	return nil
}
