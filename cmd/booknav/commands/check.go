package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"git.home.luguber.info/inful/booknav/internal/book"
	"git.home.luguber.info/inful/booknav/internal/loader"
)

// CheckCmd implements the 'check' command: parse + resolve + validate,
// report issues, and exit 0 (clean), 1 (warnings), or 2 (errors).
type CheckCmd struct {
	Path       string `arg:"" optional:"" help:"Book file to check (defaults to the configured book)"`
	Format     string `short:"f" default:"text" enum:"text,json" help:"Output format (text or json)"`
	Quiet      bool   `short:"q" help:"Quiet mode: only show errors, suppress warnings and info"`
	Strict     bool   `help:"Promote warnings to errors"`
	ContentDir string `help:"Cross-check link targets against this markdown tree"`
}

// Run executes the check command.
func (cmd *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if cmd.Strict {
		cfg.Strict = true
	}
	if cmd.ContentDir != "" {
		cfg.ContentDir = cmd.ContentDir
	}
	path := cfg.Book
	if cmd.Path != "" {
		path = cmd.Path
	}

	res, err := loader.New(cfg, nil).LoadPath(context.Background(), path)
	if err != nil {
		// Load failures (malformed input, schema violations, include
		// errors) block the build outright.
		fmt.Fprintf(os.Stderr, "booknav: %v\n", err)
		os.Exit(2)
	}

	issues := res.Issues
	if cmd.Quiet {
		issues = onlyErrors(issues)
	}

	switch cmd.Format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
	default:
		for _, iss := range issues {
			fmt.Println(iss.String())
		}
		if len(issues) == 0 {
			fmt.Printf("%s: OK\n", path)
		}
	}

	if book.HasErrors(res.Issues) {
		os.Exit(2)
	}
	if book.HasWarnings(res.Issues) && !cmd.Quiet {
		os.Exit(1)
	}
	return nil
}

func onlyErrors(issues []book.Issue) []book.Issue {
	out := issues[:0:0]
	for _, iss := range issues {
		if iss.Severity == book.SeverityError {
			out = append(out, iss)
		}
	}
	return out
}
