// Package loader orchestrates a full book load: read, parse, resolve
// includes, validate, and optionally cross-check against the content tree.
package loader

import (
	"context"
	"fmt"
	"os"
	"time"

	"git.home.luguber.info/inful/booknav/internal/book"
	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/content"
	"git.home.luguber.info/inful/booknav/internal/metrics"
	"git.home.luguber.info/inful/booknav/internal/resolver"
)

// Loader runs the load pipeline described by a tool configuration.
type Loader struct {
	cfg      *config.Config
	resolver book.Resolver
	recorder metrics.Recorder
}

// Result is one completed load.
type Result struct {
	Book     *book.Book
	Issues   []book.Issue
	Duration time.Duration
}

// New builds a loader for cfg. A nil recorder disables metrics.
func New(cfg *config.Config, rec metrics.Recorder) *Loader {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	var inner book.Resolver
	switch cfg.Resolver {
	case config.ResolverHTTP:
		inner = resolver.NewHTTP(nil)
	default:
		inner = resolver.NewFS(cfg.IncludesRoot)
	}
	timed := book.ResolverFunc(func(ctx context.Context, ref string) ([]*book.Node, error) {
		start := time.Now()
		nodes, err := inner.Resolve(ctx, ref)
		rec.ObserveIncludeFetch(time.Since(start), err == nil)
		return nodes, err
	})
	return &Loader{
		cfg:      cfg,
		resolver: resolver.NewCached(timed),
		recorder: rec,
	}
}

// WithResolver overrides the configured resolver, for hosts that inject
// their own fragment source.
func (l *Loader) WithResolver(r book.Resolver) *Loader {
	l.resolver = r
	return l
}

// Load runs the pipeline against the configured book path.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	return l.LoadPath(ctx, l.cfg.Book)
}

// LoadPath runs the pipeline against an explicit book path.
func (l *Loader) LoadPath(ctx context.Context, path string) (*Result, error) {
	start := time.Now()

	raw, err := os.ReadFile(path)
	if err != nil {
		l.recorder.IncReload(metrics.OutcomeFailed)
		return nil, fmt.Errorf("read book: %w", err)
	}

	res, err := l.LoadBytes(ctx, raw)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	l.recorder.ObserveLoadDuration(res.Duration)
	return res, nil
}

// LoadBytes runs parse, resolve, validate, and the content cross-check over
// raw book text.
func (l *Loader) LoadBytes(ctx context.Context, raw []byte) (*Result, error) {
	b, err := book.Parse(raw)
	if err != nil {
		l.recorder.IncReload(metrics.OutcomeFailed)
		return nil, err
	}
	resolved, err := book.ResolveIncludes(ctx, b, l.resolver)
	if err != nil {
		l.recorder.IncReload(metrics.OutcomeFailed)
		return nil, err
	}

	issues := book.Validate(resolved)
	if l.cfg.ContentDir != "" {
		issues = append(issues, content.Crosscheck(resolved, l.cfg.ContentDir)...)
	}
	if l.cfg.Strict {
		issues = book.Promote(issues)
	}
	l.recordIssues(issues)
	l.recorder.IncReload(metrics.OutcomeSuccess)

	return &Result{Book: resolved, Issues: issues}, nil
}

func (l *Loader) recordIssues(issues []book.Issue) {
	counts := map[string]int{
		book.SeverityInfo.String():    0,
		book.SeverityWarning.String(): 0,
		book.SeverityError.String():   0,
	}
	for _, iss := range issues {
		counts[iss.Severity.String()]++
	}
	for sev, n := range counts {
		l.recorder.SetIssueCount(sev, n)
	}
}
