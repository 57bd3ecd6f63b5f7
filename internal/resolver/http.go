package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"git.home.luguber.info/inful/booknav/internal/book"
)

const (
	maxFragmentResponseBytes = 1 * 1024 * 1024
	defaultHTTPTimeout       = 10 * time.Second
)

// HTTP resolves include references as absolute http(s) URLs.
type HTTP struct {
	client *http.Client
}

// NewHTTP creates an HTTP resolver. A nil client gets safe defaults:
// a request timeout, same-host redirects only, and a response size cap.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{
			Timeout: defaultHTTPTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) == 0 {
					return nil
				}
				if req.URL.Host != via[0].URL.Host {
					return errors.New("redirect to different host blocked")
				}
				if len(via) >= 5 {
					return errors.New("too many redirects")
				}
				return nil
			},
		}
	}
	return &HTTP{client: client}
}

// Resolve fetches and parses the referenced fragment.
func (h *HTTP) Resolve(ctx context.Context, ref string) ([]*book.Node, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return nil, fmt.Errorf("invalid fragment URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("fragment URL %q must be http or https", ref)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch fragment: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fragment: unexpected status %s", resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFragmentResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read fragment body: %w", err)
	}
	if len(raw) > maxFragmentResponseBytes {
		return nil, fmt.Errorf("fragment response exceeds %d bytes", maxFragmentResponseBytes)
	}
	return book.ParseFragment(raw)
}
