package resolver

import (
	"context"
	"sync"

	"git.home.luguber.info/inful/booknav/internal/book"
)

// Cached memoizes successful resolutions so a fragment referenced from
// several positions is fetched once per load. Failures are not cached;
// ResolveIncludes aborts on the first failure anyway.
type Cached struct {
	inner book.Resolver

	mu    sync.Mutex
	cache map[string][]*book.Node
}

// NewCached wraps inner with memoization.
func NewCached(inner book.Resolver) *Cached {
	return &Cached{inner: inner, cache: make(map[string][]*book.Node)}
}

// Resolve returns the cached fragment or delegates to the inner resolver.
// Fragments are cloned on the way out so callers cannot alias cache state.
func (c *Cached) Resolve(ctx context.Context, ref string) ([]*book.Node, error) {
	c.mu.Lock()
	nodes, ok := c.cache[ref]
	c.mu.Unlock()
	if ok {
		return cloneFragment(nodes), nil
	}

	nodes, err := c.inner.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.cache[ref] = nodes
	c.mu.Unlock()
	return cloneFragment(nodes), nil
}

func cloneFragment(nodes []*book.Node) []*book.Node {
	out := make([]*book.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// Map is an in-memory resolver over raw YAML fragments, keyed by reference.
// Intended for tests and embedded books.
type Map map[string]string

// Resolve parses the mapped fragment text.
func (m Map) Resolve(_ context.Context, ref string) ([]*book.Node, error) {
	raw, ok := m[ref]
	if !ok {
		return nil, &NotFoundError{Ref: ref}
	}
	return book.ParseFragment([]byte(raw))
}

// NotFoundError reports a reference with no mapped fragment.
type NotFoundError struct {
	Ref string
}

func (e *NotFoundError) Error() string {
	return "no fragment mapped for " + e.Ref
}
