// Package resolver provides include-fragment resolvers for the navigation
// loader: filesystem, HTTP, an in-memory map for tests, and a memoizing
// wrapper. The loader itself performs no I/O; all of it lives here.
package resolver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/booknav/internal/book"
)

// FS resolves include references as file paths under a root directory.
// References are treated as root-relative regardless of a leading slash;
// escaping the root is rejected.
type FS struct {
	root string
}

// NewFS creates a filesystem resolver rooted at dir.
func NewFS(dir string) *FS {
	return &FS{root: dir}
}

// Resolve reads and parses the referenced fragment file.
func (f *FS) Resolve(_ context.Context, ref string) ([]*book.Node, error) {
	rel := filepath.Clean(strings.TrimPrefix(ref, "/"))
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return nil, fmt.Errorf("include %q escapes fragment root", ref)
	}
	raw, err := os.ReadFile(filepath.Join(f.root, rel))
	if err != nil {
		return nil, fmt.Errorf("read fragment: %w", err)
	}
	return book.ParseFragment(raw)
}
