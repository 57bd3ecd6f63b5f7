package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/booknav/internal/book"
	"git.home.luguber.info/inful/booknav/internal/config"
	"git.home.luguber.info/inful/booknav/internal/resolver"
)

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	return full
}

func TestLoadEndToEnd(t *testing.T) {
	dir := t.TempDir()
	bookPath := writeFile(t, dir, "_book.yaml", `
upper_tabs:
  - name: Guide
    path: /cirq
    contents:
      - heading: First steps
      - title: Install
        path: /cirq/install
      - include: fragments/build.yaml
`)
	writeFile(t, dir, "fragments/build.yaml", `
- name: Build
  contents:
    - title: Circuits
      path: /cirq/build/circuits
`)
	writeFile(t, dir, "content/cirq/install.md", "# Install\n")
	writeFile(t, dir, "content/cirq/build/circuits.md", "# Circuits\n")

	cfg := &config.Config{
		Book:         bookPath,
		IncludesRoot: dir,
		Resolver:     config.ResolverFS,
		ContentDir:   filepath.Join(dir, "content"),
	}

	res, err := New(cfg, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Book.UpperTabs, 1)

	contents := res.Book.UpperTabs[0].Contents
	require.Len(t, contents, 3, "include should splice to a single container")
	assert.Equal(t, book.KindHeading, contents[0].Kind())
	assert.Equal(t, "/cirq/install", contents[1].Path)
	assert.Equal(t, "Build", contents[2].Name)
	assert.False(t, book.HasIncludes(res.Book))
	assert.Empty(t, res.Issues)
}

func TestLoadStrictPromotesWarnings(t *testing.T) {
	dir := t.TempDir()
	bookPath := writeFile(t, dir, "_book.yaml", `
upper_tabs:
  - name: Guide
    contents:
      - title: A
        path: /same
      - title: B
        path: /same
`)
	cfg := &config.Config{Book: bookPath, IncludesRoot: dir, Resolver: config.ResolverFS, Strict: true}

	res, err := New(cfg, nil).Load(context.Background())
	require.NoError(t, err)
	require.True(t, book.HasErrors(res.Issues), "strict mode should promote duplicate-path to error")
}

func TestLoadSurfacesResolverFailure(t *testing.T) {
	dir := t.TempDir()
	bookPath := writeFile(t, dir, "_book.yaml", `
upper_tabs:
  - name: Guide
    contents:
      - include: missing.yaml
`)
	cfg := &config.Config{Book: bookPath, IncludesRoot: dir, Resolver: config.ResolverFS}

	_, err := New(cfg, nil).Load(context.Background())
	require.Error(t, err)
	assert.True(t, book.IsCategory(err, book.CategoryUnresolvedInclude), "got %v", err)
}

func TestLoadWithInjectedResolver(t *testing.T) {
	dir := t.TempDir()
	bookPath := writeFile(t, dir, "_book.yaml", `
upper_tabs:
  - name: Guide
    contents:
      - include: frag.yaml
`)
	cfg := &config.Config{Book: bookPath, Resolver: config.ResolverFS, IncludesRoot: dir}
	l := New(cfg, nil).WithResolver(resolver.Map{"frag.yaml": "- heading: Injected\n"})

	res, err := l.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Injected", res.Book.UpperTabs[0].Contents[0].Heading)
}

func TestLoadMissingBookFile(t *testing.T) {
	cfg := &config.Config{Book: filepath.Join(t.TempDir(), "absent.yaml"), Resolver: config.ResolverFS, IncludesRoot: "."}
	_, err := New(cfg, nil).Load(context.Background())
	require.Error(t, err)
}
