package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booknav.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "book: nav/_book.yaml\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Book != "nav/_book.yaml" {
		t.Errorf("book not loaded: %q", cfg.Book)
	}
	if cfg.Resolver != ResolverFS {
		t.Errorf("expected fs resolver default, got %q", cfg.Resolver)
	}
	if cfg.IncludesRoot != "." {
		t.Errorf("expected includes_root default, got %q", cfg.IncludesRoot)
	}
	if cfg.Server.Listen != ":8085" {
		t.Errorf("expected listen default, got %q", cfg.Server.Listen)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("NAV_ROOT", "/srv/nav")
	cfg, err := Load(writeConfig(t, "book: ${NAV_ROOT}/_book.yaml\nincludes_root: ${NAV_ROOT}/fragments\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Book != "/srv/nav/_book.yaml" || cfg.IncludesRoot != "/srv/nav/fragments" {
		t.Fatalf("env expansion failed: %+v", cfg)
	}
}

func TestLoadRejectsUnknownResolver(t *testing.T) {
	_, err := Load(writeConfig(t, "resolver: carrier-pigeon\n"))
	if err == nil {
		t.Fatal("expected error for unknown resolver")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Book != "_book.yaml" || cfg.Resolver != ResolverFS {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
