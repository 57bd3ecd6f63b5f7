package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherCoalescesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "_book.yaml")
	if err := os.WriteFile(file, []byte("upper_tabs: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(file)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}

	for range 5 {
		if err := os.WriteFile(file, []byte("upper_tabs: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	select {
	case <-w.C():
	case <-time.After(5 * time.Second):
		t.Fatal("expected a change signal")
	}

	// The rapid writes should have been coalesced into that one signal.
	select {
	case <-w.C():
		t.Fatal("expected writes within the debounce window to coalesce")
	case <-time.After(w.debounce * 2):
	}
}

func TestWatcherStopIsIdempotentWithContextCancel(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()
	w.Stop()
}
