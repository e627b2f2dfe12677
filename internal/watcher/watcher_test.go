package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"ctxhub/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(logging.Config{Format: "json", Level: "error", Output: os.Stderr})
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Cancel()

	var calls int32
	for i := 0; i < 5; i++ {
		d.Trigger(func() { atomic.AddInt32(&calls, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 call after rapid triggers, got %d", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Cancel()

	time.Sleep(120 * time.Millisecond)

	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("expected cancelled trigger to never fire, got %d calls", got)
	}
}

func TestDebouncerFlush(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Cancel()

	var calls int32
	d.Trigger(func() { atomic.AddInt32(&calls, 1) })
	d.Flush()

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected flush to run pending function once, got %d", got)
	}
}

func TestSnapshotTracksSwiftFiles(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, DefaultConfig(), testLogger(), func() {})

	base := w.snapshot()
	if base.fileCount != 0 {
		t.Fatalf("expected empty fingerprint, got %d files", base.fileCount)
	}

	writeFile(t, filepath.Join(dir, "App.swift"), "class App {}\n")
	writeFile(t, filepath.Join(dir, "README.md"), "ignored\n")

	next := w.snapshot()
	if next.fileCount != 1 {
		t.Errorf("expected 1 swift file, got %d", next.fileCount)
	}
	if next == base {
		t.Error("expected fingerprint to change after adding a file")
	}
}

func TestSnapshotChangesOnContentGrowth(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Model.swift")
	writeFile(t, path, "struct Model {}\n")

	w := New(dir, DefaultConfig(), testLogger(), func() {})
	before := w.snapshot()

	writeFile(t, path, "struct Model {}\nstruct Other {}\n")

	after := w.snapshot()
	if after == before {
		t.Error("expected fingerprint to change after file grew")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
