package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/churrascode/churrasco/internal/atomicfile"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/goleak"
)

func TestRelevant(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data.json")
	w := &Watcher{path: target}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{name: "write", ev: fsnotify.Event{Name: target, Op: fsnotify.Write}, want: true},
		{name: "rename onto", ev: fsnotify.Event{Name: target, Op: fsnotify.Create}, want: true},
		{name: "removed", ev: fsnotify.Event{Name: target, Op: fsnotify.Remove}, want: true},
		{name: "renamed away", ev: fsnotify.Event{Name: target, Op: fsnotify.Rename}, want: true},
		{name: "chmod only", ev: fsnotify.Event{Name: target, Op: fsnotify.Chmod}, want: false},
		{name: "other file", ev: fsnotify.Event{Name: filepath.Join(dir, "seed.json"), Op: fsnotify.Write}, want: false},
		{name: "staged temp", ev: fsnotify.Event{Name: filepath.Join(dir, ".data.json-123.tmp"), Op: fsnotify.Create}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.relevant(tt.ev); got != tt.want {
				t.Fatalf("relevant(%v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestRunSignalsAtomicReplace(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	target := filepath.Join(dir, "data.json")
	if err := os.WriteFile(target, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	w, err := New(target, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes := w.Run(ctx)

	if err := atomicfile.WriteFile(target, []byte(`{"items":[]}`+"\n"), 0o644); err != nil {
		cancel()
		t.Fatalf("WriteFile: %v", err)
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("no change signal after atomic replace")
	}

	cancel()
	for range changes {
	}
}

func TestRunClosesOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	w, err := New(filepath.Join(t.TempDir(), "data.json"), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	changes := w.Run(ctx)
	cancel()

	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "data.json"), nil); err == nil {
		t.Fatal("expected error for missing directory")
	}
}
