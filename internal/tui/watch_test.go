package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfigWatcher_RetriesAfterFailedAdd(t *testing.T) {
	w, err := newConfigWatcher(nil)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	dir := filepath.Join(t.TempDir(), "conf")
	path := filepath.Join(dir, "config.yaml")

	if err := w.Watch([]string{path}); err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
	if got := len(w.watcher.WatchList()); got != 0 {
		t.Fatalf("watch list=%d entries, want 0", got)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := w.Watch([]string{path}); err != nil {
		t.Fatalf("watch after mkdir: %v", err)
	}
	list := w.watcher.WatchList()
	if len(list) != 1 || list[0] != dir {
		t.Fatalf("watch list=%v, want [%s]", list, dir)
	}
}
