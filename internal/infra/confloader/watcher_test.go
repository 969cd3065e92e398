package confloader

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func newTestWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := NewWatcher()
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	return w
}

func TestWatchMissingDirectory(t *testing.T) {
	w := newTestWatcher(t)
	defer w.Stop()

	if err := w.Watch("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Watch() accepted a path in a missing directory")
	}
}

func TestOnChangeFanOut(t *testing.T) {
	w := newTestWatcher(t)
	defer w.Stop()

	var mu sync.Mutex
	count := 0
	for i := 0; i < 3; i++ {
		w.OnChange(func(string) {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}

	w.notify("/etc/transgate/config.yaml")

	mu.Lock()
	defer mu.Unlock()
	if count != 3 {
		t.Errorf("callbacks fired = %d, want 3", count)
	}
}

func TestWatcherReportsFileWrite(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: info\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	w := newTestWatcher(t)
	defer w.Stop()

	if err := w.Watch(cfgPath); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	changed := make(chan string, 4)
	w.OnChange(func(path string) {
		select {
		case changed <- path:
		default:
		}
	})
	w.StartAsync()

	// Let the event loop come up before touching the file.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(cfgPath, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case path := <-changed:
		if filepath.Base(path) != "config.yaml" {
			t.Errorf("changed path = %q, want config.yaml", path)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event observed")
	}
}

func TestWatcherStop(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("key: value"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	w := newTestWatcher(t)
	if err := w.Watch(cfgPath); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}
	w.StartAsync()
	time.Sleep(50 * time.Millisecond)

	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
