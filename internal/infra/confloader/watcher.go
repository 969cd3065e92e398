package confloader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to watched config files. It watches the
// containing directory rather than the file itself so editors that
// replace the file by rename still trigger a change event.
type Watcher struct {
	fsw  *fsnotify.Watcher
	log  *slog.Logger
	done chan struct{}

	mu        sync.RWMutex
	callbacks []func(string)
}

// NewWatcher creates an idle Watcher; call Watch and then Start or
// StartAsync.
func NewWatcher() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:  fsw,
		log:  slog.Default(),
		done: make(chan struct{}),
	}, nil
}

// Watch registers the directory containing path.
func (w *Watcher) Watch(path string) error {
	dir := filepath.Dir(path)
	if err := w.fsw.Add(dir); err != nil {
		return err
	}
	w.log.Debug("watching for config changes", "dir", dir, "file", filepath.Base(path))
	return nil
}

// OnChange registers a callback invoked with the path of each changed
// file.
func (w *Watcher) OnChange(cb func(string)) {
	w.mu.Lock()
	w.callbacks = append(w.callbacks, cb)
	w.mu.Unlock()
}

// Start processes events until Stop is called. Write and create
// events fire the callbacks; everything else is ignored.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.log.Debug("config file changed", "file", event.Name, "op", event.Op.String())
				w.notify(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("config watcher error", "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs Start in its own goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends the event loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsw.Close()
}

func (w *Watcher) notify(path string) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, cb := range w.callbacks {
		cb(path)
	}
}
