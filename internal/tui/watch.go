package tui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 300 * time.Millisecond

// configChangedMsg reports that a config file (or one of its includes)
// changed on disk.
type configChangedMsg struct {
	path string
}

// configWatcher turns file events on the loaded config files into
// configChangedMsg values. Editors often write via rename, so the parent
// directories are watched and events filtered by path.
type configWatcher struct {
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	changes chan configChangedMsg
	done    chan struct{}

	mu    sync.Mutex
	files map[string]struct{}
	timer *time.Timer
}

func newConfigWatcher(logger *slog.Logger) (*configWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	w := &configWatcher{
		watcher: watcher,
		logger:  logger,
		changes: make(chan configChangedMsg, 1),
		done:    make(chan struct{}),
		files:   make(map[string]struct{}),
	}
	go w.loop()
	return w, nil
}

// Next waits for the next change. Update re-issues it after each message.
func (w *configWatcher) Next() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.changes:
			return msg
		case <-w.done:
			return nil
		}
	}
}

// Watch adds files to the watched set.
func (w *configWatcher) Watch(files []string) error {
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.mu.Lock()
		_, known := w.files[abs]
		w.mu.Unlock()
		if known {
			continue
		}
		// Recorded only once its directory is watched.
		if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
		w.mu.Lock()
		w.files[abs] = struct{}{}
		w.mu.Unlock()
	}
	return nil
}

// Close stops the watcher and any pending notification.
func (w *configWatcher) Close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	return w.watcher.Close()
}

func (w *configWatcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			abs, _ := filepath.Abs(event.Name)
			w.mu.Lock()
			if _, ok := w.files[abs]; ok {
				if w.timer != nil {
					w.timer.Stop()
				}
				w.timer = time.AfterFunc(reloadDebounce, func() {
					w.logger.Debug("config changed", "path", abs)
					select {
					case w.changes <- configChangedMsg{path: abs}:
					default: // a reload is already pending
					}
				})
			}
			w.mu.Unlock()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)
		}
	}
}
