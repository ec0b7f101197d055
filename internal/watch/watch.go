// Package watch reports when the model or material files change on disk so the viewer
// can reload them without restarting.
package watch

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const eventChannelBuffer = 16

// Event names a watched file whose content changed.
type Event struct {
	Path    string
	Removed bool
}

// Watcher watches a fixed set of files. Directories are watched rather than files so
// editors that save by rename are still seen.
type Watcher struct {
	fsw    *fsnotify.Watcher
	delay  time.Duration
	logger *slog.Logger

	files map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashes map[string][32]byte

	events  chan Event
	dropped atomic.Int64
}

// New returns a Watcher for paths. Changes are collected for delay before they are
// reported, so one save produces one Event.
func New(paths []string, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:     fsw,
		delay:   delay,
		logger:  logger,
		files:   make(map[string]bool),
		pending: make(map[string]fsnotify.Op),
		hashes:  make(map[string][32]byte),
		events:  make(chan Event, eventChannelBuffer),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, err
		}
		w.files[abs] = true
	}
	return w, nil
}

// Events returns the channel of debounced changes. It is closed when Start's context
// ends or Stop is called.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching and returns once the watches are in place.
func (w *Watcher) Start(ctx context.Context) error {
	dirs := make(map[string]bool)
	for f := range w.files {
		if data, err := os.ReadFile(f); err == nil {
			w.hashes[f] = sha256.Sum256(data)
		}
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := w.fsw.Add(d); err != nil {
			return err
		}
		w.logger.Debug("Watching directory", slog.String("path", d))
	}
	go w.processEvents(ctx)
	w.logger.Info("File watcher started", slog.Int("files", len(w.files)), slog.Duration("debounce", w.delay))
	return nil
}

// Stop releases the watches.
func (w *Watcher) Stop() error {
	return w.fsw.Close()
}

// Dropped returns how many events were discarded because nobody was reading.
func (w *Watcher) Dropped() int64 {
	return w.dropped.Load()
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)
	ticker := time.NewTicker(w.delay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", slog.String("error", err.Error()))
		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path, err := filepath.Abs(ev.Name)
	if err != nil || !w.files[path] {
		return
	}
	w.pendingMu.Lock()
	w.pending[path] |= ev.Op
	w.pendingMu.Unlock()
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path := range batch {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				delete(w.hashes, path)
				w.send(Event{Path: path, Removed: true})
				continue
			}
			w.logger.Warn("Failed to read changed file", slog.String("path", path), slog.String("error", err.Error()))
			continue
		}
		sum := sha256.Sum256(data)
		if old, ok := w.hashes[path]; ok && old == sum {
			continue
		}
		w.hashes[path] = sum
		w.send(Event{Path: path})
	}
}

func (w *Watcher) send(ev Event) {
	select {
	case w.events <- ev:
		w.logger.Debug("File changed", slog.String("path", ev.Path), slog.Bool("removed", ev.Removed))
	default:
		n := w.dropped.Add(1)
		w.logger.Warn("Watch channel full, dropping event", slog.String("path", ev.Path), slog.Int64("total_dropped", n))
	}
}
