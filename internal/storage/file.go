package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

const subscriberBuffer = 16

// FileStore keeps one file per key inside a directory and watches that
// directory with fsnotify, so another process using the same directory
// shows up as a stream of change events.
type FileStore struct {
	dir     string
	watcher *fsnotify.Watcher

	mu         sync.Mutex
	subs       []chan Event
	selfWrites map[string]string // key -> last value written by us
	closed     bool
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching storage directory: %w", err)
	}

	s := &FileStore{
		dir:        dir,
		watcher:    watcher,
		selfWrites: make(map[string]string),
	}

	go s.loop()

	return s, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key)
}

func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}

	return string(data), true
}

func (s *FileStore) Set(key, value string) error {
	s.markSelfWrite(key, value)

	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Remove(key string) error {
	s.markSelfWrite(key, "")

	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing key %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

func (s *FileStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}

	s.closed = true
	s.mu.Unlock()

	return s.watcher.Close()
}

func (s *FileStore) markSelfWrite(key, value string) {
	s.mu.Lock()
	s.selfWrites[key] = value
	s.mu.Unlock()
}

// isSelfWrite reports whether an observed value for key matches the last
// write made through this store, mimicking the browser rule that a context
// is not notified of its own storage writes. The entry is kept, not
// consumed, because one Set surfaces as several filesystem events.
func (s *FileStore) isSelfWrite(key, value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	last, ok := s.selfWrites[key]
	if !ok {
		return false
	}

	if last != value {
		// Another context overwrote the key; the entry is stale.
		delete(s.selfWrites, key)
		return false
	}

	return true
}

func (s *FileStore) loop() {
	for {
		select {
		case ev, ok := <-s.watcher.Events:
			if !ok {
				s.closeSubs()
				return
			}

			s.handle(ev)

		case _, ok := <-s.watcher.Errors:
			if !ok {
				s.closeSubs()
				return
			}
			// Watcher errors are non-fatal; the store stays usable for
			// reads and writes even if notification degrades.
		}
	}
}

func (s *FileStore) handle(ev fsnotify.Event) {
	key := filepath.Base(ev.Name)
	if strings.HasPrefix(key, ".") {
		return
	}

	out := Event{Key: key}

	if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		out.Removed = true
	} else {
		data, err := os.ReadFile(ev.Name)
		if err != nil {
			out.Removed = true
		} else {
			out.Value = string(data)
		}
	}

	observed := out.Value
	if out.Removed {
		observed = ""
	}

	if s.isSelfWrite(key, observed) {
		return
	}

	s.broadcast(out)
}

func (s *FileStore) broadcast(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Slow subscriber; drop rather than block the watch loop.
		}
	}
}

func (s *FileStore) closeSubs() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		close(ch)
	}

	s.subs = nil
}
