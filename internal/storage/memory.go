package storage

import "sync"

// MemoryStore is an in-memory Store. Tests use it directly; sharing one
// instance between several subscribers simulates multiple contexts over
// the same storage area. Unlike FileStore it notifies every subscriber,
// including the writer's own.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	subs   []chan Event
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]

	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	subs := append([]chan Event(nil), s.subs...)
	s.mu.Unlock()

	notify(subs, Event{Key: key, Value: value})

	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	_, ok := s.values[key]
	delete(s.values, key)
	subs := append([]chan Event(nil), s.subs...)
	s.mu.Unlock()

	if ok {
		notify(subs, Event{Key: key, Removed: true})
	}

	return nil
}

func (s *MemoryStore) Subscribe() <-chan Event {
	ch := make(chan Event, subscriberBuffer)

	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()

	return ch
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	for _, ch := range s.subs {
		close(ch)
	}

	s.subs = nil

	return nil
}

func notify(subs []chan Event, ev Event) {
	for _, ch := range subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
