package memory

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/aretw0/behave/pkg/ports"
)

// Store implements ports.ScriptStore in memory.
// Safe for concurrent use.
type Store struct {
	data     map[string][]byte
	mu       sync.RWMutex
	watchers []chan string
}

// NewStore creates a new in-memory store, optionally seeded with scripts.
func NewStore(seed map[string]string) *Store {
	s := &Store{
		data: make(map[string][]byte, len(seed)),
	}
	for name, content := range seed {
		s.data[name] = []byte(content)
	}
	return s
}

// Read returns a copy of the script content.
func (s *Store) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ports.ValidateScriptName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[name]
	if !ok {
		return nil, ports.ErrScriptNotFound
	}
	return bytes.Clone(data), nil
}

// Write stores a copy of data and notifies watchers.
func (s *Store) Write(ctx context.Context, name string, data []byte) error {
	if err := ports.ValidateScriptName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[name] = bytes.Clone(data)
	for _, ch := range s.watchers {
		select {
		case ch <- name:
		default:
			// Slow watcher: drop the event rather than block writers.
		}
	}
	return nil
}

// Delete removes the script.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidateScriptName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored script names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Watch implements ports.Watchable. Events are buffered; a watcher that falls
// behind misses events instead of blocking writes.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, 16)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		s.watchers = slices.DeleteFunc(s.watchers, func(c chan string) bool { return c == ch })
		close(ch)
	}()
	return ch, nil
}
