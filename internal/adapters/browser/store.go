package browser

import (
	"fmt"
	"sort"
	"sync"
)

// Store keeps captured screenshots in memory, keyed by caller-chosen name.
// Entries live for the process lifetime; there is no eviction, a rerun under
// the same name overwrites the previous capture.
type Store struct {
	mu    sync.RWMutex
	shots map[string][]byte
}

func NewStore() *Store {
	return &Store{shots: make(map[string][]byte)}
}

// Put stores PNG bytes under name, replacing any previous capture.
func (s *Store) Put(name string, png []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shots[name] = png
}

// Get returns the stored PNG for name.
func (s *Store) Get(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	png, ok := s.shots[name]
	if !ok {
		return nil, fmt.Errorf("no screenshot named %q", name)
	}
	return png, nil
}

// Names lists stored screenshot names in stable order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.shots))
	for name := range s.shots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
