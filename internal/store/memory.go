package store

import (
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no artifact has been rendered under a name.
	ErrNotFound = errors.New("artifact not found")
)

// Artifact is one rendering of a report file (chart image, workbook).
type Artifact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	RenderedAt  time.Time `json:"renderedAt"` // always UTC
	BaselineID  string    `json:"baselineId"`
	Data        []byte    `json:"-"`
}

// MemoryStore is a concurrency-safe in-memory store of rendered artifacts.
type MemoryStore struct {
	mu sync.RWMutex

	// key: artifact name, value: renders oldest first
	data map[string][]Artifact

	maxHistory int // max number of renders per name
}

// NewMemoryStore creates a new MemoryStore.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]Artifact),
		maxHistory: maxHistory,
	}
}

// Save appends a render and enforces retention.
func (s *MemoryStore) Save(a Artifact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[a.Name], a)
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		over := len(history) - s.maxHistory
		history = history[over:]
	}
	s.data[a.Name] = history
}

// GetLatest returns the most recent render of name.
func (s *MemoryStore) GetLatest(name string) (Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[name]
	if len(history) == 0 {
		return Artifact{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// History returns every retained render of name, oldest first.
func (s *MemoryStore) History(name string) ([]Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[name]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	out := make([]Artifact, len(history))
	copy(out, history)
	return out, nil
}

// Names lists the stored artifact names in sorted order.
func (s *MemoryStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
