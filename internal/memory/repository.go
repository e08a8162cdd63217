package memory

import (
	"errors"
	"sync"
)

// Entity kinds used as repository namespaces.
const (
	KindRequirement  = "requirement"
	KindFeature      = "feature"
	KindBug          = "bug"
	KindCodeChange   = "code_change"
	KindTest         = "test"
	KindTestResult   = "test_result"
	KindFeedback     = "feedback"
	KindDocument     = "document"
	KindCodeFile     = "code_file"
	KindCoverage     = "coverage"
	KindRelationship = "relationship"
)

// ErrNotFound is returned when an entity does not exist in the repository.
var ErrNotFound = errors.New("memory: entity not found")

// Repository stores JSON-encoded entities per kind. The service marshals
// entities itself, so any key-value backend works: the in-memory map here,
// or the SQLite repository for persistence across restarts. Implementations
// must be safe under concurrent use — the tool layer dispatches protocol
// calls concurrently.
type Repository interface {
	// Put inserts or replaces the entity data under (kind, id).
	Put(kind, id string, data []byte) error

	// Get returns the entity data for (kind, id), or ErrNotFound.
	Get(kind, id string) ([]byte, error)

	// List returns every entity of the kind in insertion order.
	List(kind string) ([][]byte, error)

	// Close releases backend resources.
	Close() error
}

// ─── In-memory repository ───────────────────────────────────────────────────

type mapEntry struct {
	id   string
	data []byte
}

// MapRepository is the in-memory Repository: plain maps guarded by an
// RWMutex, with insertion order preserved per kind so scans are stable.
type MapRepository struct {
	mu    sync.RWMutex
	kinds map[string][]mapEntry
	index map[string]map[string]int // kind -> id -> position
}

// NewMapRepository creates an empty in-memory repository.
func NewMapRepository() *MapRepository {
	return &MapRepository{
		kinds: make(map[string][]mapEntry),
		index: make(map[string]map[string]int),
	}
}

// Put inserts or replaces the entity under (kind, id).
func (m *MapRepository) Put(kind, id string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.index[kind]
	if !ok {
		idx = make(map[string]int)
		m.index[kind] = idx
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	if pos, exists := idx[id]; exists {
		m.kinds[kind][pos] = mapEntry{id: id, data: cp}
		return nil
	}
	idx[id] = len(m.kinds[kind])
	m.kinds[kind] = append(m.kinds[kind], mapEntry{id: id, data: cp})
	return nil
}

// Get returns the entity data for (kind, id).
func (m *MapRepository) Get(kind, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.index[kind]
	if !ok {
		return nil, ErrNotFound
	}
	pos, ok := idx[id]
	if !ok {
		return nil, ErrNotFound
	}
	data := m.kinds[kind][pos].data
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// List returns every entity of the kind in insertion order.
func (m *MapRepository) List(kind string) ([][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := m.kinds[kind]
	out := make([][]byte, 0, len(entries))
	for _, e := range entries {
		cp := make([]byte, len(e.data))
		copy(cp, e.data)
		out = append(out, cp)
	}
	return out, nil
}

// Close is a no-op for the in-memory repository.
func (m *MapRepository) Close() error {
	return nil
}
