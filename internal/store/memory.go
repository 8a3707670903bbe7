package store

import "sync"

// Memory is a map-backed backend for tests.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes int

	// FailWrites makes every Write return an error, for failure-path tests.
	FailWrites error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Memory) Write(key string, data []byte) error {
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.data[key] = stored
	m.writes++
	return nil
}

func (m *Memory) Close() error { return nil }

// Len returns how many keys have been written, for coalescing tests.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Writes returns the total number of Write calls, for coalescing tests.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Seed places raw data under a key without going through Write.
func (m *Memory) Seed(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}
