// Package store persists named JSON collections to a machine-local backend.
// Saves are fire-and-forget: they are queued and flushed once writes go idle
// or a bounded delay expires, so rapid successive edits coalesce into one
// write. Loads fail soft to an empty collection and never error to callers.
package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned by backends for keys that were never written.
var ErrNotFound = errors.New("store: key not found")

// Backend is a flat key-value sink for serialized collections. Writes
// replace the whole value under the key.
type Backend interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Close() error
}

const (
	// idleDelay is how long the queue must stay quiet before a flush.
	idleDelay = 100 * time.Millisecond
	// maxDelay bounds the deferral so a busy editing session still persists.
	maxDelay = 2 * time.Second
)

// Store wraps a Backend with write coalescing. Last writer wins per key;
// there is no versioning and no merge.
type Store struct {
	backend Backend
	log     *zap.Logger

	mu      sync.Mutex
	pending map[string][]byte

	kick   chan struct{}
	done   chan struct{}
	closed bool
	wg     sync.WaitGroup
}

func New(backend Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		backend: backend,
		log:     log,
		pending: make(map[string][]byte),
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.worker()
	return s
}

// Load decodes the collection stored under key. Missing keys, corrupt
// payloads, and backend failures all yield an empty slice with a logged
// diagnostic; callers never see an error.
func Load[T any](s *Store, key string) []T {
	out := make([]T, 0)
	data, ok := s.read(key)
	if !ok {
		return out
	}
	if err := json.Unmarshal(data, &out); err != nil {
		s.log.Warn("discarding corrupt collection", zap.String("key", key), zap.Error(err))
		loadFailures.WithLabelValues(key).Inc()
		return make([]T, 0)
	}
	return out
}

// LoadString reads a scalar preference (currency, custom icon). Missing or
// corrupt values yield "".
func (s *Store) LoadString(key string) string {
	data, ok := s.read(key)
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		s.log.Warn("discarding corrupt value", zap.String("key", key), zap.Error(err))
		loadFailures.WithLabelValues(key).Inc()
		return ""
	}
	return v
}

func (s *Store) read(key string) ([]byte, bool) {
	// A queued-but-unflushed save is authoritative for readers.
	s.mu.Lock()
	if data, ok := s.pending[key]; ok {
		s.mu.Unlock()
		return data, true
	}
	s.mu.Unlock()

	data, err := s.backend.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Warn("storage read failed", zap.String("key", key), zap.Error(err))
			loadFailures.WithLabelValues(key).Inc()
		}
		return nil, false
	}
	return data, true
}

// Save serializes v and queues it for a deferred write. The value passed must
// be the complete authoritative collection for the key: the stored value is
// fully overwritten, not patched. Serialization happens now so later mutation
// of v by the caller cannot leak into the write.
func (s *Store) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Error("collection not serializable", zap.String("key", key), zap.Error(err))
		return
	}
	s.enqueue(key, data)
}

// SaveString queues a scalar preference write.
func (s *Store) SaveString(key, v string) {
	data, _ := json.Marshal(v)
	s.enqueue(key, data)
}

func (s *Store) enqueue(key string, data []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("save after close dropped", zap.String("key", key))
		return
	}
	s.pending[key] = data
	s.mu.Unlock()

	saves.WithLabelValues(key).Inc()
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// Flush writes out everything queued. Used on shutdown and by tests that
// need the deferred path to resolve deterministically.
func (s *Store) Flush() {
	s.flush()
}

// Close drains pending writes, stops the worker, and closes the backend.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	s.flush()
	return s.backend.Close()
}

func (s *Store) worker() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case <-s.kick:
		}

		idle := time.NewTimer(idleDelay)
		deadline := time.NewTimer(maxDelay)
	settle:
		for {
			select {
			case <-s.done:
				idle.Stop()
				deadline.Stop()
				return
			case <-s.kick:
				if !idle.Stop() {
					select {
					case <-idle.C:
					default:
					}
				}
				idle.Reset(idleDelay)
			case <-idle.C:
				break settle
			case <-deadline.C:
				break settle
			}
		}
		idle.Stop()
		deadline.Stop()
		s.flush()
	}
}

func (s *Store) flush() {
	s.mu.Lock()
	if len(s.pending) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.pending
	s.pending = make(map[string][]byte)
	s.mu.Unlock()

	for key, data := range batch {
		if err := s.backend.Write(key, data); err != nil {
			s.log.Error("storage write failed", zap.String("key", key), zap.Error(err))
			writeFailures.WithLabelValues(key).Inc()
			continue
		}
		flushes.WithLabelValues(key).Inc()
	}
}
