package game

import (
	"context"
	"sync"

	"github.com/jask/escaperoom/internal/pin"
)

// Store is the single-slot persistence the machine reads at startup and
// writes once on creation. Implementations absorb their own I/O failures:
// an unreadable slot is reported as absent and a failed write is a no-op.
type Store interface {
	Get(ctx context.Context) (pin.Pin, bool)
	Put(ctx context.Context, p pin.Pin)
	Clear(ctx context.Context)
}

// MemoryStore keeps the slot in process memory. It backs ephemeral play
// and tests.
type MemoryStore struct {
	mu  sync.Mutex
	pin pin.Pin
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get(_ context.Context) (pin.Pin, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pin, !s.pin.IsZero()
}

func (s *MemoryStore) Put(_ context.Context, p pin.Pin) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pin = p
}

func (s *MemoryStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pin = ""
}
