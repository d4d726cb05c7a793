package cart

import (
	"sync"

	"github.com/appetiteclub/apt"
)

// Store keeps the live carts keyed by session ID. Carts are in-memory by
// design: an abandoned browsing session leaves nothing behind to clean up
// beyond this map.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// Open creates a cart under a fresh session ID.
func (s *Store) Open() *Cart {
	c := New(apt.GenerateNewID().String())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.SessionID] = c
	return c
}

func (s *Store) Get(sessionID string) (*Cart, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[sessionID]
	return c, ok
}

func (s *Store) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
