package repository

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"estampa-studio/customize"
	"estampa-studio/models"
)

// sessionTTL is how long an idle session is kept before the sweep evicts it
const sessionTTL = 2 * time.Hour

// SessionStore keeps customization sessions in memory, keyed by uuid. Each
// session is exclusively owned by one customization page instance; there is
// no cross-session sharing.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*customize.Session
}

// NewSessionStore creates a SessionStore and starts its expiry sweep
func NewSessionStore() *SessionStore {
	store := &SessionStore{
		sessions: make(map[string]*customize.Session),
	}
	go store.sweep()
	return store
}

// Create builds a new session for a product and registers it
func (s *SessionStore) Create(product *models.Product, flow string, surfaces customize.SurfaceFactory) *customize.Session {
	session := customize.NewSession(uuid.NewString(), product, flow, surfaces)

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	log.Printf("✅ SessionStore: created session %s for product %d (flow=%s)", session.ID, product.ID, flow)
	return session
}

// Get returns a session by ID
func (s *SessionStore) Get(id string) (*customize.Session, error) {
	s.mu.RLock()
	session, exists := s.sessions[id]
	s.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

// Delete removes a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// sweep evicts sessions idle longer than the TTL. Touch times are read
// through Session.Touched outside the store lock, so a handler holding a
// session does not block Create/Get for everyone else.
func (s *SessionStore) sweep() {
	ticker := time.NewTicker(15 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-sessionTTL)

		s.mu.RLock()
		candidates := make(map[string]*customize.Session, len(s.sessions))
		for id, session := range s.sessions {
			candidates[id] = session
		}
		s.mu.RUnlock()

		var expired []string
		for id, session := range candidates {
			if session.Touched().Before(cutoff) {
				expired = append(expired, id)
			}
		}
		if len(expired) == 0 {
			continue
		}

		s.mu.Lock()
		for _, id := range expired {
			delete(s.sessions, id)
		}
		s.mu.Unlock()

		log.Printf("🔄 SessionStore: evicted %d idle sessions", len(expired))
	}
}
