package dialog

import (
	"context"
	"sync"

	"github.com/rnlabs/finbot/internal/domain"
)

// SessionStore manages conversation sessions.
type SessionStore interface {
	// GetOrCreate finds an existing session by conversation ID or creates a
	// fresh one at the start of the script.
	GetOrCreate(ctx context.Context, conversationID string) (*domain.Session, error)

	// Save durably stores the session, overwriting the prior value for its
	// conversation.
	Save(ctx context.Context, sess *domain.Session) error
}

// MemorySessionStore is an in-memory SessionStore implementation. Sessions
// are stored by value so that unsaved mutations on a loaded session never
// leak into the store, matching the durable backend's semantics.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

// NewMemorySessionStore creates an in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domain.Session)}
}

func (s *MemorySessionStore) GetOrCreate(_ context.Context, conversationID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[conversationID]; ok {
		loaded := sess
		return &loaded, nil
	}

	fresh := domain.NewSession(conversationID)
	s.sessions[conversationID] = *fresh
	loaded := *fresh
	return &loaded, nil
}

func (s *MemorySessionStore) Save(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ConversationID] = *sess
	return nil
}
