package session

// #region imports
import (
	"sync"

	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/dialogue"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/negotiation"
	"github.com/danielpatrickdp/negotiation-trainer/go-backend/internal/turnlog"
)

// #endregion

// #region store
// Store is a session registry keyed by session ID. Each session owns its
// state exclusively, so the registry only guards the map itself.
type Store struct {
	gen    dialogue.Generator
	logger *turnlog.Store

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty registry sharing one generator and turn log.
func NewStore(gen dialogue.Generator, logger *turnlog.Store) *Store {
	return &Store{
		gen:      gen,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session for the given configuration.
func (st *Store) Create(cfg negotiation.Config) *Session {
	s := New(cfg, st.gen, st.logger)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

// Get looks up a session by ID.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Remove discards a session.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len returns the number of registered sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// #endregion store
