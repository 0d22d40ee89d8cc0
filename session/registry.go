package session

import "sync"

// Registry maps session ids to sessions. It's shared by all the connections, so every
// operation is synchronized. Sessions are stored fully built, so a concurrent Find never
// observes a partially constructed one.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Add stores the session, replacing a previous one with the same id.
func (r *Registry) Add(session *Session) {
	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()
}

func (r *Registry) Find(id string) (*Session, bool) {
	r.mu.RLock()
	session, found := r.sessions[id]
	r.mu.RUnlock()

	return session, found
}

// Remove deletes the session. Removing an unknown id is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}
