package session

import (
	"sync"

	"github.com/dchest/uniuri"
)

// NewID generates a random alphanumeric identifier of the given length. Lengths less
// than uniuri.StdLen are raised to it, as shorter ids are guessable.
func NewID(length int) string {
	if length < uniuri.StdLen {
		length = uniuri.StdLen
	}

	return uniuri.NewLen(length)
}

// Session is a server-side state of a client, bound to it by a cookie. It's safe
// to be shared by concurrently served connections of the same client.
type Session struct {
	ID string

	mu         sync.RWMutex
	attributes map[string]any
}

func New(id string) *Session {
	return &Session{
		ID:         id,
		attributes: make(map[string]any),
	}
}

// Attribute returns the value and whether it was set.
func (s *Session) Attribute(name string) (any, bool) {
	s.mu.RLock()
	value, found := s.attributes[name]
	s.mu.RUnlock()

	return value, found
}

func (s *Session) SetAttribute(name string, value any) *Session {
	s.mu.Lock()
	s.attributes[name] = value
	s.mu.Unlock()

	return s
}

func (s *Session) RemoveAttribute(name string) {
	s.mu.Lock()
	delete(s.attributes, name)
	s.mu.Unlock()
}

// Attributes returns a copy of all the attributes.
func (s *Session) Attributes() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string]any, len(s.attributes))
	for name, value := range s.attributes {
		copied[name] = value
	}

	return copied
}
