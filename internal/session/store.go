// Package session persists the client's authentication state: the opaque
// auth token, the HTTP header name the token travels under, and the login
// surface ("user" or "admin") the session was established against.
package session

import "sync"

const (
	// DefaultTokenName is the header used when the backend never told us
	// otherwise.
	DefaultTokenName = "satoken"

	LoginTypeUser  = "user"
	LoginTypeAdmin = "admin"
)

// Store is the durable key-value contract for the three session scalars.
// An absent value reads as the empty string, never as an error: a missing
// token simply means "logged out". Values are opaque at this layer; nothing
// validates the token's shape.
type Store interface {
	Token() string
	SetToken(token string) error
	RemoveToken() error

	TokenName() string
	SetTokenName(name string) error
	RemoveTokenName() error

	LoginType() string
	SetLoginType(loginType string) error
	RemoveLoginType() error

	// ClearAll removes all three entries. The removals are independent and
	// idempotent, so there is no transaction to maintain.
	ClearAll() error
}

// MemoryStore is an in-memory Store, used by tests and as a fallback when no
// durable backend is available.
type MemoryStore struct {
	mu        sync.RWMutex
	token     string
	tokenName string
	loginType string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) RemoveToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

func (s *MemoryStore) TokenName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokenName
}

func (s *MemoryStore) SetTokenName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenName = name
	return nil
}

func (s *MemoryStore) RemoveTokenName() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokenName = ""
	return nil
}

func (s *MemoryStore) LoginType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginType
}

func (s *MemoryStore) SetLoginType(loginType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginType = loginType
	return nil
}

func (s *MemoryStore) RemoveLoginType() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginType = ""
	return nil
}

func (s *MemoryStore) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.tokenName = ""
	s.loginType = ""
	return nil
}
