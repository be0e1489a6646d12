// Package authstate holds the in-process view of the current session: the
// last-fetched user profile and the login surface. It mirrors the durable
// session store but is not itself durable; RestoreAuth re-derives what it can
// on startup and the profile stays nil until a fresh fetch repopulates it.
package authstate

import (
	"sync"

	"github.com/musegate-dev/musegate/internal/session"
)

// RoleAdmin is the role literal the backend assigns to administrators.
const RoleAdmin = "ADMIN"

// Profile is the subset of the login/profile payload the client keeps in
// memory between calls.
type Profile struct {
	ID        int64
	Username  string
	Nickname  string
	AvatarURL string
	Role      string
	Token     string
}

// Store is the process-wide auth state. One owning instance per application,
// initialized with RestoreAuth and torn down with ClearUser; there is no
// package-level singleton.
type Store struct {
	mu        sync.RWMutex
	sessions  session.Store
	profile   *Profile
	loginType string
}

func New(sessions session.Store) *Store {
	return &Store{sessions: sessions}
}

// SetUser records a fresh login: the profile and login type in memory, the
// token and login type durably. Any token-bearing profile is accepted.
func (s *Store) SetUser(profile Profile, loginType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = &profile
	s.loginType = loginType

	if err := s.sessions.SetToken(profile.Token); err != nil {
		return err
	}
	return s.sessions.SetLoginType(loginType)
}

// ClearUser drops the in-memory state and wipes the durable session.
func (s *Store) ClearUser() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = nil
	s.loginType = ""
	return s.sessions.ClearAll()
}

// RestoreAuth re-derives the login type from the durable session on startup.
// The profile is deliberately not restored: it must be refetched so stale
// data never survives a restart. When either token or login type is absent
// the in-memory state is left unchanged.
func (s *Store) RestoreAuth() {
	token := s.sessions.Token()
	loginType := s.sessions.LoginType()
	if token == "" || loginType == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginType = loginType
}

// IsAuthed reports whether a session token is present. It is derived from the
// durable store on every call, so it reflects 401-triggered wipes immediately.
func (s *Store) IsAuthed() bool {
	return s.sessions.Token() != ""
}

// IsAdmin reports whether the fetched profile carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile != nil && s.profile.Role == RoleAdmin
}

// Profile returns a copy of the in-memory profile, or nil when none has been
// fetched since startup.
func (s *Store) Profile() *Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil
	}
	p := *s.profile
	return &p
}

// LoginType returns the in-memory login type, "" when logged out.
func (s *Store) LoginType() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loginType
}
