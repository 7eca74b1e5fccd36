package auth

import (
	"sync"

	"storefront-client/models"
)

// Session is the explicit identity-session handle shared by the client and
// controllers. It owns the current bearer token and username and nothing
// else; the authentication handshake that produced the token lives outside
// this package.
//
// The generation counter lets callers detect that the session changed while
// a request was in flight: capture Generation before issuing the request,
// compare after, and discard the response on mismatch.
type Session struct {
	mu         sync.RWMutex
	token      string
	username   string
	generation uint64
}

// NewSession creates an unauthenticated session
func NewSession() *Session {
	return &Session{}
}

// SetToken installs a new bearer token and username, bumping the generation
func (s *Session) SetToken(token, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.username = username
	s.generation++
}

// End clears the session (sign-out or token revocation)
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	s.generation++
}

// AccessToken returns the current bearer token, empty when unauthenticated.
// Implements client.TokenSource.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the preferred username supplied at sign-in
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Authenticated reports whether a token is present
func (s *Session) Authenticated() bool {
	return s.AccessToken() != ""
}

// Generation returns the current session generation
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Claims decodes the current token. Recomputed on every call; claims are
// never cached across token changes.
func (s *Session) Claims() models.TokenClaims {
	return DecodeToken(s.AccessToken())
}

// Role resolves the effective role from the current token. Like Claims,
// this is a pure function of the token and is never cached.
func (s *Session) Role() models.Role {
	return ResolveRole(s.Claims())
}
