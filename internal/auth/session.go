// Package auth exposes the authentication collaborator as consumed by the
// commerce engine. Credential issuance and storage live elsewhere; this
// package only answers "is there a session" and "what bearer token do I
// attach", and lets interested components observe login/logout.
package auth

import "sync"

// Session reports the current authentication state and bearer credential.
type Session interface {
	IsAuthenticated() bool
	Token() string
}

// Notifier lets components observe authentication transitions, e.g. the
// cart store clearing its snapshot on logout.
type Notifier interface {
	OnChange(fn func(authenticated bool))
}

// TokenSession is a Session backed by a swappable bearer token.
// SetToken("") models logout. Safe for concurrent use.
type TokenSession struct {
	mu    sync.RWMutex
	token string
	subs  []func(bool)
}

// NewTokenSession creates a TokenSession holding the given token, which
// may be empty for an unauthenticated start.
func NewTokenSession(token string) *TokenSession {
	return &TokenSession{token: token}
}

// IsAuthenticated reports whether a bearer token is present.
func (s *TokenSession) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the current bearer credential, empty when logged out.
func (s *TokenSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the credential and notifies observers when the
// authenticated state flips. An empty token is a logout.
func (s *TokenSession) SetToken(token string) {
	s.mu.Lock()
	was := s.token != ""
	s.token = token
	now := token != ""
	subs := s.subs
	s.mu.Unlock()

	if was == now {
		return
	}
	for _, fn := range subs {
		fn(now)
	}
}

// OnChange registers an observer of authentication transitions.
func (s *TokenSession) OnChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
