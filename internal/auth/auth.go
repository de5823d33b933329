// Package auth implements the shared-password gate in front of the
// dashboard.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when hashing an empty password
var ErrEmptyPassword = errors.New("password must not be empty")

// Gate compares candidates against the configured secret
type Gate struct {
	secret string
}

// NewGate returns a gate for secret. An empty secret disables the gate.
func NewGate(secret string) *Gate {
	return &Gate{secret: secret}
}

// Enabled reports whether a password is required
func (g *Gate) Enabled() bool {
	return g.secret != ""
}

// Check reports whether candidate matches the secret. Bcrypt secrets are
// verified with bcrypt; anything else is compared in constant time.
func (g *Gate) Check(candidate string) bool {
	if !g.Enabled() {
		return true
	}
	if IsHash(g.secret) {
		return bcrypt.CompareHashAndPassword([]byte(g.secret), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(g.secret)) == 1
}

// IsHash reports whether s looks like a bcrypt hash
func IsHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// HashPassword returns a bcrypt hash suitable for the config file
func HashPassword(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Session tracks whether one dashboard session got past the gate
type Session struct {
	gate          *Gate
	authenticated bool
	failed        bool
}

// NewSession starts an unauthenticated session. With a disabled gate it
// is authenticated from the start.
func (g *Gate) NewSession() *Session {
	return &Session{gate: g, authenticated: !g.Enabled()}
}

// Attempt checks candidate. On success the session stays authenticated
// for its lifetime; on failure Failed reports true until the next success.
// There is no attempt limit.
func (s *Session) Attempt(candidate string) bool {
	if s.authenticated {
		return true
	}
	if s.gate.Check(candidate) {
		s.authenticated = true
		s.failed = false
		return true
	}
	s.failed = true
	return false
}

// Authenticated reports whether protected content may be shown
func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Failed reports whether the last attempt was wrong
func (s *Session) Failed() bool {
	return s.failed
}
