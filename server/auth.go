package server

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"
	"time"

	"github.com/existflow/daysince/internal/logger"
	"github.com/labstack/echo/v4"
)

// tokenTTL is how long a login stays valid
const tokenTTL = 30 * 24 * time.Hour

type tokenState int

const (
	tokenValid tokenState = iota
	tokenUnknown
	tokenExpired
)

// tokenTable keeps issued session tokens in memory. Restarting the server
// logs everyone out.
type tokenTable struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

func newTokenTable(now func() time.Time) *tokenTable {
	return &tokenTable{
		expires: make(map[string]time.Time),
		now:     now,
	}
}

// issue creates a token and drops any that have expired
func (t *tokenTable) issue() (string, time.Time, error) {
	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", time.Time{}, err
	}
	token := hex.EncodeToString(tokenBytes)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	for k, exp := range t.expires {
		if now.After(exp) {
			delete(t.expires, k)
		}
	}

	expiresAt := now.Add(tokenTTL)
	t.expires[token] = expiresAt
	return token, expiresAt, nil
}

func (t *tokenTable) check(token string) tokenState {
	t.mu.Lock()
	defer t.mu.Unlock()

	exp, ok := t.expires[token]
	if !ok {
		return tokenUnknown
	}
	if t.now().After(exp) {
		delete(t.expires, token)
		return tokenExpired
	}
	return tokenValid
}

func (t *tokenTable) revoke(token string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.expires, token)
}

type loginRequest struct {
	Password string `json:"password"`
}

type authResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// handleLogin exchanges the dashboard password for a session token
func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	if !s.gate.Check(req.Password) {
		logger.Warn("Login failed", logger.F("remote", c.RealIP()))
		return errorJSON(c, http.StatusUnauthorized, "invalid password")
	}

	token, expiresAt, err := s.tokens.issue()
	if err != nil {
		logger.Error("Failed to create token", logger.F("error", err))
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}

	logger.Info("Login succeeded", logger.F("remote", c.RealIP()))

	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// handleLogout revokes the caller's token
func (s *Server) handleLogout(c echo.Context) error {
	if token, ok := c.Get("token").(string); ok {
		s.tokens.revoke(token)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "logged out"})
}
