package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// authMiddleware checks for a valid session token. With the password gate
// disabled every request is let through.
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.gate.Enabled() {
			return next(c)
		}

		// Get token from Authorization header
		auth := c.Request().Header.Get("Authorization")
		if auth == "" {
			return errorJSON(c, http.StatusUnauthorized, "authorization required")
		}

		token := strings.TrimPrefix(auth, "Bearer ")
		if token == auth {
			return errorJSON(c, http.StatusUnauthorized, "invalid authorization format")
		}

		switch s.tokens.check(token) {
		case tokenUnknown:
			return errorJSON(c, http.StatusUnauthorized, "invalid token")
		case tokenExpired:
			return errorJSON(c, http.StatusUnauthorized, "token expired")
		}

		c.Set("token", token)
		return next(c)
	}
}
