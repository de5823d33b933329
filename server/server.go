package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server exposes a timer store over a JSON API
type Server struct {
	// mu serializes store access; the store itself is single-goroutine
	mu    sync.Mutex
	store *store.Store

	gate        *auth.Gate
	tokens      *tokenTable
	defaultSort model.SortCriterion
	echo        *echo.Echo
}

// Option configures a Server
type Option func(*Server)

// WithDefaultSort sets the order used when a list request has no ?sort=
func WithDefaultSort(c model.SortCriterion) Option {
	return func(s *Server) {
		s.defaultSort = c
	}
}

// New creates a server around an open store
func New(st *store.Store, gate *auth.Gate, opts ...Option) *Server {
	s := &Server{
		store:  st,
		gate:   gate,
		tokens: newTokenTable(st.Now),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Custom logging middleware
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			logger.Debug("HTTP Request",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("remote", req.RemoteAddr))

			err := next(c)

			res := c.Response()
			logger.Info("HTTP Response",
				logger.F("method", req.Method),
				logger.F("uri", req.RequestURI),
				logger.F("status", res.Status),
				logger.F("size", res.Size),
				logger.F("duration", time.Since(start).String()),
				logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)))

			return err
		}
	})

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())

	e.GET("/health", s.handleHealth)

	api := e.Group("/api/v1")
	api.POST("/login", s.handleLogin)

	protected := api.Group("")
	protected.Use(s.authMiddleware)
	protected.POST("/logout", s.handleLogout)
	protected.GET("/timers", s.handleListTimers)
	protected.POST("/timers", s.handleCreateTimer)
	protected.POST("/timers/:id/reset", s.handleResetTimer)
	protected.DELETE("/timers/:id", s.handleDeleteTimer)

	s.echo = e
}

// Close closes the underlying store
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Close()
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}
