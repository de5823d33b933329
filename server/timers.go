package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
	"github.com/labstack/echo/v4"
)

// TimerResponse is a timer as served by the API
type TimerResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Date        string `json:"date"`
	TargetDays  int    `json:"target_days"`
	ElapsedDays int    `json:"elapsed_days"`
	Overdue     bool   `json:"overdue"`
}

// ListTimersResponse is the body of GET /timers
type ListTimersResponse struct {
	Timers  []TimerResponse `json:"timers"`
	Sort    string          `json:"sort"`
	Overdue int             `json:"overdue"`
}

// CreateTimerRequest is the body of POST /timers
type CreateTimerRequest struct {
	Name       string `json:"name"`
	TargetDays int    `json:"target_days"`
}

func (s *Server) toResponse(t model.Timer) TimerResponse {
	now := s.store.Now()
	return TimerResponse{
		ID:          t.ID,
		Name:        t.Name,
		Date:        model.FormatDate(t.Date),
		TargetDays:  t.TargetDays,
		ElapsedDays: t.ElapsedDays(now),
		Overdue:     t.IsOverdue(now),
	}
}

// handleListTimers returns every timer, sorted by ?sort= when given
func (s *Server) handleListTimers(c echo.Context) error {
	sortBy := s.defaultSort
	if v := c.QueryParam("sort"); v != "" {
		parsed, err := model.ParseSortCriterion(v)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		sortBy = parsed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timers := s.store.Timers()
	model.SortTimers(timers, sortBy, s.store.Now())

	resp := ListTimersResponse{
		Timers: make([]TimerResponse, 0, len(timers)),
		Sort:   sortBy.String(),
	}
	for _, t := range timers {
		r := s.toResponse(t)
		if r.Overdue {
			resp.Overdue++
		}
		resp.Timers = append(resp.Timers, r)
	}

	return c.JSON(http.StatusOK, resp)
}

// handleCreateTimer starts a new timer from now
func (s *Server) handleCreateTimer(c echo.Context) error {
	var req CreateTimerRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return errorJSON(c, http.StatusBadRequest, "name is required")
	}
	if req.TargetDays < 1 {
		return errorJSON(c, http.StatusBadRequest, "target_days must be at least 1")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Add(c.Request().Context(), name, req.TargetDays)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to save timer")
	}

	logger.Info("Timer created via API", logger.F("id", t.ID))
	return c.JSON(http.StatusCreated, s.toResponse(t))
}

// handleResetTimer restarts a timer from now
func (s *Server) handleResetTimer(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.store.Reset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusOK, s.toResponse(t))
}

// handleDeleteTimer removes a timer
func (s *Server) handleDeleteTimer(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func storeError(c echo.Context, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errorJSON(c, http.StatusNotFound, "timer not found")
	}
	logger.Error("Store operation failed", logger.F("error", err))
	return errorJSON(c, http.StatusInternalServerError, "failed to save timers")
}
