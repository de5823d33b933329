package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

type testEnv struct {
	srv   *Server
	clock *testClock
	path  string
}

func newTestEnv(t *testing.T, password string, opts ...Option) *testEnv {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)}
	path := filepath.Join(t.TempDir(), "timers.json")

	ids := 0
	st, err := store.Open(context.Background(), store.NewJSONFile(path),
		store.WithClock(clock.Now),
		store.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("timer-%d", ids)
		}))
	require.NoError(t, err)

	srv := New(st, auth.NewGate(password), opts...)
	t.Cleanup(func() { _ = srv.Close() })
	return &testEnv{srv: srv, clock: clock, path: path}
}

func (e *testEnv) do(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.srv.Router().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(t *testing.T, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/login", "", fmt.Sprintf(`{"password":%q}`, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Token, 64)
	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "secret")
	rec := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, "secret")

	rec := env.do(t, http.MethodPost, "/api/v1/login", "", `{"password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.login(t, "secret")
	rec = env.do(t, http.MethodGet, "/api/v1/timers", token, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginWithHashedSecret(t *testing.T) {
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	env := newTestEnv(t, hash)

	env.login(t, "secret")
	rec := env.do(t, http.MethodPost, "/api/v1/login", "", fmt.Sprintf(`{"password":%q}`, hash))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	env := newTestEnv(t, "secret")

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", "authorization required"},
		{"wrong scheme", "Basic abc", "invalid authorization format"},
		{"unknown", "Bearer abc", "invalid token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/timers", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			env.srv.Router().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestTokenExpiry(t *testing.T) {
	env := newTestEnv(t, "secret")
	token := env.login(t, "secret")

	env.clock.now = env.clock.now.Add(tokenTTL - time.Minute)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/timers", token, "").Code)

	env.clock.now = env.clock.now.Add(2 * time.Minute)
	rec := env.do(t, http.MethodGet, "/api/v1/timers", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token expired")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, "secret")
	token := env.login(t, "secret")

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodPost, "/api/v1/logout", token, "").Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/v1/timers", token, "").Code)
}

func TestGateDisabled(t *testing.T) {
	env := newTestEnv(t, "")
	rec := env.do(t, http.MethodGet, "/api/v1/timers", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateTimer(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"Quit smoking","target_days":30}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[TimerResponse](t, rec)
	assert.Equal(t, "timer-1", created.ID)
	assert.Equal(t, "Quit smoking", created.Name)
	assert.Equal(t, 30, created.TargetDays)
	assert.Equal(t, 0, created.ElapsedDays)
	assert.False(t, created.Overdue)
	assert.Equal(t, "2024-03-01T09:00:00", created.Date)

	// Persisted to the file
	reloaded, err := store.NewJSONFile(env.path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Equal(t, "Quit smoking", reloaded[0].Name)
}

func TestCreateTimerValidation(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		body string
	}{
		{"empty name", `{"name":"  ","target_days":3}`},
		{"zero target", `{"name":"x","target_days":0}`},
		{"negative target", `{"name":"x","target_days":-2}`},
		{"bad json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/timers", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	list := decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers", "", ""))
	assert.Empty(t, list.Timers)
}

func TestListTimersSortAndOverdue(t *testing.T) {
	env := newTestEnv(t, "", WithDefaultSort(model.SortNone))

	env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"B","target_days":5}`)
	env.clock.now = env.clock.now.Add(10 * 24 * time.Hour)
	env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"A","target_days":5}`)

	list := decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers", "", ""))
	require.Len(t, list.Timers, 2)
	assert.Equal(t, "none", list.Sort)
	assert.Equal(t, "B", list.Timers[0].Name)
	assert.Equal(t, 10, list.Timers[0].ElapsedDays)
	assert.True(t, list.Timers[0].Overdue)
	assert.Equal(t, 1, list.Overdue)

	list = decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers?sort=alphabetical", "", ""))
	assert.Equal(t, "A", list.Timers[0].Name)

	list = decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers?sort=days", "", ""))
	assert.Equal(t, "A", list.Timers[0].Name)
	assert.Equal(t, "days", list.Sort)

	rec := env.do(t, http.MethodGet, "/api/v1/timers?sort=sideways", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Listing sorted does not reorder the store
	list = decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers", "", ""))
	assert.Equal(t, "B", list.Timers[0].Name)
}

func TestResetTimer(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"Gym","target_days":3}`)
	env.clock.now = env.clock.now.Add(4 * 24 * time.Hour)

	rec := env.do(t, http.MethodPost, "/api/v1/timers/timer-1/reset", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	reset := decode[TimerResponse](t, rec)
	assert.Equal(t, "Gym", reset.Name)
	assert.Equal(t, 3, reset.TargetDays)
	assert.Equal(t, 0, reset.ElapsedDays)
	assert.False(t, reset.Overdue)

	rec = env.do(t, http.MethodPost, "/api/v1/timers/missing/reset", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTimer(t *testing.T) {
	env := newTestEnv(t, "")
	env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"One","target_days":1}`)
	env.do(t, http.MethodPost, "/api/v1/timers", "", `{"name":"Two","target_days":1}`)

	rec := env.do(t, http.MethodDelete, "/api/v1/timers/timer-1", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	list := decode[ListTimersResponse](t, env.do(t, http.MethodGet, "/api/v1/timers", "", ""))
	require.Len(t, list.Timers, 1)
	assert.Equal(t, "Two", list.Timers[0].Name)

	rec = env.do(t, http.MethodDelete, "/api/v1/timers/timer-1", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
