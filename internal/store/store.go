// Package store keeps the ordered timer collection and mirrors it to a
// Backend after every mutation.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/google/uuid"
)

// Store owns the in-memory collection. It is not safe for concurrent use;
// callers that share one across goroutines must serialize access.
type Store struct {
	backend Backend
	timers  []model.Timer
	now     func() time.Time
	newID   func() string
}

// Option configures a Store
type Option func(*Store)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// Open loads the collection from backend. Records without an ID, or with
// an ID already used earlier in the file, get a fresh one; the change is
// only written on the next mutation.
func Open(ctx context.Context, backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}

	timers, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(timers))
	for i := range timers {
		if timers[i].ID == "" || seen[timers[i].ID] {
			timers[i].ID = s.newID()
		}
		seen[timers[i].ID] = true
	}
	s.timers = timers

	logger.Debug("Timer store loaded", logger.F("timers", len(timers)))
	return s, nil
}

// Close closes the backend
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) clock() time.Time {
	return s.now().Truncate(time.Microsecond)
}

// Now returns the store's current time, as used for new and reset dates
func (s *Store) Now() time.Time {
	return s.clock()
}

// Len returns the number of timers
func (s *Store) Len() int {
	return len(s.timers)
}

// Timers returns a copy of the collection in its current order
func (s *Store) Timers() []model.Timer {
	out := make([]model.Timer, len(s.timers))
	copy(out, s.timers)
	return out
}

// Get returns the timer with the given ID
func (s *Store) Get(id string) (model.Timer, error) {
	i, err := s.indexOf(id)
	if err != nil {
		return model.Timer{}, err
	}
	return s.timers[i], nil
}

// Find resolves a full ID or a unique ID prefix
func (s *Store) Find(idOrPrefix string) (model.Timer, error) {
	if idOrPrefix == "" {
		return model.Timer{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if t, err := s.Get(idOrPrefix); err == nil {
		return t, nil
	}

	var matches []model.Timer
	for _, t := range s.timers {
		if strings.HasPrefix(t.ID, idOrPrefix) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return model.Timer{}, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return model.Timer{}, fmt.Errorf("%w: %s matches %d timers", ErrAmbiguous, idOrPrefix, len(matches))
	}
}

// Save writes the whole collection to the backend
func (s *Store) Save(ctx context.Context) error {
	if err := s.backend.Save(ctx, s.timers); err != nil {
		logger.Error("Failed to save timers", logger.F("error", err))
		return err
	}
	return nil
}

// Add appends a timer started now and saves. Name and target are stored
// as given.
func (s *Store) Add(ctx context.Context, name string, targetDays int) (model.Timer, error) {
	t := model.NewTimer(s.newID(), name, targetDays, s.clock())
	s.timers = append(s.timers, t)
	logger.Info("Timer added", logger.F("id", t.ID), logger.F("name", name), logger.F("target_days", targetDays))
	return t, s.Save(ctx)
}

// Delete removes the timer with the given ID and saves
func (s *Store) Delete(ctx context.Context, id string) error {
	i, err := s.indexOf(id)
	if err != nil {
		return err
	}
	return s.DeleteAt(ctx, i)
}

// DeleteAt removes the timer at index in the current order and saves
func (s *Store) DeleteAt(ctx context.Context, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	removed := s.timers[index]
	s.timers = append(s.timers[:index], s.timers[index+1:]...)
	logger.Info("Timer deleted", logger.F("id", removed.ID), logger.F("name", removed.Name))
	return s.Save(ctx)
}

// Reset restarts the timer with the given ID and saves
func (s *Store) Reset(ctx context.Context, id string) (model.Timer, error) {
	i, err := s.indexOf(id)
	if err != nil {
		return model.Timer{}, err
	}
	return s.ResetAt(ctx, i)
}

// ResetAt sets the date of the timer at index to now and saves. Name and
// target are left alone.
func (s *Store) ResetAt(ctx context.Context, index int) (model.Timer, error) {
	if err := s.checkIndex(index); err != nil {
		return model.Timer{}, err
	}
	s.timers[index].Date = s.clock()
	t := s.timers[index]
	logger.Info("Timer reset", logger.F("id", t.ID), logger.F("name", t.Name))
	return t, s.Save(ctx)
}

// Sort reorders the collection in memory. The new order is not saved by
// itself, but the next mutation writes whatever order is current.
func (s *Store) Sort(c model.SortCriterion) {
	model.SortTimers(s.timers, c, s.clock())
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.timers) {
		return &IndexError{Index: index, Len: len(s.timers)}
	}
	return nil
}

func (s *Store) indexOf(id string) (int, error) {
	for i, t := range s.timers {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrNotFound, id)
}
