package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/existflow/daysince/internal/auth"
	"github.com/existflow/daysince/internal/logger"
	"github.com/existflow/daysince/internal/model"
	"github.com/existflow/daysince/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	// ErrLocked is returned when a password is configured but none was given
	ErrLocked = errors.New("password required: run in a terminal or set DAYSINCE_UNLOCK")
	// ErrIncorrectPassword is returned when the gate rejects the password
	ErrIncorrectPassword = errors.New("😕 Password incorrect")
)

// unlockEnv supplies the password for non-interactive use
const unlockEnv = "DAYSINCE_UNLOCK"

// readPassword is swapped in tests
var readPassword = func(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrLocked
	}
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

func newGate() *auth.Gate {
	return auth.NewGate(cfg.Password)
}

// unlock runs the password gate for one-shot commands. The dashboard has
// its own password screen.
func unlock() error {
	session := newGate().NewSession()
	if session.Authenticated() {
		return nil
	}

	candidate, ok := os.LookupEnv(unlockEnv)
	if !ok {
		var err error
		candidate, err = readPassword("Password: ")
		if err != nil {
			return err
		}
	}

	if !session.Attempt(candidate) {
		logger.Warn("Incorrect password")
		return ErrIncorrectPassword
	}
	return nil
}

// openStore opens the configured backend and loads the timers
func openStore(ctx context.Context) (*store.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	backend, err := store.OpenBackend(cfg.Backend, cfg.StoreTarget())
	if err != nil {
		return nil, fmt.Errorf("failed to open timer store: %w", err)
	}

	s, err := store.Open(ctx, backend)
	if err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("failed to load timers: %w", err)
	}
	return s, nil
}

// openUnlockedStore is the common prelude of the one-shot commands
func openUnlockedStore(cmd *cobra.Command) (*store.Store, error) {
	if err := unlock(); err != nil {
		return nil, err
	}
	return openStore(cmd.Context())
}

// rowSort is the --sort flag shared by list, reset and delete so '#N'
// names the same row in all three.
var rowSort string

func addSortFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&rowSort, "sort", "s", "", "Sort by: none, alphabetical, days (default from config)")
}

// applySortFlag makes --sort the order for this run. It reports whether
// that order differs from the configured default.
func applySortFlag(cmd *cobra.Command) (bool, error) {
	if !cmd.Flags().Changed("sort") {
		return false, nil
	}
	c, err := model.ParseSortCriterion(rowSort)
	if err != nil {
		return false, err
	}
	def, err := model.ParseSortCriterion(cfg.DefaultSort)
	if err != nil {
		return false, err
	}
	cfg.DefaultSort = c.String()
	return c != def, nil
}

// listOrder returns the timers in the configured default display order
func listOrder(s *store.Store) ([]model.Timer, error) {
	sortBy, err := model.ParseSortCriterion(cfg.DefaultSort)
	if err != nil {
		return nil, err
	}
	timers := s.Timers()
	model.SortTimers(timers, sortBy, s.Now())
	return timers, nil
}

// resolveTimer accepts an ID, a unique ID prefix, or #N for the N-th row
// of 'daysince list'.
func resolveTimer(s *store.Store, ref string) (model.Timer, error) {
	if strings.HasPrefix(ref, "#") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil {
			return model.Timer{}, fmt.Errorf("invalid row %q", ref)
		}
		timers, err := listOrder(s)
		if err != nil {
			return model.Timer{}, err
		}
		if n < 1 || n > len(timers) {
			return model.Timer{}, &store.IndexError{Index: n - 1, Len: len(timers)}
		}
		return timers[n-1], nil
	}
	return s.Find(ref)
}
