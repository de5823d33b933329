package store

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned when the backing store exists but cannot be parsed
	ErrCorrupt = errors.New("timer store is corrupt")
	// ErrNotFound is returned when no timer has the requested ID
	ErrNotFound = errors.New("timer not found")
	// ErrAmbiguous is returned when an ID prefix matches more than one timer
	ErrAmbiguous = errors.New("timer id is ambiguous")
	// ErrIndexOutOfRange is matched by every *IndexError
	ErrIndexOutOfRange = errors.New("timer index out of range")
)

// IndexError reports a positional operation outside [0, Len)
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("timer index %d out of range [0, %d)", e.Index, e.Len)
}

// Is makes errors.Is(err, ErrIndexOutOfRange) true
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
