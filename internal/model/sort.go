package model

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SortCriterion selects how timers are ordered for display
type SortCriterion int

const (
	SortNone SortCriterion = iota
	SortAlphabetical
	SortDaysPassed
)

// SortCriteria lists every criterion in the order the dashboard cycles them
var SortCriteria = []SortCriterion{SortNone, SortAlphabetical, SortDaysPassed}

// String returns the canonical name used in config and flags
func (c SortCriterion) String() string {
	switch c {
	case SortNone:
		return "none"
	case SortAlphabetical:
		return "alphabetical"
	case SortDaysPassed:
		return "days"
	default:
		return "unknown"
	}
}

// Label returns the name shown in the dashboard
func (c SortCriterion) Label() string {
	switch c {
	case SortAlphabetical:
		return "Alphabetically"
	case SortDaysPassed:
		return "Days Passed"
	default:
		return "None"
	}
}

// Next returns the criterion after c, wrapping around
func (c SortCriterion) Next() SortCriterion {
	return SortCriteria[(int(c)+1)%len(SortCriteria)]
}

// ParseSortCriterion converts a flag, config value or label to a criterion
func ParseSortCriterion(s string) (SortCriterion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return SortNone, nil
	case "alphabetical", "alphabetically", "alpha", "name":
		return SortAlphabetical, nil
	case "days", "days passed", "days-passed", "elapsed":
		return SortDaysPassed, nil
	default:
		return SortNone, fmt.Errorf("unknown sort criterion %q (want none, alphabetical or days)", s)
	}
}

// SortTimers reorders timers in place. The sort is stable so equal keys
// keep their relative order.
func SortTimers(timers []Timer, c SortCriterion, now time.Time) {
	switch c {
	case SortAlphabetical:
		sort.SliceStable(timers, func(i, j int) bool {
			return timers[i].Name < timers[j].Name
		})
	case SortDaysPassed:
		sort.SliceStable(timers, func(i, j int) bool {
			return timers[i].ElapsedDays(now) < timers[j].ElapsedDays(now)
		})
	}
}
