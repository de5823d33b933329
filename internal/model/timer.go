package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wall-clock layout timers are written with. It carries no
// zone; dates are read back in the local zone.
const DateLayout = "2006-01-02T15:04:05.999999"

const day = 24 * time.Hour

// Timer is a named start date with a target day count
type Timer struct {
	ID         string    `json:"id,omitempty"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	TargetDays int       `json:"target_days"`
}

// NewTimer creates a timer started at now
func NewTimer(id, name string, targetDays int, now time.Time) Timer {
	return Timer{
		ID:         id,
		Name:       name,
		Date:       now,
		TargetDays: targetDays,
	}
}

// ElapsedDays returns the whole days between the timer's date and now,
// rounded toward negative infinity. Both are compared as wall-clock
// readings, so a DST change does not shift the count.
func (t Timer) ElapsedDays(now time.Time) int {
	d := wallClock(now).Sub(wallClock(t.Date))
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}

// wallClock drops the zone, keeping the local date and time fields
func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// IsOverdue returns true once the elapsed days reach the target
func (t Timer) IsOverdue(now time.Time) bool {
	return t.ElapsedDays(now) >= t.TargetDays
}

type timerJSON struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	TargetDays int    `json:"target_days"`
}

// MarshalJSON writes the date as a local wall-clock ISO-8601 string.
func (t Timer) MarshalJSON() ([]byte, error) {
	return json.Marshal(timerJSON{
		ID:         t.ID,
		Name:       t.Name,
		Date:       FormatDate(t.Date),
		TargetDays: t.TargetDays,
	})
}

// UnmarshalJSON accepts local wall-clock dates and RFC 3339 dates.
func (t *Timer) UnmarshalJSON(data []byte) error {
	var raw timerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	date, err := ParseDate(raw.Date)
	if err != nil {
		return err
	}
	*t = Timer{
		ID:         raw.ID,
		Name:       raw.Name,
		Date:       date,
		TargetDays: raw.TargetDays,
	}
	return nil
}

// FormatDate renders d in DateLayout using the local zone
func FormatDate(d time.Time) string {
	return d.In(time.Local).Format(DateLayout)
}

// ParseDate parses an RFC 3339 timestamp or a zone-less ISO-8601 one.
// Fractional seconds are optional in both forms.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return d, nil
	}
	d, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timer date %q: %w", s, err)
	}
	return d, nil
}
