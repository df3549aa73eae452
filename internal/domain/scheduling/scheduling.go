// Package scheduling holds the pure appointment slot arithmetic used by the
// appointment usecase. Times are minutes after midnight.
package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const minutesPerDay = 24 * 60

var (
	ErrInvalidClock    = errors.New("time must use the HH:MM format")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrCrossesMidnight = errors.New("appointment must end by midnight")
)

// Slot is a half-open interval [Start, End) in minutes after midnight.
type Slot struct {
	Start int
	End   int
}

// Booked is an existing appointment occupying a slot.
type Booked struct {
	AppointmentID uuid.UUID
	Slot          Slot
}

// ParseClock converts a zero-padded 24h "HH:MM" clock into minutes after midnight.
func ParseClock(clock string) (int, error) {
	if len(clock) != 5 || clock[2] != ':' {
		return 0, ErrInvalidClock
	}
	for _, i := range []int{0, 1, 3, 4} {
		if clock[i] < '0' || clock[i] > '9' {
			return 0, ErrInvalidClock
		}
	}
	hours := int(clock[0]-'0')*10 + int(clock[1]-'0')
	minutes := int(clock[3]-'0')*10 + int(clock[4]-'0')
	if hours > 23 || minutes > 59 {
		return 0, ErrInvalidClock
	}
	return hours*60 + minutes, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NewSlot builds the slot starting at clock and lasting durationMinutes.
func NewSlot(clock string, durationMinutes int) (Slot, error) {
	start, err := ParseClock(clock)
	if err != nil {
		return Slot{}, err
	}
	if durationMinutes <= 0 {
		return Slot{}, ErrInvalidDuration
	}
	end := start + durationMinutes
	if end > minutesPerDay {
		return Slot{}, ErrCrossesMidnight
	}
	return Slot{Start: start, End: end}, nil
}

// Overlaps reports whether two slots share any minute. Touching slots do not overlap.
func (s Slot) Overlaps(other Slot) bool {
	return s.Start < other.End && s.End > other.Start
}

// On anchors the slot on the given calendar date and returns its absolute bounds.
func (s Slot) On(date time.Time) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(time.Duration(s.Start) * time.Minute), day.Add(time.Duration(s.End) * time.Minute)
}

// FindConflict returns the first booked slot overlapping candidate.
func FindConflict(candidate Slot, existing []Booked) (*Booked, bool) {
	for i := range existing {
		if candidate.Overlaps(existing[i].Slot) {
			return &existing[i], true
		}
	}
	return nil, false
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(time.DateOnly, value, time.UTC)
}
