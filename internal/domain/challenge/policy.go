package challenge

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrOutOfWindow = errors.New("entry date outside challenge window")
	ErrFutureDate  = errors.New("entry date is in the future")
	ErrInvalidDate = errors.New("invalid entry date")
)

// EntryDateLayout is the accepted format for date-only entry input.
const EntryDateLayout = "2006-01-02"

var goalAmount = decimal.NewFromInt(100000)

// GoalAmount is the shared target every participant races toward.
func GoalAmount() decimal.Decimal {
	return goalAmount
}

// Window is the inclusive [Start, End] range of one challenge year.
// End is the last nanosecond of Dec 31, so every sub-second instant of that day is inside.
type Window struct {
	Year  int
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) Location() *time.Location {
	return w.Start.Location()
}

// Policy derives windows and validates entry dates in a fixed location.
// It never reads the wall clock; callers pass now explicitly.
type Policy struct {
	location *time.Location
}

func NewPolicy(location *time.Location) Policy {
	if location == nil {
		location = time.UTC
	}
	return Policy{location: location}
}

func (p Policy) Location() *time.Location {
	if p.location == nil {
		return time.UTC
	}
	return p.location
}

func (p Policy) ActiveYear(now time.Time) int {
	return now.In(p.Location()).Year()
}

func (p Policy) Window(now time.Time) Window {
	return p.WindowForYear(p.ActiveYear(now))
}

func (p Policy) WindowForYear(year int) Window {
	loc := p.Location()
	return Window{
		Year:  year,
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		End:   time.Date(year, time.December, 31, 23, 59, 59, int(time.Second-time.Nanosecond), loc),
	}
}

// ValidateEntryDate checks the window first, then rejects instants after now.
func (p Policy) ValidateEntryDate(recordedAt, now time.Time) error {
	window := p.Window(now)
	if !window.Contains(recordedAt) {
		return fmt.Errorf("%w: %s is not within %d", ErrOutOfWindow, recordedAt.In(p.Location()).Format(EntryDateLayout), window.Year)
	}
	if recordedAt.After(now) {
		return fmt.Errorf("%w: %s", ErrFutureDate, recordedAt.In(p.Location()).Format(EntryDateLayout))
	}
	return nil
}

// ResolveEntryDate maps optional YYYY-MM-DD input to the stored instant.
// Dates are pinned to local noon; an empty input or a today-noon still ahead of now resolves to now.
func (p Policy) ResolveEntryDate(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now, nil
	}

	loc := p.Location()
	day, err := time.ParseInLocation(EntryDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q, expected %s", ErrInvalidDate, raw, EntryDateLayout)
	}

	recordedAt := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, loc)
	localNow := now.In(loc)
	sameDay := localNow.Year() == day.Year() && localNow.YearDay() == day.YearDay()
	if sameDay && recordedAt.After(now) {
		return now, nil
	}

	return recordedAt, nil
}
