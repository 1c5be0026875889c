package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrStartNotBeforeEnd = errors.New("start date must be before end date")
	ErrStartInPast       = errors.New("start date cannot be in the past")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// DateRange is a half-open rental interval [start, end): the end instant is
// checkout time and does not occupy the vehicle, so a range ending at T and a
// range starting at T do not conflict.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, ErrStartNotBeforeEnd
	}

	return DateRange{
		start: start,
		end:   end,
	}, nil
}

func (r DateRange) Start() time.Time {
	return r.start
}

func (r DateRange) End() time.Time {
	return r.end
}

func (r DateRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// Days is the billable day count: the elapsed time rounded up to whole days.
// A 2-hour rental bills one day.
func (r DateRange) Days() int64 {
	d := r.Duration()
	days := int64(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Overlaps applies the half-open rule: two ranges conflict iff each starts
// strictly before the other ends.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

func (r DateRange) ValidateNotPastAt(now time.Time) error {
	if r.start.Before(now) {
		return ErrStartInPast
	}
	return nil
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s,%s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Rands() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}
