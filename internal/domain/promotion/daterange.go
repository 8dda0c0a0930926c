package promotion

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("end date must not be before start date")

// DayKey is a calendar-day key in YYYY-MM-DD form. One key equals one slot of
// capacity for a given type and scope.
type DayKey string

const DayKeyFormat = "2006-01-02"

func (d DayKey) String() string {
	return string(d)
}

// DateRange is an inclusive calendar-day range. Both bounds are normalized to
// UTC midnight so that day arithmetic is independent of the caller's zone.
type DateRange struct {
	start time.Time
	end   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	s := truncateToDay(start)
	e := truncateToDay(end)
	if e.Before(s) {
		return DateRange{}, ErrInvalidRange
	}
	return DateRange{start: s, end: e}, nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Days expands the range into ordered day keys, one per calendar day
// inclusive of both bounds. A single-day range yields exactly one key.
func (r DateRange) Days() []DayKey {
	if r.IsZero() {
		return nil
	}
	days := make([]DayKey, 0, r.DayCount())
	for d := r.start; !d.After(r.end); d = d.AddDate(0, 0, 1) {
		days = append(days, DayKey(d.Format(DayKeyFormat)))
	}
	return days
}

func (r DateRange) DayCount() int {
	return int(r.end.Sub(r.start)/(24*time.Hour)) + 1
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !r.end.Before(other.start)
}

func (r DateRange) Contains(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(r.start) && !d.After(r.end)
}

// Default look-ahead horizon for availability queries without an explicit
// window: tomorrow through tomorrow plus two months.
const defaultHorizonMonths = 2

// DefaultWindow returns the window used when the caller omits one or both
// bounds. Missing start defaults to tomorrow, missing end to start plus the
// look-ahead horizon.
func DefaultWindow(now time.Time, start, end *time.Time) (DateRange, error) {
	s := truncateToDay(now).AddDate(0, 0, 1)
	if start != nil {
		s = truncateToDay(*start)
	}
	e := s.AddDate(0, defaultHorizonMonths, 0)
	if end != nil {
		e = truncateToDay(*end)
	}
	return NewDateRange(s, e)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
