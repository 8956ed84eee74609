package inventory

import "time"

// DateLayout is the storage format of expiration dates.
const DateLayout = "2006-01-02"

// Clock supplies the reference date for derived views.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ParseDate parses a YYYY-MM-DD value in loc. Empty or malformed values
// report false.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidDate reports whether value is empty or a well-formed calendar date.
func ValidDate(value string) bool {
	if value == "" {
		return true
	}
	_, ok := ParseDate(value, time.UTC)
	return ok
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
