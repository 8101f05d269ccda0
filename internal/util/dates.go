package util

import (
	"time"
)

// CivilDateLayout is the wire format for docket filing dates. The
// case-management API never sends a time component.
const CivilDateLayout = "2006-01-02"

// ParseCivilDate parses an ISO calendar date. The zero time is returned for
// empty or malformed input so callers can treat "absent" and "unparseable"
// uniformly as unset.
func ParseCivilDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(CivilDateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatCivilDate renders a date in ISO form, or the empty string when unset.
func FormatCivilDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(CivilDateLayout)
}

// DaysBetween returns whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// MaxDate returns the later of two dates, ignoring unset (zero) values.
func MaxDate(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	if b.After(a) {
		return b
	}
	return a
}
