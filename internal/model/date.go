package model

import (
	"fmt"
	"strings"
	"time"

	apperrors "exercisetracker/internal/errors"
)

// DateLayout renders a calendar date as e.g. "Mon Jan 01 2024".
const DateLayout = "Mon Jan 02 2006"

// dateInputLayouts are tried in order by ParseDate.
var dateInputLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
	"Jan 2 2006",
	"January 2, 2006",
	"2006/01/02",
}

// CalendarDay truncates t to midnight UTC of the day t falls on in its own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses s as a calendar date. The result is midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return CalendarDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, s)
}

// FormatDate renders t with DateLayout.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
