package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// clockFormats are tried in order: 24-hour first, then 12-hour with meridiem.
var clockFormats = []string{"15:04", "3:04 PM", "3:04 pm"}

func parseClock(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range clockFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// computeMinutes returns the whole-minute difference between start and end,
// floored at zero (an end before start, e.g. a session crossing midnight, must
// never yield a negative duration). Nil when either side is missing or
// unparsable under both clock formats.
func computeMinutes(start, end string) *int32 {
	s, ok := parseClock(start)
	if !ok {
		return nil
	}
	e, ok := parseClock(end)
	if !ok {
		return nil
	}
	diff := int32(e.Sub(s).Minutes())
	if diff < 0 {
		diff = 0
	}
	return &diff
}

// resolveMinutes applies the precedence rule: an explicit non-negative integer
// minutes column wins over the computed duration.
func resolveMinutes(minutesCol, start, end string) *int32 {
	if minutesCol != "" {
		if n, err := strconv.Atoi(minutesCol); err == nil && n >= 0 {
			m := int32(n)
			return &m
		}
	}
	return computeMinutes(start, end)
}

// splitDateTime splits an embedded "MM/DD/YYYY HH:MM" value into date and
// start-time parts.
func splitDateTime(s string) (date, clock string, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), " ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], strings.TrimSpace(parts[1]), true
}

// normalizeDate accepts MM/DD/YYYY or already-canonical YYYY-MM-DD. Any other
// format is an unrecoverable row-level error, never silently misparsed.
func normalizeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("01/02/2006", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date format: %s", s)
}
