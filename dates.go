package main

import (
	"time"

	"gorm.io/gorm"
)

const dayFormat = "2006-01-02"

// parseDay parses a YYYY-MM-DD string as a UTC midnight timestamp.
func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.UTC)
}

func today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// resolveDay turns an optional form date into a concrete day. Empty means
// today; anything else must parse.
func resolveDay(s string) (time.Time, error) {
	if s == "" {
		return today(), nil
	}
	return parseDay(s)
}

// applyDayRange adds inclusive bounds on col. Unparseable values are ignored,
// matching the lenient list-page behavior.
func applyDayRange(q *gorm.DB, col, startStr, endStr string) *gorm.DB {
	if startStr != "" {
		if start, err := parseDay(startStr); err == nil {
			q = q.Where(col+" >= ?", start)
		}
	}
	if endStr != "" {
		if end, err := parseDay(endStr); err == nil {
			q = q.Where(col+" <= ?", end)
		}
	}
	return q
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
