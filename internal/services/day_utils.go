package services

import (
	"errors"
	"strings"
	"time"
)

// DateKeyLayout is the canonical calendar-day format used for storage and comparison.
const DateKeyLayout = "2006-01-02"

var ErrInvalidDateKey = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DateKeyAt(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DateKeyLayout)
}

// CanonicalDateKey accepts either a date string ("2026-03-01", optionally
// followed by a time part) or an RFC 3339 timestamp. Timestamps carrying an
// offset are moved into location before truncating to the calendar day.
func CanonicalDateKey(raw string, location *time.Location) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrInvalidDateKey
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateKeyAt(parsed, location), nil
		}
	}

	if len(value) < len(DateKeyLayout) {
		return "", ErrInvalidDateKey
	}
	day, err := ParseDateKey(value[:len(DateKeyLayout)], location)
	if err != nil {
		return "", err
	}
	return day.Format(DateKeyLayout), nil
}

// ParseDateKey returns midnight of the canonical day in location.
func ParseDateKey(key string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(DateKeyLayout, strings.TrimSpace(key), location)
	if err != nil {
		return time.Time{}, ErrInvalidDateKey
	}
	return parsed, nil
}
