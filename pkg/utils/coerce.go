package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate coerces a raw string into a calendar date. ISO timestamps are
// accepted and truncated to their date part.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Truncate(24 * time.Hour), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as date", raw)
}

// ParseDateTime coerces a raw string into a timestamp. A bare date parses
// as midnight UTC.
func ParseDateTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as timestamp", raw)
}

// ParseNumber coerces a raw string into a float. Thousands separators are
// tolerated since exported spreadsheets often carry them.
func ParseNumber(raw string) (float64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as number", raw)
	}
	return v, nil
}

// ParseInteger coerces a raw string into an integer.
func ParseInteger(raw string) (int, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as integer", raw)
	}
	return v, nil
}

// NormalizeEnum matches a raw value against the allowed set, ignoring case
// and surrounding whitespace, and returns the canonical spelling.
func NormalizeEnum(raw string, allowed []string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("%q is not one of %s", raw, strings.Join(allowed, ", "))
}
