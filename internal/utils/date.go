package utils

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date")

// ParseDateBound reads an RFC 3339 timestamp or a plain YYYY-MM-DD date and
// returns it in UTC. A plain date used as an upper bound is moved to the
// last instant of that day.
func ParseDateBound(input string, endOfDay bool) (time.Time, error) {
	input = strings.TrimSpace(input)

	if t, err := time.Parse(time.RFC3339, input); err == nil {
		return t.UTC(), nil
	}

	day, err := time.Parse(time.DateOnly, input)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	if endOfDay {
		return day.Add(24*time.Hour - time.Nanosecond), nil
	}
	return day, nil
}
