package utils

import "time"

// NowRFC3339 returns the current UTC time formatted as RFC3339.
// All persisted timestamps use this format so they sort lexicographically.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// ParseRFC3339 parses an RFC3339 timestamp
func ParseRFC3339(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}
