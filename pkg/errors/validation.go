package errors

import (
	"strings"
	"time"
	"unicode"
)

// DateLayout is the calendar date format used by the NeoWs feed and by
// observation dates.
const DateLayout = "2006-01-02"

// MaxFeedDays is the widest range the feed endpoint accepts, counting both
// the start and end date.
const MaxFeedDays = 8

// ValidateDate checks that s is a calendar date in YYYY-MM-DD form and
// returns the parsed value.
func ValidateDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, New(ErrCodeInvalidDate, "date cannot be empty")
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Wrap(ErrCodeInvalidDate, err, "invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// ValidateDateRange validates a feed range.
//
// Validation rules:
//   - Both dates must parse as YYYY-MM-DD
//   - end must not be before start
//   - The range may span at most [MaxFeedDays] calendar days, inclusive
func ValidateDateRange(start, end string) error {
	s, err := ValidateDate(start)
	if err != nil {
		return err
	}
	e, err := ValidateDate(end)
	if err != nil {
		return err
	}
	if e.Before(s) {
		return New(ErrCodeInvalidDateRange, "end date %s is before start date %s", end, start)
	}
	if days := int(e.Sub(s).Hours()/24) + 1; days > MaxFeedDays {
		return New(ErrCodeInvalidDateRange, "range spans %d days (max %d)", days, MaxFeedDays)
	}
	return nil
}

// ValidateAPIKey rejects keys that cannot be sent as a query parameter.
func ValidateAPIKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "API key cannot be empty")
	}
	if len(key) > 128 {
		return New(ErrCodeInvalidInput, "API key too long (max 128 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "API key contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
