// Package validation provides shared input validation and formatting helpers.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// ClientDateFormat is the day/month/year format used in client-facing
// payloads.
const ClientDateFormat = "02/01/2006"

// ParseFlexibleDate tries to parse a date string using the client format
// first, then a few common fallbacks.
func ParseFlexibleDate(dateStr string) (time.Time, error) {
	formats := []string{
		ClientDateFormat, // DD/MM/YYYY
		"02/01/06",       // DD/MM/YY
		"02-01-2006",     // DD-MM-YYYY
		time.DateOnly,    // YYYY-MM-DD
		"2006/01/02",     // YYYY/MM/DD
		time.RFC3339,     // ISO 8601 with time
	}

	s := strings.TrimSpace(dateStr)
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %q", dateStr)
}

// FormatClientDate renders a date in the client-facing day/month/year format.
func FormatClientDate(t time.Time) string {
	return t.Format(ClientDateFormat)
}
