package domain

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// StatusFor derives the expiry status from a YYYY-MM-DD date against
// today. Empty means no date recorded (N/A). A date strictly before today
// is Expired; today itself still counts as Valid, stock expiring today is
// sellable through end of day.
func StatusFor(date string, today time.Time) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return StatusNA, nil
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", ErrInvalidDate
	}

	day := today.Format(dateLayout)
	if parsed.Format(dateLayout) < day {
		return StatusExpired, nil
	}
	return StatusValid, nil
}
