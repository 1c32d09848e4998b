package extract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// frenchMonths maps lower-cased French month names to their number.
var frenchMonths = map[string]time.Month{
	"janvier":   time.January,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"août":      time.August,
	"septembre": time.September,
	"octobre":   time.October,
	"novembre":  time.November,
	"décembre":  time.December,
}

// ParseLongDate converts a French long-form date such as "13 août 2001"
// into a calendar date. A month name outside the French month table is an
// error: the writing date must never be guessed.
func ParseLongDate(s string) (time.Time, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q is not a 'day month year' date", ErrInvalidDate, s)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day %q", ErrInvalidDate, parts[0])
	}

	month, ok := frenchMonths[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMonth, parts[1])
	}

	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: year %q", ErrInvalidDate, parts[2])
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
}

// parseNumericDate parses a DD/MM/YYYY or DD.MM.YYYY date string.
func parseNumericDate(s, layout string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
