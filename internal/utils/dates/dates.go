package dates

import (
	"fmt"
	"strings"
	"time"
)

// entryDateLayout matches the client-side "25/03/2024 14:30hs" format.
const entryDateLayout = "02/01/2006 15:04"

// ParseEntryDate parses the "dd/mm/yyyy hh:mmhs" format used by entry
// submissions. The trailing "hs" suffix is optional.
func ParseEntryDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "hs"))
	t, err := time.Parse(entryDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid entry date %q: %w", s, err)
	}
	return t, nil
}

// EndOfDay returns t extended to 23:59:59 of the same calendar day, making
// a dateTo bound inclusive through the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// CurrentMonthRange returns the [first instant, last second] range of the
// calendar month containing now.
func CurrentMonthRange(now time.Time) (time.Time, time.Time) {
	y, m, _ := now.Date()
	from := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
	to := EndOfDay(from.AddDate(0, 1, -1))
	return from, to
}
