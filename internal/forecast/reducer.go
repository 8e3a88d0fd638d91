package forecast

import (
	"fmt"
	"strconv"
)

// DayKey maps an entry to the value that identifies its day.
type DayKey func(Entry) string

// ByDate groups entries by full calendar date.
func ByDate(e Entry) string {
	if e.Time.IsZero() {
		return e.Date()
	}
	return e.Time.Format("2006-01-02")
}

// unknownDay keys every entry whose timestamp does not parse under
// ByDayOfMonth, so all of them count as a single day.
const unknownDay = "unknown"

// ByDayOfMonth groups entries by day-of-month only, so the 1st of two
// different months collapse into one day.
func ByDayOfMonth(e Entry) string {
	if e.Time.IsZero() {
		return unknownDay
	}
	return strconv.Itoa(e.Time.Day())
}

// ParseDayKey resolves the forecast.day_key setting.
func ParseDayKey(name string) (DayKey, error) {
	switch name {
	case "", "date":
		return ByDate, nil
	case "day-of-month":
		return ByDayOfMonth, nil
	default:
		return nil, fmt.Errorf("unknown day key %q", name)
	}
}

// Reduce keeps the first entry seen for every day, in arrival order.
func Reduce(entries []Entry, key DayKey) Daily {
	if key == nil {
		key = ByDate
	}

	seen := make(map[string]struct{}, len(entries))
	out := make(Daily, 0, len(entries))
	for _, e := range entries {
		k := key(e)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
