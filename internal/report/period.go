package report

import "time"

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

func dayKey(t time.Time) string { return t.UTC().Format(dayLayout) }

func monthKey(t time.Time) string { return t.UTC().Format(monthLayout) }

// prevMonthKey derives the previous-period key for a month bucket by
// true calendar-month subtraction. Month keys are first-of-month, so
// end-of-month clamping never kicks in here; the policy still matters
// for callers offsetting full dates.
func prevMonthKey(key string) string {
	t, err := time.Parse(monthLayout, key)
	if err != nil {
		return ""
	}
	return t.AddDate(0, -1, 0).Format(monthLayout)
}

// monthsBetween counts calendar months from one month key to another.
func monthsBetween(from, to string) int {
	f, err := time.Parse(monthLayout, from)
	if err != nil {
		return 0
	}
	t, err := time.Parse(monthLayout, to)
	if err != nil {
		return 0
	}
	return (t.Year()-f.Year())*12 + int(t.Month()) - int(f.Month())
}
