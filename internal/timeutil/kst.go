// Package timeutil pins all calendar-day arithmetic to a single fixed
// offset (KST, UTC+9) so day boundaries do not drift with the host zone.
package timeutil

import "time"

const DateLayout = "2006-01-02"

// KST is the fixed zone every calendar computation runs in.
var KST = time.FixedZone("KST", 9*60*60)

func Now() time.Time {
	return time.Now().In(KST)
}

// Today returns the current calendar day formatted as YYYY-MM-DD.
func Today() string {
	return FormatDate(Now())
}

// ParseDate parses a YYYY-MM-DD string as midnight KST.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, KST)
}

func FormatDate(t time.Time) string {
	return t.In(KST).Format(DateLayout)
}

// StartOfDay truncates t to midnight KST.
func StartOfDay(t time.Time) time.Time {
	t = t.In(KST)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, KST)
}

// SameDay reports whether a and b fall on the same KST calendar day.
func SameDay(a, b time.Time) bool {
	a, b = a.In(KST), b.In(KST)
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func IsWeekend(t time.Time) bool {
	wd := t.In(KST).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
