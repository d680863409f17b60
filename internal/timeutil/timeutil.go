// Package timeutil holds the calendar-date helpers the rest of the app
// builds on. Dates are always local calendar dates; nothing here shifts
// through UTC.
package timeutil

import "time"

const dateLayout = "2006-01-02"

// WeekStart returns the Monday of the week containing t, normalized to
// midnight local time. Weeks are ISO weeks: Monday is the first day.
func WeekStart(t time.Time) time.Time {
	day := t.Local()
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	monday := day.AddDate(0, 0, -int(weekday-time.Monday))
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.Local)
}

// WeekDates returns the seven consecutive dates starting at weekStart.
func WeekDates(weekStart time.Time) [7]time.Time {
	var dates [7]time.Time
	for i := range dates {
		dates[i] = AddDays(weekStart, i)
	}
	return dates
}

// AddDays returns t shifted by days whole calendar days.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// FormatDate renders t as YYYY-MM-DD using the local calendar date.
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD string into local midnight of that date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
