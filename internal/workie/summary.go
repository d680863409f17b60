package workie

import "time"

// Summary is the read-side weekly aggregation shown on the dashboard.
type Summary struct {
	TotalHours     float64
	TotalPay       float64
	HoursRemaining float64 // negative when the weekly limit is exceeded
}

// WeekSummary aggregates the logs falling in the Monday-start week
// beginning at weekStart. Pure derivation over the log collection.
func WeekSummary(logs []WorkLog, weekStart time.Time, limit float64) Summary {
	var s Summary
	for _, l := range logs {
		if weekdayIndex(l.Date, weekStart) >= 0 {
			s.TotalHours += l.HoursWorked
			s.TotalPay += l.Pay
		}
	}
	s.TotalHours = round2(s.TotalHours)
	s.TotalPay = round2(s.TotalPay)
	s.HoursRemaining = round2(limit - s.TotalHours)
	return s
}

// DailyHours bins the week's logs into seven per-day hour totals,
// Monday first. Used by the dashboard chart.
func DailyHours(logs []WorkLog, weekStart time.Time) [7]float64 {
	var days [7]float64
	for _, l := range logs {
		if i := weekdayIndex(l.Date, weekStart); i >= 0 {
			days[i] = round2(days[i] + l.HoursWorked)
		}
	}
	return days
}

// FilterWeek returns the logs whose date falls in the week beginning at
// weekStart, preserving order.
func FilterWeek(logs []WorkLog, weekStart time.Time) []WorkLog {
	var out []WorkLog
	for _, l := range logs {
		if weekdayIndex(l.Date, weekStart) >= 0 {
			out = append(out, l)
		}
	}
	return out
}

// weekdayIndex maps a log date to its 0..6 offset from weekStart, or -1
// when it falls outside that week. Comparison is by calendar date
// string, so time zones and clock components never shift the bucket.
func weekdayIndex(date string, weekStart time.Time) int {
	for i := 0; i < 7; i++ {
		if weekStart.AddDate(0, 0, i).Format("2006-01-02") == date {
			return i
		}
	}
	return -1
}
