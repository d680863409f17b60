package workie

import (
	"strconv"
	"strings"
	"time"
)

// Validate checks a draft and returns a map of field name to error
// message. An empty map means the draft is valid. Rules are independent:
// several errors can be reported at once.
func Validate(d Draft) map[string]string {
	errs := make(map[string]string)

	if d.WorkType == "" {
		errs["workType"] = "Work type is required."
	}
	if d.PayType == "" {
		errs["payType"] = "Pay type is required."
	}
	if d.BreakOption == "" {
		errs["breakOption"] = "Break selection is required."
	}

	if d.Date == "" {
		errs["date"] = "Date is required."
	} else if !validDate(d.Date) {
		errs["date"] = "Must be a valid date (YYYY-MM-DD)."
	}

	if d.StartTime == "" {
		errs["startTime"] = "Start time is required."
	}
	if d.EndTime == "" {
		errs["endTime"] = "End time is required."
	}
	if d.StartTime != "" && d.EndTime != "" {
		startMin, okStart := clockMinutes(d.StartTime)
		endMin, okEnd := clockMinutes(d.EndTime)
		switch {
		case !okStart:
			errs["startTime"] = "Must be a valid time (HH:MM)."
		case !okEnd:
			errs["endTime"] = "Must be a valid time (HH:MM)."
		case endMin <= startMin:
			// Same-day comparison only; shifts crossing midnight are
			// not supported.
			errs["endTime"] = "End time must be after start time."
		}
	}

	if d.PayType == PayTypeCustom {
		rate, err := strconv.ParseFloat(d.CustomPayRate, 64)
		if d.CustomPayRate == "" || err != nil || rate <= 0 {
			errs["customPayRate"] = "Must be a positive number."
		}
	}

	if d.WorkType == WorkTypeCustom && strings.TrimSpace(d.CustomWorkType) == "" {
		errs["customWorkType"] = "Cannot be empty."
	}

	if d.BreakOption == "Custom" {
		v, err := strconv.ParseFloat(d.CustomBreakDuration, 64)
		if d.CustomBreakDuration == "" || err != nil || v < 0 {
			errs["customBreakDuration"] = "Must be zero or a positive number."
		}
	}

	return errs
}

// CheckWeeklyLimit sums the hours already logged in the Monday-start
// week containing the draft's date, adds the draft's computed hours, and
// reports whether the total exceeds limit. Enforced only when creating a
// new entry, never when editing an existing one.
func CheckWeeklyLimit(d Draft, draftHours float64, existing []WorkLog, limit float64) (total float64, exceeded bool) {
	day, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return round2(draftHours), draftHours > limit
	}
	weekStart := mondayOf(day)
	weekEnd := weekStart.AddDate(0, 0, 7)

	total = draftHours
	for _, l := range existing {
		ld, err := time.Parse("2006-01-02", l.Date)
		if err != nil {
			continue
		}
		if !ld.Before(weekStart) && ld.Before(weekEnd) {
			total += l.HoursWorked
		}
	}
	total = round2(total)
	return total, total > limit
}

func mondayOf(day time.Time) time.Time {
	weekday := day.Weekday()
	if weekday == time.Sunday {
		weekday = 7
	}
	return day.AddDate(0, 0, -int(weekday-time.Monday))
}
