package workie

import (
	"math"
	"strconv"
	"time"
)

const timeLayout = "15:04"

// BreakDuration resolves the draft's break selection to hours. A custom
// selection parses CustomBreakDuration; anything unparseable resolves
// to 0.
func (d Draft) BreakDuration() float64 {
	opt := d.BreakOption
	if opt == "Custom" {
		opt = d.CustomBreakDuration
	}
	v, err := strconv.ParseFloat(opt, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// PayRateValue parses the draft's custom pay rate, defaulting to 0.
func (d Draft) PayRateValue() float64 {
	v, err := strconv.ParseFloat(d.CustomPayRate, 64)
	if err != nil {
		return 0
	}
	return v
}

// Calculate derives worked hours and pay for a draft against a pay-rate
// table. Unparseable dates/times and end <= start yield {0, 0} rather
// than an error; the validator reports those cases to the user. Pure
// and deterministic.
func Calculate(d Draft, payRates map[string]float64) (hoursWorked, pay float64) {
	startMin, okStart := clockMinutes(d.StartTime)
	endMin, okEnd := clockMinutes(d.EndTime)
	if !okStart || !okEnd || !validDate(d.Date) || endMin <= startMin {
		return 0, 0
	}

	hours := float64(endMin-startMin)/60 - d.BreakDuration()
	if hours < 0 {
		hours = 0
	}

	var rate float64
	if d.PayType == PayTypeCustom {
		rate = d.PayRateValue()
	} else {
		rate = payRates[d.PayType] // unknown pay types rate at 0
	}

	return round2(hours), round2(hours * rate)
}

// round2 rounds to 2 decimal places, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clockMinutes(s string) (int, bool) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
