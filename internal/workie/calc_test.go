package workie

import "testing"

func baseDraft() Draft {
	return Draft{
		Date:        "2024-01-01",
		WorkType:    WorkTypeSA,
		StartTime:   "09:00",
		EndTime:     "17:00",
		PayType:     PayTypeSP2,
		BreakOption: "1",
	}
}

// ============================================================
// Calculate
// ============================================================

func TestCalculateBasic(t *testing.T) {
	d := baseDraft()
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 7.00 {
		t.Fatalf("hours = %v, want 7.00", hours)
	}
	// 7 * 14.54 = 101.78
	if pay != 101.78 {
		t.Fatalf("pay = %v, want 101.78", pay)
	}
}

func TestCalculateDeterministic(t *testing.T) {
	d := baseDraft()
	rates := DefaultPayRates()
	h1, p1 := Calculate(d, rates)
	for i := 0; i < 5; i++ {
		h, p := Calculate(d, rates)
		if h != h1 || p != p1 {
			t.Fatalf("call %d: got (%v, %v), first call gave (%v, %v)", i, h, p, h1, p1)
		}
	}
}

func TestCalculateEndBeforeStart(t *testing.T) {
	d := baseDraft()
	d.StartTime = "17:00"
	d.EndTime = "09:00"
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 0 || pay != 0 {
		t.Fatalf("got (%v, %v), want (0, 0)", hours, pay)
	}
}

func TestCalculateEndEqualsStart(t *testing.T) {
	d := baseDraft()
	d.EndTime = d.StartTime
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 0 || pay != 0 {
		t.Fatalf("got (%v, %v), want (0, 0)", hours, pay)
	}
}

func TestCalculateUnparseableInputs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
	}{
		{"bad date", func(d *Draft) { d.Date = "nope" }},
		{"empty date", func(d *Draft) { d.Date = "" }},
		{"bad start", func(d *Draft) { d.StartTime = "9am" }},
		{"bad end", func(d *Draft) { d.EndTime = "25:99" }},
	}
	for _, tt := range tests {
		d := baseDraft()
		tt.mutate(&d)
		hours, pay := Calculate(d, DefaultPayRates())
		if hours != 0 || pay != 0 {
			t.Errorf("%s: got (%v, %v), want (0, 0)", tt.name, hours, pay)
		}
	}
}

func TestCalculateBreakExceedsShift(t *testing.T) {
	d := baseDraft()
	d.StartTime = "09:00"
	d.EndTime = "09:30"
	d.BreakOption = "1"
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 0 {
		t.Fatalf("hours = %v, want 0 (never negative)", hours)
	}
	if pay != 0 {
		t.Fatalf("pay = %v, want 0", pay)
	}
}

func TestCalculateUnknownPayType(t *testing.T) {
	d := baseDraft()
	d.PayType = "SP9"
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 7.00 {
		t.Fatalf("hours = %v, want 7.00", hours)
	}
	if pay != 0 {
		t.Fatalf("unknown pay type should yield 0 pay, got %v", pay)
	}
}

func TestCalculateCustomPay(t *testing.T) {
	d := baseDraft()
	d.PayType = PayTypeCustom
	d.CustomPayRate = "25.00"
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 7.00 {
		t.Fatalf("hours = %v, want 7.00", hours)
	}
	if pay != 175.00 {
		t.Fatalf("pay = %v, want 175.00", pay)
	}
}

func TestCalculateCustomPayMissingRate(t *testing.T) {
	d := baseDraft()
	d.PayType = PayTypeCustom
	d.CustomPayRate = ""
	_, pay := Calculate(d, DefaultPayRates())
	if pay != 0 {
		t.Fatalf("missing custom rate should default to 0, got pay %v", pay)
	}
}

func TestCalculateCustomBreak(t *testing.T) {
	d := baseDraft()
	d.BreakOption = "Custom"
	d.CustomBreakDuration = "0.25"
	hours, _ := Calculate(d, DefaultPayRates())
	if hours != 7.75 {
		t.Fatalf("hours = %v, want 7.75", hours)
	}
}

func TestCalculateRounding(t *testing.T) {
	// 09:00-16:20 minus 1h break = 6h20m = 6.3333... hours.
	d := baseDraft()
	d.EndTime = "16:20"
	hours, pay := Calculate(d, DefaultPayRates())
	if hours != 6.33 {
		t.Fatalf("hours = %v, want 6.33", hours)
	}
	// 6.333... * 14.54 = 92.086... -> rounds to 92.09
	if pay != 92.09 {
		t.Fatalf("pay = %v, want 92.09", pay)
	}
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.125, 0.13}, // exact binary half, rounds away from zero
		{-0.125, -0.13},
		{1.004, 1.0},
		{0, 0},
		{7.0, 7.0},
		{101.784, 101.78},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Draft helpers
// ============================================================

func TestDraftBreakDuration(t *testing.T) {
	tests := []struct {
		option, custom string
		want           float64
	}{
		{"0", "", 0},
		{"0.5", "", 0.5},
		{"1", "", 1},
		{"Custom", "0.75", 0.75},
		{"Custom", "", 0},
		{"Custom", "-1", 0},
		{"Custom", "junk", 0},
		{"", "", 0},
	}
	for _, tt := range tests {
		d := Draft{BreakOption: tt.option, CustomBreakDuration: tt.custom}
		if got := d.BreakDuration(); got != tt.want {
			t.Errorf("BreakDuration(%q, %q) = %v, want %v", tt.option, tt.custom, got, tt.want)
		}
	}
}

func TestWorkLogAccessors(t *testing.T) {
	l := WorkLog{WorkType: WorkTypeCustom, CustomWorkType: "Project X", PayType: PayTypeSP7}
	if l.WorkTypeLabel() != "Project X" {
		t.Fatalf("WorkTypeLabel = %q", l.WorkTypeLabel())
	}
	if got := l.EffectiveRate(DefaultPayRates()); got != 15.52 {
		t.Fatalf("EffectiveRate = %v, want 15.52", got)
	}

	l = WorkLog{WorkType: WorkTypeSA, PayType: PayTypeCustom, CustomPayRate: 30}
	if l.WorkTypeLabel() != "SA" {
		t.Fatalf("WorkTypeLabel = %q, want SA", l.WorkTypeLabel())
	}
	if got := l.EffectiveRate(DefaultPayRates()); got != 30 {
		t.Fatalf("EffectiveRate = %v, want 30", got)
	}
}
