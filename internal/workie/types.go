// Package workie contains the pure core of the work-hours tracker: the
// log entry model, the hours/pay calculator, draft validation and the
// read-side weekly aggregations. Nothing in this package touches storage.
package workie

// Work type and pay type enums. "Custom" / "Custom Pay" are escape
// hatches that require their companion field (CustomWorkType resp.
// CustomPayRate); Validate enforces the pairing.
const (
	WorkTypeSA     = "SA"
	WorkTypeUKSR   = "UKSR"
	WorkTypeEC     = "EC"
	WorkTypeCustom = "Custom"

	PayTypeSP2    = "SP2"
	PayTypeSP7    = "SP7"
	PayTypeCustom = "Custom Pay"
)

var (
	WorkTypes = []string{WorkTypeSA, WorkTypeUKSR, WorkTypeEC, WorkTypeCustom}
	PayTypes  = []string{PayTypeSP2, PayTypeSP7, PayTypeCustom}

	// BreakOptions are the selectable break durations in hours, plus a
	// free-form custom entry.
	BreakOptions = []string{"0", "0.5", "1", "Custom"}

	Currencies = []string{"£", "$", "€"}
)

// DefaultWeeklyLimit is the weekly hour cap enforced when creating a log.
const DefaultWeeklyLimit = 20.0

// DefaultPayRates returns the built-in pay-rate table.
func DefaultPayRates() map[string]float64 {
	return map[string]float64{
		PayTypeSP2: 14.54,
		PayTypeSP7: 15.52,
	}
}

// DefaultBreakForWorkType is the legacy fixed break per work type, used
// only when migrating old records that stored a skipped-break flag
// instead of an explicit duration.
func DefaultBreakForWorkType(workType string) float64 {
	if workType == WorkTypeEC {
		return 0.5
	}
	return 1
}

// WorkLog is one logged shift. HoursWorked and Pay are derived fields,
// rewritten by the store on every create/update and never hand-edited.
type WorkLog struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"` // YYYY-MM-DD
	WorkType       string  `json:"workType"`
	CustomWorkType string  `json:"customWorkType,omitempty"`
	StartTime      string  `json:"startTime"` // HH:MM
	EndTime        string  `json:"endTime"`   // HH:MM
	PayType        string  `json:"payType"`
	CustomPayRate  float64 `json:"customPayRate,omitempty"`
	BreakDuration  float64 `json:"breakDuration"` // hours
	HoursWorked    float64 `json:"hoursWorked"`
	Pay            float64 `json:"pay"`
	Notes          string  `json:"notes,omitempty"`
}

// WorkTypeLabel resolves the display name, substituting the custom text
// for custom-typed logs.
func (l WorkLog) WorkTypeLabel() string {
	if l.WorkType == WorkTypeCustom && l.CustomWorkType != "" {
		return l.CustomWorkType
	}
	return l.WorkType
}

// EffectiveRate is the hourly rate used for this log: the custom rate
// for custom pay, otherwise the table rate. Unknown pay types rate at 0.
func (l WorkLog) EffectiveRate(payRates map[string]float64) float64 {
	if l.PayType == PayTypeCustom {
		return l.CustomPayRate
	}
	return payRates[l.PayType]
}

// Draft is a log entry as it comes off the form, before validation and
// calculation. Numeric fields stay raw strings so the validator can
// report parse failures per field.
type Draft struct {
	Date                string
	WorkType            string
	CustomWorkType      string
	StartTime           string
	EndTime             string
	PayType             string
	CustomPayRate       string
	BreakOption         string // one of BreakOptions
	CustomBreakDuration string
	Notes               string
}

// Settings holds the per-profile configuration.
type Settings struct {
	PayRates map[string]float64 `json:"payRates"`
	Currency string             `json:"currency"`
}

// DefaultSettings returns the settings a fresh profile starts with.
func DefaultSettings() Settings {
	return Settings{
		PayRates: DefaultPayRates(),
		Currency: "£",
	}
}
