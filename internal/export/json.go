package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/workie-app/workie/internal/workie"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	User       string      `json:"user"`
	Currency   string      `json:"currency"`
	Count      int         `json:"count"`
	TotalHours float64     `json:"total_hours"`
	TotalPay   float64     `json:"total_pay"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	WorkType   string  `json:"work_type"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakHours float64 `json:"break_hours"`
	Hours      float64 `json:"hours"`
	PayType    string  `json:"pay_type"`
	Rate       float64 `json:"rate,omitempty"`
	Pay        float64 `json:"pay"`
	Notes      string  `json:"notes,omitempty"`
}

// ToJSON writes the logs and their totals to path as pretty-printed
// JSON, sorted by date ascending.
func ToJSON(logs []workie.WorkLog, user, currency, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		User:       user,
		Currency:   currency,
		Count:      len(logs),
	}

	for _, l := range sortedByDate(logs) {
		out.TotalHours += l.HoursWorked
		out.TotalPay += l.Pay

		entry := jsonEntry{
			ID:         l.ID,
			Date:       l.Date,
			WorkType:   l.WorkTypeLabel(),
			Start:      l.StartTime,
			End:        l.EndTime,
			BreakHours: l.BreakDuration,
			Hours:      l.HoursWorked,
			PayType:    l.PayType,
			Pay:        l.Pay,
			Notes:      l.Notes,
		}
		if l.PayType == workie.PayTypeCustom {
			entry.Rate = l.CustomPayRate
		}
		out.Entries = append(out.Entries, entry)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
