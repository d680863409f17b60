// Package export writes a profile's work logs to CSV or JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"

	"github.com/workie-app/workie/internal/workie"
)

// ToCSV writes the logs to path, sorted by date ascending, with a
// trailing totals row.
func ToCSV(logs []workie.WorkLog, currency, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"Date", "Work Type", "Start", "End", "Break (hrs)", "Hours",
		"Pay Type", fmt.Sprintf("Rate (%s)", currency), fmt.Sprintf("Pay (%s)", currency), "Notes",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	sorted := sortedByDate(logs)
	var totalHours, totalPay float64
	for _, l := range sorted {
		totalHours += l.HoursWorked
		totalPay += l.Pay

		payType := l.PayType
		rate := "N/A"
		if l.PayType == workie.PayTypeCustom {
			payType = "Custom"
			rate = fmt.Sprintf("%.2f", l.CustomPayRate)
		}

		row := []string{
			l.Date,
			l.WorkTypeLabel(),
			l.StartTime,
			l.EndTime,
			fmt.Sprintf("%.1f", l.BreakDuration),
			fmt.Sprintf("%.2f", l.HoursWorked),
			payType,
			rate,
			fmt.Sprintf("%.2f", l.Pay),
			l.Notes,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	totals := []string{
		"Total", "", "", "", "",
		fmt.Sprintf("%.2f", totalHours),
		"", "",
		fmt.Sprintf("%.2f", totalPay),
		"",
	}
	if err := w.Write(totals); err != nil {
		return err
	}

	return w.Error()
}

// sortedByDate returns a copy of logs in date-ascending order for
// reports; ties keep their original order.
func sortedByDate(logs []workie.WorkLog) []workie.WorkLog {
	sorted := make([]workie.WorkLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}
