package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/workie-app/workie/internal/workie"
)

func sampleLogs() []workie.WorkLog {
	return []workie.WorkLog{
		{
			ID:            "b",
			Date:          "2024-03-06",
			WorkType:      workie.WorkTypeSA,
			StartTime:     "09:00",
			EndTime:       "17:00",
			PayType:       workie.PayTypeSP2,
			BreakDuration: 1,
			HoursWorked:   7,
			Pay:           101.78,
			Notes:         "long shift",
		},
		{
			ID:             "a",
			Date:           "2024-03-04",
			WorkType:       workie.WorkTypeCustom,
			CustomWorkType: "Project X",
			StartTime:      "10:00",
			EndTime:        "14:00",
			PayType:        workie.PayTypeCustom,
			CustomPayRate:  25,
			BreakDuration:  0.5,
			HoursWorked:    3.5,
			Pay:            87.50,
		},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.csv")
	if err := ToCSV(sampleLogs(), "£", path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	// header + 2 rows + totals
	if len(records) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(records))
	}

	header := records[0]
	if header[0] != "Date" || header[7] != "Rate (£)" || header[8] != "Pay (£)" {
		t.Fatalf("unexpected header: %v", header)
	}

	// Sorted ascending: custom log (2024-03-04) first.
	first := records[1]
	if first[0] != "2024-03-04" {
		t.Fatalf("first row date = %q, want 2024-03-04", first[0])
	}
	if first[1] != "Project X" {
		t.Fatalf("custom work type should use its label, got %q", first[1])
	}
	if first[6] != "Custom" || first[7] != "25.00" {
		t.Fatalf("custom pay row = %v", first)
	}

	second := records[2]
	if second[6] != "SP2" || second[7] != "N/A" {
		t.Fatalf("standard pay row = %v", second)
	}
	if second[4] != "1.0" {
		t.Fatalf("break = %q, want 1.0", second[4])
	}

	totals := records[3]
	if totals[0] != "Total" {
		t.Fatalf("last row should be totals, got %v", totals)
	}
	if totals[5] != "10.50" {
		t.Fatalf("total hours = %q, want 10.50", totals[5])
	}
	if totals[8] != "189.28" {
		t.Fatalf("total pay = %q, want 189.28", totals[8])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(nil, "£", path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, _ := csv.NewReader(f).ReadAll()
	// header + totals
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	if records[1][5] != "0.00" {
		t.Fatalf("empty total hours = %q", records[1][5])
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(nil, "£", "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	logs := []workie.WorkLog{{
		ID:        "a",
		Date:      "2024-03-04",
		WorkType:  workie.WorkTypeSA,
		StartTime: "09:00",
		EndTime:   "17:00",
		PayType:   workie.PayTypeSP2,
		Notes:     `notes with "quotes" and, commas`,
	}}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(logs, "£", path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("CSV should stay valid with special chars: %v", err)
	}
	if records[1][9] != `notes with "quotes" and, commas` {
		t.Fatalf("notes mangled: %q", records[1][9])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.json")
	if err := ToJSON(sampleLogs(), "Alice", "£", path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.User != "Alice" || result.Currency != "£" {
		t.Fatalf("user/currency = %q/%q", result.User, result.Currency)
	}
	if result.Count != 2 || len(result.Entries) != 2 {
		t.Fatalf("count = %d, entries = %d", result.Count, len(result.Entries))
	}
	if result.TotalHours != 10.5 {
		t.Fatalf("total_hours = %v, want 10.5", result.TotalHours)
	}
	if result.TotalPay != 189.28 {
		t.Fatalf("total_pay = %v, want 189.28", result.TotalPay)
	}

	// Ascending order: the custom entry first.
	e := result.Entries[0]
	if e.Date != "2024-03-04" {
		t.Fatalf("first entry date = %q", e.Date)
	}
	if e.WorkType != "Project X" {
		t.Fatalf("work_type = %q, want label", e.WorkType)
	}
	if e.Rate != 25 {
		t.Fatalf("rate = %v, want 25", e.Rate)
	}

	if result.Entries[1].Rate != 0 {
		t.Fatal("standard pay entries should omit the rate")
	}

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not RFC3339: %q", result.ExportedAt)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := ToJSON(nil, "Alice", "£", path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)
	if result.Count != 0 || result.Entries != nil {
		t.Fatalf("empty export: count=%d entries=%v", result.Count, result.Entries)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(nil, "Alice", "£", "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(sampleLogs(), "Alice", "£", path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") || !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be pretty-printed")
	}
}

// ============================================================
// sortedByDate
// ============================================================

func TestSortedByDateDoesNotMutate(t *testing.T) {
	logs := sampleLogs()
	sortedByDate(logs)
	if logs[0].ID != "b" {
		t.Fatal("input slice order should be preserved")
	}
}
