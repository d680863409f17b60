package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WORKIE_DB", "")
	t.Setenv("WORKIE_WEEKLY_LIMIT", "")
	t.Setenv("WORKIE_CURRENCY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath == "" {
		t.Fatal("DBPath should default to a non-empty path")
	}
	if cfg.WeeklyLimit != 20 {
		t.Fatalf("WeeklyLimit = %v, want 20", cfg.WeeklyLimit)
	}
	if cfg.Currency != "£" {
		t.Fatalf("Currency = %q, want £", cfg.Currency)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WORKIE_DB", "/tmp/test.db")
	t.Setenv("WORKIE_WEEKLY_LIMIT", "37.5")
	t.Setenv("WORKIE_CURRENCY", "$")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
	if cfg.WeeklyLimit != 37.5 {
		t.Fatalf("WeeklyLimit = %v, want 37.5", cfg.WeeklyLimit)
	}
	if cfg.Currency != "$" {
		t.Fatalf("Currency = %q, want $", cfg.Currency)
	}
}

func TestLoadInvalidLimit(t *testing.T) {
	for _, bad := range []string{"abc", "0", "-5"} {
		t.Setenv("WORKIE_WEEKLY_LIMIT", bad)
		if _, err := Load(); err == nil {
			t.Errorf("limit %q should be rejected", bad)
		}
	}
}
