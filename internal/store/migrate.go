package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/workie-app/workie/internal/workie"
)

// logSchemaVersion is the current on-disk format of a log collection.
// Collections are stored as a versioned envelope; bare arrays are the
// legacy pre-versioning format and are migrated once at load time.
const logSchemaVersion = 2

type logEnvelope struct {
	Version int              `json:"version"`
	Logs    []workie.WorkLog `json:"logs"`
}

// legacyLog carries the fields that have drifted across schema
// versions: the oldest records flagged a skipped lunch, later ones a
// skipped break, current ones store the break duration in hours.
type legacyLog struct {
	workie.WorkLog
	SkippedLunch     *bool    `json:"skippedLunch,omitempty"`
	SkippedBreak     *bool    `json:"skippedBreak,omitempty"`
	BreakDurationPtr *float64 `json:"breakDuration,omitempty"`
}

func encodeLogs(logs []workie.WorkLog) (string, error) {
	if logs == nil {
		logs = []workie.WorkLog{}
	}
	data, err := json.Marshal(logEnvelope{Version: logSchemaVersion, Logs: logs})
	if err != nil {
		return "", fmt.Errorf("encode logs: %w", err)
	}
	return string(data), nil
}

// decodeLogs parses a persisted log collection, applying the legacy
// migration when the value predates the versioned envelope.
func decodeLogs(raw string) ([]workie.WorkLog, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		return migrateLegacyLogs(trimmed)
	}

	var env logEnvelope
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("decode logs: %w", err)
	}
	if env.Version > logSchemaVersion {
		return nil, fmt.Errorf("log schema version %d is newer than supported %d", env.Version, logSchemaVersion)
	}
	return env.Logs, nil
}

func encodeSettings(s workie.Settings) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode settings: %w", err)
	}
	return string(data), nil
}

// decodeSettings fills into from a persisted settings record. into
// arrives pre-seeded with the fallback settings, which survive any
// field the record is missing.
func decodeSettings(raw string, into *workie.Settings) error {
	fallback := *into
	if fallback.PayRates == nil {
		fallback.PayRates = workie.DefaultPayRates()
	}
	if fallback.Currency == "" {
		fallback.Currency = "£"
	}

	if err := json.Unmarshal([]byte(raw), into); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	if into.PayRates == nil {
		into.PayRates = fallback.PayRates
	}
	if into.Currency == "" {
		into.Currency = fallback.Currency
	}
	return nil
}

func migrateLegacyLogs(raw string) ([]workie.WorkLog, error) {
	var legacy []legacyLog
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy logs: %w", err)
	}

	logs := make([]workie.WorkLog, 0, len(legacy))
	for _, ll := range legacy {
		l := ll.WorkLog

		skipped := ll.SkippedBreak
		if skipped == nil {
			// Oldest records used a "skipped lunch" flag.
			skipped = ll.SkippedLunch
		}

		switch {
		case ll.BreakDurationPtr != nil:
			l.BreakDuration = *ll.BreakDurationPtr
		case skipped != nil && *skipped:
			l.BreakDuration = 0
		default:
			l.BreakDuration = workie.DefaultBreakForWorkType(l.WorkType)
		}

		logs = append(logs, l)
	}
	return logs, nil
}
