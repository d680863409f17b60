package store

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/workie-app/workie/internal/workie"
)

var (
	ErrNoActiveProfile = errors.New("no active profile")
	ErrNameTooShort    = errors.New("name must be at least 3 characters")
	ErrNameUnchanged   = errors.New("new name is the same as the old name")
	ErrNameTaken       = errors.New("name is already taken")
)

const minNameLen = 3

// Store is the state machine over one profile's log collection and
// settings. Exactly one profile is active at a time; the session marker
// lives in memory only. Every mutation persists through the Port before
// the in-memory state is updated.
type Store struct {
	port     Port
	defaults workie.Settings

	active   string
	logs     []workie.WorkLog
	avatar   string
	settings workie.Settings
}

func New(port Port) *Store {
	return NewWithDefaults(port, workie.DefaultSettings())
}

// NewWithDefaults sets the settings a fresh profile starts with, for
// example a configured currency. Zero fields fall back to the built-in
// defaults.
func NewWithDefaults(port Port, defaults workie.Settings) *Store {
	if defaults.PayRates == nil {
		defaults.PayRates = workie.DefaultPayRates()
	}
	if defaults.Currency == "" {
		defaults.Currency = "£"
	}
	return &Store{
		port:     port,
		defaults: defaults,
		settings: cloneSettings(defaults),
	}
}

// defaultSettings returns a copy of the configured defaults so profiles
// never share a pay-rate map.
func (s *Store) defaultSettings() workie.Settings {
	return cloneSettings(s.defaults)
}

func cloneSettings(in workie.Settings) workie.Settings {
	rates := make(map[string]float64, len(in.PayRates))
	for k, v := range in.PayRates {
		rates[k] = v
	}
	return workie.Settings{PayRates: rates, Currency: in.Currency}
}

func userKey(name string) string     { return "user_" + name }
func settingsKey(name string) string { return "settings_" + name }
func avatarKey(name string) string   { return "avatar_" + name }
func tourKey(name string) string     { return "tour_" + name }

// Login loads the persisted logs, settings and avatar for name into the
// active state. A new name starts an empty profile with default
// settings; its log collection is persisted immediately so the profile
// shows up in Users from then on.
func (s *Store) Login(name string) error {
	name = strings.TrimSpace(name)
	if len(name) < minNameLen {
		return ErrNameTooShort
	}

	raw, ok, err := s.port.Get(userKey(name))
	if err != nil {
		return fmt.Errorf("load logs for %q: %w", name, err)
	}

	var logs []workie.WorkLog
	if ok {
		logs, err = decodeLogs(raw)
		if err != nil {
			return fmt.Errorf("load logs for %q: %w", name, err)
		}
	} else {
		encoded, err := encodeLogs(nil)
		if err != nil {
			return err
		}
		if err := s.port.Set(userKey(name), encoded); err != nil {
			return fmt.Errorf("create profile %q: %w", name, err)
		}
	}
	sortLogs(logs)

	settings := s.defaultSettings()
	if raw, ok, err := s.port.Get(settingsKey(name)); err != nil {
		return fmt.Errorf("load settings for %q: %w", name, err)
	} else if ok {
		if err := decodeSettings(raw, &settings); err != nil {
			return err
		}
	}

	avatar, _, err := s.port.Get(avatarKey(name))
	if err != nil {
		return fmt.Errorf("load avatar for %q: %w", name, err)
	}

	s.active = name
	s.logs = logs
	s.settings = settings
	s.avatar = avatar
	return nil
}

// Logout clears the active state back to anonymous.
func (s *Store) Logout() {
	s.active = ""
	s.logs = nil
	s.avatar = ""
	s.settings = s.defaultSettings()
}

func (s *Store) Active() string            { return s.active }
func (s *Store) Avatar() string            { return s.avatar }
func (s *Store) Settings() workie.Settings { return s.settings }

// Logs returns the active profile's logs, sorted by date descending.
func (s *Store) Logs() []workie.WorkLog {
	out := make([]workie.WorkLog, len(s.logs))
	copy(out, s.logs)
	return out
}

// Users enumerates the known profile names from the persisted log
// collections.
func (s *Store) Users() ([]string, error) {
	keys, err := s.port.Keys("user_")
	if err != nil {
		return nil, err
	}
	users := make([]string, 0, len(keys))
	for _, k := range keys {
		users = append(users, strings.TrimPrefix(k, "user_"))
	}
	return users, nil
}

// AddLog computes hours and pay for the draft, assigns a fresh ID,
// inserts it in date-descending order and persists.
func (s *Store) AddLog(d workie.Draft) (workie.WorkLog, error) {
	if s.active == "" {
		return workie.WorkLog{}, ErrNoActiveProfile
	}

	hours, pay := workie.Calculate(d, s.settings.PayRates)
	log := workie.WorkLog{
		ID:            uuid.NewString(),
		Date:          d.Date,
		WorkType:      d.WorkType,
		StartTime:     d.StartTime,
		EndTime:       d.EndTime,
		PayType:       d.PayType,
		BreakDuration: d.BreakDuration(),
		HoursWorked:   hours,
		Pay:           pay,
		Notes:         d.Notes,
	}
	if d.WorkType == workie.WorkTypeCustom {
		log.CustomWorkType = d.CustomWorkType
	}
	if d.PayType == workie.PayTypeCustom {
		log.CustomPayRate = d.PayRateValue()
	}

	logs := append(s.Logs(), log)
	sortLogs(logs)
	if err := s.saveLogs(logs); err != nil {
		return workie.WorkLog{}, err
	}
	s.logs = logs
	return log, nil
}

// UpdateLog recomputes the derived fields for the given log and
// replaces the entry with the matching ID.
func (s *Store) UpdateLog(l workie.WorkLog) error {
	if s.active == "" {
		return ErrNoActiveProfile
	}

	hours, pay := workie.Calculate(draftFromLog(l), s.settings.PayRates)
	l.HoursWorked = hours
	l.Pay = pay

	logs := s.Logs()
	found := false
	for i := range logs {
		if logs[i].ID == l.ID {
			logs[i] = l
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("update log: no log with id %q", l.ID)
	}
	sortLogs(logs)
	if err := s.saveLogs(logs); err != nil {
		return err
	}
	s.logs = logs
	return nil
}

// DeleteLog removes the entry with the matching ID.
func (s *Store) DeleteLog(id string) error {
	if s.active == "" {
		return ErrNoActiveProfile
	}
	logs := make([]workie.WorkLog, 0, len(s.logs))
	for _, l := range s.logs {
		if l.ID != id {
			logs = append(logs, l)
		}
	}
	if err := s.saveLogs(logs); err != nil {
		return err
	}
	s.logs = logs
	return nil
}

// RenameUser migrates all persisted data from oldName to newName and
// removes the old keys. Validation happens before any key is touched,
// so a rejected rename leaves the state unchanged.
func (s *Store) RenameUser(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if len(newName) < minNameLen {
		return ErrNameTooShort
	}
	if newName == oldName {
		return ErrNameUnchanged
	}
	if _, taken, err := s.port.Get(userKey(newName)); err != nil {
		return err
	} else if taken {
		return ErrNameTaken
	}

	moves := [][2]string{
		{userKey(oldName), userKey(newName)},
		{avatarKey(oldName), avatarKey(newName)},
		{settingsKey(oldName), settingsKey(newName)},
		{tourKey(oldName), tourKey(newName)},
	}
	for _, m := range moves {
		value, ok, err := s.port.Get(m[0])
		if err != nil {
			return fmt.Errorf("rename %q: %w", oldName, err)
		}
		if !ok {
			continue
		}
		if err := s.port.Set(m[1], value); err != nil {
			return fmt.Errorf("rename %q: %w", oldName, err)
		}
		if err := s.port.Delete(m[0]); err != nil {
			return fmt.Errorf("rename %q: %w", oldName, err)
		}
	}

	if s.active == oldName {
		s.active = newName
	}
	return nil
}

// UpdateAvatar stores the avatar reference for the active profile.
func (s *Store) UpdateAvatar(ref string) error {
	if s.active == "" {
		return ErrNoActiveProfile
	}
	if err := s.port.Set(avatarKey(s.active), ref); err != nil {
		return fmt.Errorf("save avatar: %w", err)
	}
	s.avatar = ref
	return nil
}

// UpdateSettings merges the non-zero fields of partial into the active
// profile's settings and persists.
func (s *Store) UpdateSettings(partial workie.Settings) error {
	if s.active == "" {
		return ErrNoActiveProfile
	}

	merged := s.settings
	if partial.Currency != "" {
		merged.Currency = partial.Currency
	}
	if partial.PayRates != nil {
		rates := make(map[string]float64, len(merged.PayRates))
		for k, v := range merged.PayRates {
			rates[k] = v
		}
		for k, v := range partial.PayRates {
			rates[k] = v
		}
		merged.PayRates = rates
	}

	if err := s.saveSettings(merged); err != nil {
		return err
	}
	s.settings = merged
	return nil
}

// ResetAccount clears the logs and avatar for the active profile but
// keeps the profile and its settings.
func (s *Store) ResetAccount() error {
	if s.active == "" {
		return ErrNoActiveProfile
	}
	if err := s.saveLogs(nil); err != nil {
		return err
	}
	if err := s.port.Delete(avatarKey(s.active)); err != nil {
		return fmt.Errorf("reset account: %w", err)
	}
	s.logs = nil
	s.avatar = ""
	return nil
}

// DeleteAccount removes all persisted data for the active profile and
// logs out.
func (s *Store) DeleteAccount() error {
	if s.active == "" {
		return ErrNoActiveProfile
	}
	name := s.active
	for _, key := range []string{userKey(name), avatarKey(name), settingsKey(name), tourKey(name)} {
		if err := s.port.Delete(key); err != nil {
			return fmt.Errorf("delete account %q: %w", name, err)
		}
	}
	s.Logout()
	return nil
}

// TourCompleted reports whether the active profile has finished the
// onboarding tour.
func (s *Store) TourCompleted() bool {
	if s.active == "" {
		return false
	}
	_, ok, _ := s.port.Get(tourKey(s.active))
	return ok
}

func (s *Store) CompleteTour() error {
	if s.active == "" {
		return ErrNoActiveProfile
	}
	return s.port.Set(tourKey(s.active), "1")
}

func (s *Store) saveLogs(logs []workie.WorkLog) error {
	encoded, err := encodeLogs(logs)
	if err != nil {
		return err
	}
	if err := s.port.Set(userKey(s.active), encoded); err != nil {
		return fmt.Errorf("save logs: %w", err)
	}
	return nil
}

func (s *Store) saveSettings(settings workie.Settings) error {
	encoded, err := encodeSettings(settings)
	if err != nil {
		return err
	}
	if err := s.port.Set(settingsKey(s.active), encoded); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// sortLogs orders by date descending. The sort is stable so logs on the
// same date keep their insertion order.
func sortLogs(logs []workie.WorkLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})
}

// draftFromLog rebuilds a Draft from a stored log so an update runs
// through the same calculator as a create.
func draftFromLog(l workie.WorkLog) workie.Draft {
	d := workie.Draft{
		Date:           l.Date,
		WorkType:       l.WorkType,
		CustomWorkType: l.CustomWorkType,
		StartTime:      l.StartTime,
		EndTime:        l.EndTime,
		PayType:        l.PayType,
		BreakOption:    "Custom",
		Notes:          l.Notes,
	}
	d.CustomBreakDuration = strconv.FormatFloat(l.BreakDuration, 'f', -1, 64)
	if l.PayType == workie.PayTypeCustom {
		d.CustomPayRate = strconv.FormatFloat(l.CustomPayRate, 'f', -1, 64)
	}
	return d
}
