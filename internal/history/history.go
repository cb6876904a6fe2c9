// Package history persists the daily prayer-completion series and the
// derived statistics snapshot. It talks to storage only through the KV
// port, so the core stays free of sql and trivially fakeable in tests.
package history

import (
	"encoding/json"
	"sort"
	"time"

	"telegram-prayer-companion/internal/models"
)

// Blob keys, kept identical to the web app's localStorage keys so that
// exported backups move between the two without translation.
const (
	historyKey = "prayerHistory"
	statsKey   = "prayerStats"
)

// maxDays caps the persisted series; oldest records drop first.
const maxDays = 90

const dateLayout = "2006-01-02"

// DateKey formats a time as the series' YYYY-MM-DD natural key.
func DateKey(t time.Time) string {
	return t.Format(dateLayout)
}

// KV is the injected storage port. Get returns "" for a missing key.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Store owns the record series and its cached stats snapshot.
type Store struct {
	kv  KV
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock. "Today" in streak and window
// computations comes from this clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns a Store backed by the given KV port.
func NewStore(kv KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Series returns the persisted record series. Missing or malformed data
// reads as an empty series, never an error.
func (s *Store) Series() []models.DailyRecord {
	raw, err := s.kv.Get(historyKey)
	if err != nil || raw == "" {
		return nil
	}
	var series []models.DailyRecord
	if err := json.Unmarshal([]byte(raw), &series); err != nil {
		return nil
	}
	return series
}

// RecordDay inserts or replaces the record for date, then re-sorts the
// series newest-first, truncates it to the most recent 90 days, persists
// it and recomputes the stats snapshot. Idempotent for repeated input.
func (s *Store) RecordDay(date string, prayers models.Completion) error {
	series := s.Series()

	rec := models.DailyRecord{
		Date:                 date,
		Prayers:              prayers,
		CompletionPercentage: prayers.Percentage(),
	}

	replaced := false
	for i := range series {
		if series[i].Date == date {
			series[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		series = append(series, rec)
	}

	// ISO dates sort lexicographically, newest first.
	sort.Slice(series, func(i, j int) bool { return series[i].Date > series[j].Date })
	if len(series) > maxDays {
		series = series[:maxDays]
	}

	if err := s.saveSeries(series); err != nil {
		return err
	}
	return s.saveStats(computeStats(series, s.now()))
}

// Day returns the record for date, or nil when none is stored.
func (s *Store) Day(date string) *models.DailyRecord {
	for _, rec := range s.Series() {
		if rec.Date == date {
			r := rec
			return &r
		}
	}
	return nil
}

// Stats returns the cached snapshot, lazily rebuilding (and persisting)
// it from the full series when the cache is missing or unreadable.
func (s *Store) Stats() models.Stats {
	raw, err := s.kv.Get(statsKey)
	if err == nil && raw != "" {
		var stats models.Stats
		if json.Unmarshal([]byte(raw), &stats) == nil {
			return stats
		}
	}
	stats := computeStats(s.Series(), s.now())
	_ = s.saveStats(stats)
	return stats
}

// RecentWindow returns the last `days` records newest-first. Dates with no
// stored record get an all-false placeholder; the fill is read-time only
// and never persisted.
func (s *Store) RecentWindow(days int) []models.DailyRecord {
	series := s.Series()
	today := s.now()

	window := make([]models.DailyRecord, 0, days)
	for i := 0; i < days; i++ {
		date := DateKey(today.AddDate(0, 0, -i))

		found := false
		for _, rec := range series {
			if rec.Date == date {
				window = append(window, rec)
				found = true
				break
			}
		}
		if !found {
			window = append(window, models.DailyRecord{Date: date})
		}
	}
	return window
}

type backup struct {
	History []models.DailyRecord `json:"history"`
	Stats   models.Stats         `json:"stats"`
}

// ExportAll serializes the series and stats snapshot for backup.
func (s *Store) ExportAll() (string, error) {
	b, err := json.MarshalIndent(backup{History: s.Series(), Stats: s.Stats()}, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ImportAll replaces the stored series wholesale from a backup payload and
// recomputes stats. Returns false, leaving existing data untouched, unless
// the payload's history field is a well-formed array.
func (s *Store) ImportAll(payload string) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return false
	}
	raw, ok := fields["history"]
	if !ok {
		return false
	}
	var series []models.DailyRecord
	if err := json.Unmarshal(raw, &series); err != nil || series == nil {
		return false
	}

	if err := s.saveSeries(series); err != nil {
		return false
	}
	return s.saveStats(computeStats(series, s.now())) == nil
}

func (s *Store) saveSeries(series []models.DailyRecord) error {
	if series == nil {
		series = []models.DailyRecord{}
	}
	b, err := json.Marshal(series)
	if err != nil {
		return err
	}
	return s.kv.Set(historyKey, string(b))
}

func (s *Store) saveStats(stats models.Stats) error {
	b, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.kv.Set(statsKey, string(b))
}
