package history

import (
	"sort"
	"time"

	"telegram-prayer-companion/internal/models"
)

// computeStats derives the full snapshot from the record series.
// Bounded by the 90-day cap, so a full recompute on every write is cheap.
func computeStats(series []models.DailyRecord, today time.Time) models.Stats {
	stats := models.Stats{
		CurrentStreak: currentStreak(series, today),
		LongestStreak: longestStreak(series),
		MonthlyStats:  map[string]models.MonthStats{},
	}

	for _, rec := range series {
		completed := rec.Prayers.Count()
		stats.TotalPrayers += completed
		stats.TotalMissed += 5 - completed

		if len(rec.Date) < 7 {
			continue
		}
		month := rec.Date[:7]
		m := stats.MonthlyStats[month]
		m.Completed += completed
		m.Total += 5
		stats.MonthlyStats[month] = m
	}

	for month, m := range stats.MonthlyStats {
		m.Percentage = float64(m.Completed) / float64(m.Total) * 100
		stats.MonthlyStats[month] = m
	}

	return stats
}

// currentStreak walks the newest-first series positionally: the i-th record
// must carry the date exactly i days before today and be 100% complete.
// Any date mismatch (a gap, or an out-of-place record) ends the streak.
func currentStreak(series []models.DailyRecord, today time.Time) int {
	streak := 0
	for i, rec := range series {
		expected := DateKey(today.AddDate(0, 0, -i))
		if rec.Date != expected {
			break
		}
		if rec.CompletionPercentage != 100 {
			break
		}
		streak++
	}
	return streak
}

// longestStreak scans the series in ascending date order counting runs of
// 100%-complete records. Unlike currentStreak it does not require the dates
// to be contiguous, matching the behavior the web app shipped with.
func longestStreak(series []models.DailyRecord) int {
	asc := make([]models.DailyRecord, len(series))
	copy(asc, series)
	sort.Slice(asc, func(i, j int) bool { return asc[i].Date < asc[j].Date })

	max, run := 0, 0
	for _, rec := range asc {
		if rec.CompletionPercentage == 100 {
			run++
			if run > max {
				max = run
			}
		} else {
			run = 0
		}
	}
	return max
}
