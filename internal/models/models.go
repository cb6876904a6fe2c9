package models

// PrayerNames lists the five obligatory prayers in canonical order.
// Sunrise is a timing, not a prayer, and is never part of completion.
var PrayerNames = [5]string{"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"}

// User represents bot settings for a telegram chat.
type User struct {
	ID        int64   `db:"id"         json:"id"`
	ChatID    int64   `db:"chat_id"    json:"chat_id"`
	City      string  `db:"city"       json:"city"`
	Province  string  `db:"province"   json:"province"`
	Latitude  float64 `db:"latitude"   json:"latitude"`
	Longitude float64 `db:"longitude"  json:"longitude"`
	TZ        string  `db:"tz"         json:"tz"`
	Reminders bool    `db:"reminders"  json:"reminders"`
	CreatedAt int64   `db:"created_at" json:"created_at"`
}

// Completion holds the done-flags for the five canonical prayers of one day.
// JSON field names match the web app's localStorage format so exported
// backups stay interchangeable.
type Completion struct {
	Fajr    bool `json:"Fajr"`
	Dhuhr   bool `json:"Dhuhr"`
	Asr     bool `json:"Asr"`
	Maghrib bool `json:"Maghrib"`
	Isha    bool `json:"Isha"`
}

// Done returns whether the named prayer is marked complete.
func (c Completion) Done(name string) bool {
	switch name {
	case "Fajr":
		return c.Fajr
	case "Dhuhr":
		return c.Dhuhr
	case "Asr":
		return c.Asr
	case "Maghrib":
		return c.Maghrib
	case "Isha":
		return c.Isha
	}
	return false
}

// Toggle flips the named prayer and returns the updated completion.
// Unknown names are ignored.
func (c Completion) Toggle(name string) Completion {
	switch name {
	case "Fajr":
		c.Fajr = !c.Fajr
	case "Dhuhr":
		c.Dhuhr = !c.Dhuhr
	case "Asr":
		c.Asr = !c.Asr
	case "Maghrib":
		c.Maghrib = !c.Maghrib
	case "Isha":
		c.Isha = !c.Isha
	}
	return c
}

// Count returns how many of the five prayers are marked complete.
func (c Completion) Count() int {
	n := 0
	for _, name := range PrayerNames {
		if c.Done(name) {
			n++
		}
	}
	return n
}

// Percentage returns the completion percentage in [0,100].
func (c Completion) Percentage() float64 {
	return float64(c.Count()) / 5 * 100
}

// DailyRecord is one day's prayer completion, keyed by its YYYY-MM-DD date.
type DailyRecord struct {
	Date                 string     `json:"date"`
	Prayers              Completion `json:"prayers"`
	CompletionPercentage float64    `json:"completionPercentage"`
}

// MonthStats aggregates one calendar month (YYYY-MM).
type MonthStats struct {
	Completed  int     `json:"completed"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Stats is the derived snapshot cached alongside the record series.
// Fully recomputable from the series; never hand-edited.
type Stats struct {
	CurrentStreak int                   `json:"currentStreak"`
	LongestStreak int                   `json:"longestStreak"`
	TotalPrayers  int                   `json:"totalPrayers"`
	TotalMissed   int                   `json:"totalMissed"`
	MonthlyStats  map[string]MonthStats `json:"monthlyStats"`
}
