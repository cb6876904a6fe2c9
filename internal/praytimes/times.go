// Package praytimes fetches daily prayer timings from the Al Adhan API and
// derives next-prayer and countdown information from them.
package praytimes

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"telegram-prayer-companion/internal/models"
)

// Remaining is a floor-decomposed duration until a target instant.
type Remaining struct {
	Hours   int
	Minutes int
	Seconds int
}

// IsZero reports whether the target is due now (or already past).
func (r Remaining) IsZero() bool {
	return r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// CleanTime strips a trailing timezone annotation, "05:12 (PKT)" -> "05:12".
func CleanTime(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// minutesOfDay parses "HH:MM" into minutes since midnight.
func minutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(CleanTime(hhmm), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", hhmm, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q: %w", hhmm, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("time %q out of range", hhmm)
	}
	return h*60 + m, nil
}

// ParseTimeOfDay interprets an "HH:MM" string as local civil time on the
// same calendar day as `day`, seconds zeroed. No timezone conversion.
func ParseTimeOfDay(hhmm string, day time.Time) (time.Time, error) {
	mins, err := minutesOfDay(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, day.Location()), nil
}

// Until decomposes target−now into whole hours, minutes and seconds.
// A target at or before now reads as all-zero, meaning "due now".
func Until(target, now time.Time) Remaining {
	diff := target.Sub(now)
	if diff <= 0 {
		return Remaining{}
	}
	secs := int(diff / time.Second)
	return Remaining{
		Hours:   secs / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// Slot is one prayer's timing resolved onto a concrete day.
type Slot struct {
	Name string    // canonical name
	Time string    // "HH:MM", cleaned
	At   time.Time // absolute instant on the slot's day
}

// Slots resolves the five canonical prayers onto `day`, in order.
// Slots with malformed times are dropped.
func Slots(tm Timings, day time.Time) []Slot {
	slots := make([]Slot, 0, len(models.PrayerNames))
	for _, name := range models.PrayerNames {
		raw := tm.Prayer(name)
		at, err := ParseTimeOfDay(raw, day)
		if err != nil {
			continue
		}
		slots = append(slots, Slot{Name: name, Time: CleanTime(raw), At: at})
	}
	return slots
}

// Next describes the upcoming prayer at minute granularity. This is the
// table-view path; the live countdown uses Until against the slot instant
// and the two agree up to rounding.
type Next struct {
	Name     string
	Time     string // "HH:MM"
	Hours    int
	Minutes  int
	Tomorrow bool // set when the day's prayers are over and Fajr wrapped
}

// NextPrayer scans the five prayers in canonical order and returns the
// first one later than now (by minutes since midnight). After Isha it
// wraps to tomorrow's Fajr. Returns false only when no timing parses.
func NextPrayer(tm Timings, now time.Time) (Next, bool) {
	nowMins := now.Hour()*60 + now.Minute()

	for _, name := range models.PrayerNames {
		raw := tm.Prayer(name)
		mins, err := minutesOfDay(raw)
		if err != nil {
			continue
		}
		if mins > nowMins {
			diff := mins - nowMins
			return Next{
				Name:    name,
				Time:    CleanTime(raw),
				Hours:   diff / 60,
				Minutes: diff % 60,
			}, true
		}
	}

	// nothing left today: tomorrow's Fajr
	fajrMins, err := minutesOfDay(tm.Fajr)
	if err != nil {
		return Next{}, false
	}
	diff := 24*60 - nowMins + fajrMins
	return Next{
		Name:     "Fajr",
		Time:     CleanTime(tm.Fajr),
		Hours:    diff / 60,
		Minutes:  diff % 60,
		Tomorrow: true,
	}, true
}
