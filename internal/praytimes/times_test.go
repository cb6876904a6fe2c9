package praytimes_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"telegram-prayer-companion/internal/praytimes"
)

var karachiTimings = praytimes.Timings{
	Fajr:    "04:45",
	Sunrise: "06:05",
	Dhuhr:   "12:35",
	Asr:     "16:10",
	Sunset:  "19:05",
	Maghrib: "19:05",
	Isha:    "20:25",
}

func at(h, m int) time.Time {
	return time.Date(2025, time.August, 20, h, m, 30, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	Convey("ParseTimeOfDay pins HH:MM onto the given day", t, func() {
		day := at(15, 0)
		got, err := praytimes.ParseTimeOfDay("05:12", day)
		So(err, ShouldBeNil)
		So(got.Year(), ShouldEqual, 2025)
		So(got.Month(), ShouldEqual, time.August)
		So(got.Day(), ShouldEqual, 20)
		So(got.Hour(), ShouldEqual, 5)
		So(got.Minute(), ShouldEqual, 12)
		So(got.Second(), ShouldEqual, 0)

		Convey("A timezone suffix is stripped, not rejected", func() {
			got, err := praytimes.ParseTimeOfDay("19:05 (PKT)", day)
			So(err, ShouldBeNil)
			So(got.Hour(), ShouldEqual, 19)
		})

		Convey("Garbage is an error", func() {
			_, err := praytimes.ParseTimeOfDay("late", day)
			So(err, ShouldNotBeNil)
			_, err = praytimes.ParseTimeOfDay("25:00", day)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestUntil(t *testing.T) {
	Convey("Until floor-decomposes the remaining duration", t, func() {
		now := at(10, 0)

		Convey("90 minutes out is 1h30m0s", func() {
			r := praytimes.Until(now.Add(90*time.Minute), now)
			So(r, ShouldResemble, praytimes.Remaining{Hours: 1, Minutes: 30, Seconds: 0})
		})

		Convey("A past or present target is due now", func() {
			So(praytimes.Until(now, now).IsZero(), ShouldBeTrue)
			So(praytimes.Until(now.Add(-time.Hour), now).IsZero(), ShouldBeTrue)
		})

		Convey("Seconds within the minute are kept", func() {
			r := praytimes.Until(now.Add(61*time.Second), now)
			So(r, ShouldResemble, praytimes.Remaining{Hours: 0, Minutes: 1, Seconds: 1})
		})
	})
}

func TestNextPrayer(t *testing.T) {
	Convey("Given a day of Karachi timings", t, func() {
		Convey("Mid-morning the next prayer is Dhuhr", func() {
			next, ok := praytimes.NextPrayer(karachiTimings, at(10, 5))
			So(ok, ShouldBeTrue)
			So(next.Name, ShouldEqual, "Dhuhr")
			So(next.Time, ShouldEqual, "12:35")
			So(next.Tomorrow, ShouldBeFalse)
			So(next.Hours, ShouldEqual, 2)
			So(next.Minutes, ShouldEqual, 30)
		})

		Convey("A minute before Isha it is Isha", func() {
			next, ok := praytimes.NextPrayer(karachiTimings, at(20, 24))
			So(ok, ShouldBeTrue)
			So(next.Name, ShouldEqual, "Isha")
			So(next.Hours, ShouldEqual, 0)
			So(next.Minutes, ShouldEqual, 1)
		})

		Convey("Exactly at a prayer time the comparison moves past it", func() {
			next, ok := praytimes.NextPrayer(karachiTimings, at(12, 35))
			So(ok, ShouldBeTrue)
			So(next.Name, ShouldEqual, "Asr")
		})

		Convey("After Isha it wraps to tomorrow's Fajr", func() {
			next, ok := praytimes.NextPrayer(karachiTimings, at(22, 0))
			So(ok, ShouldBeTrue)
			So(next.Name, ShouldEqual, "Fajr")
			So(next.Tomorrow, ShouldBeTrue)
			// 22:00 -> midnight is 2h, plus 04:45
			So(next.Hours, ShouldEqual, 6)
			So(next.Minutes, ShouldEqual, 45)
		})

		Convey("The minute path agrees with the precise countdown up to rounding", func() {
			now := at(10, 5) // :30 seconds
			next, ok := praytimes.NextPrayer(karachiTimings, now)
			So(ok, ShouldBeTrue)

			target, err := praytimes.ParseTimeOfDay(next.Time, now)
			So(err, ShouldBeNil)
			r := praytimes.Until(target, now)

			minutePath := next.Hours*60 + next.Minutes
			secondPath := r.Hours*60 + r.Minutes
			So(minutePath-secondPath, ShouldBeBetweenOrEqual, 0, 1)
		})

		Convey("Unparseable timings are reported", func() {
			_, ok := praytimes.NextPrayer(praytimes.Timings{}, at(10, 0))
			So(ok, ShouldBeFalse)
		})
	})
}

func TestSlots(t *testing.T) {
	Convey("Slots resolves the five prayers onto the day in order", t, func() {
		day := at(9, 0)
		slots := praytimes.Slots(karachiTimings, day)
		So(len(slots), ShouldEqual, 5)
		So(slots[0].Name, ShouldEqual, "Fajr")
		So(slots[4].Name, ShouldEqual, "Isha")
		for i := 1; i < len(slots); i++ {
			So(slots[i].At.After(slots[i-1].At), ShouldBeTrue)
		}
		So(slots[2].At.Hour(), ShouldEqual, 12)
		So(slots[2].At.Day(), ShouldEqual, 20)
	})

	Convey("Malformed entries are dropped, the rest survive", t, func() {
		tm := karachiTimings
		tm.Asr = "??"
		slots := praytimes.Slots(tm, at(9, 0))
		So(len(slots), ShouldEqual, 4)
	})
}
