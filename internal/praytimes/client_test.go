package praytimes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"telegram-prayer-companion/internal/praytimes"
)

// trimmed from a live api.aladhan.com/v1/timings response
const sampleBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "timings": {
      "Fajr": "04:45",
      "Sunrise": "06:05 (PKT)",
      "Dhuhr": "12:35",
      "Asr": "16:10",
      "Sunset": "19:05",
      "Maghrib": "19:05",
      "Isha": "20:25"
    },
    "date": {
      "readable": "20 Aug 2025",
      "gregorian": {
        "date": "20-08-2025",
        "day": "20",
        "weekday": {"en": "Wednesday"},
        "month": {"number": 8, "en": "August"},
        "year": "2025"
      },
      "hijri": {
        "date": "26-02-1447",
        "day": "26",
        "weekday": {"en": "Al Arba'a", "ar": "الاربعاء"},
        "month": {"number": 2, "en": "Safar", "ar": "صَفَر"},
        "year": "1447"
      }
    },
    "meta": {
      "latitude": 24.8607,
      "longitude": 67.0011,
      "timezone": "Asia/Karachi",
      "method": {"id": 2, "name": "University of Islamic Sciences, Karachi"}
    }
  }
}`

func TestClientTimings(t *testing.T) {
	Convey("Given a stub Al Adhan server", t, func() {
		var gotPath string
		var gotQuery map[string][]string
		hits := 0

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			gotPath = r.URL.Path
			gotQuery = r.URL.Query()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(sampleBody))
		}))
		defer srv.Close()

		client := praytimes.NewClient(srv.URL)
		day := time.Date(2025, time.August, 20, 9, 0, 0, 0, time.UTC)

		Convey("It requests the dated endpoint with Karachi/Hanafi params", func() {
			resp, err := client.Timings(context.Background(), 24.8607, 67.0011, day)
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/v1/timings/20-08-2025")
			So(gotQuery["method"], ShouldResemble, []string{"2"})
			So(gotQuery["school"], ShouldResemble, []string{"1"})

			Convey("And decodes timings and both calendars", func() {
				So(resp.Data.Timings.Fajr, ShouldEqual, "04:45")
				So(praytimes.CleanTime(resp.Data.Timings.Sunrise), ShouldEqual, "06:05")
				So(resp.Data.Date.Hijri.Month.Number, ShouldEqual, 2)
				So(resp.Data.IsRamadan(), ShouldBeFalse)
				So(resp.Data.HijriString(), ShouldEqual, "26 Safar 1447 AH")
				So(resp.Data.Meta.Timezone, ShouldEqual, "Asia/Karachi")
			})
		})

		Convey("The same day and location is served from cache", func() {
			_, err := client.Timings(context.Background(), 24.8607, 67.0011, day)
			So(err, ShouldBeNil)
			_, err = client.Timings(context.Background(), 24.8607, 67.0011, day)
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 1)

			Convey("But a different location fetches again", func() {
				_, err := client.Timings(context.Background(), 31.5204, 74.3587, day)
				So(err, ShouldBeNil)
				So(hits, ShouldEqual, 2)
			})
		})

		Convey("Rolling over to a new day evicts the old day's entries", func() {
			_, err := client.Timings(context.Background(), 24.8607, 67.0011, day)
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 1)

			_, err = client.Timings(context.Background(), 24.8607, 67.0011, day.AddDate(0, 0, 1))
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 2)

			// yesterday is gone, so asking for it again goes to the server
			_, err = client.Timings(context.Background(), 24.8607, 67.0011, day)
			So(err, ShouldBeNil)
			So(hits, ShouldEqual, 3)
		})
	})

	Convey("Failures surface without retries", t, func() {
		Convey("An HTTP error status", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", http.StatusBadGateway)
			}))
			defer srv.Close()

			client := praytimes.NewClient(srv.URL)
			_, err := client.Timings(context.Background(), 24.8607, 67.0011, time.Now())
			So(err, ShouldNotBeNil)
		})

		Convey("An API-level error code", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": 400, "status": "Bad Request"}`))
			}))
			defer srv.Close()

			client := praytimes.NewClient(srv.URL)
			_, err := client.Timings(context.Background(), 24.8607, 67.0011, time.Now())
			So(err, ShouldNotBeNil)
		})
	})
}
