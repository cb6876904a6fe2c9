package storage_test

import (
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"telegram-prayer-companion/internal/models"
	"telegram-prayer-companion/internal/storage"
)

func open(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.New(filepath.Join(t.TempDir(), "bot.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsers(t *testing.T) {
	Convey("Given a fresh database", t, func() {
		db := open(t)

		Convey("An unknown chat reads as nil, not an error", func() {
			u, err := db.GetUser(42)
			So(err, ShouldBeNil)
			So(u, ShouldBeNil)
		})

		Convey("Upsert inserts then updates on conflict", func() {
			u := &models.User{
				ChatID: 42, City: "Karachi", Province: "Sindh",
				Latitude: 24.8607, Longitude: 67.0011,
				TZ: "Asia/Karachi", Reminders: true,
			}
			So(db.UpsertUser(u), ShouldBeNil)

			got, err := db.GetUser(42)
			So(err, ShouldBeNil)
			So(got, ShouldNotBeNil)
			So(got.City, ShouldEqual, "Karachi")
			So(got.Reminders, ShouldBeTrue)

			u.City, u.Province = "Lahore", "Punjab"
			u.Reminders = false
			So(db.UpsertUser(u), ShouldBeNil)

			got, err = db.GetUser(42)
			So(err, ShouldBeNil)
			So(got.City, ShouldEqual, "Lahore")
			So(got.Reminders, ShouldBeFalse)

			users, err := db.ListUsers()
			So(err, ShouldBeNil)
			So(len(users), ShouldEqual, 1)
		})
	})
}

func TestStatesAndBlobs(t *testing.T) {
	Convey("Given a fresh database", t, func() {
		db := open(t)

		Convey("FSM state round-trips and defaults to empty", func() {
			st, err := db.GetUserState(7)
			So(err, ShouldBeNil)
			So(st, ShouldEqual, "")

			So(db.SetUserState(7, models.StateWaitImport), ShouldBeNil)
			st, err = db.GetUserState(7)
			So(err, ShouldBeNil)
			So(st, ShouldEqual, models.StateWaitImport)

			So(db.SetUserState(7, models.StateNone), ShouldBeNil)
		})

		Convey("Blobs are namespaced per chat", func() {
			kv7 := db.ChatKV(7)
			kv9 := db.ChatKV(9)

			So(kv7.Set("prayerHistory", "[]"), ShouldBeNil)

			v, err := kv7.Get("prayerHistory")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "[]")

			v, err = kv9.Get("prayerHistory")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "")

			Convey("And overwrite in place", func() {
				So(kv7.Set("prayerHistory", `[{"date":"2025-08-20"}]`), ShouldBeNil)
				v, err := kv7.Get("prayerHistory")
				So(err, ShouldBeNil)
				So(v, ShouldContainSubstring, "2025-08-20")
			})
		})

		Convey("ClearData wipes one chat and leaves others alone", func() {
			So(db.ChatKV(7).Set("tasbihCount", "12"), ShouldBeNil)
			So(db.ChatKV(9).Set("tasbihCount", "3"), ShouldBeNil)
			So(db.SetUserState(7, models.StateWaitCity), ShouldBeNil)

			So(db.ClearData(7), ShouldBeNil)

			v, err := db.ChatKV(7).Get("tasbihCount")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "")

			st, err := db.GetUserState(7)
			So(err, ShouldBeNil)
			So(st, ShouldEqual, "")

			v, err = db.ChatKV(9).Get("tasbihCount")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, "3")
		})
	})
}
