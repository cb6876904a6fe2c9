package quran_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"telegram-prayer-companion/internal/quran"
)

// trimmed from live api.alquran.cloud responses
const listBody = `{
  "code": 200,
  "status": "OK",
  "data": [
    {
      "number": 1,
      "name": "سُورَةُ ٱلْفَاتِحَةِ",
      "englishName": "Al-Faatiha",
      "englishNameTranslation": "The Opening",
      "numberOfAyahs": 7,
      "revelationType": "Meccan"
    },
    {
      "number": 112,
      "name": "سُورَةُ ٱلْإِخْلَاصِ",
      "englishName": "Al-Ikhlaas",
      "englishNameTranslation": "Sincerity",
      "numberOfAyahs": 4,
      "revelationType": "Meccan"
    }
  ]
}`

const arabicBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "number": 112,
    "name": "سُورَةُ ٱلْإِخْلَاصِ",
    "englishName": "Al-Ikhlaas",
    "englishNameTranslation": "Sincerity",
    "numberOfAyahs": 4,
    "revelationType": "Meccan",
    "ayahs": [
      {"number": 6222, "numberInSurah": 1, "text": "قُلْ هُوَ ٱللَّهُ أَحَدٌ"},
      {"number": 6223, "numberInSurah": 2, "text": "ٱللَّهُ ٱلصَّمَدُ"},
      {"number": 6224, "numberInSurah": 3, "text": "لَمْ يَلِدْ وَلَمْ يُولَدْ"},
      {"number": 6225, "numberInSurah": 4, "text": "وَلَمْ يَكُن لَّهُۥ كُفُوًا أَحَدٌۢ"}
    ]
  }
}`

const urduBody = `{
  "code": 200,
  "status": "OK",
  "data": {
    "number": 112,
    "name": "سُورَةُ ٱلْإِخْلَاصِ",
    "englishName": "Al-Ikhlaas",
    "englishNameTranslation": "Sincerity",
    "numberOfAyahs": 4,
    "revelationType": "Meccan",
    "ayahs": [
      {"number": 6222, "numberInSurah": 1, "text": "کہو کہ وہ (ذات پاک جس کا نام) الله (ہے) ایک ہے"},
      {"number": 6223, "numberInSurah": 2, "text": "معبود برحق جو بےنیاز ہے"},
      {"number": 6224, "numberInSurah": 3, "text": "نہ کسی کا باپ ہے اور نہ کسی کا بیٹا"},
      {"number": 6225, "numberInSurah": 4, "text": "اور کوئی اس کا ہمسر نہیں"}
    ]
  }
}`

func TestSurahs(t *testing.T) {
	Convey("Given a stub Al Quran Cloud server", t, func() {
		hits := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(listBody))
		}))
		defer srv.Close()

		client := quran.NewClient(srv.URL)

		Convey("The surah index decodes with both names and ayah counts", func() {
			surahs, err := client.Surahs(context.Background())
			So(err, ShouldBeNil)
			So(len(surahs), ShouldEqual, 2)
			So(surahs[0].EnglishName, ShouldEqual, "Al-Faatiha")
			So(surahs[0].Name, ShouldNotBeEmpty)
			So(surahs[1].Number, ShouldEqual, 112)
			So(surahs[1].NumberOfAyahs, ShouldEqual, 4)

			Convey("And is fetched only once", func() {
				_, err := client.Surahs(context.Background())
				So(err, ShouldBeNil)
				So(hits, ShouldEqual, 1)
			})
		})
	})
}

func TestAyahs(t *testing.T) {
	Convey("Given a stub server with Arabic and Urdu editions", t, func() {
		hits := map[string]int{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits[r.URL.Path]++
			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/v1/surah/112":
				_, _ = w.Write([]byte(arabicBody))
			case "/v1/surah/112/" + quran.UrduEdition:
				_, _ = w.Write([]byte(urduBody))
			default:
				http.NotFound(w, r)
			}
		}))
		defer srv.Close()

		client := quran.NewClient(srv.URL)

		Convey("Both editions come back verse-aligned", func() {
			arabic, urdu, err := client.Ayahs(context.Background(), 112)
			So(err, ShouldBeNil)
			So(len(arabic), ShouldEqual, 4)
			So(len(urdu), ShouldEqual, 4)
			So(arabic[0].NumberInSurah, ShouldEqual, 1)
			So(urdu[0].NumberInSurah, ShouldEqual, 1)
			So(urdu[0].Text, ShouldNotBeEmpty)

			Convey("And repeat reads are served from cache", func() {
				_, _, err := client.Ayahs(context.Background(), 112)
				So(err, ShouldBeNil)
				So(hits["/v1/surah/112"], ShouldEqual, 1)
				So(hits["/v1/surah/112/"+quran.UrduEdition], ShouldEqual, 1)
			})
		})
	})

	Convey("A failing translation fetch still yields the Arabic text", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/surah/112" {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(arabicBody))
				return
			}
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		client := quran.NewClient(srv.URL)
		arabic, urdu, err := client.Ayahs(context.Background(), 112)
		So(err, ShouldBeNil)
		So(len(arabic), ShouldEqual, 4)
		So(urdu, ShouldBeNil)
	})

	Convey("An API-level error code surfaces", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code": 404, "status": "Not Found"}`))
		}))
		defer srv.Close()

		client := quran.NewClient(srv.URL)
		_, _, err := client.Ayahs(context.Background(), 700)
		So(err, ShouldNotBeNil)
	})
}
