package tasbih_test

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"telegram-prayer-companion/internal/tasbih"
)

type fakeKV map[string]string

func (f fakeKV) Get(key string) (string, error) { return f[key], nil }
func (f fakeKV) Set(key, value string) error    { f[key] = value; return nil }

func TestCounter(t *testing.T) {
	Convey("Given a fresh counter", t, func() {
		kv := fakeKV{}
		c := tasbih.NewCounter(kv)
		So(c.Count(), ShouldEqual, 0)

		Convey("Increment persists and returns the new value", func() {
			n, err := c.Increment()
			So(err, ShouldBeNil)
			So(n, ShouldEqual, 1)
			So(tasbih.NewCounter(kv).Count(), ShouldEqual, 1)
		})

		Convey("Reset zeroes it", func() {
			for i := 0; i < 5; i++ {
				_, _ = c.Increment()
			}
			So(c.Reset(), ShouldBeNil)
			So(c.Count(), ShouldEqual, 0)
		})

		Convey("Malformed persisted state reads as zero", func() {
			kv["tasbihCount"] = "lots"
			So(c.Count(), ShouldEqual, 0)
			kv["tasbihCount"] = "-4"
			So(c.Count(), ShouldEqual, 0)
		})
	})
}

func TestCycle(t *testing.T) {
	Convey("A cycle completes at positive multiples of 33", t, func() {
		So(tasbih.CycleComplete(0), ShouldBeFalse)
		So(tasbih.CycleComplete(1), ShouldBeFalse)
		So(tasbih.CycleComplete(33), ShouldBeTrue)
		So(tasbih.CycleComplete(34), ShouldBeFalse)
		So(tasbih.CycleComplete(66), ShouldBeTrue)
		So(tasbih.CycleComplete(99), ShouldBeTrue)
	})

	Convey("Phrases follow the traditional 33/33/33 sequence", t, func() {
		So(tasbih.Phrase(1), ShouldContainSubstring, "SubhanAllah")
		So(tasbih.Phrase(33), ShouldContainSubstring, "SubhanAllah")
		So(tasbih.Phrase(34), ShouldContainSubstring, "Alhamdulillah")
		So(tasbih.Phrase(66), ShouldContainSubstring, "Alhamdulillah")
		So(tasbih.Phrase(67), ShouldContainSubstring, "Allahu Akbar")
		So(tasbih.Phrase(99), ShouldContainSubstring, "Allahu Akbar")
		// wraps around after a full hundred
		So(strings.Contains(tasbih.Phrase(100), "SubhanAllah"), ShouldBeTrue)
	})
}
