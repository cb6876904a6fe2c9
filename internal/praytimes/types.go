package praytimes

// Response is the top-level Al Adhan timings payload.
type Response struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   Data   `json:"data"`
}

// Data holds the prayer timings, date info, and metadata for one day.
type Data struct {
	Timings Timings  `json:"timings"`
	Date    DateInfo `json:"date"`
	Meta    Meta     `json:"meta"`
}

// Timings contains the event times as "HH:MM" strings. The API may append
// a timezone suffix like " (PKT)" which CleanTime strips.
type Timings struct {
	Fajr    string `json:"Fajr"`
	Sunrise string `json:"Sunrise"`
	Dhuhr   string `json:"Dhuhr"`
	Asr     string `json:"Asr"`
	Sunset  string `json:"Sunset"`
	Maghrib string `json:"Maghrib"`
	Isha    string `json:"Isha"`
}

// Prayer returns the timing for a canonical prayer name.
func (t Timings) Prayer(name string) string {
	switch name {
	case "Fajr":
		return t.Fajr
	case "Dhuhr":
		return t.Dhuhr
	case "Asr":
		return t.Asr
	case "Maghrib":
		return t.Maghrib
	case "Isha":
		return t.Isha
	}
	return ""
}

// DateInfo carries both calendar representations of the day.
type DateInfo struct {
	Readable  string        `json:"readable"`
	Gregorian GregorianDate `json:"gregorian"`
	Hijri     HijriDate     `json:"hijri"`
}

// GregorianDate is the civil date, e.g. "29-08-2025".
type GregorianDate struct {
	Date    string  `json:"date"`
	Day     string  `json:"day"`
	Weekday Weekday `json:"weekday"`
	Month   Month   `json:"month"`
	Year    string  `json:"year"`
}

// HijriDate is the lunar date; Month.Number 9 is Ramadan.
type HijriDate struct {
	Date  string  `json:"date"`
	Day   string  `json:"day"`
	Month Month   `json:"month"`
	Year  string  `json:"year"`
}

type Weekday struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

type Month struct {
	Number int    `json:"number"`
	En     string `json:"en"`
	Ar     string `json:"ar"`
}

// Meta echoes the request location and the calculation method used.
type Meta struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Method    Method  `json:"method"`
}

type Method struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// RamadanMonth is the Hijri month number of Ramadan.
const RamadanMonth = 9

// IsRamadan reports whether the day falls in Ramadan.
func (d Data) IsRamadan() bool {
	return d.Date.Hijri.Month.Number == RamadanMonth
}

// HijriString formats the lunar date for display, e.g. "5 Ramadan 1447 AH".
func (d Data) HijriString() string {
	h := d.Date.Hijri
	if h.Day == "" || h.Month.En == "" || h.Year == "" {
		return ""
	}
	return h.Day + " " + h.Month.En + " " + h.Year + " AH"
}
