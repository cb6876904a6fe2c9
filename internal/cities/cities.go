// Package cities holds the static Pakistani city reference data.
package cities

import "strings"

// City is a selectable location with its coordinates.
type City struct {
	Name      string
	NameUrdu  string
	Latitude  float64
	Longitude float64
}

// Province groups cities for the two-step picker.
type Province struct {
	Name     string
	NameUrdu string
	Cities   []City
}

var provinces = []Province{
	{
		Name: "Punjab", NameUrdu: "پنجاب",
		Cities: []City{
			{"Lahore", "لاہور", 31.5204, 74.3587},
			{"Faisalabad", "فیصل آباد", 31.4504, 73.1350},
			{"Rawalpindi", "راولپنڈی", 33.5651, 73.0169},
			{"Multan", "ملتان", 30.1575, 71.5249},
			{"Gujranwala", "گجرانوالہ", 32.1877, 74.1945},
			{"Sialkot", "سیالکوٹ", 32.4945, 74.5229},
			{"Bahawalpur", "بہاولپور", 29.4167, 71.6833},
			{"Sargodha", "سرگودھا", 32.0837, 72.6715},
			{"Sheikhupura", "شیخوپورہ", 31.7167, 73.9833},
			{"Jhang", "جھنگ", 31.2681, 72.3317},
			{"Gujrat", "گجرات", 32.5740, 74.0788},
			{"Sahiwal", "ساہیوال", 30.6682, 73.1114},
			{"Jhelum", "جہلم", 32.9425, 73.7257},
			{"Dera Ghazi Khan", "ڈیرہ غازی خان", 30.0561, 70.6403},
			{"Attock", "اٹک", 33.7669, 72.3581},
			{"Chakwal", "چکوال", 32.9328, 72.8630},
		},
	},
	{
		Name: "Sindh", NameUrdu: "سندھ",
		Cities: []City{
			{"Karachi", "کراچی", 24.8607, 67.0011},
			{"Hyderabad", "حیدرآباد", 25.3960, 68.3578},
			{"Sukkur", "سکھر", 27.7052, 68.8574},
			{"Larkana", "لاڑکانہ", 27.5590, 68.2123},
			{"Nawabshah", "نوابشاہ", 26.2442, 68.4100},
			{"Mirpurkhas", "میر پور خاص", 25.5286, 69.0142},
			{"Jacobabad", "جیکب آباد", 28.2820, 68.4375},
			{"Shikarpur", "شکارپور", 27.9506, 68.6384},
			{"Thatta", "ٹھٹہ", 24.7461, 67.9242},
			{"Khairpur", "خیرپور", 27.5297, 68.7592},
			{"Badin", "بدین", 24.6550, 68.8378},
		},
	},
	{
		Name: "Khyber Pakhtunkhwa", NameUrdu: "خیبر پختونخوا",
		Cities: []City{
			{"Peshawar", "پشاور", 34.0151, 71.5249},
			{"Mardan", "مردان", 34.1982, 72.0360},
			{"Mingora", "منگورہ", 34.7797, 72.3616},
			{"Kohat", "کوہاٹ", 33.5819, 71.4425},
			{"Bannu", "بنوں", 32.9889, 70.6042},
			{"Abbottabad", "ایبٹ آباد", 34.1463, 73.2119},
			{"Dera Ismail Khan", "ڈیرہ اسماعیل خان", 31.8311, 70.9017},
			{"Nowshera", "نوشہرہ", 34.0158, 71.9828},
			{"Swat", "سوات", 35.2227, 72.4258},
			{"Chitral", "چترال", 35.8518, 71.7864},
			{"Mansehra", "مانسہرہ", 34.3333, 73.2000},
			{"Charsadda", "چارسدہ", 34.1486, 71.7314},
		},
	},
	{
		Name: "Balochistan", NameUrdu: "بلوچستان",
		Cities: []City{
			{"Quetta", "کوئٹہ", 30.1798, 66.9750},
			{"Gwadar", "گوادر", 25.1216, 62.3254},
			{"Turbat", "تربت", 26.0042, 63.0665},
			{"Khuzdar", "خضدار", 27.8094, 66.6114},
			{"Chaman", "چمن", 30.9236, 66.4502},
			{"Hub", "ہب", 25.0787, 66.7730},
			{"Sibi", "سبی", 29.5430, 67.8786},
			{"Zhob", "ژوب", 31.3417, 69.4500},
			{"Loralai", "لورالائی", 30.3704, 68.6020},
			{"Ziarat", "زیارت", 30.3817, 67.7256},
		},
	},
	{
		Name: "Islamabad Capital Territory", NameUrdu: "وفاقی دارالحکومت اسلام آباد",
		Cities: []City{
			{"Islamabad", "اسلام آباد", 33.7294, 73.0931},
		},
	},
	{
		Name: "Azad Kashmir", NameUrdu: "آزاد جموں و کشمیر",
		Cities: []City{
			{"Muzaffarabad", "مظفرآباد", 34.3707, 73.4713},
			{"Mirpur", "میرپور", 33.1507, 73.7516},
			{"Kotli", "کوٹلی", 33.5144, 73.9076},
			{"Rawalakot", "راولاکوٹ", 33.8581, 73.7598},
			{"Bagh", "باغ", 33.9833, 73.7833},
		},
	},
	{
		Name: "Gilgit-Baltistan", NameUrdu: "گلگت بلتستان",
		Cities: []City{
			{"Gilgit", "گلگت", 35.9197, 74.3079},
			{"Skardu", "سکردو", 35.2971, 75.6333},
			{"Hunza", "ہنزہ", 36.3167, 74.6500},
			{"Chilas", "چلاس", 35.4167, 74.0833},
			{"Khaplu", "کھپلو", 35.1406, 76.3372},
		},
	},
}

// Provinces returns the full reference list.
func Provinces() []Province {
	return provinces
}

// ByProvince returns the province with the given name.
func ByProvince(name string) (Province, bool) {
	for _, p := range provinces {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Province{}, false
}

// Find looks a city up by name, case-insensitively, across all provinces.
func Find(name string) (City, Province, bool) {
	name = strings.TrimSpace(name)
	for _, p := range provinces {
		for _, c := range p.Cities {
			if strings.EqualFold(c.Name, name) {
				return c, p, true
			}
		}
	}
	return City{}, Province{}, false
}

// Nearest returns the city closest to the coordinates, by the same
// squared-degree metric the web app uses for GPS snapping. Fine at city
// granularity within one country.
func Nearest(lat, lon float64) (City, Province) {
	best := provinces[0].Cities[0]
	bestProv := provinces[0]
	bestDist := -1.0

	for _, p := range provinces {
		for _, c := range p.Cities {
			dLat := c.Latitude - lat
			dLon := c.Longitude - lon
			dist := dLat*dLat + dLon*dLon
			if bestDist < 0 || dist < bestDist {
				best, bestProv, bestDist = c, p, dist
			}
		}
	}
	return best, bestProv
}

// Default is the fallback city for fresh chats.
func Default() (City, Province) {
	c, p, _ := Find("Karachi")
	return c, p
}
