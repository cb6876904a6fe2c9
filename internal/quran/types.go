package quran

// Surah is one chapter as the Al Quran Cloud API lists it.
type Surah struct {
	Number                 int    `json:"number"`
	Name                   string `json:"name"` // Arabic
	EnglishName            string `json:"englishName"`
	EnglishNameTranslation string `json:"englishNameTranslation"`
	NumberOfAyahs          int    `json:"numberOfAyahs"`
	RevelationType         string `json:"revelationType"`
}

// Ayah is one verse in a single edition, either the Arabic text or a
// translation.
type Ayah struct {
	Number        int    `json:"number"`
	NumberInSurah int    `json:"numberInSurah"`
	Text          string `json:"text"`
}

type listResponse struct {
	Code   int     `json:"code"`
	Status string  `json:"status"`
	Data   []Surah `json:"data"`
}

type surahResponse struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
	Data   struct {
		Surah
		Ayahs []Ayah `json:"ayahs"`
	} `json:"data"`
}
