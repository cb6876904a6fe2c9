package handlers

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/cities"
	"telegram-prayer-companion/internal/content"
	"telegram-prayer-companion/internal/history"
	"telegram-prayer-companion/internal/models"
	"telegram-prayer-companion/internal/tasbih"
)

// HandleCallback routes an inline-keyboard tap.
func (h *Handler) HandleCallback(q *tgbotapi.CallbackQuery) {
	if _, err := h.Bot.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		log.Error().Err(err).Msg("answering callback")
	}
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID

	switch {
	case strings.HasPrefix(q.Data, "toggle:"):
		h.togglePrayer(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "toggle:"))
	case strings.HasPrefix(q.Data, "tasbih:"):
		h.tasbihAction(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "tasbih:"))
	case strings.HasPrefix(q.Data, "dua:"):
		h.showDua(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "dua:"))
	case strings.HasPrefix(q.Data, "hadith:"):
		h.showHadith(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "hadith:"))
	case strings.HasPrefix(q.Data, "qlist:"):
		h.showSurahList(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "qlist:"))
	case strings.HasPrefix(q.Data, "surah:"):
		if n, err := strconv.Atoi(strings.TrimPrefix(q.Data, "surah:")); err == nil {
			h.showSurah(chatID, q.Message.MessageID, n, 0)
		}
	case strings.HasPrefix(q.Data, "quran:"):
		if n, p, ok := splitSurahPage(strings.TrimPrefix(q.Data, "quran:")); ok {
			h.showSurah(chatID, q.Message.MessageID, n, p)
		}
	case strings.HasPrefix(q.Data, "prov:"):
		h.showCities(chatID, q.Message.MessageID, strings.TrimPrefix(q.Data, "prov:"))
	case strings.HasPrefix(q.Data, "city:"):
		h.selectCity(chatID, strings.TrimPrefix(q.Data, "city:"))
	case q.Data == "set_city":
		h.showProvinces(chatID)
	case q.Data == "set_reminders":
		h.toggleReminders(chatID)
	case q.Data == "clear_data":
		h.clearData(chatID)
	}
}

// ---------------- prayer toggles --------------------

func (h *Handler) togglePrayer(chatID int64, messageID int, name string) {
	u := h.user(chatID)
	now := localNow(u)
	store := h.store(chatID)

	completion := h.todayCompletion(chatID, now)
	completion = completion.Toggle(name)

	if err := store.RecordDay(history.DateKey(now), completion); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("recording prayer")
		h.send(chatID, "Could not save that, please try again.")
		return
	}

	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, toggleKeyboard(completion))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("updating toggles")
	}

	if completion.Count() == len(models.PrayerNames) {
		stats := store.Stats()
		h.send(chatID, fmt.Sprintf("🎉 All five prayers today, mashallah! Current streak: %d day(s).", stats.CurrentStreak))
	}
}

// ---------------- tasbih --------------------

func tasbihText(count int) string {
	var b strings.Builder
	b.WriteString("📿 Tasbih\n\n")
	fmt.Fprintf(&b, "Count: %d\n", count)
	if count > 0 {
		fmt.Fprintf(&b, "Recite: %s\n", tasbih.Phrase(count))
		fmt.Fprintf(&b, "Bead %d of %d\n", (count-1)%tasbih.CycleLength+1, tasbih.CycleLength)
	} else {
		fmt.Fprintf(&b, "Recite: %s\n", tasbih.Phrase(1))
	}
	if tasbih.CycleComplete(count) {
		b.WriteString("\n✨ Cycle of 33 complete!")
	}
	return b.String()
}

func tasbihKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📿 Count", "tasbih:inc"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset", "tasbih:reset"),
		),
	)
}

func (h *Handler) tasbihAction(chatID int64, messageID int, action string) {
	counter := h.counter(chatID)

	var count int
	switch action {
	case "inc":
		n, err := counter.Increment()
		if err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("incrementing tasbih")
			return
		}
		count = n
	case "reset":
		if err := counter.Reset(); err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("resetting tasbih")
			return
		}
		count = 0
	default:
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, tasbihText(count), tasbihKeyboard())
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("updating tasbih")
	}
}

// ---------------- duas --------------------

func duaText(d content.Dua, idx, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🤲 %s (%d/%d)\n\n", d.Title, idx+1, total)
	fmt.Fprintf(&b, "%s\n\n", d.Arabic)
	fmt.Fprintf(&b, "%s\n\n", d.Transliteration)
	fmt.Fprintf(&b, "%s\n\n— %s", d.Translation, d.Reference)
	return b.String()
}

func duaKeyboard(idx, total int) tgbotapi.InlineKeyboardMarkup {
	prev := (idx - 1 + total) % total
	next := (idx + 1) % total
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️", "dua:"+strconv.Itoa(prev)),
			tgbotapi.NewInlineKeyboardButtonData("➡️", "dua:"+strconv.Itoa(next)),
		),
	)
}

func (h *Handler) showDua(chatID int64, messageID int, raw string) {
	total := len(h.Content.Duas)
	if total == 0 {
		return
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= total {
		idx = 0
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, duaText(h.Content.Duas[idx], idx, total), duaKeyboard(idx, total))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("paging duas")
	}
}

// splitSurahPage parses "<surah>:<page>" callback data.
func splitSurahPage(raw string) (surah, page int, ok bool) {
	n, p, found := strings.Cut(raw, ":")
	if !found {
		return 0, 0, false
	}
	surah, err := strconv.Atoi(n)
	if err != nil {
		return 0, 0, false
	}
	page, err = strconv.Atoi(p)
	if err != nil {
		return 0, 0, false
	}
	return surah, page, true
}

// ---------------- hadith browser --------------------

func hadithText(hd content.Hadith, idx, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 Hadith %d of %d · %s\n\n", idx+1, total, hd.Topic)
	fmt.Fprintf(&b, "\"%s\"\n\n— %s, %s %s", hd.Text, hd.Narrator, hd.Collection, hd.Number)
	return b.String()
}

func hadithKeyboard(idx, total int) tgbotapi.InlineKeyboardMarkup {
	prev := (idx - 1 + total) % total
	next := (idx + 1) % total
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️", "hadith:"+strconv.Itoa(prev)),
			tgbotapi.NewInlineKeyboardButtonData("🎲", "hadith:rand"),
			tgbotapi.NewInlineKeyboardButtonData("➡️", "hadith:"+strconv.Itoa(next)),
		),
	)
}

func (h *Handler) showHadith(chatID int64, messageID int, raw string) {
	total := len(h.Content.Hadiths)
	if total == 0 {
		return
	}

	var idx int
	if raw == "rand" {
		idx = rand.Intn(total)
	} else {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n >= total {
			n = 0
		}
		idx = n
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, hadithText(h.Content.Hadiths[idx], idx, total), hadithKeyboard(idx, total))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("paging hadiths")
	}
}

// ---------------- city selection --------------------

func (h *Handler) showProvinces(chatID int64) {
	// typing a city name works too while the picker is open
	if err := h.DB.SetUserState(chatID, models.StateWaitCity); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("setting state")
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0)
	for _, p := range cities.Provinces() {
		label := fmt.Sprintf("%s · %s", p.Name, p.NameUrdu)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "prov:"+p.Name),
		))
	}
	h.sendWithKeyboard(chatID, "📍 Pick your province, or just type your city's name:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (h *Handler) showCities(chatID int64, messageID int, provName string) {
	prov, ok := cities.ByProvince(provName)
	if !ok {
		h.send(chatID, "Unknown province, try again from "+btnSettings+".")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, (len(prov.Cities)+1)/2)
	for i := 0; i < len(prov.Cities); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(prov.Cities[i].Name, "city:"+prov.Cities[i].Name),
		}
		if i+1 < len(prov.Cities) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(prov.Cities[i+1].Name, "city:"+prov.Cities[i+1].Name))
		}
		rows = append(rows, row)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		fmt.Sprintf("📍 Cities in %s:", prov.Name),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("listing cities")
	}
}

func (h *Handler) selectCity(chatID int64, name string) {
	city, prov, ok := cities.Find(name)
	if !ok {
		h.send(chatID, "I don't know that city, pick one from the list.")
		return
	}

	u := h.user(chatID)
	u.City, u.Province = city.Name, prov.Name
	u.Latitude, u.Longitude = city.Latitude, city.Longitude
	if err := h.DB.UpsertUser(u); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("saving city")
		h.send(chatID, "Could not save your city, please try again.")
		return
	}
	h.clearState(chatID)

	h.send(chatID, fmt.Sprintf("📍 City set to %s, %s. Prayer times now follow it.", city.Name, prov.Name))
}

// ---------------- settings actions --------------------

func (h *Handler) toggleReminders(chatID int64) {
	u := h.user(chatID)
	u.Reminders = !u.Reminders
	if err := h.DB.UpsertUser(u); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("toggling reminders")
		return
	}
	if u.Reminders {
		h.send(chatID, "🔔 Athan reminders are on. I'll ping you at each prayer time.")
	} else {
		h.send(chatID, "🔕 Athan reminders are off.")
	}
}

func (h *Handler) clearData(chatID int64) {
	if err := h.DB.ClearData(chatID); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("clearing data")
		h.send(chatID, "Could not clear your data, please try again.")
		return
	}
	h.send(chatID, "🗑 All your data is gone. Send /start to begin again.")
}
