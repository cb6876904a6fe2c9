package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/daily"
	"telegram-prayer-companion/internal/history"
	"telegram-prayer-companion/internal/models"
	"telegram-prayer-companion/internal/praytimes"
	"telegram-prayer-companion/internal/qibla"
)

const fetchTimeout = 20 * time.Second

func (h *Handler) HandleCommand(chatID int64, cmd string) {
	switch cmd {
	case "start":
		h.HandleStart(chatID)
	case "times":
		h.handleTimes(chatID)
	case "next":
		h.handleNext(chatID)
	case "stats":
		h.handleStats(chatID)
	case "qibla":
		h.handleQibla(chatID)
	case "tasbih":
		h.handleTasbih(chatID)
	case "duas":
		h.handleDuas(chatID)
	case "daily":
		h.handleDaily(chatID)
	case "quran":
		h.handleQuran(chatID)
	case "export":
		h.handleExport(chatID)
	case "import":
		h.handleImport(chatID)
	case "settings":
		h.handleSettings(chatID)
	}
}

// ---------------- /start --------------------

func (h *Handler) HandleStart(chatID int64) {
	u := h.user(chatID)
	text := fmt.Sprintf(
		"Assalamu alaikum! 🕌\n\nI show prayer times for Pakistani cities, track your daily prayers and streaks, and carry a Quran reader, tasbih, qibla compass and dua collection.\n\nYour city is set to %s, %s. Change it in %s, or just share your location.",
		u.City, u.Province, btnSettings,
	)
	h.sendWithKeyboard(chatID, text, mainMenu())
}

// ---------------- prayer times --------------------

// timings fetches today's response for the user, reporting failures to the
// chat. The praytimes client caches per day+location.
func (h *Handler) timings(u *models.User, now time.Time) (*praytimes.Response, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	resp, err := h.Times.Timings(ctx, u.Latitude, u.Longitude, now)
	if err != nil {
		log.Error().Err(err).Int64("chat", u.ChatID).Msg("fetching timings")
		h.send(u.ChatID, "Could not fetch prayer times right now, please try again in a bit.")
		return nil, false
	}
	return resp, true
}

func (h *Handler) handleTimes(chatID int64) {
	u := h.user(chatID)
	now := localNow(u)

	resp, ok := h.timings(u, now)
	if !ok {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕌 Prayer times for %s\n", u.City)
	fmt.Fprintf(&b, "%s", resp.Data.Date.Readable)
	if hijri := resp.Data.HijriString(); hijri != "" {
		fmt.Fprintf(&b, " · %s", hijri)
	}
	b.WriteString("\n")
	if resp.Data.IsRamadan() {
		b.WriteString("🌙 Ramadan Mubarak! Sehri ends at Fajr, Iftar at Maghrib.\n")
	}
	b.WriteString("\n")

	next, hasNext := praytimes.NextPrayer(resp.Data.Timings, now)
	for _, slot := range praytimes.Slots(resp.Data.Timings, now) {
		marker := "  "
		if hasNext && !next.Tomorrow && slot.Name == next.Name {
			marker = "▶️"
		}
		fmt.Fprintf(&b, "%s %s — %s\n", marker, slot.Time, slot.Name)
		if slot.Name == "Fajr" {
			fmt.Fprintf(&b, "   %s — Sunrise\n", praytimes.CleanTime(resp.Data.Timings.Sunrise))
		}
	}

	b.WriteString("\nMark today's prayers below 👇")
	completion := h.todayCompletion(chatID, now)
	h.sendWithKeyboard(chatID, b.String(), toggleKeyboard(completion))
}

func (h *Handler) todayCompletion(chatID int64, now time.Time) models.Completion {
	if rec := h.store(chatID).Day(history.DateKey(now)); rec != nil {
		return rec.Prayers
	}
	return models.Completion{}
}

// ---------------- next prayer --------------------

func (h *Handler) handleNext(chatID int64) {
	u := h.user(chatID)
	now := localNow(u)

	resp, ok := h.timings(u, now)
	if !ok {
		return
	}

	next, hasNext := praytimes.NextPrayer(resp.Data.Timings, now)
	if !hasNext {
		h.send(chatID, "No prayer timings available for today.")
		return
	}

	day := now
	label := next.Name
	if next.Tomorrow {
		day = now.AddDate(0, 0, 1)
		label += " (tomorrow)"
	}

	text := fmt.Sprintf("⏳ Next prayer: %s at %s\nAbout %dh %dm from now.", label, next.Time, next.Hours, next.Minutes)

	// second-granularity countdown alongside the minute view
	if target, err := praytimes.ParseTimeOfDay(next.Time, day); err == nil {
		r := praytimes.Until(target, now)
		if r.IsZero() {
			text = fmt.Sprintf("🕌 It is time for %s (%s).", label, next.Time)
		} else {
			text += fmt.Sprintf("\nPrecisely: %02d:%02d:%02d.", r.Hours, r.Minutes, r.Seconds)
		}
	}

	h.send(chatID, text)
}

// ---------------- statistics --------------------

func (h *Handler) handleStats(chatID int64) {
	store := h.store(chatID)
	stats := store.Stats()
	window := store.RecentWindow(7)

	var b strings.Builder
	b.WriteString("📊 Prayer statistics\n\n")
	fmt.Fprintf(&b, "🔥 Current streak: %d day(s)\n", stats.CurrentStreak)
	fmt.Fprintf(&b, "🏆 Longest streak: %d day(s)\n", stats.LongestStreak)
	fmt.Fprintf(&b, "✅ Prayers completed: %d\n", stats.TotalPrayers)
	fmt.Fprintf(&b, "❌ Prayers missed: %d\n", stats.TotalMissed)

	b.WriteString("\nLast 7 days:\n")
	for _, rec := range window {
		marks := make([]string, 0, len(models.PrayerNames))
		for _, name := range models.PrayerNames {
			if rec.Prayers.Done(name) {
				marks = append(marks, "✅")
			} else {
				marks = append(marks, "⬜")
			}
		}
		fmt.Fprintf(&b, "%s  %s %.0f%%\n", rec.Date, strings.Join(marks, ""), rec.CompletionPercentage)
	}

	if len(stats.MonthlyStats) > 0 {
		b.WriteString("\nBy month:\n")
		months := make([]string, 0, len(stats.MonthlyStats))
		for m := range stats.MonthlyStats {
			months = append(months, m)
		}
		// newest first; YYYY-MM sorts lexicographically
		sort.Sort(sort.Reverse(sort.StringSlice(months)))
		for _, m := range months {
			ms := stats.MonthlyStats[m]
			fmt.Fprintf(&b, "%s: %d/%d (%.1f%%)\n", m, ms.Completed, ms.Total, ms.Percentage)
		}
	}

	h.send(chatID, b.String())
}

// ---------------- qibla --------------------

func (h *Handler) handleQibla(chatID int64) {
	u := h.user(chatID)
	bearing := qibla.Bearing(u.Latitude, u.Longitude)

	text := fmt.Sprintf(
		"🧭 Qibla from %s\n\nFace %.1f° from north (%s).\nHold your phone flat, point its top north with a compass app, then turn until you face %.0f°.",
		u.City, bearing, qibla.Compass(bearing), bearing,
	)
	h.send(chatID, text)
}

// ---------------- tasbih --------------------

func (h *Handler) handleTasbih(chatID int64) {
	count := h.counter(chatID).Count()
	h.sendWithKeyboard(chatID, tasbihText(count), tasbihKeyboard())
}

// ---------------- duas --------------------

func (h *Handler) handleDuas(chatID int64) {
	if len(h.Content.Duas) == 0 {
		h.send(chatID, "No duas available.")
		return
	}
	h.sendWithKeyboard(chatID, duaText(h.Content.Duas[0], 0, len(h.Content.Duas)), duaKeyboard(0, len(h.Content.Duas)))
}

// ---------------- daily content --------------------

func (h *Handler) handleDaily(chatID int64) {
	u := h.user(chatID)
	now := localNow(u)

	// the two lists are day-indexed independently, each over its own length
	if gem, ok := daily.Pick(now, h.Content.Gems); ok {
		var b strings.Builder
		b.WriteString("✨ Today's gem\n\n")
		fmt.Fprintf(&b, "%s\n%s\n— %s\n\n%s", gem.Arabic, gem.Translation, gem.Reference, gem.Reflection)
		h.send(chatID, b.String())
	}

	total := len(h.Content.Hadiths)
	if total == 0 {
		if len(h.Content.Gems) == 0 {
			h.send(chatID, "No daily content available.")
		}
		return
	}

	// today's hadith opens the browser at its index
	idx := daily.Index(now, total)
	h.sendWithKeyboard(chatID, hadithText(h.Content.Hadiths[idx], idx, total), hadithKeyboard(idx, total))
}

// ---------------- backup --------------------

func (h *Handler) handleExport(chatID int64) {
	payload, err := h.store(chatID).ExportAll()
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("exporting history")
		h.send(chatID, "Export failed, please try again.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "prayer-backup.json",
		Bytes: []byte(payload),
	})
	doc.Caption = "Your prayer history backup. Send it back via /import to restore."
	if _, err := h.Bot.Send(doc); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("sending backup")
	}
}

func (h *Handler) handleImport(chatID int64) {
	if err := h.DB.SetUserState(chatID, models.StateWaitImport); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("setting state")
	}
	h.send(chatID, "Paste the backup JSON (the contents of prayer-backup.json) as your next message.")
}

// ---------------- settings --------------------

func (h *Handler) handleSettings(chatID int64) {
	u := h.user(chatID)

	reminders := "🔔 Reminders: on"
	if !u.Reminders {
		reminders = "🔕 Reminders: off"
	}

	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 Change city", "set_city"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(reminders, "set_reminders"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Clear my data", "clear_data"),
		),
	)
	text := fmt.Sprintf("⚙️ Settings\n\nCity: %s, %s\nTimezone: %s", u.City, u.Province, u.TZ)
	h.sendWithKeyboard(chatID, text, kb)
}
