package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/quran"
)

// Chat messages hold far less than a web page, so both lists page small.
const (
	surahsPerPage = 10
	ayahsPerPage  = 5
)

const surahListHeader = "📕 Quran\n\nPick a surah to read with Urdu translation:"

func (h *Handler) handleQuran(chatID int64) {
	surahs, ok := h.surahs(chatID)
	if !ok {
		return
	}
	h.sendWithKeyboard(chatID, surahListHeader, surahListKeyboard(surahs, 0))
}

// surahs fetches the chapter index, reporting failures to the chat.
func (h *Handler) surahs(chatID int64) ([]quran.Surah, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	surahs, err := h.Quran.Surahs(ctx)
	if err != nil || len(surahs) == 0 {
		log.Error().Err(err).Int64("chat", chatID).Msg("fetching surah list")
		h.send(chatID, "Could not fetch the surah list right now, please try again in a bit.")
		return nil, false
	}
	return surahs, true
}

func surahListKeyboard(surahs []quran.Surah, page int) tgbotapi.InlineKeyboardMarkup {
	totalPages := (len(surahs) + surahsPerPage - 1) / surahsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}

	start := page * surahsPerPage
	end := start + surahsPerPage
	if end > len(surahs) {
		end = len(surahs)
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, end-start+1)
	for _, s := range surahs[start:end] {
		label := fmt.Sprintf("%d. %s · %s", s.Number, s.EnglishName, s.Name)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("surah:%d", s.Number)),
		))
	}

	if totalPages > 1 {
		prev := (page - 1 + totalPages) % totalPages
		next := (page + 1) % totalPages
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("qlist:%d", prev)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page+1, totalPages), fmt.Sprintf("qlist:%d", page)),
			tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("qlist:%d", next)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (h *Handler) showSurahList(chatID int64, messageID int, raw string) {
	surahs, ok := h.surahs(chatID)
	if !ok {
		return
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		page = 0
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, surahListHeader, surahListKeyboard(surahs, page))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("paging surah list")
	}
}

func (h *Handler) showSurah(chatID int64, messageID int, number, page int) {
	surahs, ok := h.surahs(chatID)
	if !ok {
		return
	}

	var meta quran.Surah
	for _, s := range surahs {
		if s.Number == number {
			meta = s
			break
		}
	}
	if meta.Number == 0 {
		h.send(chatID, "I don't know that surah, pick one from the list.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()
	arabic, urdu, err := h.Quran.Ayahs(ctx, number)
	if err != nil || len(arabic) == 0 {
		log.Error().Err(err).Int64("chat", chatID).Int("surah", number).Msg("fetching ayahs")
		h.send(chatID, "Could not fetch that surah right now, please try again in a bit.")
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		surahText(meta, arabic, urdu, page),
		surahKeyboard(number, page, len(arabic)))
	if _, err := h.Bot.Request(edit); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("paging surah")
	}
}

func surahText(s quran.Surah, arabic, urdu []quran.Ayah, page int) string {
	totalPages := (len(arabic) + ayahsPerPage - 1) / ayahsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}
	start := page * ayahsPerPage
	end := start + ayahsPerPage
	if end > len(arabic) {
		end = len(arabic)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📕 %s · %s (%s)\n", s.Name, s.EnglishName, s.EnglishNameTranslation)
	fmt.Fprintf(&b, "%d ayahs · page %d of %d\n\n", s.NumberOfAyahs, page+1, totalPages)

	for _, a := range arabic[start:end] {
		fmt.Fprintf(&b, "(%d) %s\n", a.NumberInSurah, a.Text)
		if t, found := urduFor(urdu, a.NumberInSurah); found {
			fmt.Fprintf(&b, "%s\n", t)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// urduFor matches the translation by verse number rather than slice
// position, since editions occasionally differ in Bismillah handling.
func urduFor(urdu []quran.Ayah, numberInSurah int) (string, bool) {
	for _, a := range urdu {
		if a.NumberInSurah == numberInSurah {
			return a.Text, true
		}
	}
	return "", false
}

func surahKeyboard(number, page, ayahCount int) tgbotapi.InlineKeyboardMarkup {
	totalPages := (ayahCount + ayahsPerPage - 1) / ayahsPerPage
	if page < 0 || page >= totalPages {
		page = 0
	}

	nav := []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Surahs", "qlist:0"),
	}
	if totalPages > 1 {
		prev := (page - 1 + totalPages) % totalPages
		next := (page + 1) % totalPages
		nav = []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("quran:%d:%d", number, prev)),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Surahs", "qlist:0"),
			tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("quran:%d:%d", number, next)),
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(nav...))
}
