package handlers

import (
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/cities"
	"telegram-prayer-companion/internal/content"
	"telegram-prayer-companion/internal/history"
	"telegram-prayer-companion/internal/models"
	"telegram-prayer-companion/internal/praytimes"
	"telegram-prayer-companion/internal/quran"
	"telegram-prayer-companion/internal/storage"
	"telegram-prayer-companion/internal/tasbih"
)

// Main-menu reply keyboard labels.
const (
	btnTimes    = "🕌 Prayer Times"
	btnNext     = "⏳ Next Prayer"
	btnStats    = "📊 My Statistics"
	btnQibla    = "🧭 Qibla"
	btnTasbih   = "📿 Tasbih"
	btnDuas     = "🤲 Duas"
	btnDaily    = "📖 Daily Hadith"
	btnQuran    = "📕 Quran"
	btnSettings = "⚙️ Settings"
)

type Handler struct {
	Bot     *tgbotapi.BotAPI
	DB      *storage.DB
	Times   *praytimes.Client
	Quran   *quran.Client
	Content *content.Catalog
}

// HandleMessage routes an incoming text or location update.
func (h *Handler) HandleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.Location != nil {
		h.handleLocation(chatID, msg.Location.Latitude, msg.Location.Longitude)
		return
	}

	if msg.IsCommand() {
		h.HandleCommand(chatID, msg.Command())
		return
	}

	switch msg.Text {
	case btnTimes:
		h.handleTimes(chatID)
	case btnNext:
		h.handleNext(chatID)
	case btnStats:
		h.handleStats(chatID)
	case btnQibla:
		h.handleQibla(chatID)
	case btnTasbih:
		h.handleTasbih(chatID)
	case btnDuas:
		h.handleDuas(chatID)
	case btnDaily:
		h.handleDaily(chatID)
	case btnQuran:
		h.handleQuran(chatID)
	case btnSettings:
		h.handleSettings(chatID)
	default:
		h.HandleText(msg)
	}
}

// store returns the chat's history store over its blob namespace.
func (h *Handler) store(chatID int64) *history.Store {
	return history.NewStore(h.DB.ChatKV(chatID))
}

// counter returns the chat's tasbih counter.
func (h *Handler) counter(chatID int64) *tasbih.Counter {
	return tasbih.NewCounter(h.DB.ChatKV(chatID))
}

// user loads the chat's settings, registering defaults on first contact.
func (h *Handler) user(chatID int64) *models.User {
	u, err := h.DB.GetUser(chatID)
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("loading user")
	}
	if u == nil {
		city, prov := cities.Default()
		u = &models.User{
			ChatID:    chatID,
			City:      city.Name,
			Province:  prov.Name,
			Latitude:  city.Latitude,
			Longitude: city.Longitude,
			TZ:        "Asia/Karachi",
			Reminders: true,
		}
		if err := h.DB.UpsertUser(u); err != nil {
			log.Error().Err(err).Int64("chat", chatID).Msg("registering user")
		}
	}
	return u
}

// applyNearestCity snaps raw coordinates onto the closest known city and
// updates the user's location in place. Prayer times always use a city's
// reference coordinates, never the raw GPS fix.
func applyNearestCity(u *models.User, lat, lon float64) (cities.City, cities.Province) {
	city, prov := cities.Nearest(lat, lon)
	u.City, u.Province = city.Name, prov.Name
	u.Latitude, u.Longitude = city.Latitude, city.Longitude
	return city, prov
}

// handleLocation serves a shared GPS pin by snapping it to the city list.
func (h *Handler) handleLocation(chatID int64, lat, lon float64) {
	u := h.user(chatID)
	city, prov := applyNearestCity(u, lat, lon)
	if err := h.DB.UpsertUser(u); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("saving city")
		h.send(chatID, "Could not save your city, please try again.")
		return
	}
	h.clearState(chatID)

	h.send(chatID, fmt.Sprintf("📍 Closest city to your location: %s, %s. Prayer times now follow it.", city.Name, prov.Name))
}

// localNow returns the current time in the user's timezone.
func localNow(u *models.User) time.Time {
	loc, err := time.LoadLocation(u.TZ)
	if err != nil {
		loc = time.FixedZone("PKT", 5*60*60)
	}
	return time.Now().In(loc)
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("sending message")
	}
}

func (h *Handler) sendWithKeyboard(chatID int64, text string, kb any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.Bot.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("sending message")
	}
}

func mainMenu() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTimes),
			tgbotapi.NewKeyboardButton(btnNext),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStats),
			tgbotapi.NewKeyboardButton(btnQibla),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnTasbih),
			tgbotapi.NewKeyboardButton(btnDuas),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDaily),
			tgbotapi.NewKeyboardButton(btnQuran),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnSettings),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// toggleKeyboard renders today's completion as tappable ✅/⬜ rows.
func toggleKeyboard(c models.Completion) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(models.PrayerNames))
	for _, name := range models.PrayerNames {
		mark := "⬜"
		if c.Done(name) {
			mark = "✅"
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(mark+" "+name, "toggle:"+name),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
