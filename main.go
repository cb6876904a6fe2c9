package main

import (
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/config"
	"telegram-prayer-companion/internal/content"
	"telegram-prayer-companion/internal/handlers"
	"telegram-prayer-companion/internal/praytimes"
	"telegram-prayer-companion/internal/quran"
	"telegram-prayer-companion/internal/scheduler"
	"telegram-prayer-companion/internal/storage"
	"telegram-prayer-companion/internal/utils"
)

func main() {
	_ = godotenv.Load() // TELEGRAM_BOT_TOKEN etc.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	utils.Must(err)
	log.Info().Str("account", bot.Self.UserName).Msg("authorized")

	db, err := storage.New(cfg.DBPath)
	utils.Must(err)

	catalog, err := content.Load()
	utils.Must(err)

	h := &handlers.Handler{
		Bot:     bot,
		DB:      db,
		Times:   praytimes.NewClient(cfg.AladhanURL),
		Quran:   quran.NewClient(cfg.AlquranURL),
		Content: catalog,
	}

	_, err = scheduler.Start(h, db)
	utils.Must(err)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := bot.GetUpdatesChan(updateConfig)

	for upd := range updates {
		if upd.Message != nil {
			h.HandleMessage(upd.Message)
		}
		if upd.CallbackQuery != nil {
			h.HandleCallback(upd.CallbackQuery)
		}
	}
}
