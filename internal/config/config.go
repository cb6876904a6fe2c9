package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const defaultDBPath = "bot.db"

type Config struct {
	TelegramToken string
	DBPath        string
	AladhanURL    string
	AlquranURL    string
}

func Load() Config {
	return Config{
		TelegramToken: getBotToken(),
		DBPath:        getEnv("BOT_DB_PATH", defaultDBPath),
		AladhanURL:    os.Getenv("ALADHAN_BASE_URL"),
		AlquranURL:    os.Getenv("ALQURAN_BASE_URL"),
	}
}

// getBotToken prefers the Docker secret, falling back to the environment.
func getBotToken() string {
	if data, err := os.ReadFile("/run/secrets/telegram_bot_token"); err == nil {
		if token := strings.TrimSpace(string(data)); token != "" {
			return token
		}
	}
	if token := strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")); token != "" {
		return token
	}
	log.Fatal().Msg("no bot token: set TELEGRAM_BOT_TOKEN or the telegram_bot_token secret")
	return ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
