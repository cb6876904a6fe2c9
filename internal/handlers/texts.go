package handlers

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/models"
)

// HandleText handles free-form messages according to the chat's FSM state.
func (h *Handler) HandleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	state, err := h.DB.GetUserState(chatID)
	if err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("loading state")
		return
	}

	switch state {
	case models.StateWaitImport:
		h.importBackup(chatID, msg.Text)
	case models.StateWaitCity:
		// selectCity clears the state on success, so typos can be retried
		h.selectCity(chatID, msg.Text)
	default:
		h.send(chatID, "Use the menu below or /start to see what I can do.")
	}
}

func (h *Handler) importBackup(chatID int64, payload string) {
	h.clearState(chatID)

	if !h.store(chatID).ImportAll(payload) {
		h.send(chatID, "That doesn't look like a valid backup. Export one with /export and paste its contents unchanged.")
		return
	}

	stats := h.store(chatID).Stats()
	h.send(chatID, "✅ Backup restored.")
	log.Info().Int64("chat", chatID).Int("streak", stats.CurrentStreak).Msg("backup imported")
}

func (h *Handler) clearState(chatID int64) {
	if err := h.DB.SetUserState(chatID, models.StateNone); err != nil {
		log.Error().Err(err).Int64("chat", chatID).Msg("clearing state")
	}
}
