package handlers

import (
	"fmt"

	"telegram-prayer-companion/internal/models"
)

// SendAthanReminder notifies a user that a prayer time has arrived and
// attaches today's toggle keyboard so it can be marked right away.
func (h *Handler) SendAthanReminder(u *models.User, prayer, at string) error {
	text := fmt.Sprintf("🕌 It is time for %s in %s (%s).\nMark it once you've prayed 👇", prayer, u.City, at)

	completion := h.todayCompletion(u.ChatID, localNow(u))
	h.sendWithKeyboard(u.ChatID, text, toggleKeyboard(completion))
	return nil
}
