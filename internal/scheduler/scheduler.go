package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"telegram-prayer-companion/internal/handlers"
	"telegram-prayer-companion/internal/praytimes"
	"telegram-prayer-companion/internal/storage"
)

// Start runs the athan reminder loop. It ticks once a minute and fires for a
// user when their local clock reads exactly a prayer's "HH:MM", so each
// prayer triggers at most once.
func Start(h *handlers.Handler, db *storage.DB) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = s.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() { tick(h, db) }),
	)
	if err != nil {
		return nil, err
	}

	s.Start()
	return s, nil
}

func tick(h *handlers.Handler, db *storage.DB) {
	users, err := db.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("listing users for reminders")
		return
	}

	nowUTC := time.Now().UTC()

	for i := range users {
		u := &users[i]
		if !u.Reminders {
			continue
		}

		loc, err := time.LoadLocation(u.TZ)
		if err != nil {
			log.Warn().Str("tz", u.TZ).Int64("chat", u.ChatID).Msg("bad timezone")
			continue
		}
		now := nowUTC.In(loc)

		// cached per day+location, so this is one HTTP call per city per day
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		resp, err := h.Times.Timings(ctx, u.Latitude, u.Longitude, now)
		cancel()
		if err != nil {
			log.Error().Err(err).Int64("chat", u.ChatID).Msg("fetching timings for reminder")
			continue
		}

		hhmm := now.Format("15:04")
		for _, slot := range praytimes.Slots(resp.Data.Timings, now) {
			if slot.Time != hhmm {
				continue
			}
			if err := h.SendAthanReminder(u, slot.Name, slot.Time); err != nil {
				log.Error().Err(err).Int64("chat", u.ChatID).Str("prayer", slot.Name).Msg("sending reminder")
			}
		}
	}
}
