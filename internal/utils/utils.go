package utils

import "github.com/rs/zerolog/log"

// Must aborts the process on startup errors.
func Must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}
