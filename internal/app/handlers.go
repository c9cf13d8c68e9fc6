package app

import (
	"github.com/guidedtopic/guidedtopic-backend/internal/http/handlers"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *handlers.HealthHandler
	Auth     *handlers.AuthHandler
	Video    *handlers.VideoHandler
	Question *handlers.QuestionHandler
	Playback *handlers.PlaybackHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   handlers.NewHealthHandler(),
		Auth:     handlers.NewAuthHandler(services.Auth),
		Video:    handlers.NewVideoHandler(services.Video),
		Question: handlers.NewQuestionHandler(services.Question),
		Playback: handlers.NewPlaybackHandler(services.Playback),
	}
}
