package app

import (
	"gorm.io/gorm"

	"github.com/guidedtopic/guidedtopic-backend/internal/clients/redis"
	"github.com/guidedtopic/guidedtopic-backend/internal/platform/logger"
	"github.com/guidedtopic/guidedtopic-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Video    services.VideoService
	Question services.QuestionService
	Playback services.PlaybackService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, questionCache *redis.QuestionCache) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:     services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Video:    services.NewVideoService(db, log, repos.Video, questionCache),
		Question: services.NewQuestionService(db, log, repos.Video, repos.Question, questionCache, cfg.StrictTargets),
		Playback: services.NewPlaybackService(db, log, repos.Video, repos.Question, questionCache),
	}
}
