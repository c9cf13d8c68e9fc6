package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guidedtopic/guidedtopic-backend/internal/server"
)

func wireRouter(cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:     cfg.ServiceName,
		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		AuthMiddleware:  middleware.Auth,
		VideoHandler:    handlers.Video,
		QuestionHandler: handlers.Question,
		PlaybackHandler: handlers.Playback,
	})
}
