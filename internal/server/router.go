package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/guidedtopic/guidedtopic-backend/internal/http/handlers"
	"github.com/guidedtopic/guidedtopic-backend/internal/http/middleware"
)

type RouterConfig struct {
	ServiceName     string
	HealthHandler   *handlers.HealthHandler
	AuthHandler     *handlers.AuthHandler
	AuthMiddleware  *middleware.AuthMiddleware
	VideoHandler    *handlers.VideoHandler
	QuestionHandler *handlers.QuestionHandler
	PlaybackHandler *handlers.PlaybackHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(otelgin.Middleware(cfg.ServiceName))

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthHandler.Healthcheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Videos
	protected.GET("/videos", cfg.VideoHandler.List)
	protected.POST("/videos", cfg.VideoHandler.Create)
	protected.GET("/videos/:id", cfg.VideoHandler.Get)
	protected.PATCH("/videos/:id", cfg.VideoHandler.Update)
	protected.DELETE("/videos/:id", cfg.VideoHandler.Delete)
	protected.GET("/videos/:id/media", cfg.VideoHandler.Media)
	// Questions
	protected.GET("/videos/:id/questions", cfg.QuestionHandler.ListByVideo)
	protected.POST("/videos/:id/questions", cfg.QuestionHandler.Create)
	protected.PATCH("/questions/:id", cfg.QuestionHandler.Update)
	protected.DELETE("/questions/:id", cfg.QuestionHandler.Delete)
	protected.GET("/graph/dangling", cfg.QuestionHandler.InspectGraph)
	// Playback
	protected.POST("/playback/:videoID/open", cfg.PlaybackHandler.Open)
	protected.GET("/playback/:videoID/due", cfg.PlaybackHandler.Due)
	protected.POST("/playback/answer", cfg.PlaybackHandler.Answer)

	return router
}
