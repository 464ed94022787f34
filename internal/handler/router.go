package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"codehunt/giveaway/internal/config"
	"codehunt/giveaway/internal/handler/middleware"
	jwtpkg "codehunt/giveaway/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	authHandler *AuthHandler,
	entryHandler *EntryHandler,
	participantHandler *ParticipantHandler,
	adminHandler *AdminHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/token", authHandler.Token)

		api.POST("/entries", entryHandler.Register)

		api.POST("/participants", participantHandler.Ensure)
		api.GET("/participants/:external_id/entries", participantHandler.GetEntries)
		api.POST("/participants/:external_id/admission", participantHandler.RecheckAdmission)
		api.GET("/participants/:external_id/preferences", participantHandler.GetPreferences)
		api.POST("/participants/:external_id/preferences/:flag/toggle", participantHandler.TogglePreference)
	}

	// Operator routes (token + allow list)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.TokenAuth(jwtManager))
	admin.Use(middleware.AdminAuth(cfg.Auth.OperatorIDs))
	{
		admin.POST("/draw", adminHandler.Draw)
		admin.GET("/export", adminHandler.Export)
		admin.GET("/stats", adminHandler.Stats)
		admin.POST("/broadcasts", adminHandler.StartBroadcast)
		admin.GET("/broadcasts/:id", adminHandler.BroadcastStatus)
	}

	return r
}
