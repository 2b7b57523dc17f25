package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/mhuescar/hostify-broadcast-message/environments"
	"github.com/mhuescar/hostify-broadcast-message/handlers"
	"github.com/mhuescar/hostify-broadcast-message/internal/middlewares"
)

// RegisterRoutes registers all API routes with middleware. The message
// log handler is nil when no database is configured; its routes are
// simply not registered then.
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	broadcastHandler *handlers.BroadcastHandler,
	campaignHandler *handlers.CampaignHandler,
	messageLogHandler *handlers.MessageLogHandler,
	cfg *environments.Config,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 base group
	v1 := e.Group("/api/v1")

	// Broadcast and campaign control share the broadcast API key.
	broadcast := v1.Group("/broadcast", middlewares.APIKeyAuth(cfg.Auth.BroadcastAPIKey))
	broadcast.POST("/listing", broadcastHandler.BroadcastListing)
	broadcast.POST("/preview", broadcastHandler.PreviewListing)

	campaign := v1.Group("/campaign", middlewares.APIKeyAuth(cfg.Auth.BroadcastAPIKey))
	campaign.POST("/start", campaignHandler.StartCampaign)
	campaign.GET("/status", campaignHandler.GetCampaignStatus)

	progressGroup := v1.Group("/progress", middlewares.APIKeyAuth(cfg.Auth.BroadcastAPIKey))
	progressGroup.POST("/reset", campaignHandler.ResetProgress)

	// Audit log routes with their own API key.
	if messageLogHandler != nil {
		messages := v1.Group("/messages", middlewares.APIKeyAuth(cfg.Auth.MessagesAPIKey))
		messages.GET("", messageLogHandler.GetAllMessages)
		messages.GET("/stats", messageLogHandler.GetStats)
		messages.GET("/listing/:id", messageLogHandler.GetListingMessages)
	}
}
