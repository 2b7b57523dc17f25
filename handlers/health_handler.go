package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/mhuescar/hostify-broadcast-message/pkg/redis"
)

// chekinProbe reports whether the check-in link API authenticated at
// startup.
type chekinProbe interface {
	Available() bool
}

// HealthHandler handles health checks.
type HealthHandler struct {
	db           *sqlx.DB
	redis        *redis.Client
	chekin       chekinProbe
	checkTimeout time.Duration
}

func NewHealthHandler(db *sqlx.DB, redisClient *redis.Client, chekin chekinProbe) *HealthHandler {
	return &HealthHandler{
		db:           db,
		redis:        redisClient,
		chekin:       chekin,
		checkTimeout: 2 * time.Second,
	}
}

// Health returns overall status and component statuses. The database and
// cache are optional, so their absence degrades rather than fails; a
// degraded Chekin only disables link-gated templates.
// @Summary Health check
// @Description Returns overall status with database, cache and Chekin connectivity results
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	dbStatus := "disabled"
	if h.db != nil {
		if err := h.db.PingContext(ctx); err != nil {
			dbStatus = "down"
			overallStatus = "degraded"
		} else {
			dbStatus = "up"
		}
	}

	redisStatus := "disabled"
	if h.redis != nil {
		if err := h.redis.Ping(ctx); err != nil {
			redisStatus = "down"
			overallStatus = "degraded"
		} else {
			redisStatus = "up"
		}
	}

	chekinStatus := "degraded"
	if h.chekin != nil && h.chekin.Available() {
		chekinStatus = "up"
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"database": map[string]any{
				"status": dbStatus,
			},
			"cache": map[string]any{
				"status": redisStatus,
			},
			"chekin": map[string]any{
				"status": chekinStatus,
			},
		},
	})
}
