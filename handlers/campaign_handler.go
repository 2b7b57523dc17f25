package handlers

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/mhuescar/hostify-broadcast-message/internal/progress"
	"github.com/mhuescar/hostify-broadcast-message/internal/service"
	"github.com/mhuescar/hostify-broadcast-message/pkg/response"
	"github.com/mhuescar/hostify-broadcast-message/pkg/validator"
)

// CampaignHandler controls the full-catalog, progress-tracked campaign.
type CampaignHandler struct {
	runner   *service.CampaignRunner
	progress *progress.Store
	ctx      context.Context
}

// NewCampaignHandler takes the long-lived application context so a
// campaign keeps running after the HTTP request that launched it returns.
func NewCampaignHandler(runner *service.CampaignRunner, progressStore *progress.Store, ctx context.Context) *CampaignHandler {
	return &CampaignHandler{
		runner:   runner,
		progress: progressStore,
		ctx:      ctx,
	}
}

type StartCampaignRequest struct {
	Template string `json:"template" validate:"required"`
}

// StartCampaign godoc
// @Summary Start a full-catalog campaign
// @Description Launches the resumable broadcast over every listing in the catalog; already-completed listings are skipped
// @Tags campaign
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for broadcast"
// @Param request body StartCampaignRequest true "Message template"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/campaign/start [post]
func (h *CampaignHandler) StartCampaign(c echo.Context) error {
	if h.runner.IsRunning() {
		return response.OkWithMessage(c, "A campaign is already running", h.runner.Status())
	}

	var req StartCampaignRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	if err := h.runner.Start(h.ctx, req.Template); err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Campaign started", h.runner.Status())
}

// GetCampaignStatus godoc
// @Summary Get campaign status
// @Description Returns the runner state and the durable progress counters
// @Tags campaign
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for broadcast"
// @Success 200 {object} response.SuccessResponse
// @Router /api/v1/campaign/status [get]
func (h *CampaignHandler) GetCampaignStatus(c echo.Context) error {
	return response.Ok(c, h.runner.Status())
}

// ResetProgress godoc
// @Summary Reset campaign progress
// @Description Clears the completed-listing set and deletes the persisted progress file; the next campaign starts from scratch
// @Tags campaign
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for broadcast"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/progress/reset [post]
func (h *CampaignHandler) ResetProgress(c echo.Context) error {
	if h.runner.IsRunning() {
		return response.BadRequestWithMessage(c, "cannot reset progress while a campaign is running")
	}

	if err := h.progress.Reset(); err != nil {
		return response.InternalServerError(c, fmt.Errorf("failed to reset progress: %w", err))
	}

	return response.OkWithMessage(c, "Progress reset", h.progress.Snapshot())
}
