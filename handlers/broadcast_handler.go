package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/mhuescar/hostify-broadcast-message/internal/service"
	"github.com/mhuescar/hostify-broadcast-message/pkg/response"
	"github.com/mhuescar/hostify-broadcast-message/pkg/validator"
)

// BroadcastHandler exposes the one-listing entry points: direct broadcast
// and dry-run preview.
type BroadcastHandler struct {
	service *service.BroadcastService
}

func NewBroadcastHandler(svc *service.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{service: svc}
}

type BroadcastListingRequest struct {
	ListingID int64  `json:"listingId" validate:"required,min=1"`
	Template  string `json:"template" validate:"required"`
}

// BroadcastListing godoc
// @Summary Broadcast to one listing
// @Description Sends the rendered template to every eligible reservation of one listing, ignoring campaign progress
// @Tags broadcast
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for broadcast"
// @Param request body BroadcastListingRequest true "Target listing and message template"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/broadcast/listing [post]
func (h *BroadcastHandler) BroadcastListing(c echo.Context) error {
	var req BroadcastListingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	result, err := h.service.BroadcastListing(c.Request().Context(), req.ListingID, req.Template)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.OkWithMessage(c, "Broadcast completed", result)
}

// PreviewListing godoc
// @Summary Preview a broadcast
// @Description Collects a listing's eligible reservations and renders the template against the first one without sending
// @Tags broadcast
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for broadcast"
// @Param request body BroadcastListingRequest true "Target listing and message template"
// @Success 200 {object} response.SuccessResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/broadcast/preview [post]
func (h *BroadcastHandler) PreviewListing(c echo.Context) error {
	var req BroadcastListingRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return validator.HandleValidationError(c, err)
	}

	preview, err := h.service.Preview(c.Request().Context(), req.ListingID, req.Template)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, preview)
}
