package handlers

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mhuescar/hostify-broadcast-message/internal/domain"
	"github.com/mhuescar/hostify-broadcast-message/internal/repository"
	"github.com/mhuescar/hostify-broadcast-message/pkg/response"
)

// MessageLogHandler serves the send-attempt audit trail. Only registered
// when a database is configured.
type MessageLogHandler struct {
	repo *repository.MessageLogRepository
}

func NewMessageLogHandler(repo *repository.MessageLogRepository) *MessageLogHandler {
	return &MessageLogHandler{repo: repo}
}

// GetAllMessages godoc
// @Summary Get logged send attempts
// @Description Paginated list of send attempts, optionally filtered by status (sent, failed)
// @Tags messages
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for messages"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 20, max: 100)"
// @Param status query string false "Filter by status (sent, failed)"
// @Success 200 {object} response.PaginatedResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages [get]
func (h *MessageLogHandler) GetAllMessages(c echo.Context) error {
	page, pageSize, err := parsePaginationParams(c)
	if err != nil {
		return response.BadRequest(c, err)
	}

	statusStr := c.QueryParam("status")

	var status *domain.MessageStatus
	if statusStr != "" {
		parsedStatus := domain.MessageStatus(statusStr)
		status = &parsedStatus
	}

	records, totalCount, err := h.repo.GetAll(c.Request().Context(), status, page, pageSize)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Paginated(c, records, page, pageSize, totalCount)
}

// GetListingMessages godoc
// @Summary Get send attempts for one listing
// @Description Every logged attempt against one listing, oldest first
// @Tags messages
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for messages"
// @Param id path int true "Listing ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/listing/{id} [get]
func (h *MessageLogHandler) GetListingMessages(c echo.Context) error {
	listingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || listingID <= 0 {
		return response.BadRequestWithMessage(c, "invalid listing id")
	}

	records, err := h.repo.GetByListing(c.Request().Context(), listingID)
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, records)
}

// GetStats godoc
// @Summary Get send statistics
// @Description Totals of sent and failed attempts across the log
// @Tags messages
// @Accept json
// @Produce json
// @Param x-hbm-auth-key header string true "API key for messages"
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/v1/messages/stats [get]
func (h *MessageLogHandler) GetStats(c echo.Context) error {
	sent, failed, err := h.repo.GetStats(c.Request().Context())
	if err != nil {
		return response.InternalServerError(c, err)
	}

	return response.Ok(c, map[string]int64{
		"sent":   sent,
		"failed": failed,
	})
}

func parsePaginationParams(c echo.Context) (page, pageSize int, err error) {
	page = 1
	pageSize = 20

	if p := c.QueryParam("page"); p != "" {
		page, err = strconv.Atoi(p)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter")
		}
	}

	if ps := c.QueryParam("pageSize"); ps != "" {
		pageSize, err = strconv.Atoi(ps)
		if err != nil || pageSize < 1 || pageSize > 100 {
			return 0, 0, fmt.Errorf("invalid pageSize parameter (must be 1-100)")
		}
	}

	return page, pageSize, nil
}
