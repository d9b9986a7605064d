package handlers

import (
	"context"
	"errors"
	"net/http"

	"riftrewind/api/dto"
	"riftrewind/api/filters"
	recapservice "riftrewind/api/services/recap"

	"github.com/gin-gonic/gin"
)

// RecapService is the recap access used by the handler.
type RecapService interface {
	GetRecap(ctx context.Context, filter *filters.RecapFilter) (*dto.Recap, error)
}

// RecapHandler is the handler for the recap endpoints.
type RecapHandler struct {
	recapService RecapService
}

type RecapHandlerDependencies struct {
	RecapService RecapService
}

// NewRecapHandler creates a new instance of the recap handler.
func NewRecapHandler(deps *RecapHandlerDependencies) *RecapHandler {
	return &RecapHandler{
		recapService: deps.RecapService,
	}
}

// GetRecap handles requests for the yearly recap of a player.
func (h *RecapHandler) GetRecap(c *gin.Context) {
	var params filters.RecapParams
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter, err := filters.NewRecapFilter(params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recap, err := h.recapService.GetRecap(c.Request.Context(), filter)
	if err != nil {
		c.JSON(StatusFromError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": recap})
}

// StatusFromError maps the service errors to the HTTP status.
func StatusFromError(err error) int {
	switch {
	case errors.Is(err, filters.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, recapservice.ErrPlayerNotFound):
		return http.StatusNotFound
	case errors.Is(err, recapservice.ErrRecapInProgress):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
