package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/utils"
)

// StatusFor maps domain errors to HTTP status codes
func StatusFor(err error) int {
	switch {
	case errors.Is(err, desktop.ErrDesktopNotFound),
		errors.Is(err, desktop.ErrDesktopClosed),
		errors.Is(err, desktop.ErrWindowNotFound):
		return http.StatusNotFound
	case errors.Is(err, desktop.ErrTooManyDesktops):
		return http.StatusTooManyRequests
	case errors.Is(err, desktop.ErrCardsDisabled),
		errors.Is(err, desktop.ErrGestureActive):
		return http.StatusConflict
	case errors.Is(err, desktop.ErrUnknownContent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, desktop.ErrInvalidGesture),
		errors.Is(err, desktop.ErrInvalidWindow):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON decodes a size-limited JSON body, writing a 400 on failure
func bindJSON(c *gin.Context, v interface{}) bool {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxJSONSize)
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

// windowConfig converts an open request into a window config
func windowConfig(req types.OpenWindowRequest) types.WindowConfig {
	return types.WindowConfig{
		ID:        req.ID,
		Title:     req.Title,
		Content:   req.Content,
		Position:  req.Position,
		Size:      req.Size,
		Minimized: req.Minimized,
	}
}
