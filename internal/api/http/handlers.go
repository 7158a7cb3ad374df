package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/utils"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	desktops  *desktop.Manager
	metrics   *monitoring.Metrics
	logger    *logging.Logger
	startedAt time.Time
}

// NewHandlers creates a new handler set. Metrics may be nil.
func NewHandlers(desktops *desktop.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		desktops:  desktops,
		metrics:   metrics,
		logger:    logger,
		startedAt: time.Now(),
	}
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Raksha Overlay Service",
		"version": "0.3.0",
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"desktops":       h.desktops.Stats(),
		"uptime_seconds": time.Since(h.startedAt).Seconds(),
	})
}

// CreateDesktop starts a new desktop for a shell
func (h *Handlers) CreateDesktop(c *gin.Context) {
	d, err := h.desktops.Create()
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"desktop_id": d.ID(),
		"snapshot":   d.Snapshot(),
	})
}

// ListDesktops lists all live desktops
func (h *Handlers) ListDesktops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"desktops": h.desktops.List(),
		"stats":    h.desktops.Stats(),
	})
}

// GetDesktop returns a desktop summary
func (h *Handlers) GetDesktop(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d.Info())
}

// DeleteDesktop closes a desktop and its streams
func (h *Handlers) DeleteDesktop(c *gin.Context) {
	desktopID := c.Param("id")
	if err := utils.ValidateID(desktopID, "desktop_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.desktops.Delete(desktopID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"desktop_id": desktopID,
	})
}

// GetWindows returns the desktop snapshot, or the stacking order with ?order=stacking|visible
func (h *Handlers) GetWindows(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	switch c.Query("order") {
	case "":
		c.JSON(http.StatusOK, d.Snapshot())
	case "stacking":
		c.JSON(http.StatusOK, gin.H{"windows": d.Stacking(false)})
	case "visible":
		c.JSON(http.StatusOK, gin.H{"windows": d.Stacking(true)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "order must be stacking or visible"})
	}
}

// OpenWindow opens a window, or focuses it if the ID is already open
func (h *Handlers) OpenWindow(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	var req types.OpenWindowRequest
	if !bindJSON(c, &req) {
		return
	}

	cfg := windowConfig(req)
	success, err := d.Open(cfg)
	if err != nil {
		h.respondError(c, err)
		return
	}
	entry, _ := d.Window(cfg.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": success,
		"window":  entry,
	})
}

// OpenPreset opens the catalog window for a content kind
func (h *Handlers) OpenPreset(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	kind := types.ContentKind(c.Param("kind"))
	entry, err := d.OpenPreset(kind)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"window":  entry,
	})
}

// CloseWindow removes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.windowCommand(c, func(d *desktop.Desktop, windowID string) bool {
		return d.CloseWindow(windowID)
	})
}

// FocusWindow brings a window to front
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.windowCommand(c, func(d *desktop.Desktop, windowID string) bool {
		return d.BringToFront(windowID)
	})
}

// MinimizeWindow toggles a window's minimized state
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.windowCommand(c, func(d *desktop.Desktop, windowID string) bool {
		return d.MinimizeWindow(windowID)
	})
}

// UpdateWindowPosition moves a window
func (h *Handlers) UpdateWindowPosition(c *gin.Context) {
	var req types.PositionRequest
	h.windowCommandWithBody(c, &req, func(d *desktop.Desktop, windowID string) bool {
		return d.UpdateWindowPosition(windowID, types.Position{X: req.X, Y: req.Y})
	})
}

// UpdateWindowSize resizes a window
func (h *Handlers) UpdateWindowSize(c *gin.Context) {
	var req types.SizeRequest
	h.windowCommandWithBody(c, &req, func(d *desktop.Desktop, windowID string) bool {
		return d.UpdateWindowSize(windowID, types.Size{Width: req.Width, Height: req.Height})
	})
}

// GetModal returns the modal lock state
func (h *Handlers) GetModal(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, d.Snapshot().Modal)
}

// OpenModal activates the global modal, replacing any active one
func (h *Handlers) OpenModal(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	var req types.ModalRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := utils.ValidateID(req.ModalID, "modal_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d.OpenGlobalModal(req.ModalID)
	c.JSON(http.StatusOK, d.Snapshot().Modal)
}

// CloseModal clears the global modal
func (h *Handlers) CloseModal(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	d.CloseGlobalModal()
	c.JSON(http.StatusOK, d.Snapshot().Modal)
}

// SetCards toggles card affordances. Enabling is ignored while a modal is active.
func (h *Handlers) SetCards(c *gin.Context) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	var req types.CardsRequest
	if !bindJSON(c, &req) {
		return
	}

	d.SetCardsDisabled(req.Disabled)
	c.JSON(http.StatusOK, d.Snapshot().Modal)
}

// ListCatalog lists the window presets
func (h *Handlers) ListCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"presets": h.desktops.Catalog().List(),
	})
}

// GetMetricsJSON returns current metric values for dashboards
func (h *Handlers) GetMetricsJSON(c *gin.Context) {
	resp := gin.H{
		"timestamp": time.Now(),
		"desktops":  h.desktops.Stats(),
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		var errorRate float64
		if snap.TotalRequests > 0 {
			errorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
		}
		resp["backend"] = snap
		resp["error_rate"] = errorRate
	}
	c.JSON(http.StatusOK, resp)
}

// desktop resolves the :id parameter, writing the error response on failure
func (h *Handlers) desktop(c *gin.Context) (*desktop.Desktop, bool) {
	desktopID := c.Param("id")
	if err := utils.ValidateID(desktopID, "desktop_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	d, err := h.desktops.Get(desktopID)
	if err != nil {
		h.respondError(c, err)
		return nil, false
	}
	return d, true
}

func (h *Handlers) windowCommand(c *gin.Context, apply func(d *desktop.Desktop, windowID string) bool) {
	h.windowCommandWithBody(c, nil, apply)
}

func (h *Handlers) windowCommandWithBody(c *gin.Context, body interface{}, apply func(d *desktop.Desktop, windowID string) bool) {
	d, ok := h.desktop(c)
	if !ok {
		return
	}

	windowID := c.Param("wid")
	if err := utils.ValidateID(windowID, "window_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if body != nil && !bindJSON(c, body) {
		return
	}

	success := apply(d, windowID)
	if !success {
		h.logger.Debug("Window command had no effect",
			zap.String("desktop_id", d.ID()),
			zap.String("window_id", windowID),
			zap.String("route", c.FullPath()),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   success,
		"window_id": windowID,
	})
}
