package http

import "github.com/gin-gonic/gin"

// Register mounts the REST routes on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/catalog", h.ListCatalog)
	r.GET("/metrics/json", h.GetMetricsJSON)

	// Desktop lifecycle
	r.POST("/desktops", h.CreateDesktop)
	r.GET("/desktops", h.ListDesktops)
	r.GET("/desktops/:id", h.GetDesktop)
	r.DELETE("/desktops/:id", h.DeleteDesktop)

	// Window registry
	r.GET("/desktops/:id/windows", h.GetWindows)
	r.POST("/desktops/:id/windows", h.OpenWindow)
	r.POST("/desktops/:id/presets/:kind", h.OpenPreset)
	r.DELETE("/desktops/:id/windows/:wid", h.CloseWindow)
	r.POST("/desktops/:id/windows/:wid/focus", h.FocusWindow)
	r.PUT("/desktops/:id/windows/:wid/position", h.UpdateWindowPosition)
	r.PUT("/desktops/:id/windows/:wid/size", h.UpdateWindowSize)
	r.POST("/desktops/:id/windows/:wid/minimize", h.MinimizeWindow)

	// Modal gate
	r.GET("/desktops/:id/modal", h.GetModal)
	r.POST("/desktops/:id/modal", h.OpenModal)
	r.DELETE("/desktops/:id/modal", h.CloseModal)
	r.PUT("/desktops/:id/cards", h.SetCards)
}
