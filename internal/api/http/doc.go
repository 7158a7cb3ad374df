// Package http provides HTTP handlers and routing for the overlay REST API.
//
// This package implements all HTTP endpoints using the Gin framework. Each
// browser shell creates a desktop and then drives its windows and modal lock
// through the desktop routes.
//
// Endpoints:
//   - Health: / and /health
//   - Desktops: /desktops, /desktops/:id
//   - Windows: /desktops/:id/windows, /desktops/:id/windows/:wid/{focus,position,size,minimize}
//   - Presets: /desktops/:id/presets/:kind, /catalog
//   - Modal: /desktops/:id/modal, /desktops/:id/cards
//   - Metrics: /metrics/json
//
// Window commands on unknown windows are not errors: they respond 200 with
// "success": false, the same as focusing a closed app.
//
// Example Usage:
//
//	handlers := http.NewHandlers(manager, metrics, logger)
//	router.GET("/health", handlers.Health)
//	router.POST("/desktops/:id/windows/:wid/focus", handlers.FocusWindow)
package http
