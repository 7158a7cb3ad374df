// Package main is the entry point for the Raksha overlay service.
//
// The service owns the floating-window state of the tourist safety
// dashboard: which windows are open, their geometry and stacking order, and
// the modal lock that disables dashboard cards while a blocking modal is
// shown. Each browser shell creates its own desktop and drives it over REST
// and a WebSocket stream.
//
// Architecture:
//
//	Browser shell → REST /desktops/:id/...    → Desktop (registry, modal gate, gestures)
//	              ↔ WS   /desktops/:id/stream ↗
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog /etc/raksha/presets
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
