// Package logging provides structured logging using uber/zap.
//
// Two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Desktop created", zap.String("desktop_id", id))
//	logger.ForDesktop(id).Debug("Window focused", zap.String("window_id", wid))
package logging
