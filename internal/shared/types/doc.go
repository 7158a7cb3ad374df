// Package types provides shared data structures for the overlay backend.
//
// This package defines the window and modal types exchanged between the
// domain packages, the HTTP API, and the WebSocket stream.
//
// Core Types:
//   - WindowEntry: One open floating window (geometry, stacking, minimized)
//   - WindowConfig: Arguments for opening a window
//   - ContentKind: Closed set of dashboard views a window can host
//   - ModalState: Global modal lock and card affordance flag
//   - GestureState: Active drag or resize on a desktop
//   - Snapshot: Read-only view of a desktop pushed to window chrome
//
// Request Types:
//   - OpenWindowRequest, PositionRequest, SizeRequest: Window commands
//   - ModalRequest, CardsRequest: Modal gate commands
//   - WSMessage: WebSocket communication
//
// Example Usage:
//
//	cfg := types.WindowConfig{
//	    ID:       "alerts",
//	    Title:    "Live Alerts",
//	    Content:  types.ContentAlerts,
//	    Position: types.Position{X: 80, Y: 80},
//	    Size:     types.Size{Width: 640, Height: 420},
//	}
package types
