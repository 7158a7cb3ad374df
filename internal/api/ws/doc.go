// Package ws provides the WebSocket stream for a desktop.
//
// A shell connects to /desktops/:id/stream, receives the current snapshot on
// connect and a fresh snapshot after every change, and forwards pointer
// events and window commands over the same socket.
//
// Message Types (Client → Server):
//   - pointer_down: Start a drag or resize (gesture, window_id, x, y)
//   - pointer_move: Pointer position during a gesture (x, y)
//   - pointer_up: End the gesture
//   - open, open_preset, close, focus, minimize, position, size: Window commands
//   - open_modal, close_modal, set_cards: Modal gate commands
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - connected: Connection ID assigned
//   - snapshot: Full desktop snapshot
//   - ack: Result of a window or modal command
//   - pong: Reply to ping
//   - error: Rejected message
//
// Example Usage:
//
//	handler := ws.NewHandler(manager, metrics, logger)
//	router.GET("/desktops/:id/stream", handler.HandleConnection)
package ws
