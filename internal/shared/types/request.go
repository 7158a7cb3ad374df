package types

// OpenWindowRequest opens a window on a desktop
type OpenWindowRequest struct {
	ID        string      `json:"id" binding:"required"`
	Title     string      `json:"title"`
	Content   ContentKind `json:"content"`
	Position  Position    `json:"position"`
	Size      Size        `json:"size"`
	Minimized bool        `json:"minimized,omitempty"`
}

// PositionRequest replaces a window position
type PositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// SizeRequest replaces a window size
type SizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ModalRequest activates the global modal
type ModalRequest struct {
	ModalID string `json:"modal_id" binding:"required"`
}

// CardsRequest toggles the dashboard card affordances
type CardsRequest struct {
	Disabled bool `json:"disabled"`
}

// WSMessage represents a WebSocket message from the shell
type WSMessage struct {
	Type     string        `json:"type"`
	WindowID string        `json:"window_id,omitempty"`
	Gesture  GestureKind   `json:"gesture,omitempty"`
	X        int           `json:"x,omitempty"`
	Y        int           `json:"y,omitempty"`
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
	Content  ContentKind   `json:"content,omitempty"`
	ModalID  string        `json:"modal_id,omitempty"`
	Disabled *bool         `json:"disabled,omitempty"`
	Window   *WindowConfig `json:"window,omitempty"`
}
