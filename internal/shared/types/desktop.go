package types

import "time"

// ModalState is the observable state of the global modal lock
type ModalState struct {
	ActiveModalID *string `json:"active_modal_id"`
	CardsDisabled bool    `json:"cards_disabled"`
}

// GestureKind distinguishes the two pointer interactions on a window frame
type GestureKind string

const (
	GestureDrag   GestureKind = "drag"
	GestureResize GestureKind = "resize"
)

// Valid reports whether g is a known gesture kind
func (g GestureKind) Valid() bool {
	return g == GestureDrag || g == GestureResize
}

// GestureState describes the drag or resize currently in progress
type GestureState struct {
	Kind          GestureKind `json:"kind"`
	WindowID      string      `json:"window_id"`
	OriginPointer Position    `json:"origin_pointer"`
	OriginPos     Position    `json:"origin_position"`
	OriginSize    Size        `json:"origin_size"`
}

// Snapshot is a read-only view of one desktop
type Snapshot struct {
	DesktopID string        `json:"desktop_id"`
	Revision  uint64        `json:"revision"`
	Windows   []WindowEntry `json:"windows"`
	Modal     ModalState    `json:"modal"`
	Gesture   *GestureState `json:"gesture,omitempty"`
}

// DesktopInfo summarises a desktop for listing
type DesktopInfo struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	LastActive time.Time     `json:"last_active"`
	Windows    RegistryStats `json:"windows"`
	Modal      ModalState    `json:"modal"`
}

// ManagerStats contains desktop manager statistics
type ManagerStats struct {
	Desktops    int `json:"desktops"`
	MaxDesktops int `json:"max_desktops"`
	Windows     int `json:"windows"`
	Modals      int `json:"active_modals"`
}
