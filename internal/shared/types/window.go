package types

// Position is a pixel offset from the overlay origin
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by d
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the offset from o to p
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Size represents window dimensions in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Grow returns s enlarged by the pointer delta d
func (s Size) Grow(d Position) Size {
	return Size{Width: s.Width + d.X, Height: s.Height + d.Y}
}

// ContentKind identifies the dashboard view rendered inside a window.
// The registry carries it through untouched.
type ContentKind string

const (
	ContentAlerts    ContentKind = "alerts"
	ContentTourists  ContentKind = "tourists"
	ContentZones     ContentKind = "zones"
	ContentEFIR      ContentKind = "efir"
	ContentAnalytics ContentKind = "analytics"
	ContentRoles     ContentKind = "roles"
	ContentSystem    ContentKind = "system"
)

// ContentKinds lists every known content kind in dashboard order
func ContentKinds() []ContentKind {
	return []ContentKind{
		ContentAlerts,
		ContentTourists,
		ContentZones,
		ContentEFIR,
		ContentAnalytics,
		ContentRoles,
		ContentSystem,
	}
}

// Valid reports whether k is one of the known content kinds
func (k ContentKind) Valid() bool {
	switch k {
	case ContentAlerts, ContentTourists, ContentZones, ContentEFIR,
		ContentAnalytics, ContentRoles, ContentSystem:
		return true
	default:
		return false
	}
}

func (k ContentKind) String() string { return string(k) }

// WindowConfig describes a window to open. The z-index is assigned by the registry.
type WindowConfig struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   ContentKind `json:"content"`
	Position  Position    `json:"position"`
	Size      Size        `json:"size"`
	Minimized bool        `json:"minimized,omitempty"`
}

// WindowEntry represents one open floating window
type WindowEntry struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Content   ContentKind `json:"content"`
	Position  Position    `json:"position"`
	Size      Size        `json:"size"`
	ZIndex    int64       `json:"z_index"`
	Minimized bool        `json:"minimized"`
}

// RegistryStats contains window registry statistics
type RegistryStats struct {
	Open        int     `json:"open"`
	Visible     int     `json:"visible"`
	Minimized   int     `json:"minimized"`
	MaxZIndex   int64   `json:"max_z_index"`
	FrontmostID *string `json:"frontmost_id,omitempty"`
}
