package window

import (
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// DefaultZIndexBase is the counter value before the first window opens.
// Floating windows start above the shell's own layers.
const DefaultZIndexBase int64 = 1000

// Registry tracks the open windows of one desktop
type Registry struct {
	entries  []*types.WindowEntry // insertion order of first open
	byID     map[string]*types.WindowEntry
	z        zCounter
	revision uint64
}

// NewRegistry creates an empty registry whose counter starts at base
func NewRegistry(base int64) *Registry {
	return &Registry{
		byID: make(map[string]*types.WindowEntry),
		z:    zCounter{max: base},
	}
}

// OpenWindow registers a new window on top of the stack.
// If the ID is already open the rest of cfg is ignored and the
// existing window is brought to front.
func (r *Registry) OpenWindow(cfg types.WindowConfig) {
	if _, ok := r.byID[cfg.ID]; ok {
		r.BringToFront(cfg.ID)
		return
	}

	entry := &types.WindowEntry{
		ID:        cfg.ID,
		Title:     cfg.Title,
		Content:   cfg.Content,
		Position:  cfg.Position,
		Size:      cfg.Size,
		ZIndex:    r.z.next(),
		Minimized: cfg.Minimized,
	}

	r.entries = append(r.entries, entry)
	r.byID[entry.ID] = entry
	r.revision++
}

// CloseWindow removes a window
func (r *Registry) CloseWindow(id string) {
	if _, ok := r.byID[id]; !ok {
		return
	}

	delete(r.byID, id)
	for i, entry := range r.entries {
		if entry.ID == id {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.revision++
}

// BringToFront gives a window the next z-index and reveals it if minimized
func (r *Registry) BringToFront(id string) {
	entry, ok := r.byID[id]
	if !ok {
		return
	}

	entry.ZIndex = r.z.next()
	entry.Minimized = false
	r.revision++
}

// UpdateWindowPosition replaces a window's position
func (r *Registry) UpdateWindowPosition(id string, pos types.Position) {
	entry, ok := r.byID[id]
	if !ok {
		return
	}

	entry.Position = pos
	r.revision++
}

// UpdateWindowSize replaces a window's size
func (r *Registry) UpdateWindowSize(id string, size types.Size) {
	entry, ok := r.byID[id]
	if !ok {
		return
	}

	entry.Size = size
	r.revision++
}

// MinimizeWindow toggles a window's minimized flag
func (r *Registry) MinimizeWindow(id string) {
	entry, ok := r.byID[id]
	if !ok {
		return
	}

	entry.Minimized = !entry.Minimized
	r.revision++
}

// Get retrieves a window by ID
func (r *Registry) Get(id string) (types.WindowEntry, bool) {
	entry, ok := r.byID[id]
	if !ok {
		return types.WindowEntry{}, false
	}
	return *entry, true
}

// Has reports whether a window is open
func (r *Registry) Has(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of open windows
func (r *Registry) Len() int {
	return len(r.entries)
}

// List returns copies of all open windows in the order they were first opened
func (r *Registry) List() []types.WindowEntry {
	windows := make([]types.WindowEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		windows = append(windows, *entry)
	}
	return windows
}

// Revision increases every time a mutator changes the registry
func (r *Registry) Revision() uint64 {
	return r.revision
}

// Stats returns registry statistics
func (r *Registry) Stats() types.RegistryStats {
	stats := types.RegistryStats{
		Open:      len(r.entries),
		MaxZIndex: r.z.max,
	}

	for _, entry := range r.entries {
		if entry.Minimized {
			stats.Minimized++
		} else {
			stats.Visible++
		}
	}

	if front, ok := r.Frontmost(); ok {
		id := front.ID
		stats.FrontmostID = &id
	}

	return stats
}
