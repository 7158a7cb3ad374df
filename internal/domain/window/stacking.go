package window

import (
	"sort"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// zCounter hands out stacking keys. It only moves forward.
type zCounter struct {
	max int64
}

func (c *zCounter) next() int64 {
	c.max++
	return c.max
}

// MaxZIndex returns the last z-index handed out, or the base if none was
func (r *Registry) MaxZIndex() int64 {
	return r.z.max
}

// Stacking returns all open windows ordered back to front
func (r *Registry) Stacking() []types.WindowEntry {
	windows := r.List()
	SortBackToFront(windows)
	return windows
}

// Visible returns non-minimized windows in paint order (back to front)
func (r *Registry) Visible() []types.WindowEntry {
	windows := make([]types.WindowEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		if !entry.Minimized {
			windows = append(windows, *entry)
		}
	}
	SortBackToFront(windows)
	return windows
}

// Frontmost returns the open window with the highest z-index.
// Minimized windows are included; they keep their place in the order.
func (r *Registry) Frontmost() (types.WindowEntry, bool) {
	var front *types.WindowEntry
	for _, entry := range r.entries {
		if front == nil || entry.ZIndex > front.ZIndex {
			front = entry
		}
	}
	if front == nil {
		return types.WindowEntry{}, false
	}
	return *front, true
}

// SortBackToFront orders windows by ascending z-index
func SortBackToFront(windows []types.WindowEntry) {
	sort.Slice(windows, func(i, j int) bool {
		return windows[i].ZIndex < windows[j].ZIndex
	})
}
