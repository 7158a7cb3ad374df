package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

var (
	// ErrUnknownContent is returned for presets naming a content kind the shell cannot render
	ErrUnknownContent = errors.New("unknown content kind")
	// ErrInvalidPreset is returned for unusable presets and preset files
	ErrInvalidPreset = errors.New("invalid preset")
)

// Preset is the initial window for a content kind
type Preset struct {
	Kind     types.ContentKind `json:"kind"`
	Title    string            `json:"title"`
	Position types.Position    `json:"position"`
	Size     types.Size        `json:"size"`
}

// Config builds the window config for this preset. The window ID is the
// content kind, so opening a card twice refocuses its window.
func (p Preset) Config() types.WindowConfig {
	return types.WindowConfig{
		ID:       string(p.Kind),
		Title:    p.Title,
		Content:  p.Kind,
		Position: p.Position,
		Size:     p.Size,
	}
}

// Validate checks a preset before it enters the catalog.
// Presets are authored, so unlike live window updates their size must be positive.
func (p Preset) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownContent, p.Kind)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: %s has no title", ErrInvalidPreset, p.Kind)
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("%w: %s size %dx%d", ErrInvalidPreset, p.Kind, p.Size.Width, p.Size.Height)
	}
	return nil
}

// Defaults returns the built-in presets, cascading down and right
func Defaults() []Preset {
	titles := map[types.ContentKind]string{
		types.ContentAlerts:    "Live Alerts",
		types.ContentTourists:  "Tourists",
		types.ContentZones:     "Safety Zones",
		types.ContentEFIR:      "E-FIR System",
		types.ContentAnalytics: "Analytics",
		types.ContentRoles:     "Role Management",
		types.ContentSystem:    "System Health",
	}

	kinds := types.ContentKinds()
	presets := make([]Preset, 0, len(kinds))
	for i, kind := range kinds {
		presets = append(presets, Preset{
			Kind:     kind,
			Title:    titles[kind],
			Position: types.Position{X: 80 + 32*i, Y: 80 + 32*i},
			Size:     types.Size{Width: 640, Height: 420},
		})
	}
	return presets
}

// Catalog holds one preset per content kind
type Catalog struct {
	mu      sync.RWMutex
	presets map[types.ContentKind]Preset
}

// New creates a catalog seeded with the built-in presets
func New() *Catalog {
	c := &Catalog{presets: make(map[types.ContentKind]Preset)}
	for _, p := range Defaults() {
		c.presets[p.Kind] = p
	}
	return c
}

// Put validates and stores a preset, replacing any preset for the same kind
func (c *Catalog) Put(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.presets[p.Kind] = p
	return nil
}

// Get retrieves the preset for a content kind
func (c *Catalog) Get(kind types.ContentKind) (Preset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.presets[kind]
	return p, ok
}

// List returns all presets in dashboard order
func (c *Catalog) List() []Preset {
	c.mu.RLock()
	defer c.mu.RUnlock()

	presets := make([]Preset, 0, len(c.presets))
	for _, kind := range types.ContentKinds() {
		if p, ok := c.presets[kind]; ok {
			presets = append(presets, p)
		}
	}
	return presets
}
