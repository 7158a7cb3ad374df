package desktop

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/window"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/id"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// Settings configures a Manager
type Settings struct {
	// ZIndexBase seeds the z counter of every new desktop
	ZIndexBase int64
	// MaxDesktops caps live desktops; zero means unlimited
	MaxDesktops int
	// IdleTTL is how long a desktop may go without commands before Sweep evicts it.
	// Desktops with live subscribers are never evicted. Zero disables eviction.
	IdleTTL time.Duration
}

// DefaultSettings returns the settings used when none are configured
func DefaultSettings() Settings {
	return Settings{
		ZIndexBase:  window.DefaultZIndexBase,
		MaxDesktops: 256,
		IdleTTL:     30 * time.Minute,
	}
}

// Manager owns every live desktop
type Manager struct {
	mu       sync.RWMutex
	desktops map[string]*Desktop // Protected by mu
	settings Settings
	presets  *catalog.Catalog
	logger   *logging.Logger
	metrics  *monitoring.Metrics
}

// NewManager creates a manager. A nil catalog uses the built-in presets.
func NewManager(settings Settings, presets *catalog.Catalog) *Manager {
	if presets == nil {
		presets = catalog.New()
	}
	return &Manager{
		desktops: make(map[string]*Desktop),
		settings: settings,
		presets:  presets,
		logger:   logging.NewNop(),
	}
}

// WithLogger sets the manager logger
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithMetrics adds metrics tracking to the manager and its desktops
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Catalog returns the preset catalog shared by all desktops
func (m *Manager) Catalog() *catalog.Catalog {
	return m.presets
}

// Create starts a new empty desktop
func (m *Manager) Create() (*Desktop, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.settings.MaxDesktops > 0 && len(m.desktops) >= m.settings.MaxDesktops {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManyDesktops, m.settings.MaxDesktops)
	}

	desktopID := id.NewDesktopID().String()
	d := New(desktopID, m.settings.ZIndexBase, m.presets).
		WithLogger(m.logger).
		WithMetrics(m.metrics)
	m.desktops[desktopID] = d

	if m.metrics != nil {
		m.metrics.IncDesktopsCreated()
		m.metrics.SetDesktopsActive(len(m.desktops))
	}
	m.logger.Info("Desktop created", zap.String("desktop_id", desktopID))

	return d, nil
}

// Get retrieves a desktop by ID
func (m *Manager) Get(desktopID string) (*Desktop, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.desktops[desktopID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDesktopNotFound, desktopID)
	}
	return d, nil
}

// List returns a summary of every desktop, oldest first
func (m *Manager) List() []types.DesktopInfo {
	m.mu.RLock()
	desktops := make([]*Desktop, 0, len(m.desktops))
	for _, d := range m.desktops {
		desktops = append(desktops, d)
	}
	m.mu.RUnlock()

	infos := make([]types.DesktopInfo, 0, len(desktops))
	for _, d := range desktops {
		infos = append(infos, d.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Delete closes and removes a desktop
func (m *Manager) Delete(desktopID string) error {
	m.mu.Lock()
	d, ok := m.desktops[desktopID]
	if ok {
		delete(m.desktops, desktopID)
	}
	count := len(m.desktops)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrDesktopNotFound, desktopID)
	}

	d.Close()
	if m.metrics != nil {
		m.metrics.SetDesktopsActive(count)
	}
	m.logger.Info("Desktop deleted", zap.String("desktop_id", desktopID))
	return nil
}

// Sweep evicts desktops idle since before now minus IdleTTL and returns their IDs
func (m *Manager) Sweep(now time.Time) []string {
	if m.settings.IdleTTL <= 0 {
		return nil
	}
	cutoff := now.Add(-m.settings.IdleTTL)

	m.mu.Lock()
	var evicted []*Desktop
	for desktopID, d := range m.desktops {
		if d.Subscribers() > 0 || d.LastActive().After(cutoff) {
			continue
		}
		delete(m.desktops, desktopID)
		evicted = append(evicted, d)
	}
	count := len(m.desktops)
	m.mu.Unlock()

	ids := make([]string, 0, len(evicted))
	for _, d := range evicted {
		d.Close()
		ids = append(ids, d.ID())
	}
	sort.Strings(ids)

	if len(ids) > 0 {
		if m.metrics != nil {
			m.metrics.AddDesktopsEvicted(len(ids))
			m.metrics.SetDesktopsActive(count)
		}
		m.logger.Info("Evicted idle desktops",
			zap.Int("count", len(ids)),
			zap.Duration("idle_ttl", m.settings.IdleTTL),
		)
	}
	return ids
}

// Run sweeps idle desktops every interval until ctx is cancelled
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || m.settings.IdleTTL <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			m.Sweep(now)
		}
	}
}

// Stats returns manager statistics
func (m *Manager) Stats() types.ManagerStats {
	m.mu.RLock()
	desktops := make([]*Desktop, 0, len(m.desktops))
	for _, d := range m.desktops {
		desktops = append(desktops, d)
	}
	m.mu.RUnlock()

	stats := types.ManagerStats{
		Desktops:    len(desktops),
		MaxDesktops: m.settings.MaxDesktops,
	}
	for _, d := range desktops {
		info := d.Info()
		stats.Windows += info.Windows.Open
		if info.Modal.ActiveModalID != nil {
			stats.Modals++
		}
	}
	return stats
}

// Close closes every desktop. Used on shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	desktops := m.desktops
	m.desktops = make(map[string]*Desktop)
	m.mu.Unlock()

	for _, d := range desktops {
		d.Close()
	}
	if m.metrics != nil {
		m.metrics.SetDesktopsActive(0)
	}
}
