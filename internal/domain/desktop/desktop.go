package desktop

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/interaction"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/modal"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/window"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/utils"
)

// Desktop is the overlay state owned by one browser shell
type Desktop struct {
	mu         sync.Mutex
	id         string
	createdAt  time.Time
	lastActive time.Time // Protected by mu
	revision   uint64    // Protected by mu
	closed     bool      // Protected by mu
	gestureSeq uint64    // Protected by mu

	registry *window.Registry
	gate     *modal.Gate
	tracker  *interaction.Tracker
	presets  *catalog.Catalog

	subs    map[uint64]chan types.Snapshot // Protected by mu
	nextSub uint64                         // Protected by mu

	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// New creates an empty desktop. A nil catalog uses the built-in presets.
func New(id string, zBase int64, presets *catalog.Catalog) *Desktop {
	if presets == nil {
		presets = catalog.New()
	}

	registry := window.NewRegistry(zBase)
	now := time.Now()

	return &Desktop{
		id:         id,
		createdAt:  now,
		lastActive: now,
		registry:   registry,
		gate:       modal.NewGate(),
		tracker:    interaction.NewTracker(registry),
		presets:    presets,
		subs:       make(map[uint64]chan types.Snapshot),
		logger:     logging.NewNop(),
	}
}

// WithLogger attaches a logger tagged with the desktop ID
func (d *Desktop) WithLogger(logger *logging.Logger) *Desktop {
	if logger != nil {
		d.logger = logger.ForDesktop(d.id)
	}
	return d
}

// WithMetrics adds metrics tracking to the desktop
func (d *Desktop) WithMetrics(metrics *monitoring.Metrics) *Desktop {
	d.metrics = metrics
	return d
}

// ID returns the desktop identifier
func (d *Desktop) ID() string {
	return d.id
}

// CreatedAt returns when the desktop was created
func (d *Desktop) CreatedAt() time.Time {
	return d.createdAt
}

// LastActive returns the time of the last command or subscription
func (d *Desktop) LastActive() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lastActive
}

// OpenWindow opens cfg, or focuses the window if cfg.ID is already open
func (d *Desktop) OpenWindow(cfg types.WindowConfig) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openWindow(cfg)
}

// Open is OpenWindow for configs arriving from a shell. Only the ID of an
// already open window is checked, since the rest of cfg is ignored; a new
// window goes through NormalizeConfig first.
func (d *Desktop) Open(cfg types.WindowConfig) (bool, error) {
	if err := utils.ValidateID(cfg.ID, "id", true); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.registry.Has(cfg.ID) {
		normalized, err := NormalizeConfig(cfg)
		if err != nil {
			return false, err
		}
		cfg = normalized
	}
	return d.openWindow(cfg), nil
}

// openWindow requires mu
func (d *Desktop) openWindow(cfg types.WindowConfig) bool {
	existed := d.registry.Has(cfg.ID)
	applied := d.applyWindow("open", func() { d.registry.OpenWindow(cfg) })
	if applied && !existed {
		d.adjustWindows(1)
		d.logger.Debug("Window opened",
			zap.String("window_id", cfg.ID),
			zap.String("content", cfg.Content.String()),
		)
	}
	return applied
}

// OpenPreset opens the catalog window for kind. Rejected while cards are disabled.
func (d *Desktop) OpenPreset(kind types.ContentKind) (types.WindowEntry, error) {
	preset, ok := d.presets.Get(kind)
	if !ok {
		return types.WindowEntry{}, fmt.Errorf("%w: %q", ErrUnknownContent, kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return types.WindowEntry{}, ErrDesktopClosed
	}

	if d.gate.CardsDisabled() {
		if d.metrics != nil {
			d.metrics.IncPresetsRejected()
		}
		d.logger.Debug("Preset rejected while cards disabled", zap.String("content", kind.String()))
		return types.WindowEntry{}, ErrCardsDisabled
	}

	cfg := preset.Config()
	existed := d.registry.Has(cfg.ID)
	d.applyWindow("open", func() { d.registry.OpenWindow(cfg) })
	if !existed {
		d.adjustWindows(1)
	}

	entry, _ := d.registry.Get(cfg.ID)
	return entry, nil
}

// CloseWindow removes a window
func (d *Desktop) CloseWindow(windowID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	applied := d.applyWindow("close", func() {
		d.registry.CloseWindow(windowID)
		// A gesture never carries over to a window reopened under the same ID
		if g := d.tracker.State(); g != nil && g.WindowID == windowID {
			d.tracker.End()
		}
	})
	if applied {
		d.adjustWindows(-1)
	}
	return applied
}

// BringToFront focuses a window and restores it if minimized
func (d *Desktop) BringToFront(windowID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyWindow("focus", func() { d.registry.BringToFront(windowID) })
}

// UpdateWindowPosition moves a window
func (d *Desktop) UpdateWindowPosition(windowID string, pos types.Position) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyWindow("position", func() { d.registry.UpdateWindowPosition(windowID, pos) })
}

// UpdateWindowSize resizes a window
func (d *Desktop) UpdateWindowSize(windowID string, size types.Size) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyWindow("size", func() { d.registry.UpdateWindowSize(windowID, size) })
}

// MinimizeWindow toggles the minimized flag of a window
func (d *Desktop) MinimizeWindow(windowID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyWindow("minimize", func() { d.registry.MinimizeWindow(windowID) })
}

// OpenGlobalModal activates a modal, replacing any active one
func (d *Desktop) OpenGlobalModal(modalID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous, wasActive := d.gate.Active()
	applied := d.applyModal(func() { d.gate.OpenGlobalModal(modalID) })

	if d.metrics != nil {
		d.metrics.IncModalOpens()
		if !wasActive {
			d.metrics.AddModalsActive(1)
		}
	}
	if wasActive && previous != modalID {
		d.logger.Debug("Modal replaced",
			zap.String("previous", previous),
			zap.String("modal_id", modalID),
		)
	}
	return applied
}

// CloseGlobalModal clears the active modal and re-enables cards
func (d *Desktop) CloseGlobalModal() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	_, wasActive := d.gate.Active()
	applied := d.applyModal(d.gate.CloseGlobalModal)
	if wasActive && d.metrics != nil {
		d.metrics.AddModalsActive(-1)
	}
	return applied
}

// SetCardsDisabled toggles card affordances independent of a modal
func (d *Desktop) SetCardsDisabled(disabled bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyModal(func() { d.gate.SetCardsDisabled(disabled) })
}

// PointerDown starts a drag or resize on a window frame. It returns a
// sequence number identifying the gesture for EndGesture.
func (d *Desktop) PointerDown(kind types.GestureKind, windowID string, pointer types.Position) (uint64, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidGesture, kind)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.tracker.Active() {
		return 0, ErrGestureActive
	}
	if !d.registry.Has(windowID) {
		return 0, fmt.Errorf("%w: %s", ErrWindowNotFound, windowID)
	}

	d.applyWindow("focus", func() { d.tracker.Begin(kind, windowID, pointer) })
	d.gestureSeq++
	if d.metrics != nil {
		d.metrics.RecordGesture(string(kind))
	}
	return d.gestureSeq, nil
}

// PointerMove advances the active gesture. Without one it does nothing.
func (d *Desktop) PointerMove(pointer types.Position) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	command := "position"
	switch d.tracker.Phase() {
	case interaction.PhaseIdle:
		return false
	case interaction.PhaseResizing:
		command = "size"
	}
	return d.applyWindow(command, func() { d.tracker.Move(pointer) })
}

// PointerUp ends the active gesture
func (d *Desktop) PointerUp() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.tracker.End() {
		return false
	}
	d.changed()
	return true
}

// EndGesture ends the gesture only if it is still the one numbered seq.
// A stream that disconnects mid-gesture uses this to release it.
func (d *Desktop) EndGesture(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if seq == 0 || seq != d.gestureSeq || !d.tracker.End() {
		return false
	}
	d.changed()
	return true
}

// Snapshot returns a read-only view of the desktop
func (d *Desktop) Snapshot() types.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}

// Window returns a copy of one window entry
func (d *Desktop) Window(windowID string) (types.WindowEntry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.registry.Get(windowID)
}

// Stacking returns windows back-to-front. With visibleOnly, minimized
// windows are left out, giving the shell's paint order.
func (d *Desktop) Stacking(visibleOnly bool) []types.WindowEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	if visibleOnly {
		return d.registry.Visible()
	}
	return d.registry.Stacking()
}

// Info summarises the desktop for listing
func (d *Desktop) Info() types.DesktopInfo {
	d.mu.Lock()
	defer d.mu.Unlock()

	return types.DesktopInfo{
		ID:         d.id,
		CreatedAt:  d.createdAt,
		LastActive: d.lastActive,
		Windows:    d.registry.Stats(),
		Modal:      d.gate.State(),
	}
}

// Subscribe registers for snapshots. The channel holds at most one pending
// snapshot; a slow reader only sees the latest. The channel is closed by
// cancel or when the desktop closes.
func (d *Desktop) Subscribe() (<-chan types.Snapshot, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan types.Snapshot, 1)
	if d.closed {
		close(ch)
		return ch, func() {}
	}

	d.nextSub++
	key := d.nextSub
	d.subs[key] = ch
	d.touch()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			if sub, ok := d.subs[key]; ok {
				delete(d.subs, key)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Subscribers returns the number of live subscriptions
func (d *Desktop) Subscribers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs)
}

// Close releases subscribers and drops the desktop from metrics.
// Commands after Close still apply but are neither published nor counted.
func (d *Desktop) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	d.closed = true

	for key, ch := range d.subs {
		delete(d.subs, key)
		close(ch)
	}

	if d.metrics != nil {
		d.metrics.AddWindowsOpen(-d.registry.Len())
		if _, active := d.gate.Active(); active {
			d.metrics.AddModalsActive(-1)
		}
		d.metrics = nil
	}
}

// applyWindow runs a registry command and publishes if it changed anything.
// Caller must hold mu.
func (d *Desktop) applyWindow(command string, fn func()) bool {
	before := d.registry.Revision()
	fn()
	if d.registry.Revision() == before {
		return false
	}

	if d.metrics != nil {
		d.metrics.RecordWindowCommand(command)
	}
	d.changed()
	return true
}

// applyModal runs a gate command and publishes if the state changed.
// Caller must hold mu.
func (d *Desktop) applyModal(fn func()) bool {
	before := d.gate.State()
	fn()
	if sameModalState(before, d.gate.State()) {
		return false
	}
	d.changed()
	return true
}

func (d *Desktop) changed() {
	d.revision++
	d.touch()
	d.publish()
}

func (d *Desktop) touch() {
	d.lastActive = time.Now()
}

func (d *Desktop) adjustWindows(delta int) {
	if d.metrics != nil {
		d.metrics.AddWindowsOpen(delta)
	}
}

func (d *Desktop) snapshot() types.Snapshot {
	return types.Snapshot{
		DesktopID: d.id,
		Revision:  d.revision,
		Windows:   d.registry.List(),
		Modal:     d.gate.State(),
		Gesture:   d.tracker.State(),
	}
}

// publish pushes the current snapshot to every subscriber, replacing any
// snapshot still pending. Caller must hold mu.
func (d *Desktop) publish() {
	if len(d.subs) == 0 {
		return
	}

	snap := d.snapshot()
	for _, ch := range d.subs {
		select {
		case ch <- snap:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func sameModalState(a, b types.ModalState) bool {
	if a.CardsDisabled != b.CardsDisabled {
		return false
	}
	if a.ActiveModalID == nil || b.ActiveModalID == nil {
		return a.ActiveModalID == nil && b.ActiveModalID == nil
	}
	return *a.ActiveModalID == *b.ActiveModalID
}
