package desktop

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

func TestManagerCreateGetDelete(t *testing.T) {
	m := NewManager(DefaultSettings(), nil)

	d, err := m.Create()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.ID(), "desk_"))

	got, err := m.Get(d.ID())
	require.NoError(t, err)
	assert.Same(t, d, got)

	require.NoError(t, m.Delete(d.ID()))

	_, err = m.Get(d.ID())
	assert.True(t, errors.Is(err, ErrDesktopNotFound))
	assert.True(t, errors.Is(m.Delete(d.ID()), ErrDesktopNotFound))
}

func TestManagerDesktopsAreIndependent(t *testing.T) {
	m := NewManager(DefaultSettings(), nil)
	a, _ := m.Create()
	b, _ := m.Create()

	a.OpenWindow(windowConfig("w"))
	a.OpenGlobalModal("M1")

	assert.Len(t, a.Snapshot().Windows, 1)
	assert.Empty(t, b.Snapshot().Windows)
	assert.False(t, b.Snapshot().Modal.CardsDisabled)
}

func TestManagerLimit(t *testing.T) {
	settings := DefaultSettings()
	settings.MaxDesktops = 2
	m := NewManager(settings, nil)

	_, err := m.Create()
	require.NoError(t, err)
	_, err = m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	assert.True(t, errors.Is(err, ErrTooManyDesktops))
	assert.Equal(t, 2, m.Stats().Desktops)
}

func TestManagerZIndexBase(t *testing.T) {
	settings := DefaultSettings()
	settings.ZIndexBase = 50
	m := NewManager(settings, nil)
	d, _ := m.Create()

	d.OpenWindow(windowConfig("a"))
	assert.Equal(t, int64(51), d.Snapshot().Windows[0].ZIndex)
}

func TestManagerSweep(t *testing.T) {
	settings := DefaultSettings()
	settings.IdleTTL = time.Minute
	m := NewManager(settings, nil)

	idle, _ := m.Create()
	watched, _ := m.Create()
	_, cancel := watched.Subscribe()
	defer cancel()

	assert.Empty(t, m.Sweep(time.Now()))

	evicted := m.Sweep(time.Now().Add(2 * time.Minute))
	assert.Equal(t, []string{idle.ID()}, evicted)

	_, err := m.Get(idle.ID())
	assert.True(t, errors.Is(err, ErrDesktopNotFound))
	_, err = m.Get(watched.ID())
	assert.NoError(t, err)
}

func TestManagerRunStopsOnCancel(t *testing.T) {
	m := NewManager(DefaultSettings(), nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		m.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManagerListAndStats(t *testing.T) {
	m := NewManager(DefaultSettings(), nil)
	a, _ := m.Create()
	b, _ := m.Create()

	a.OpenWindow(windowConfig("x"))
	a.OpenWindow(windowConfig("y"))
	b.OpenWindow(windowConfig("x"))
	b.OpenGlobalModal("M1")

	infos := m.List()
	require.Len(t, infos, 2)
	assert.Less(t, infos[0].ID, infos[1].ID)

	stats := m.Stats()
	assert.Equal(t, types.ManagerStats{Desktops: 2, MaxDesktops: 256, Windows: 3, Modals: 1}, stats)

	m.Close()
	assert.Empty(t, m.List())
}
