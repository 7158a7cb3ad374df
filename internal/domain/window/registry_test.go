package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

func config(id string) types.WindowConfig {
	return types.WindowConfig{
		ID:       id,
		Title:    "Window " + id,
		Content:  types.ContentAlerts,
		Position: types.Position{X: 0, Y: 0},
		Size:     types.Size{Width: 200, Height: 150},
	}
}

func TestOpenWindow(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	r.OpenWindow(config("a"))

	entry, ok := r.Get("a")
	require.True(t, ok)
	assert.Equal(t, "Window a", entry.Title)
	assert.Equal(t, types.ContentAlerts, entry.Content)
	assert.Equal(t, types.Size{Width: 200, Height: 150}, entry.Size)
	assert.Equal(t, DefaultZIndexBase+1, entry.ZIndex)
	assert.False(t, entry.Minimized)
	assert.Equal(t, DefaultZIndexBase+1, r.MaxZIndex())
}

func TestOpenWindowStartsMinimized(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	cfg := config("a")
	cfg.Minimized = true
	r.OpenWindow(cfg)

	entry, _ := r.Get("a")
	assert.True(t, entry.Minimized)
}

func TestOpenWindowKeepsFirstOpenOrder(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	for _, id := range []string{"c", "a", "b"} {
		r.OpenWindow(config(id))
	}
	r.BringToFront("c")
	r.OpenWindow(config("a"))

	var ids []string
	for _, w := range r.List() {
		ids = append(ids, w.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}

func TestOpenWindowTwiceRefocuses(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	r.OpenWindow(config("a"))
	r.OpenWindow(config("b"))

	second := types.WindowConfig{
		ID:       "a",
		Title:    "Replaced",
		Content:  types.ContentZones,
		Position: types.Position{X: 500, Y: 500},
		Size:     types.Size{Width: 1, Height: 1},
	}
	r.OpenWindow(second)

	assert.Equal(t, 2, r.Len())

	a, _ := r.Get("a")
	b, _ := r.Get("b")
	assert.Equal(t, "Window a", a.Title)
	assert.Equal(t, types.ContentAlerts, a.Content)
	assert.Equal(t, types.Position{X: 0, Y: 0}, a.Position)
	assert.Equal(t, types.Size{Width: 200, Height: 150}, a.Size)
	assert.Greater(t, a.ZIndex, b.ZIndex)
	assert.Equal(t, r.MaxZIndex(), a.ZIndex)
}

func TestOpenWindowTwiceUnminimizes(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	r.OpenWindow(config("a"))
	r.MinimizeWindow("a")
	r.OpenWindow(config("a"))

	a, _ := r.Get("a")
	assert.False(t, a.Minimized)
}

func TestBringToFrontScenario(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	r.OpenWindow(types.WindowConfig{
		ID:       "a",
		Position: types.Position{X: 0, Y: 0},
		Size:     types.Size{Width: 200, Height: 150},
	})
	r.OpenWindow(config("b"))

	a, _ := r.Get("a")
	b, _ := r.Get("b")
	assert.Less(t, a.ZIndex, b.ZIndex)

	r.BringToFront("a")

	a, _ = r.Get("a")
	b, _ = r.Get("b")
	assert.Greater(t, a.ZIndex, b.ZIndex)
}

func TestBringToFrontClearsMinimized(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	r.OpenWindow(config("a"))
	r.MinimizeWindow("a")

	a, _ := r.Get("a")
	require.True(t, a.Minimized)

	r.BringToFront("a")

	a, _ = r.Get("a")
	assert.False(t, a.Minimized)
}

func TestMinimizeWindowToggles(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))

	before, _ := r.Get("a")
	r.MinimizeWindow("a")
	mid, _ := r.Get("a")
	r.MinimizeWindow("a")
	after, _ := r.Get("a")

	assert.NotEqual(t, before.Minimized, mid.Minimized)
	assert.Equal(t, before.Minimized, after.Minimized)
	assert.Equal(t, before.ZIndex, after.ZIndex)
}

func TestUpdateGeometry(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))

	r.UpdateWindowPosition("a", types.Position{X: -40, Y: 9000})
	r.UpdateWindowSize("a", types.Size{Width: 0, Height: -5})

	a, _ := r.Get("a")
	assert.Equal(t, types.Position{X: -40, Y: 9000}, a.Position)
	assert.Equal(t, types.Size{Width: 0, Height: -5}, a.Size)
	assert.Equal(t, DefaultZIndexBase+1, a.ZIndex)
}

func TestCloseWindow(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))
	r.OpenWindow(config("b"))

	r.CloseWindow("a")

	assert.False(t, r.Has("a"))
	assert.True(t, r.Has("b"))
	assert.Equal(t, 1, r.Len())
}

func TestReopenAfterCloseGetsNewZIndex(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))
	first, _ := r.Get("a")

	r.CloseWindow("a")
	r.OpenWindow(config("a"))

	second, _ := r.Get("a")
	assert.Greater(t, second.ZIndex, first.ZIndex)
}

func TestUnknownIDIsNoOp(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))

	before := r.List()
	rev := r.Revision()
	maxZ := r.MaxZIndex()

	r.CloseWindow("missing")
	r.BringToFront("missing")
	r.UpdateWindowPosition("missing", types.Position{X: 1, Y: 1})
	r.UpdateWindowSize("missing", types.Size{Width: 1, Height: 1})
	r.MinimizeWindow("missing")

	assert.Equal(t, before, r.List())
	assert.Equal(t, rev, r.Revision())
	assert.Equal(t, maxZ, r.MaxZIndex())
}

func TestListReturnsCopies(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	r.OpenWindow(config("a"))

	windows := r.List()
	windows[0].Title = "mutated"
	windows[0].ZIndex = 1

	a, _ := r.Get("a")
	assert.Equal(t, "Window a", a.Title)
	assert.Equal(t, DefaultZIndexBase+1, a.ZIndex)
}

func TestRevision(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)
	assert.Equal(t, uint64(0), r.Revision())

	r.OpenWindow(config("a"))
	r.UpdateWindowPosition("a", types.Position{X: 5, Y: 5})
	r.MinimizeWindow("a")

	assert.Equal(t, uint64(3), r.Revision())
}

func TestStats(t *testing.T) {
	r := NewRegistry(DefaultZIndexBase)

	stats := r.Stats()
	assert.Equal(t, 0, stats.Open)
	assert.Nil(t, stats.FrontmostID)
	assert.Equal(t, DefaultZIndexBase, stats.MaxZIndex)

	r.OpenWindow(config("a"))
	r.OpenWindow(config("b"))
	r.MinimizeWindow("b")

	stats = r.Stats()
	assert.Equal(t, 2, stats.Open)
	assert.Equal(t, 1, stats.Visible)
	assert.Equal(t, 1, stats.Minimized)
	require.NotNil(t, stats.FrontmostID)
	assert.Equal(t, "b", *stats.FrontmostID)
}
