package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Raksha/backend/internal/api/client"
	apihttp "github.com/GriffinCanCode/Raksha/backend/internal/api/http"
	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

func TestRun(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	apihttp.NewHandlers(desktop.NewManager(desktop.DefaultSettings(), nil), nil, nil).Register(router)
	srv := httptest.NewServer(router)
	defer srv.Close()

	c := client.New(client.DefaultConfig(srv.URL))
	ctx := context.Background()

	out, err := run(ctx, c, "create", nil)
	require.NoError(t, err)
	id := out.(types.Snapshot).DesktopID

	_, err = run(ctx, c, "preset", []string{id, "zones"})
	require.NoError(t, err)

	out, err = run(ctx, c, "move", []string{id, "zones", "-20", "15"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"success": true}, out)

	out, err = run(ctx, c, "cards", []string{id, "off"})
	require.NoError(t, err)
	assert.True(t, out.(types.ModalState).CardsDisabled)

	out, err = run(ctx, c, "windows", []string{id})
	require.NoError(t, err)
	assert.Equal(t, types.Position{X: -20, Y: 15}, out.(types.Snapshot).Windows[0].Position)
}

func TestRunRejectsBadArguments(t *testing.T) {
	c := client.New(client.DefaultConfig("http://127.0.0.1:1"))
	ctx := context.Background()

	for _, tt := range []struct {
		cmd  string
		args []string
		want string
	}{
		{"teleport", nil, "unknown command"},
		{"move", []string{"d"}, "takes 4 argument(s)"},
		{"resize", []string{"d", "w", "wide", "1"}, "invalid number"},
		{"cards", []string{"d", "maybe"}, "on or off"},
	} {
		_, err := run(ctx, c, tt.cmd, tt.args)
		require.Error(t, err, tt.cmd)
		assert.Contains(t, err.Error(), tt.want, tt.cmd)
	}
}
