package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	cfg.Logging.Development = true
	reg := prometheus.NewRegistry()
	srv, err := New(cfg, nil, monitoring.NewMetricsWithRegistry(reg, reg))
	require.NoError(t, err)
	return srv
}

func TestRoutesWired(t *testing.T) {
	srv := newTestServer(t, config.Default())

	for _, path := range []string{"/", "/health", "/catalog", "/desktops", "/metrics", "/metrics/json"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/desktops", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"))
}

func TestResponsesCompressed(t *testing.T) {
	srv := newTestServer(t, config.Default())
	d, err := srv.Desktops().Create()
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		d.OpenWindow(types.WindowConfig{ID: fmt.Sprintf("w%d", i), Title: "Tourist Tracking", Content: types.ContentTourists})
	}

	req := httptest.NewRequest(http.MethodGet, "/desktops/"+d.ID()+"/windows", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	cfg := config.Default()
	cfg.Server.Compress = false
	plain := newTestServer(t, cfg)
	w = httptest.NewRecorder()
	plain.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestCatalogOverridesLoaded(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alerts.yaml"), []byte(`
presets:
  - kind: alerts
    title: Incident Feed
    x: 5
    y: 5
    width: 500
    height: 300
`), 0o644))

	cfg := config.Default()
	cfg.Catalog.Dir = dir
	srv := newTestServer(t, cfg)

	preset, ok := srv.Desktops().Catalog().Get(types.ContentAlerts)
	require.True(t, ok)
	assert.Equal(t, "Incident Feed", preset.Title)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(listener.Addr().String())
	require.NoError(t, listener.Close())

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	srv := newTestServer(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() { errChan <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunReportsListenError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	_, port, _ := net.SplitHostPort(listener.Addr().String())

	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = port
	srv := newTestServer(t, cfg)

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "http server"))
}
