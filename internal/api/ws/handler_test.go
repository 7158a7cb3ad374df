package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

type received struct {
	Type         string          `json:"type"`
	ConnectionID string          `json:"connection_id"`
	Command      string          `json:"command"`
	Applied      *bool           `json:"applied"`
	Message      string          `json:"message"`
	Snapshot     *types.Snapshot `json:"snapshot"`
}

func newStreamServer(t *testing.T) (*httptest.Server, *desktop.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := desktop.NewManager(desktop.DefaultSettings(), nil)
	router := gin.New()
	router.GET("/desktops/:id/stream", NewHandler(manager, nil, nil).HandleConnection)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, manager
}

func dial(t *testing.T, srv *httptest.Server, desktopID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/desktops/" + desktopID + "/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, msg interface{}) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(msg))
}

// readUntil reads messages until match returns true
func readUntil(t *testing.T, conn *websocket.Conn, match func(received) bool) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg received
		require.NoError(t, json.Unmarshal(data, &msg))
		if match(msg) {
			return msg
		}
	}
}

func ofType(typ string) func(received) bool {
	return func(m received) bool { return m.Type == typ }
}

func TestStreamSendsInitialSnapshot(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, err := manager.Create()
	require.NoError(t, err)
	d.OpenWindow(types.WindowConfig{ID: "w1", Content: types.ContentAlerts})

	conn := dial(t, srv, d.ID())

	hello := readUntil(t, conn, ofType("connected"))
	assert.Len(t, hello.ConnectionID, 36)

	snap := readUntil(t, conn, ofType("snapshot"))
	require.NotNil(t, snap.Snapshot)
	assert.Equal(t, d.ID(), snap.Snapshot.DesktopID)
	assert.Len(t, snap.Snapshot.Windows, 1)
}

func TestStreamRejectsUnknownDesktop(t *testing.T) {
	srv, _ := newStreamServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/desktops/desk_missing/stream"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamDragScenario(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, _ := manager.Create()
	conn := dial(t, srv, d.ID())
	readUntil(t, conn, ofType("snapshot"))

	sendJSON(t, conn, map[string]interface{}{
		"type": "open",
		"window": map[string]interface{}{
			"id":       "w1",
			"title":    "Tourists",
			"content":  "tourists",
			"position": map[string]int{"x": 10, "y": 10},
			"size":     map[string]int{"width": 300, "height": 200},
		},
	})
	ack := readUntil(t, conn, ofType("ack"))
	require.NotNil(t, ack.Applied)
	assert.True(t, *ack.Applied)

	sendJSON(t, conn, map[string]interface{}{"type": "pointer_down", "gesture": "drag", "window_id": "w1", "x": 50, "y": 50})
	sendJSON(t, conn, map[string]interface{}{"type": "pointer_move", "x": 70, "y": 65})
	sendJSON(t, conn, map[string]interface{}{"type": "pointer_up"})

	final := readUntil(t, conn, func(m received) bool {
		return m.Type == "snapshot" && m.Snapshot != nil &&
			m.Snapshot.Gesture == nil && len(m.Snapshot.Windows) == 1 &&
			m.Snapshot.Windows[0].Position == types.Position{X: 30, Y: 25}
	})
	assert.Equal(t, types.Size{Width: 300, Height: 200}, final.Snapshot.Windows[0].Size)
}

func TestStreamReopenFocusesExisting(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, _ := manager.Create()
	d.OpenWindow(types.WindowConfig{ID: "a", Content: types.ContentAlerts})
	d.OpenWindow(types.WindowConfig{ID: "b", Content: types.ContentZones})

	conn := dial(t, srv, d.ID())
	readUntil(t, conn, ofType("snapshot"))

	sendJSON(t, conn, map[string]interface{}{
		"type":   "open",
		"window": map[string]interface{}{"id": "a", "content": "map"},
	})
	ack := readUntil(t, conn, ofType("ack"))
	require.NotNil(t, ack.Applied)
	assert.True(t, *ack.Applied)

	stack := d.Stacking(false)
	require.Len(t, stack, 2)
	assert.Equal(t, "a", stack[1].ID)
	assert.Equal(t, types.ContentAlerts, stack[1].Content)

	sendJSON(t, conn, map[string]interface{}{
		"type":   "open",
		"window": map[string]interface{}{"id": "c", "content": "map"},
	})
	msg := readUntil(t, conn, ofType("error"))
	assert.Equal(t, "open", msg.Command)
}

func TestStreamErrors(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, _ := manager.Create()
	conn := dial(t, srv, d.ID())
	readUntil(t, conn, ofType("snapshot"))

	sendJSON(t, conn, map[string]interface{}{"type": "teleport"})
	msg := readUntil(t, conn, ofType("error"))
	assert.Equal(t, "unknown message type", msg.Message)

	sendJSON(t, conn, map[string]interface{}{"type": "pointer_down", "gesture": "drag", "window_id": "ghost"})
	msg = readUntil(t, conn, ofType("error"))
	assert.Equal(t, "pointer_down", msg.Command)

	sendJSON(t, conn, map[string]interface{}{"type": "open_modal", "modal_id": "M1"})
	readUntil(t, conn, ofType("ack"))

	sendJSON(t, conn, map[string]interface{}{"type": "open_preset", "content": "alerts"})
	msg = readUntil(t, conn, ofType("error"))
	assert.Equal(t, "open_preset", msg.Command)

	sendJSON(t, conn, map[string]interface{}{"type": "ping"})
	readUntil(t, conn, ofType("pong"))
}

func TestStreamReleasesGestureOnDisconnect(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, _ := manager.Create()
	d.OpenWindow(types.WindowConfig{ID: "w1", Content: types.ContentZones})

	conn := dial(t, srv, d.ID())
	readUntil(t, conn, ofType("snapshot"))

	sendJSON(t, conn, map[string]interface{}{"type": "pointer_down", "gesture": "resize", "window_id": "w1", "x": 1, "y": 1})
	readUntil(t, conn, func(m received) bool {
		return m.Type == "snapshot" && m.Snapshot != nil && m.Snapshot.Gesture != nil
	})

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return d.Snapshot().Gesture == nil
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStreamClosedWhenDesktopDeleted(t *testing.T) {
	srv, manager := newStreamServer(t)
	d, _ := manager.Create()
	conn := dial(t, srv, d.ID())
	readUntil(t, conn, ofType("snapshot"))

	require.NoError(t, manager.Delete(d.ID()))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
			return
		}
	}
}
