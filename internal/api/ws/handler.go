package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/Raksha/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/Raksha/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/utils"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // Shell origin is enforced by CORS on the REST routes
	},
}

// Handler manages desktop streams
type Handler struct {
	desktops *desktop.Manager
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler. Metrics may be nil.
func NewHandler(desktops *desktop.Manager, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		desktops: desktops,
		metrics:  metrics,
		logger:   logger,
	}
}

// outbound is every message the server sends
type outbound struct {
	Type         string          `json:"type"`
	ConnectionID string          `json:"connection_id,omitempty"`
	Command      string          `json:"command,omitempty"`
	Applied      *bool           `json:"applied,omitempty"`
	Message      string          `json:"message,omitempty"`
	Snapshot     *types.Snapshot `json:"snapshot,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

// HandleConnection upgrades the request and streams the desktop
func (h *Handler) HandleConnection(c *gin.Context) {
	desktopID := c.Param("id")
	if err := utils.ValidateID(desktopID, "desktop_id", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := h.desktops.Get(desktopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.String("desktop_id", desktopID), zap.Error(err))
		return
	}

	connID := uuid.New().String()
	ctx := c.Request.Context()
	s := &session{
		id:      connID,
		conn:    conn,
		desktop: d,
		metrics: h.metrics,
		logger: h.logger.ForDesktop(desktopID).With(
			zap.String("conn_id", connID),
			zap.String("trace_id", string(tracing.GetTraceID(ctx))),
			zap.String("span_id", string(tracing.GetSpanID(ctx))),
		),
	}
	s.run()
}

// session is one connected shell
type session struct {
	id      string
	conn    *websocket.Conn
	desktop *desktop.Desktop
	metrics *monitoring.Metrics
	logger  *zap.Logger

	writeMu sync.Mutex

	// gesture is the sequence of the gesture this session started; reader goroutine only
	gesture uint64
}

func (s *session) run() {
	defer s.conn.Close()

	if s.metrics != nil {
		s.metrics.IncWSConnections()
		defer s.metrics.DecWSConnections()
	}
	s.logger.Info("WebSocket connected")

	s.conn.SetReadLimit(utils.MaxMessageSize)

	snaps, cancel := s.desktop.Subscribe()
	initial := s.desktop.Snapshot()
	s.send(outbound{Type: "connected", ConnectionID: s.id})
	s.send(outbound{Type: "snapshot", Snapshot: &initial})

	done := make(chan struct{})
	go s.writeSnapshots(snaps, done)

	s.readLoop()

	cancel()
	<-done

	// A shell that drops mid-gesture never sends pointer_up
	if s.gesture != 0 && s.desktop.EndGesture(s.gesture) {
		s.logger.Debug("Released gesture of disconnected stream")
	}
	s.logger.Info("WebSocket disconnected")
}

// writeSnapshots forwards published snapshots until the subscription closes
func (s *session) writeSnapshots(snaps <-chan types.Snapshot, done chan<- struct{}) {
	defer close(done)

	for snap := range snaps {
		snap := snap
		if err := s.send(outbound{Type: "snapshot", Snapshot: &snap}); err != nil {
			break
		}
	}

	// Desktop closed or write failed; unblock the reader
	s.writeMu.Lock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = s.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "desktop closed"))
	s.writeMu.Unlock()
	s.conn.Close()
}

func (s *session) readLoop() {
	for {
		msgType, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("WebSocket read error", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var msg types.WSMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			s.sendError("", "invalid message")
			continue
		}

		if s.metrics != nil {
			s.metrics.RecordWSMessage("in", msg.Type)
		}
		s.handle(msg)
	}
}

func (s *session) handle(msg types.WSMessage) {
	d := s.desktop
	pointer := types.Position{X: msg.X, Y: msg.Y}

	switch msg.Type {
	case "ping":
		s.send(outbound{Type: "pong"})

	case "pointer_down":
		seq, err := d.PointerDown(msg.Gesture, msg.WindowID, pointer)
		if err != nil {
			s.sendError(msg.Type, err.Error())
			return
		}
		s.gesture = seq

	case "pointer_move":
		d.PointerMove(pointer)

	case "pointer_up":
		d.PointerUp()
		s.gesture = 0

	case "open":
		if msg.Window == nil {
			s.sendError(msg.Type, "window is required")
			return
		}
		applied, err := d.Open(*msg.Window)
		if err != nil {
			s.sendError(msg.Type, err.Error())
			return
		}
		s.ack(msg.Type, applied)

	case "open_preset":
		if _, err := d.OpenPreset(msg.Content); err != nil {
			s.sendError(msg.Type, err.Error())
			return
		}
		s.ack(msg.Type, true)

	case "close":
		s.ack(msg.Type, d.CloseWindow(msg.WindowID))
	case "focus":
		s.ack(msg.Type, d.BringToFront(msg.WindowID))
	case "minimize":
		s.ack(msg.Type, d.MinimizeWindow(msg.WindowID))
	case "position":
		s.ack(msg.Type, d.UpdateWindowPosition(msg.WindowID, pointer))
	case "size":
		s.ack(msg.Type, d.UpdateWindowSize(msg.WindowID, types.Size{Width: msg.Width, Height: msg.Height}))

	case "open_modal":
		if err := utils.ValidateID(msg.ModalID, "modal_id", true); err != nil {
			s.sendError(msg.Type, err.Error())
			return
		}
		s.ack(msg.Type, d.OpenGlobalModal(msg.ModalID))
	case "close_modal":
		s.ack(msg.Type, d.CloseGlobalModal())
	case "set_cards":
		if msg.Disabled == nil {
			s.sendError(msg.Type, "disabled is required")
			return
		}
		s.ack(msg.Type, d.SetCardsDisabled(*msg.Disabled))

	default:
		s.sendError(msg.Type, "unknown message type")
	}
}

func (s *session) ack(command string, applied bool) {
	s.send(outbound{Type: "ack", Command: command, Applied: &applied})
}

func (s *session) sendError(command, message string) error {
	return s.send(outbound{Type: "error", Command: command, Message: message})
}

func (s *session) send(msg outbound) error {
	msg.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.RecordWSMessage("out", msg.Type)
	}
	return nil
}
