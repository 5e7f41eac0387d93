package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pot-code/skillspark/internal/infrastructure/logging"
	"go.uber.org/zap"
)

var (
	writeWait    = 10 * time.Second
	pongWait     = 30 * time.Second
	pingInterval = pongWait * 9 / 10
)

// SocketHandler serve one inbound message, returning an error closes the connection
type SocketHandler func(ctx context.Context, conn *websocket.Conn, c echo.Context) error

// Websocket upgrades requests and keeps the connection alive with ping/pong
type Websocket struct {
	upgrader websocket.Upgrader
}

// NewWebsocket .
func NewWebsocket() *Websocket {
	return &Websocket{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			HandshakeTimeout: 3 * time.Second,
		},
	}
}

// WithHeartbeat wrap handler function with heartbeat probe. The echo handler
// blocks until the connection is closed.
func (ws *Websocket) WithHeartbeat(handler SocketHandler) echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := ws.upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// upgrader already answered the handshake
			return nil
		}

		// request context is bounded by the request timeout, the socket outlives it
		logger := logging.ExtractLoggerFromContext(c.Request().Context())
		ctx, cancel := context.WithCancel(logging.SetLoggerInContext(context.Background(), logger))
		defer cancel()

		done := make(chan struct{})
		go heartbeatRoutine(conn, done)
		processRoutine(ctx, conn, c, handler)
		close(done)
		logger.Debug("websocket closed", zap.String("client.address", c.RealIP()))
		return nil
	}
}

func heartbeatRoutine(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func processRoutine(ctx context.Context, conn *websocket.Conn, c echo.Context, handler SocketHandler) {
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if err := handler(ctx, conn, c); err != nil {
			return
		}
	}
}

type progressMessage struct {
	CourseID string `json:"course_id"`
	LessonID string `json:"lesson_id"`
}

type socketReply struct {
	Type  string             `json:"type"`
	Data  interface{}        `json:"data,omitempty"`
	Error *RESTStandardError `json:"error,omitempty"`
}

func writeReply(conn *websocket.Conn, reply *socketReply) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(reply)
}

// HandleProgressSocket toggle lesson completion over the socket, one reply per message
func (ph *ProgressHandler) HandleProgressSocket(ctx context.Context, conn *websocket.Conn, c echo.Context) error {
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return err
	}

	msg := new(progressMessage)
	if err := json.Unmarshal(raw, msg); err != nil {
		return writeReply(conn, &socketReply{Type: "error", Error: NewRESTStandardError(http.StatusUnprocessableEntity, err.Error())})
	}
	if msg.CourseID == "" || msg.LessonID == "" {
		return writeReply(conn, &socketReply{Type: "error", Error: NewRESTStandardError(http.StatusBadRequest, "course_id and lesson_id are required")})
	}

	result, err := ph.ProgressUseCase.ToggleLesson(ctx, ph.viewer(c), msg.CourseID, msg.LessonID)
	if err != nil {
		code := domainErrorStatus(err)
		if code == 0 {
			logging.ExtractLoggerFromContext(ctx).Error(err.Error(), zap.String("lesson.id", msg.LessonID))
			code = http.StatusInternalServerError
		}
		return writeReply(conn, &socketReply{Type: "error", Error: NewRESTStandardError(code, err.Error())})
	}
	return writeReply(conn, &socketReply{Type: "toggle", Data: result})
}
