package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pongarena/pongarena/internal/app/game"
	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

const wsWriteTimeout = 5 * time.Second

// wsEnvelope frames every event on the raw websocket transport.
type wsEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// wsConn adapts a gorilla websocket connection to the core's Conn. The mutex
// serializes writes; gorilla connections allow only one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) Send(event string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteJSON(wsEnvelope{Type: event, Data: raw})
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (s *server) handleWebSocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("failed to upgrade connection", zap.Error(err))
		return
	}
	defer conn.Close()

	wc := &wsConn{conn: conn}
	playerID := s.hub.Connect(wc)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			s.hub.Disconnect(playerID)
			logging.Info("connection closed",
				zap.String("remote_address", conn.RemoteAddr().String()),
				zap.Error(err),
			)
			break
		}

		var envelope wsEnvelope
		if err := json.Unmarshal(message, &envelope); err != nil || envelope.Type == "" {
			wc.Send(game.EventError, map[string]string{"message": "Invalid payload"})
			continue
		}
		s.hub.HandleEvent(playerID, envelope.Type, envelope.Data)
	}
}
