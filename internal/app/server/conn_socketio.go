package server

import (
	"encoding/json"
	"time"

	"github.com/pongarena/pongarena/internal/app/game"
	"github.com/pongarena/pongarena/pkg/logging"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
	"go.uber.org/zap"
)

// sioConn adapts a socket.io client to the core's Conn. The library already
// serializes emits per socket.
type sioConn struct {
	client *socket.Socket
}

func (c *sioConn) Send(event string, data any) error {
	return c.client.Emit(event, data)
}

func (c *sioConn) Close() error {
	c.client.Disconnect(true)
	return nil
}

// newSocketIOServer binds the socket.io transport. Each client gets a
// listener per inbound event that forwards into the hub, so both transports
// carry the same named events.
func (s *server) newSocketIOServer() *socket.Server {
	io := socket.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		playerID := s.hub.Connect(&sioConn{client: client})

		for _, event := range game.InboundEvents() {
			ev := event
			client.On(ev, func(args ...any) {
				s.hub.HandleEvent(playerID, ev, sioPayload(args))
			})
		}

		client.On("disconnect", func(...any) {
			s.hub.Disconnect(playerID)
			logging.Info("socket.io client disconnected",
				zap.String("player_id", playerID),
			)
		})
	})
	return io
}

// sioPayload re-encodes the first emit argument so the hub sees the same raw
// JSON regardless of transport.
func sioPayload(args []any) []byte {
	if len(args) == 0 {
		return nil
	}
	raw, err := json.Marshal(args[0])
	if err != nil {
		return nil
	}
	return raw
}

func socketIOOptions() *socket.ServerOptions {
	c := socket.DefaultServerOptions()
	c.SetServeClient(false)
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	return c
}
