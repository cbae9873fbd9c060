package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pongarena/pongarena/internal/app/game"
	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

type server struct {
	config   Config
	hub      *game.Hub
	upgrader websocket.Upgrader
}

func NewServer() *server {
	cfg := NewConfig()
	return &server{
		config: cfg,
		hub:    game.NewHub(cfg.Match),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
	}
}

// Start method    starts the game server with both transport bindings mounted
func (s *server) Start() error {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ws", s.handleWebSocket)

	io := s.newSocketIOServer()
	sioHandler := gin.WrapH(io.ServeHandler(socketIOOptions()))
	router.GET("/socket.io/*any", sioHandler)
	router.POST("/socket.io/*any", sioHandler)

	logging.Info("game server started", zap.String("port", s.config.Port))
	return router.Run("0.0.0.0:" + s.config.Port)
}
