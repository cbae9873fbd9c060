package main

import (
	"github.com/pongarena/pongarena/internal/app/server"
	"github.com/pongarena/pongarena/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	logging.Fatal("Game server exited: ", zap.Error(
		server.NewServer().Start(),
	))
}
