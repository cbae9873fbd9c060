package server

import (
	"errors"
	"fmt"

	"github.com/pongarena/pongarena/internal/app/game"
	"github.com/spf13/viper"
)

type Config struct {
	Port  string
	Match game.MatchConfig
}

// NewConfig reads configs/server/config.yaml with env overrides. Every key
// has a default so the server also runs with no config file at all.
func NewConfig() Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs/server")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("Server.Port", "8080")
	viper.SetDefault("Match.SetDuration", "120s")
	viper.SetDefault("Match.RestDuration", "30s")
	viper.SetDefault("Match.TickInterval", "1s")
	viper.SetDefault("Match.BallReleaseDelay", "2s")
	viper.SetDefault("Match.BallRepeatDelay", "500ms")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return Config{
		Port: viper.GetString("Server.Port"),
		Match: game.MatchConfig{
			SetDuration:      viper.GetDuration("Match.SetDuration"),
			RestDuration:     viper.GetDuration("Match.RestDuration"),
			TickInterval:     viper.GetDuration("Match.TickInterval"),
			BallReleaseDelay: viper.GetDuration("Match.BallReleaseDelay"),
			BallRepeatDelay:  viper.GetDuration("Match.BallRepeatDelay"),
		},
	}
}
