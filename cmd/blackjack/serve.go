package main

import (
	"context"

	"github.com/anchal00/blackjack/internal/config"
	"github.com/anchal00/blackjack/internal/logger"
	"github.com/anchal00/blackjack/internal/server"
)

type ServeCmd struct {
	EnvFile string `kong:"default='.env',help='Environment file to load before reading BLACKJACK_* variables'"`
	Port    string `kong:"help='Port to listen on, overrides BLACKJACK_PORT'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := config.Load(c.EnvFile)
	if err != nil {
		return err
	}
	if c.Port != "" {
		cfg.Port = c.Port
	}
	log := logger.NewWithOptions("blackjack", cfg.LoggerOptions())
	gs, err := server.NewGameServer(cfg, log)
	if err != nil {
		log.Error("Failed to set up game server", err)
		return err
	}
	return gs.Run(context.Background())
}
