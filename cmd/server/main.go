package main

import (
	"leadboard/docs"
	"leadboard/internal/config"
	"leadboard/internal/server"

	log "github.com/sirupsen/logrus"
)

// @title           Lead Board API
// @version         1.0
// @description     Sales pipeline board: drag leads between stages and persist stage changes.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	cfg := config.Load()
	docs.SwaggerInfo.Host = "localhost:" + cfg.ServerPort

	s, err := server.Init(cfg)
	if err != nil {
		log.Fatalf("❌ Server initialization failed: %v", err)
	}

	s.Run()
}
