package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/petriapp/petri-backend/internal/config"
	"github.com/petriapp/petri-backend/internal/db"
	"github.com/petriapp/petri-backend/internal/model"
	"github.com/petriapp/petri-backend/internal/server"
)

// Set via -ldflags "-X main.gitSHA=... -X main.buildTime=...".
var (
	gitSHA    = "dev"
	buildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Tree{},
		&model.Token{},
		&model.Share{},
		&model.Trade{},
		&model.HealthHistory{},
		&model.TreePersonality{},
		&model.ChatMessage{},
	); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	srv, err := server.New(context.Background(), conn, cfg, gitSHA, buildTime)
	if err != nil {
		log.Fatalf("server init error: %v", err)
	}

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
