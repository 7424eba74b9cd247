package main

import (
	"log"

	"github.com/thesminc/POCkit-sub000/internal/bootstrap"
	"github.com/thesminc/POCkit-sub000/internal/shared/config"
	"github.com/thesminc/POCkit-sub000/internal/shared/server"
)

func main() {
	cfg := config.Load()
	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
