package main

import (
	"flag"
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	log.WithFields(log.Fields{
		"grid":      cfg.GridSize,
		"obstacles": cfg.ObstacleCount,
		"layout":    cfg.Layout,
	}).Info("navaid starting")

	s := Server{
		GameServer: server.NewGameServer(cfg),
	}
	go s.GameServer.Loop()
	s.routes()
	log.Printf("listening on %s", cfg.Listen)
	log.Fatalln(http.ListenAndServe(cfg.Listen, s.router))
}
