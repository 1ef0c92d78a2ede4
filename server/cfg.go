package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
	"github.com/zucenko/navaid/navigation"
)

// seedSource feeds one independent random source per session. A configured
// seed makes the whole sequence of sessions reproducible.
func seedSource(cfg *config.Config) *rand.Rand {
	if cfg.Seed != nil {
		return rand.New(rand.NewSource(*cfg.Seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (s *GameServer) newNavSession() (*NavSession, error) {
	ns := &NavSession{
		State:           NS_NEW,
		Id:              uuid.NewString(),
		GameOver:        make(chan struct{}),
		Errors:          make(chan error, 2),
		Events:          make(chan model.ClientMessage, 10),
		ConnectRequests: make(chan ConnectRequest),
		MessagesToSend:  make(chan model.ServerMessage, 10),
		Closed:          s.Closed,
	}
	rng := rand.New(rand.NewSource(s.seeds.Int63()))
	controller, err := navigation.New(s.Config, rng, ns)
	if err != nil {
		return nil, err
	}
	ns.Controller = controller
	log.Infof("created NavSession %s at %v", ns.Id, controller.Position())
	return ns, nil
}

// HandleConfig serves the effective configuration so clients can size the grid
// before connecting.
func (s *GameServer) HandleConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(s.Config); err != nil {
			log.Warnf("HandleConfig encode %v", err)
		}
	}
}
