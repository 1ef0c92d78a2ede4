package server

import (
	"encoding/gob"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/navaid/braille"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
)

func NewGameServer(cfg *config.Config) *GameServer {
	return &GameServer{
		Config:      cfg,
		NavSessions: make(map[string]*NavSession),
		NavRequests: make(chan NavRequest),
		Closed:      make(chan string, 16),
		Upgrader:    &websocket.Upgrader{},
		seeds:       seedSource(cfg),
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		awaiting := make(chan NavAwaiting, 1)
		select {
		case s.NavRequests <- NavRequest{NavAwaiting: awaiting}:
		case <-time.After(timeout):
			log.Warn("NavRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		var na NavAwaiting
		select {
		case na = <-awaiting:
			if na.ResponseCode != SESSION_READY {
				log.Warnf("HandleHttpCall no session, code:%d", na.ResponseCode)
				w.WriteHeader(na.ResponseCode.ToHttp())
				return
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall NavAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			go abandon(awaiting)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already answered the request
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			na.NavSession.Errors <- err
			return
		}
		defer con.Close()

		select {
		case na.NavSession.ConnectRequests <- ConnectRequest{Con: con}:
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall ConnectRequests TIMEOUTED")
			na.NavSession.Errors <- errors.New("connect timeout")
			return
		}

		log.Info("HandleHttpCall wait for session end")
		<-na.NavSession.GameOver
	}
}

// abandon ends a session whose caller stopped waiting for it.
func abandon(awaiting <-chan NavAwaiting) {
	na := <-awaiting
	if na.ResponseCode != SESSION_READY || na.NavSession == nil {
		return
	}
	na.NavSession.Errors <- errors.New("abandoned")
}

// Loop owns the session registry.
func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case req := <-s.NavRequests:
			ns, err := s.newNavSession()
			if err != nil {
				log.Errorf("GameServer.Loop cannot create session: %v", err)
				req.NavAwaiting <- NavAwaiting{ResponseCode: SESSION_INVALID}
				continue
			}
			s.NavSessions[ns.Id] = ns
			go ns.Loop()
			req.NavAwaiting <- NavAwaiting{ResponseCode: SESSION_READY, NavSession: ns}
		case id := <-s.Closed:
			delete(s.NavSessions, id)
			log.Infof("GameServer.Loop removed %s, %d sessions left", id, len(s.NavSessions))
		}
	}
}

func (ns *NavSession) Loop() {
	log.Infof("NavSession.Loop %s start", ns.Id)
	defer func() {
		close(ns.GameOver)
		ns.Closed <- ns.Id
		log.Infof("NavSession.Loop %s ended as %s", ns.Id, ns.State.Name())
	}()
	for {
		select {
		case cr := <-ns.ConnectRequests:
			ns.attach(cr.Con)
			ns.State = NS_PLAY
			ns.send(ns.MakeSetupMessage())
		case err := <-ns.Errors:
			if ns.State == NS_PLAY && websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ns.State = NS_OVER
			} else {
				log.Warnf("NavSession %s killed: %v", ns.Id, err)
				ns.State = NS_ERR
			}
			return
		case cm := <-ns.Events:
			ns.send(ns.Turn(cm))
		}
	}
}

// Turn applies one client request to the controller and builds the reply.
func (ns *NavSession) Turn(cm model.ClientMessage) model.ServerMessage {
	ns.announcements = nil
	var outcome model.Outcome
	switch {
	case cm.Move != nil:
		outcome, _ = ns.Controller.Move(cm.Move.DX, cm.Move.DY, ns.Voice)
	case cm.Reset:
		if err := ns.Controller.Reset(ns.Voice); err != nil {
			log.Errorf("NavSession %s reset failed: %v", ns.Id, err)
		}
	case cm.ToggleVoice:
		ns.Voice = !ns.Voice
		ns.Controller.Rescan(ns.Voice)
	case cm.Repeat:
		ns.Controller.Repeat()
	}
	m := model.ServerMessage{
		Status:        []model.Status{ns.status(outcome)},
		Announcements: ns.announcements,
	}
	ns.announcements = nil
	return m
}

// Announce collects speech for the reply currently being built.
func (ns *NavSession) Announce(text string) {
	ns.announcements = append(ns.announcements, text)
}

func (ns *NavSession) status(outcome model.Outcome) model.Status {
	snap := ns.Controller.Snapshot()
	return model.Status{
		Position:   snap.Position,
		Obstacles:  snap.Obstacles,
		Detections: snap.Detections,
		Message:    snap.Message,
		Braille:    braille.Encode(snap.Message),
		State:      snap.State.Name(),
		Voice:      ns.Voice,
		Outcome:    outcome,
	}
}

func (ns *NavSession) MakeSetupMessage() model.ServerMessage {
	snap := ns.Controller.Snapshot()
	return model.ServerMessage{
		Setup:  []model.Setup{{Session: ns.Id, Size: snap.Size}},
		Status: []model.Status{ns.status(0)},
	}
}

// send never blocks the session, a slow client loses messages.
func (ns *NavSession) send(m model.ServerMessage) {
	select {
	case ns.MessagesToSend <- m:
	default:
		ns.DebugDropped++
		log.Warnf("NavSession %s MessagesToSend FULL, dropping", ns.Id)
	}
}

func (ns *NavSession) attach(conn *websocket.Conn) {
	ns.Conn = conn
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Timeout() {
				return nil
			}
			return err
		})
	go ns.LoopChannelRead()
	go ns.LoopChannelWrite()
}

func (ns *NavSession) LoopChannelRead() {
	log.Printf("NavSession.LoopChannelRead %s STARTED", ns.Id)
	defer log.Printf("NavSession.LoopChannelRead %s ENDED", ns.Id)
	for {
		_, r, err := ns.Conn.NextReader()
		if err != nil {
			ns.Errors <- err
			return
		}
		cm := model.ClientMessage{}
		if err := gob.NewDecoder(r).Decode(&cm); err != nil {
			log.Warnf("NavSession %s cant decode: %v", ns.Id, err)
			ns.Errors <- err
			return
		}
		ns.DebugInMessages++

		select {
		case ns.Events <- cm:
		case <-ns.GameOver:
			return
		default:
			log.Warnf("Dropping client message, NavSession.Events FULL")
		}
	}
}

// LoopChannelWrite only consumes, it stops when the session is over.
func (ns *NavSession) LoopChannelWrite() {
	log.Printf("NavSession.LoopChannelWrite %s STARTED", ns.Id)
	defer log.Printf("NavSession.LoopChannelWrite %s ENDED", ns.Id)
	for {
		select {
		case <-ns.GameOver:
			return
		case mes := <-ns.MessagesToSend:
			if err := ns.write(mes); err != nil {
				log.Warnf("NavSession.LoopChannelWrite %s: %v", ns.Id, err)
				ns.Errors <- err
				return
			}
			ns.DebugOutMessages++
		}
	}
}

func (ns *NavSession) write(mes model.ServerMessage) error {
	w, err := ns.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(mes); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
