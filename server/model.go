package server

import (
	"math/rand"

	"github.com/gorilla/websocket"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
	"github.com/zucenko/navaid/navigation"
)

type GameServer struct {
	Config      *config.Config
	NavSessions map[string]*NavSession
	NavRequests chan NavRequest
	Closed      chan string
	Upgrader    *websocket.Upgrader
	seeds       *rand.Rand
}

type NavSessionState int

const (
	NS_NEW NavSessionState = iota
	NS_PLAY
	NS_ERR
	NS_OVER
)

// NavSession is one connected user. Everything touching Controller runs on
// the session's Loop goroutine.
type NavSession struct {
	State           NavSessionState
	Id              string
	Controller      *navigation.Controller
	Voice           bool
	Conn            *websocket.Conn
	GameOver        chan struct{}
	Errors          chan error
	Events          chan model.ClientMessage
	ConnectRequests chan ConnectRequest
	MessagesToSend  chan model.ServerMessage
	Closed          chan<- string

	announcements []string

	DebugInMessages  int
	DebugOutMessages int
	DebugDropped     int
}
