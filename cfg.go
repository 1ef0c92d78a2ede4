package main

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
)

// FetchConfig asks the server for the grid size before the window opens.
func FetchConfig(base string) (*config.Config, error) {
	resp, err := http.Get("http://" + base + "/config")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("config: %s", resp.Status)
	}
	cfg := &config.Config{}
	if err := json.NewDecoder(resp.Body).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type Connection struct {
	conn     *websocket.Conn
	Incoming chan model.ServerMessage
	Done     chan struct{}
}

func Dial(base string) (*Connection, error) {
	u := url.URL{Scheme: "ws", Host: base, Path: "/play"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}
	c := &Connection{
		conn:     conn,
		Incoming: make(chan model.ServerMessage, 10),
		Done:     make(chan struct{}),
	}
	go c.loopRead()
	return c, nil
}

func (c *Connection) loopRead() {
	defer close(c.Done)
	for {
		_, r, err := c.conn.NextReader()
		if err != nil {
			log.Warnf("Connection read ended: %v", err)
			return
		}
		m := model.ServerMessage{}
		if err := gob.NewDecoder(r).Decode(&m); err != nil {
			log.Warnf("cant decode server message: %v", err)
			return
		}
		c.Incoming <- m
	}
}

// Send is called from the update loop only.
func (c *Connection) Send(cm model.ClientMessage) error {
	w, err := c.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(w).Encode(cm); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (c *Connection) Close() error {
	err := c.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		log.Warnf("close frame: %v", err)
	}
	return c.conn.Close()
}
