package server

import (
	"fmt"

	"github.com/gorilla/websocket"
)

const HTTP_SUCCESS = 200
const HTTP_BAD_REQUEST = 400
const HTTP_TIMEOUT = 408
const HTTP_SERVER_ERR = 503

type ResponseCode int

const (
	SESSION_READY ResponseCode = iota
	SESSION_INVALID
)

func (h ResponseCode) ToHttp() int {
	switch h {
	case SESSION_READY:
		return HTTP_SUCCESS
	case SESSION_INVALID:
		return HTTP_SERVER_ERR
	default:
		return HTTP_BAD_REQUEST
	}
}

func (s NavSessionState) Name() string {
	switch s {
	case NS_NEW:
		return "NS_NEW"
	case NS_PLAY:
		return "NS_PLAY"
	case NS_ERR:
		return "NS_ERR"
	case NS_OVER:
		return "NS_OVER"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

type NavAwaiting struct {
	ResponseCode ResponseCode
	NavSession   *NavSession
}

type NavRequest struct {
	NavAwaiting chan NavAwaiting
}

type ConnectRequest struct {
	Con *websocket.Conn
}
