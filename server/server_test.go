package server

import (
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
	"github.com/zucenko/navaid/navigation"
)

func testConfig() *config.Config {
	cfg := config.Default()
	seed := int64(5)
	cfg.Seed = &seed
	cfg.Obstacles = []model.Obstacle{{X: 5, Y: 4}, {X: 7, Y: 7}}
	cfg.ObstacleCount = len(cfg.Obstacles)
	return cfg
}

func newTestSession(t *testing.T) *NavSession {
	t.Helper()
	s := NewGameServer(testConfig())
	ns, err := s.newNavSession()
	require.NoError(t, err)
	return ns
}

func TestTurnMoveBlocked(t *testing.T) {
	ns := newTestSession(t)
	ns.Voice = true

	m := ns.Turn(model.ClientMessage{Move: &model.Move{DX: 0, DY: -1}})
	require.Len(t, m.Status, 1)
	st := m.Status[0]
	assert.Equal(t, model.Blocked, st.Outcome)
	assert.Equal(t, model.Position{X: 5, Y: 5}, st.Position)
	assert.Equal(t, navigation.MessageBlocked, st.Message)
	assert.NotEmpty(t, st.Braille)
	assert.Equal(t, []string{navigation.MessageBlocked}, m.Announcements)
}

func TestTurnMoveAndScan(t *testing.T) {
	ns := newTestSession(t)
	ns.Voice = true

	m := ns.Turn(model.ClientMessage{Move: &model.Move{DX: 1}})
	st := m.Status[0]
	assert.Equal(t, model.Moved, st.Outcome)
	assert.Equal(t, model.Position{X: 6, Y: 5}, st.Position)
	assert.Equal(t, "ALERT", st.State)
	require.NotEmpty(t, st.Detections)
	assert.Equal(t, "5-4", st.Detections[0].ID)
	msg := "Obstacle detected back-left, 1.4 meters away"
	assert.Equal(t, msg, st.Message)
	assert.Equal(t, []string{"Moved right", navigation.WarningPrefix + msg}, m.Announcements)
}

func TestTurnVoiceToggleRescans(t *testing.T) {
	ns := newTestSession(t)
	alert := "Obstacle detected up, 1.0 meters away"

	m := ns.Turn(model.ClientMessage{ToggleVoice: true})
	assert.True(t, m.Status[0].Voice)
	assert.Equal(t, alert, m.Status[0].Message)
	assert.Equal(t, []string{navigation.WarningPrefix + alert}, m.Announcements)

	m = ns.Turn(model.ClientMessage{ToggleVoice: true})
	assert.False(t, m.Status[0].Voice)
	assert.Equal(t, alert, m.Status[0].Message)
	assert.Empty(t, m.Announcements)

	m = ns.Turn(model.ClientMessage{Repeat: true})
	assert.Equal(t, []string{alert}, m.Announcements)
}

func TestTurnVoiceToggleReplacesBlockedMessage(t *testing.T) {
	ns := newTestSession(t)
	alert := "Obstacle detected up, 1.0 meters away"

	m := ns.Turn(model.ClientMessage{Move: &model.Move{DY: -1}})
	assert.Equal(t, navigation.MessageBlocked, m.Status[0].Message)
	assert.Empty(t, m.Announcements)

	m = ns.Turn(model.ClientMessage{ToggleVoice: true})
	assert.Equal(t, alert, m.Status[0].Message)
	assert.Equal(t, []string{navigation.WarningPrefix + alert}, m.Announcements)

	m = ns.Turn(model.ClientMessage{Move: &model.Move{DY: -1}})
	assert.Equal(t, []string{navigation.MessageBlocked}, m.Announcements)

	m = ns.Turn(model.ClientMessage{ToggleVoice: true})
	assert.False(t, m.Status[0].Voice)
	assert.Equal(t, alert, m.Status[0].Message)
	assert.Empty(t, m.Announcements)
}

func TestTurnVoiceToggleKeepsMediumAlertSilent(t *testing.T) {
	cfg := testConfig()
	cfg.Obstacles = []model.Obstacle{{X: 5, Y: 7}}
	cfg.ObstacleCount = len(cfg.Obstacles)
	ns, err := NewGameServer(cfg).newNavSession()
	require.NoError(t, err)

	m := ns.Turn(model.ClientMessage{ToggleVoice: true})
	assert.True(t, m.Status[0].Voice)
	assert.Equal(t, "Obstacle detected down, 2.0 meters away", m.Status[0].Message)
	assert.Equal(t, "ALERT", m.Status[0].State)
	assert.Empty(t, m.Announcements)
}

func TestTurnReset(t *testing.T) {
	ns := newTestSession(t)
	ns.Voice = true
	m := ns.Turn(model.ClientMessage{Reset: true})
	st := m.Status[0]
	assert.Len(t, st.Obstacles, 2)
	require.NotEmpty(t, m.Announcements)
	assert.Equal(t, navigation.MessageReset, m.Announcements[0])
}

func TestSessionsGetIndependentIds(t *testing.T) {
	s := NewGameServer(testConfig())
	a, err := s.newNavSession()
	require.NoError(t, err)
	b, err := s.newNavSession()
	require.NoError(t, err)
	assert.NotEqual(t, a.Id, b.Id)
	assert.NotSame(t, a.Controller, b.Controller)
}

func TestNewNavSessionFailsOnCrowdedGrid(t *testing.T) {
	cfg := config.Default()
	cfg.GridSize = 2
	cfg.ObstacleCount = 4
	s := NewGameServer(cfg)
	_, err := s.newNavSession()
	assert.Error(t, err)
}

func TestHandleConfig(t *testing.T) {
	s := NewGameServer(testConfig())
	rec := httptest.NewRecorder()
	s.HandleConfig()(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(11), got["grid_size"])
	assert.Equal(t, float64(5), got["seed"])
}

func readServerMessage(t *testing.T, conn *websocket.Conn) model.ServerMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, r, err := conn.NextReader()
	require.NoError(t, err)
	m := model.ServerMessage{}
	require.NoError(t, gob.NewDecoder(r).Decode(&m))
	return m
}

func writeClientMessage(t *testing.T, conn *websocket.Conn, cm model.ClientMessage) {
	t.Helper()
	w, err := conn.NextWriter(websocket.BinaryMessage)
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(cm))
	require.NoError(t, w.Close())
}

func TestWebsocketRoundTrip(t *testing.T) {
	s := NewGameServer(testConfig())
	go s.Loop()
	srv := httptest.NewServer(s.HandleHttpCall())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	setup := readServerMessage(t, conn)
	require.Len(t, setup.Setup, 1)
	assert.Equal(t, 11, setup.Setup[0].Size)
	assert.NotEmpty(t, setup.Setup[0].Session)
	require.Len(t, setup.Status, 1)
	assert.Equal(t, model.Position{X: 5, Y: 5}, setup.Status[0].Position)

	writeClientMessage(t, conn, model.ClientMessage{Move: &model.Move{DX: 0, DY: 1}})
	reply := readServerMessage(t, conn)
	require.Len(t, reply.Status, 1)
	assert.Equal(t, model.Position{X: 5, Y: 6}, reply.Status[0].Position)
	assert.Equal(t, model.Moved, reply.Status[0].Outcome)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
}

func TestAbandonedSessionEnds(t *testing.T) {
	s := NewGameServer(testConfig())
	ns, err := s.newNavSession()
	require.NoError(t, err)
	s.NavSessions[ns.Id] = ns
	go ns.Loop()

	awaiting := make(chan NavAwaiting, 1)
	awaiting <- NavAwaiting{ResponseCode: SESSION_READY, NavSession: ns}
	abandon(awaiting)

	select {
	case <-ns.GameOver:
	case <-time.After(2 * time.Second):
		t.Fatal("session still running")
	}
	assert.Equal(t, NS_ERR, ns.State)
	assert.Equal(t, ns.Id, <-s.Closed)

	invalid := make(chan NavAwaiting, 1)
	invalid <- NavAwaiting{ResponseCode: SESSION_INVALID}
	abandon(invalid)
}

func TestResponseCodes(t *testing.T) {
	assert.Equal(t, HTTP_SUCCESS, SESSION_READY.ToHttp())
	assert.Equal(t, HTTP_SERVER_ERR, SESSION_INVALID.ToHttp())
	assert.Equal(t, "NS_PLAY", NS_PLAY.Name())
}
