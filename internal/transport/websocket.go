// Package transport frames table events and inbound actions over a
// websocket connection: one Connection per connected player, subscribed to
// a game's broadcast Sink and forwarding submitted actions to an
// Orchestrator. It carries plain JSON rather than a binary protocol codec,
// since nothing here needs cross-language wire compatibility.
package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/broadcast"
	"github.com/ophis/holdem-engine/internal/table"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ActionSubmitter is the Orchestrator entry point a Connection forwards
// inbound action messages to.
type ActionSubmitter interface {
	SubmitAction(playerID string, action betting.Action, amount int)
}

// wireEvent is the JSON envelope delivered for one rendered event.
type wireEvent struct {
	Type    table.EventType `json:"type"`
	GameID  string          `json:"game_id"`
	Payload any             `json:"payload"`
}

// wireAction is the JSON envelope a client sends to submit an action.
type wireAction struct {
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// Connection binds one player's websocket to a game's broadcast Sink and
// Orchestrator. One Connection is created per accepted upgrade.
type Connection struct {
	conn      *websocket.Conn
	sink      broadcast.Sink
	submitter ActionSubmitter
	playerID  string
	events    <-chan table.Event
}

// Accept upgrades r to a websocket connection for playerID, subscribes it
// to sink, and returns a Connection ready for ReadPump/WritePump. Callers
// run both pumps in their own goroutines; ReadPump unsubscribes on return.
func Accept(w http.ResponseWriter, r *http.Request, playerID string, sink broadcast.Sink, submitter ActionSubmitter) (*Connection, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return &Connection{
		conn:      conn,
		sink:      sink,
		submitter: submitter,
		playerID:  playerID,
		events:    sink.Subscribe(playerID),
	}, nil
}

// ReadPump reads inbound action messages until the connection errors or
// closes, forwarding each to the submitter. Malformed messages are dropped
// rather than closing the connection.
func (c *Connection) ReadPump() {
	defer func() {
		c.sink.Unsubscribe(c.playerID)
		_ = c.conn.Close()
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var wa wireAction
		if err := json.Unmarshal(message, &wa); err != nil {
			continue
		}
		c.submitter.SubmitAction(c.playerID, betting.Action(wa.Action), wa.Amount)
	}
}

// WritePump delivers every event the Sink routes to this player, pinging on
// idle, until the subscription channel closes (on Unsubscribe) or a write
// fails.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.events:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			payload, ok := event.Render(c.playerID)
			if !ok {
				continue
			}
			data, err := json.Marshal(wireEvent{Type: event.Type, GameID: event.GameID, Payload: payload})
			if err != nil {
				continue
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
