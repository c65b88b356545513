package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/broadcast"
	"github.com/ophis/holdem-engine/internal/table"
)

type recordingSubmitter struct {
	submitted chan wireAction
}

func (r *recordingSubmitter) SubmitAction(playerID string, action betting.Action, amount int) {
	r.submitted <- wireAction{Action: string(action), Amount: amount}
}

func newTestServer(t *testing.T, sink broadcast.Sink, sub ActionSubmitter, playerID string) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Accept(w, r, playerID, sink, sub)
		require.NoError(t, err)
		go conn.WritePump()
		conn.ReadPump()
	}))
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestWritePumpDeliversRenderedPayload(t *testing.T) {
	sink := broadcast.NewMemorySink()
	sub := &recordingSubmitter{submitted: make(chan wireAction, 1)}
	wsURL := newTestServer(t, sink, sub, "p0")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the server goroutine time to subscribe before publishing.
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		sink.Publish(table.Broadcast("g1", table.EventHandOver, table.HandOverPayload{HandNumber: 3}))
		_ = conn.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		_, data, err := conn.ReadMessage()
		if err == nil {
			var we wireEvent
			require.NoError(t, json.Unmarshal(data, &we))
			assert.Equal(t, table.EventHandOver, we.Type)
			return
		}
	}
	t.Fatal("never received the published event")
}

func TestReadPumpForwardsActionToSubmitter(t *testing.T) {
	sink := broadcast.NewMemorySink()
	sub := &recordingSubmitter{submitted: make(chan wireAction, 1)}
	wsURL := newTestServer(t, sink, sub, "p0")

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(wireAction{Action: "call", Amount: 20}))

	select {
	case got := <-sub.submitted:
		assert.Equal(t, "call", got.Action)
		assert.Equal(t, 20, got.Amount)
	case <-time.After(time.Second):
		t.Fatal("action was never forwarded")
	}
}
