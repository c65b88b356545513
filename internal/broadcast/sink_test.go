package broadcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ophis/holdem-engine/internal/table"
)

func recvWithTimeout(t *testing.T, ch <-chan table.Event) table.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return table.Event{}
	}
}

func TestPublishDeliversBroadcastToAllSubscribers(t *testing.T) {
	s := NewMemorySink()
	p0 := s.Subscribe("p0")
	p1 := s.Subscribe("p1")

	s.Publish(table.Broadcast("g1", table.EventHandOver, table.HandOverPayload{HandNumber: 1}))

	e0 := recvWithTimeout(t, p0)
	e1 := recvWithTimeout(t, p1)
	assert.Equal(t, table.EventHandOver, e0.Type)
	assert.Equal(t, table.EventHandOver, e1.Type)
}

func TestPublishTargetedSkipsNonRecipients(t *testing.T) {
	s := NewMemorySink()
	p0 := s.Subscribe("p0")
	p1 := s.Subscribe("p1")

	s.Publish(table.Targeted("g1", table.EventYourTurn, "p0", table.YourTurnPayload{PlayerID: "p0"}))

	payload, ok := recvWithTimeout(t, p0).Render("p0")
	require.True(t, ok)
	assert.Equal(t, "p0", payload.(table.YourTurnPayload).PlayerID)

	select {
	case <-p1:
		t.Fatal("p1 should not have received a your_turn event addressed to p0")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	s := NewMemorySink()
	p0 := s.Subscribe("p0")
	s.Unsubscribe("p0")

	s.Publish(table.Broadcast("g1", table.EventChat, "hello"))

	_, open := <-p0
	assert.False(t, open, "channel should be closed after unsubscribe")
}

func TestResubscribeReplacesChannel(t *testing.T) {
	s := NewMemorySink()
	first := s.Subscribe("p0")
	second := s.Subscribe("p0")

	s.Publish(table.Broadcast("g1", table.EventChat, "hi"))

	_, open := <-first
	assert.False(t, open)

	recvWithTimeout(t, second)
}
