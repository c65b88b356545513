package table

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ophis/holdem-engine/internal/deck"
)

func TestBroadcastDeliversToEveryRecipient(t *testing.T) {
	e := Broadcast("g1", EventHandOver, HandOverPayload{HandNumber: 3})
	p, ok := e.Render("anyone")
	assert.True(t, ok)
	assert.Equal(t, HandOverPayload{HandNumber: 3}, p)
}

func TestTargetedSkipsOtherRecipients(t *testing.T) {
	e := Targeted("g1", EventYourTurn, "p0", YourTurnPayload{PlayerID: "p0"})

	_, ok := e.Render("p1")
	assert.False(t, ok)

	p, ok := e.Render("p0")
	assert.True(t, ok)
	assert.Equal(t, "p0", p.(YourTurnPayload).PlayerID)
}

func TestPerRecipientRendersDistinctPayloads(t *testing.T) {
	e := PerRecipient("g1", EventGameState, func(recipientID string) any {
		return recipientID + "-view"
	})
	p0, ok := e.Render("p0")
	assert.True(t, ok)
	assert.Equal(t, "p0-view", p0)

	p1, ok := e.Render("p1")
	assert.True(t, ok)
	assert.Equal(t, "p1-view", p1)
}

func TestGameStatePayloadMasksOpponentHoleCards(t *testing.T) {
	g := NewGameState("g1", NoLimit, 1, 2)
	g.Seats = append(g.Seats,
		&PlayerSeat{PlayerID: "p0", HoleCards: deck.ParseCards("As", "Ad")},
		&PlayerSeat{PlayerID: "p1", HoleCards: deck.ParseCards("Ks", "Kd")},
	)

	view := GameStatePayload(g, "p0", false)
	assert.Equal(t, []string{"As", "Ad"}, view.Players[0].HoleCards)
	assert.Equal(t, []string{MaskedCard, MaskedCard}, view.Players[1].HoleCards)
}
