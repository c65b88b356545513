package orchestrator

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/broadcast"
	"github.com/ophis/holdem-engine/internal/deck"
	"github.com/ophis/holdem-engine/internal/pot"
	"github.com/ophis/holdem-engine/internal/table"
)

func newTestManager() *pot.Manager {
	return pot.NewManager()
}

func newThreeSeatGame() *table.GameState {
	g := table.NewGameState("g1", table.NoLimit, 10, 20)
	g.Seats = append(g.Seats,
		&table.PlayerSeat{PlayerID: "p0", Chips: 1000, Seat: 0},
		&table.PlayerSeat{PlayerID: "p1", Chips: 1000, Seat: 1},
		&table.PlayerSeat{PlayerID: "p2", Chips: 1000, Seat: 2},
	)
	return g
}

// TestScenarioAAllFoldPreflop pins the literal chip outcome from the
// all-fold-preflop scenario. With three seats and dealer rotating from
// index 0 to p1, p2 posts small blind, p0 posts big blind, and action
// opens on p1. p1 and p2 both fold, leaving p0 as the sole survivor: p0
// recovers its own 20-chip blind plus p2's 10-chip blind.
func TestScenarioAAllFoldPreflop(t *testing.T) {
	g := newThreeSeatGame()
	sink := broadcast.NewMemorySink()
	o := New(g, sink, nil, rand.New(rand.NewSource(1)), quartz.NewMock(t))
	o.ThinkTimeMin, o.ThinkTimeMax = 0, 0
	o.StreetPause = 0

	done := make(chan struct{})
	go func() {
		o.runHand(context.Background())
		close(done)
	}()

	submitWhenExpected(t, o, g, "p1", betting.Fold, 0)
	submitWhenExpected(t, o, g, "p2", betting.Fold, 0)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hand did not complete")
	}

	assert.Equal(t, 1010, g.SeatByID("p0").Chips)
	assert.Equal(t, 1000, g.SeatByID("p1").Chips)
	assert.Equal(t, 990, g.SeatByID("p2").Chips)
}

// submitWhenExpected polls until g.ActorIndex names expectedPID then submits
// the given action; it guards against a race between the driver advancing
// g.ActorIndex and the test submitting for the previous actor.
func submitWhenExpected(t *testing.T, o *Orchestrator, g *table.GameState, expectedPID string, action betting.Action, amount int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if g.ActorIndex >= 0 && g.Seats[g.ActorIndex].PlayerID == expectedPID {
			o.SubmitAction(expectedPID, action, amount)
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("actor never became %s", expectedPID)
}

func TestAwardSidePotsSplitsTiedBoardPlay(t *testing.T) {
	g := table.NewGameState("g1", table.NoLimit, 10, 20)
	g.Seats = append(g.Seats,
		&table.PlayerSeat{PlayerID: "p0", Seat: 0, HoleCards: deck.ParseCards("2c", "3d")},
		&table.PlayerSeat{PlayerID: "p1", Seat: 1, HoleCards: deck.ParseCards("4c", "5d")},
	)
	g.Community = deck.ParseCards("As", "Ks", "Qs", "Js", "10s")

	o := &Orchestrator{game: g, pot: newTestManager()}
	o.pot.AddContribution("p0", 51, false)
	o.pot.AddContribution("p1", 50, false)

	entries := o.awardSidePots()
	require.Len(t, entries, 2)

	byID := map[string]table.WinnerEntry{}
	for _, e := range entries {
		byID[e.PlayerID] = e
	}
	assert.Equal(t, 51, byID["p0"].Amount, "lower seat index takes the odd chip")
	assert.Equal(t, 50, byID["p1"].Amount)
}

func TestAwardSoleSurvivorTakesWholePot(t *testing.T) {
	g := table.NewGameState("g1", table.NoLimit, 10, 20)
	g.Seats = append(g.Seats,
		&table.PlayerSeat{PlayerID: "p0", Seat: 0},
		&table.PlayerSeat{PlayerID: "p1", Seat: 1, Folded: true},
		&table.PlayerSeat{PlayerID: "p2", Seat: 2, Folded: true},
	)
	o := &Orchestrator{game: g, pot: newTestManager()}
	o.pot.AddContribution("p0", 10, false)
	o.pot.AddContribution("p1", 10, false)
	o.pot.AddContribution("p2", 10, false)

	entry := o.awardSoleSurvivor()
	assert.Equal(t, "p0", entry.PlayerID)
	assert.Equal(t, 30, entry.Amount)
	assert.Equal(t, 30, g.SeatByID("p0").Chips)
}
