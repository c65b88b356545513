package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/table"
)

func newSeat(chips, bet int) *table.PlayerSeat {
	return &table.PlayerSeat{PlayerID: "bot1", Chips: chips, Bet: bet}
}

func TestDecideEasyNeverExceedsValidActions(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	valid := betting.ValidActions{CallAmount: 20, CanCheck: false, CanRaise: true, MinRaise: 40, MaxRaise: 1000}
	for i := 0; i < 50; i++ {
		d := decideEasy(valid, rng)
		if d.Action == betting.Raise {
			assert.GreaterOrEqual(t, d.Amount, valid.MinRaise)
			assert.LessOrEqual(t, d.Amount, valid.MaxRaise)
		}
	}
}

func TestDecideMediumChecksWhenFree(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	valid := betting.ValidActions{CallAmount: 0, CanCheck: true}
	d := decideMedium(nil, newSeat(1000, 0), valid, rng)
	assert.Equal(t, betting.Check, d.Action)
}

func TestDecideMediumFoldsToBigBet(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	valid := betting.ValidActions{CallAmount: 900, CanCheck: false}
	d := decideMedium(nil, newSeat(100, 0), valid, rng)
	assert.Equal(t, betting.Fold, d.Action)
}

func TestSafetyClampsConvertLowRaiseToCall(t *testing.T) {
	seat := newSeat(1000, 0)
	valid := betting.ValidActions{CallAmount: 50}
	d := Decision{Action: betting.Raise, Amount: 30}
	clamped := ApplySafetyClamps(seat, valid, d)
	assert.Equal(t, betting.Call, clamped.Action)
	assert.Equal(t, 50, clamped.Amount)
}

func TestSafetyClampsCapAmountToStack(t *testing.T) {
	seat := newSeat(100, 0)
	valid := betting.ValidActions{CallAmount: 10}
	d := Decision{Action: betting.Raise, Amount: 500}
	clamped := ApplySafetyClamps(seat, valid, d)
	assert.Equal(t, 100, clamped.Amount)
}
