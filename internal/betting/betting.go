// Package betting implements a single street's betting state machine:
// which actions are legal, what happens when one is applied, and when the
// round is over.
package betting

import (
	"github.com/ophis/holdem-engine/internal/table"
)

// Action is one of the five submittable action tokens.
type Action string

const (
	Fold  Action = "fold"
	Check Action = "check"
	Call  Action = "call"
	Raise Action = "raise"
	AllIn Action = "all_in"
)

// Outcome reports what happened after Round.Apply.
type Outcome int

const (
	Continue Outcome = iota
	RoundComplete
	AllFolded
)

// ValidActions describes what the current actor may legally do.
type ValidActions struct {
	CallAmount int
	CanCheck   bool
	CanRaise   bool
	MinRaise   int
	MaxRaise   int
}

// Round is one street's betting state machine. It mutates the GameState
// seats it was constructed with; it never owns the pot ledger (the
// orchestrator feeds committed chips to the pot manager itself).
type Round struct {
	game *table.GameState

	currentBet    int
	lastRaiseSize int
	raiseCount    int
	acted         map[string]bool

	fixedStreetBet int // 0 in no-limit
}

// NewRound starts a betting round. fixedStreetBet is the fixed-limit bet
// size for this street (BB preflop/flop, 2*BB turn/river); pass 0 for
// no-limit games.
func NewRound(game *table.GameState, fixedStreetBet int) *Round {
	for _, s := range game.Seats {
		s.StartStreet()
	}
	return &Round{
		game:           game,
		lastRaiseSize:  game.BigBlind,
		acted:          make(map[string]bool),
		fixedStreetBet: fixedStreetBet,
	}
}

// SeedCurrentBet sets the round's starting high bet (e.g. the big blind
// already posted preflop) without counting it as a raise.
func (r *Round) SeedCurrentBet(amount int) {
	r.currentBet = amount
}

func (r *Round) isFixedLimit() bool {
	return r.fixedStreetBet > 0
}

// ValidActionsFor computes the legal actions for seat.
func (r *Round) ValidActionsFor(seat *table.PlayerSeat) ValidActions {
	callAmount := r.currentBet - seat.Bet
	if callAmount < 0 {
		callAmount = 0
	}
	if callAmount > seat.Chips {
		callAmount = seat.Chips
	}

	va := ValidActions{
		CallAmount: callAmount,
		CanCheck:   callAmount == 0,
	}

	if r.isFixedLimit() {
		target := r.currentBet + r.fixedStreetBet
		va.MinRaise = target
		va.MaxRaise = target
		va.CanRaise = seat.Chips > callAmount && r.raiseCount < 4
		return va
	}

	minRaise := r.currentBet + max(r.lastRaiseSize, r.game.BigBlind)
	va.MinRaise = minRaise
	va.MaxRaise = seat.Chips + seat.Bet
	va.CanRaise = seat.Chips > callAmount
	return va
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Apply mutates state for pid taking action with the given total raise
// target (ignored except for Raise; AllIn always targets the whole stack).
// It returns the round outcome
// and the number of chips newly committed to the pot by this action (for
// the caller to forward to the pot manager).
func (r *Round) Apply(pid string, action Action, totalRaiseTarget int) (Outcome, int) {
	seat := r.game.SeatByID(pid)
	if seat == nil {
		panic("betting: unknown player " + pid)
	}

	committed := 0
	switch action {
	case Fold:
		seat.Folded = true
		r.acted[pid] = true

	case Check:
		va := r.ValidActionsFor(seat)
		if !va.CanCheck {
			panic("betting: check is not legal for " + pid)
		}
		r.acted[pid] = true

	case Call:
		va := r.ValidActionsFor(seat)
		committed = seat.Commit(va.CallAmount)
		r.acted[pid] = true

	case Raise:
		committed = r.applyRaise(seat, totalRaiseTarget)

	case AllIn:
		shove := seat.Chips + seat.Bet
		if shove > r.currentBet {
			committed = r.applyRaise(seat, shove)
		} else {
			committed = seat.Commit(seat.Chips)
			seat.AllIn = true
			r.acted[pid] = true
		}

	default:
		panic("betting: unknown action " + string(action))
	}

	r.advanceActor()
	return r.outcome(), committed
}

// applyRaise clamps target into the legal raise range and commits the
// delta, updating current bet / last raise size / acted-set. A full raise
// resets the acted-set to just the raiser. A short all-in that does not
// reach a full raise still lifts currentBet but leaves the acted-set as it
// was, only marking the raiser, and does not count toward the raise cap.
// Round.outcome's completion check still requires every seat able to act
// to match the new currentBet, so seats that already acted must still
// answer the extra chips.
func (r *Round) applyRaise(seat *table.PlayerSeat, totalRaiseTarget int) int {
	va := r.ValidActionsFor(seat)

	var target int
	maxStack := seat.Chips + seat.Bet
	switch {
	case r.isFixedLimit():
		target = va.MinRaise
	case totalRaiseTarget >= maxStack:
		target = maxStack
	case totalRaiseTarget < va.MinRaise:
		// Either clamp up to the legal min-raise, or go all-in short of it.
		if maxStack >= va.MinRaise {
			target = va.MinRaise
		} else {
			target = maxStack
		}
	default:
		target = totalRaiseTarget
	}

	delta := target - seat.Bet
	committed := seat.Commit(delta)

	priorCurrentBet := r.currentBet
	newBet := seat.Bet

	isFullRaise := newBet-priorCurrentBet >= max(r.lastRaiseSize, r.game.BigBlind) || r.isFixedLimit()
	if newBet > priorCurrentBet {
		if isFullRaise {
			r.lastRaiseSize = newBet - priorCurrentBet
			r.raiseCount++
			// A full raise reopens betting: everyone else owes a response.
			r.acted = map[string]bool{seat.PlayerID: true}
		} else {
			// Short all-in raise: does not reopen betting for those who
			// already acted; only mark the raiser.
			r.acted[seat.PlayerID] = true
		}
		r.currentBet = newBet
	} else {
		r.acted[seat.PlayerID] = true
	}

	return committed
}

func (r *Round) advanceActor() {
	r.game.ActorIndex = r.game.NextSeatIndex(r.game.ActorIndex)
}

// outcome reports whether the round has ended.
func (r *Round) outcome() Outcome {
	nonFolded := r.game.NonFolded()
	active := 0
	for _, s := range nonFolded {
		if !s.SittingOut {
			active++
		}
	}
	if active <= 1 {
		return AllFolded
	}

	anyoneCanAct := false
	everyoneSettled := true
	for _, s := range r.game.Seats {
		if !s.CanAct() {
			continue
		}
		anyoneCanAct = true
		if !r.acted[s.PlayerID] || s.Bet != r.currentBet {
			everyoneSettled = false
		}
	}
	if !anyoneCanAct {
		return RoundComplete
	}
	if everyoneSettled {
		return RoundComplete
	}
	return Continue
}

// MarkActed force-marks a seat as having acted, for the orchestrator's
// disconnected/force-fold path.
func (r *Round) MarkActed(pid string) {
	r.acted[pid] = true
}

// CurrentBet returns the street's current high bet.
func (r *Round) CurrentBet() int {
	return r.currentBet
}

// RaiseCount returns how many raises have occurred this street.
func (r *Round) RaiseCount() int {
	return r.raiseCount
}
