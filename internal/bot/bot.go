// Package bot defines the Decider contract used by the orchestrator when
// the seat to act is a bot, plus three reference difficulty tiers. The
// reference deciders are deliberately simple rule-based strategies; the
// equity-estimation heuristic a real bot would use (Chen formula, Monte
// Carlo, hand-chart ranges) is out of scope here and lives entirely behind
// this interface.
package bot

import (
	"math/rand"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/table"
)

// Difficulty selects a reference decider's aggressiveness.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Decision is a decider's output: an action and, for Raise, the total bet
// target for the street.
type Decision struct {
	Action    betting.Action
	Amount    int
	Reasoning string
}

// Decider is a pure function from a snapshot, the acting seat, its valid
// actions, and a difficulty, to a decision. Implementations must not
// mutate game or seat, and must not block.
type Decider interface {
	Decide(game *table.GameState, seat *table.PlayerSeat, valid betting.ValidActions, difficulty Difficulty, rng *rand.Rand) Decision
}

// ReferenceDecider dispatches to one of three rule-based strategies by
// difficulty. It is stateless and safe for concurrent use across games,
// provided each caller supplies its own rng.
type ReferenceDecider struct{}

// Decide implements Decider.
func (ReferenceDecider) Decide(game *table.GameState, seat *table.PlayerSeat, valid betting.ValidActions, difficulty Difficulty, rng *rand.Rand) Decision {
	switch difficulty {
	case Hard:
		return decideHard(game, seat, valid, rng)
	case Medium:
		return decideMedium(game, seat, valid, rng)
	default:
		return decideEasy(valid, rng)
	}
}

// decideEasy picks any legal action uniformly at random, with a uniform
// raise size between min and max.
func decideEasy(valid betting.ValidActions, rng *rand.Rand) Decision {
	options := []betting.Action{betting.Fold, betting.Call}
	if valid.CanCheck {
		options = append(options, betting.Check)
	}
	if valid.CanRaise {
		options = append(options, betting.Raise)
	}
	choice := options[rng.Intn(len(options))]
	if choice == betting.Raise {
		amount := valid.MinRaise
		if valid.MaxRaise > valid.MinRaise {
			amount += rng.Intn(valid.MaxRaise - valid.MinRaise + 1)
		}
		return Decision{Action: betting.Raise, Amount: amount, Reasoning: "random raise"}
	}
	return Decision{Action: choice, Reasoning: "random choice"}
}

// decideMedium prefers to check/call, folds to bets that are large
// relative to the stack, and rarely raises.
func decideMedium(game *table.GameState, seat *table.PlayerSeat, valid betting.ValidActions, rng *rand.Rand) Decision {
	if valid.CanCheck {
		return Decision{Action: betting.Check, Reasoning: "nothing to call"}
	}
	stack := seat.Chips + seat.Bet
	if stack > 0 && valid.CallAmount*4 > stack {
		return Decision{Action: betting.Fold, Reasoning: "call too large relative to stack"}
	}
	if valid.CanRaise && rng.Intn(10) == 0 {
		return Decision{Action: betting.Raise, Amount: valid.MinRaise, Reasoning: "occasional raise"}
	}
	return Decision{Action: betting.Call, Reasoning: "calling station"}
}

// decideHard prefers a pot-relative raise, falls back to call/check, and
// folds only as a last resort.
func decideHard(game *table.GameState, seat *table.PlayerSeat, valid betting.ValidActions, rng *rand.Rand) Decision {
	pot := game.Pot()
	if pot == 0 {
		pot = game.BigBlind * 2
	}
	if valid.CanRaise {
		amount := valid.MinRaise + pot/2
		amount += rng.Intn(pot/2 + 1)
		if amount > valid.MaxRaise {
			amount = valid.MaxRaise
		}
		if amount < valid.MinRaise {
			amount = valid.MinRaise
		}
		return Decision{Action: betting.Raise, Amount: amount, Reasoning: "pot-sized aggression"}
	}
	if valid.CanCheck {
		return Decision{Action: betting.Check, Reasoning: "free card"}
	}
	return Decision{Action: betting.Call, Reasoning: "pot committed"}
}

// ApplySafetyClamps enforces the two clamps the orchestrator contract
// requires of every decider output, regardless of which tier produced it:
// amount can never exceed the seat's shove size, and a raise that doesn't
// exceed the call amount degrades to a call.
func ApplySafetyClamps(seat *table.PlayerSeat, valid betting.ValidActions, d Decision) Decision {
	maxAmount := seat.Chips + seat.Bet
	if d.Amount > maxAmount {
		d.Amount = maxAmount
	}
	if d.Action == betting.Raise && d.Amount <= valid.CallAmount {
		d.Action = betting.Call
		d.Amount = valid.CallAmount
	}
	return d
}
