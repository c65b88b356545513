// Package orchestrator drives one game through an unbounded sequence of
// hands: dealing, running the four betting streets, awarding pots, and
// broadcasting redacted events to every subscriber. One Orchestrator owns
// exactly one GameState and runs as a single cooperative driver goroutine;
// all mutation of that state happens on this goroutine. External callers
// reach it only through SubmitAction and the Broadcast Sink's
// Subscribe/Unsubscribe calls.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/coder/quartz"

	"github.com/ophis/holdem-engine/internal/betting"
	"github.com/ophis/holdem-engine/internal/bot"
	"github.com/ophis/holdem-engine/internal/broadcast"
	"github.com/ophis/holdem-engine/internal/deck"
	"github.com/ophis/holdem-engine/internal/pot"
	"github.com/ophis/holdem-engine/internal/rules"
	"github.com/ophis/holdem-engine/internal/table"
)

// actionSubmission is one message crossing the submit_action boundary.
type actionSubmission struct {
	playerID string
	action   betting.Action
	amount   int
}

// Orchestrator is the Hand Orchestrator for one game.
type Orchestrator struct {
	game    *table.GameState
	sink    broadcast.Sink
	pot     *pot.Manager
	decider bot.Decider
	rng     *rand.Rand
	clock   quartz.Clock

	deck *deck.Deck

	// submitCh is the single-slot pending-action channel. SubmitAction
	// replaces whatever is pending rather than blocking.
	submitCh chan actionSubmission

	// ThinkTimeMin/Max bound the simulated bot decision delay; StreetPause
	// is the between-street animation delay. Exported so callers that want
	// the production defaults but a faster test clock can still configure
	// an Orchestrator without a constructor option for every field.
	ThinkTimeMin time.Duration
	ThinkTimeMax time.Duration
	StreetPause  time.Duration
}

// New builds an Orchestrator for game, publishing to sink and deciding bot
// actions via decider. rng seeds both the per-hand deck shuffle and the
// bot think-time jitter; clock is the time source for sleeps, so tests can
// supply a quartz.Mock instead of the real clock.
func New(game *table.GameState, sink broadcast.Sink, decider bot.Decider, rng *rand.Rand, clock quartz.Clock) *Orchestrator {
	return &Orchestrator{
		game:         game,
		sink:         sink,
		pot:          pot.NewManager(),
		decider:      decider,
		rng:          rng,
		clock:        clock,
		submitCh:     make(chan actionSubmission, 1),
		ThinkTimeMin: 500 * time.Millisecond,
		ThinkTimeMax: 2 * time.Second,
		StreetPause:  1500 * time.Millisecond,
	}
}

// SubmitAction is the external entry point for a human (or test) action.
// It is accepted unconditionally here; a submission from a seat that is
// not currently the expected actor is silently dropped by the driver when
// it is read, per the wrong-actor-submission contract. A pending
// submission is overwritten by a newer one rather than queued.
func (o *Orchestrator) SubmitAction(playerID string, action betting.Action, amount int) {
	sub := actionSubmission{playerID: playerID, action: action, amount: amount}
	select {
	case o.submitCh <- sub:
		return
	default:
	}
	select {
	case <-o.submitCh:
	default:
	}
	select {
	case o.submitCh <- sub:
	default:
	}
}

// Run drives hands to completion until fewer than two seats retain chips,
// then emits game_over. ctx cancellation stops the driver between hands;
// mid-hand, a cancelled ctx makes every pending action wait return a fold,
// so the current hand runs to its end before the driver stops. A panic
// from a fatal invariant violation inside a hand is recovered here and
// ends the game with game_over.
func (o *Orchestrator) Run(ctx context.Context) {
	defer func() {
		if recover() != nil {
			o.game.Phase = table.GameOver
			o.publish(table.Broadcast(o.game.GameID, table.EventGameOver, table.GameOverPayload{GameID: o.game.GameID}))
		}
	}()
	for {
		if len(o.game.SeatsWithChips()) < 2 {
			o.game.Phase = table.GameOver
			o.publish(table.Broadcast(o.game.GameID, table.EventGameOver, table.GameOverPayload{GameID: o.game.GameID}))
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
		o.runHand(ctx)
		o.clock.Sleep(o.StreetPause)
	}
}

// runHand executes the nine-step phase sequence for a single hand. Fatal
// invariant violations (empty deck, unknown actor) panic; Run recovers
// such a panic and ends the game, per the driver's never-raises-to-caller
// contract.
func (o *Orchestrator) runHand(ctx context.Context) {
	g := o.game

	// 1. New hand bookkeeping.
	g.HandNumber++
	g.HandID = fmt.Sprintf("%s-%d", g.GameID, g.HandNumber)
	for _, s := range g.Seats {
		s.ClearForNewHand()
	}
	g.Community = nil
	o.pot.Reset()

	// 2. Rotate dealer.
	rules.RotateDealer(g)

	// 3 & 4. Blinds.
	g.Phase = table.Preflop
	round := betting.NewRound(g, o.fixedStreetBet(table.Preflop))
	sb, bb := rules.BlindSeats(g)
	o.postBlind(sb, g.SmallBlind)
	o.postBlind(bb, g.BigBlind)
	round.SeedCurrentBet(bb.Bet)

	// 5. Deal hole cards, emit hand_starting.
	o.deck = deck.New(o.rng)
	o.dealHoleCards()
	o.publish(table.PerRecipient(g.GameID, table.EventHandStarting, func(viewer string) any {
		return table.GameStatePayload(g, viewer, false)
	}))

	// 6. Preflop betting.
	actorIdx := rules.FirstToActPreflop(g, bb)
	if o.runStreet(ctx, round, actorIdx) == betting.AllFolded {
		o.concludeAllFolded()
		return
	}

	// 7. Flop, turn, river.
	streets := []struct {
		phase table.Phase
		deal  int
	}{{table.Flop, 3}, {table.Turn, 1}, {table.River, 1}}
	for _, st := range streets {
		g.Phase = st.phase
		dealt := o.dealCommunity(st.deal)
		o.publish(table.Broadcast(g.GameID, table.EventCommunityCard, table.CommunityCardPayload{
			Street: string(st.phase),
			Cards:  cardStrings(dealt),
			Board:  cardStrings(g.Community),
		}))
		o.clock.Sleep(o.StreetPause)

		round = betting.NewRound(g, o.fixedStreetBet(st.phase))
		actorIdx = rules.FirstToActPostflop(g)
		if o.runStreet(ctx, round, actorIdx) == betting.AllFolded {
			o.concludeAllFolded()
			return
		}
	}

	// 8. Showdown.
	g.Phase = table.Showdown
	o.publish(table.PerRecipient(g.GameID, table.EventGameState, func(viewer string) any {
		return table.GameStatePayload(g, viewer, false)
	}))
	entries := o.awardSidePots()
	o.publish(table.Broadcast(g.GameID, table.EventWinner, table.WinnerPayload{
		PotAmount: sumAmounts(entries),
		Winners:   entries,
	}))

	// 9. Hand over.
	o.concludeHand()
}

// concludeAllFolded awards the uncontested pot to the sole non-folded seat
// and emits winner before hand_over. The pot ledger is already reset by
// then, but the seats' TotalBet (which GameState.Pot sums) is zeroed only
// when the next hand clears the seats, so winner and hand_over still show
// the pre-award pot.
func (o *Orchestrator) concludeAllFolded() {
	entry := o.awardSoleSurvivor()
	o.publish(table.Broadcast(o.game.GameID, table.EventWinner, table.WinnerPayload{
		PotAmount: entry.Amount,
		Winners:   []table.WinnerEntry{entry},
	}))
	o.concludeHand()
}

func (o *Orchestrator) concludeHand() {
	o.game.Phase = table.HandOver
	o.publish(table.Broadcast(o.game.GameID, table.EventHandOver, table.HandOverPayload{HandNumber: o.game.HandNumber}))
}

// runStreet runs betting from actorIdx until the round completes, prompting
// each actor, collecting their action (submitted or decided by a bot), and
// forwarding the committed chips to the pot manager.
func (o *Orchestrator) runStreet(ctx context.Context, round *betting.Round, actorIdx int) betting.Outcome {
	g := o.game
	g.ActorIndex = actorIdx
	if g.ActorIndex < 0 {
		return betting.RoundComplete
	}

	for {
		seat := g.Seats[g.ActorIndex]
		va := round.ValidActionsFor(seat)
		o.publish(table.Targeted(g.GameID, table.EventYourTurn, seat.PlayerID, table.YourTurnPayload{
			PlayerID:     seat.PlayerID,
			ValidActions: toPayload(va),
		}))

		if seat.IsBot {
			o.scheduleBotDecision(seat, va)
		}

		action, amount := o.waitForAction(ctx, seat.PlayerID)
		outcome, committed := round.Apply(seat.PlayerID, action, amount)
		if committed > 0 {
			o.pot.AddContribution(seat.PlayerID, committed, seat.AllIn)
		}

		o.publish(table.Broadcast(g.GameID, table.EventActionTaken, table.ActionTakenPayload{
			PlayerID: seat.PlayerID,
			Action:   string(action),
			Amount:   committed,
			Pot:      g.Pot(),
		}))
		o.publish(table.PerRecipient(g.GameID, table.EventGameState, func(viewer string) any {
			return table.GameStatePayload(g, viewer, false)
		}))

		if outcome != betting.Continue {
			return outcome
		}
	}
}

// waitForAction blocks until a submission arrives for expectedPID,
// dropping any that arrive for a different seat (the wrong-actor
// submission never mutates state).
func (o *Orchestrator) waitForAction(ctx context.Context, expectedPID string) (betting.Action, int) {
	for {
		select {
		case sub := <-o.submitCh:
			if sub.playerID == expectedPID {
				return sub.action, sub.amount
			}
		case <-ctx.Done():
			return betting.Fold, 0
		}
	}
}

// scheduleBotDecision spawns a transient think-time task: sleep a random
// interval, query the decider, then submit. A panic inside the decider is
// treated as a decision failure and folds.
func (o *Orchestrator) scheduleBotDecision(seat *table.PlayerSeat, va betting.ValidActions) {
	think := o.ThinkTimeMin
	if o.ThinkTimeMax > o.ThinkTimeMin {
		think += time.Duration(o.rng.Int63n(int64(o.ThinkTimeMax - o.ThinkTimeMin)))
	}
	difficulty := seatDifficulty(seat)
	rng := rand.New(rand.NewSource(o.rng.Int63()))
	game, pid := o.game, seat.PlayerID

	go func() {
		defer func() {
			if recover() != nil {
				o.SubmitAction(pid, betting.Fold, 0)
			}
		}()
		o.clock.Sleep(think)
		decision := o.decider.Decide(game, seat, va, difficulty, rng)
		decision = bot.ApplySafetyClamps(seat, va, decision)
		o.SubmitAction(pid, decision.Action, decision.Amount)
	}()
}

// seatDifficulty maps a seat's configured difficulty string to the bot
// package's Difficulty type, defaulting to Medium when unset or unknown.
func seatDifficulty(seat *table.PlayerSeat) bot.Difficulty {
	switch seat.Difficulty {
	case "easy":
		return bot.Easy
	case "hard":
		return bot.Hard
	default:
		return bot.Medium
	}
}

func (o *Orchestrator) postBlind(seat *table.PlayerSeat, amount int) {
	posted := rules.PostBlind(seat, amount)
	o.pot.AddContribution(seat.PlayerID, posted, seat.AllIn)
}

func (o *Orchestrator) dealHoleCards() {
	g := o.game
	n := len(g.Seats)
	var order []int
	for i := 1; i <= n; i++ {
		idx := (g.DealerIndex + i) % n
		if !g.Seats[idx].SittingOut {
			order = append(order, idx)
		}
	}
	for pass := 0; pass < 2; pass++ {
		for _, idx := range order {
			card, ok := o.deck.Deal()
			if !ok {
				panic("orchestrator: deck exhausted dealing hole cards")
			}
			g.Seats[idx].HoleCards = append(g.Seats[idx].HoleCards, card)
		}
	}
}

func (o *Orchestrator) dealCommunity(n int) []deck.Card {
	cards, err := o.deck.DealN(n)
	if err != nil {
		panic("orchestrator: " + err.Error())
	}
	o.game.Community = append(o.game.Community, cards...)
	return cards
}

// fixedStreetBet returns the fixed-limit bet size for phase, or 0 for
// no-limit games: BB preflop/flop, 2*BB turn/river.
func (o *Orchestrator) fixedStreetBet(phase table.Phase) int {
	if o.game.Variant != table.FixedLimit {
		return 0
	}
	switch phase {
	case table.Turn, table.River:
		return 2 * o.game.BigBlind
	default:
		return o.game.BigBlind
	}
}

func (o *Orchestrator) publish(e table.Event) {
	o.sink.Publish(e)
}

func toPayload(va betting.ValidActions) table.ValidActionsPayload {
	return table.ValidActionsPayload{
		CanCheck:   va.CanCheck,
		CallAmount: va.CallAmount,
		MinRaise:   va.MinRaise,
		MaxRaise:   va.MaxRaise,
		CanRaise:   va.CanRaise,
	}
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func sumAmounts(entries []table.WinnerEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Amount
	}
	return total
}
