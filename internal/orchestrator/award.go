package orchestrator

import (
	"sort"

	"github.com/ophis/holdem-engine/internal/deck"
	"github.com/ophis/holdem-engine/internal/evaluator"
	"github.com/ophis/holdem-engine/internal/pot"
	"github.com/ophis/holdem-engine/internal/table"
)

// awardSoleSurvivor gives the whole pot to the one seat still in the hand
// and clears the ledger before the caller publishes the winner event. The
// seats' TotalBet, and so GameState.Pot, is left as is until the next
// hand clears the seats, per the preserved-as-is transient-invariant
// exception.
func (o *Orchestrator) awardSoleSurvivor() table.WinnerEntry {
	g := o.game
	var winner *table.PlayerSeat
	for _, s := range g.Seats {
		if !s.Folded {
			winner = s
			break
		}
	}
	amount := o.pot.Total()
	winner.Chips += amount
	o.pot.Reset()
	return table.WinnerEntry{PlayerID: winner.PlayerID, Amount: amount}
}

// awardSidePots decomposes the ledger into side pots eligible by non-folded
// status and cap, evaluates every eligible seat's best 7-card hand, and
// splits each pot among the tied minimum-score seats, assigning any odd
// chip remainder to the lowest seat index among the winners.
func (o *Orchestrator) awardSidePots() []table.WinnerEntry {
	g := o.game
	active := make(map[string]bool, len(g.Seats))
	for _, s := range g.Seats {
		active[s.PlayerID] = !s.Folded
	}

	pots := o.pot.ComputeSidePots(active)
	var entries []table.WinnerEntry
	for _, sp := range pots {
		entries = append(entries, o.awardOnePot(sp)...)
	}
	o.pot.Reset()
	return entries
}

type scoredSeat struct {
	seat  *table.PlayerSeat
	score int
}

func (o *Orchestrator) awardOnePot(sp pot.SidePot) []table.WinnerEntry {
	g := o.game

	var candidates []scoredSeat
	for _, pid := range sp.Eligible {
		seat := g.SeatByID(pid)
		if seat == nil || seat.Folded {
			continue
		}
		cards := make([]deck.Card, 0, 7)
		cards = append(cards, seat.HoleCards...)
		cards = append(cards, g.Community...)
		candidates = append(candidates, scoredSeat{seat, evaluator.Score(cards)})
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0].score
	for _, c := range candidates[1:] {
		if c.score < best {
			best = c.score
		}
	}

	var winners []*table.PlayerSeat
	for _, c := range candidates {
		if c.score == best {
			winners = append(winners, c.seat)
		}
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Seat < winners[j].Seat })

	share := sp.Amount / len(winners)
	remainder := sp.Amount % len(winners)

	entries := make([]table.WinnerEntry, len(winners))
	class := evaluator.ClassOf(best)
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		w.Chips += amount
		entries[i] = table.WinnerEntry{
			PlayerID:  w.PlayerID,
			Amount:    amount,
			HoleCards: cardStrings(w.HoleCards),
			HandRank:  class.String(),
		}
	}
	return entries
}
