// Package rules implements dealer rotation, blind posting, and
// first-to-act derivation — the pieces of hand setup that aren't owned by
// the betting round or pot manager.
package rules

import "github.com/ophis/holdem-engine/internal/table"

// BlindPost describes one seat's forced bet.
type BlindPost struct {
	Seat   *table.PlayerSeat
	Amount int
}

// RotateDealer advances the dealer button to the next seat with chips.
func RotateDealer(g *table.GameState) {
	g.DealerIndex = g.NextDealerIndex()
}

// BlindSeats determines which seats post small and big blind this hand.
// Heads-up (exactly two seats able to play): the dealer posts small blind,
// the other seat posts big blind. With three or more: small blind is the
// next seat after the dealer, big blind the seat after that.
func BlindSeats(g *table.GameState) (sb, bb *table.PlayerSeat) {
	playable := playableSeats(g)
	if len(playable) == 2 {
		return playable[0], playable[1]
	}
	dealerPos := indexOf(playable, g.Seats[g.DealerIndex])
	sbIdx := (dealerPos + 1) % len(playable)
	bbIdx := (dealerPos + 2) % len(playable)
	return playable[sbIdx], playable[bbIdx]
}

// playableSeats returns, in seat order starting at the dealer, every seat
// not sitting out (i.e. with chips).
func playableSeats(g *table.GameState) []*table.PlayerSeat {
	n := len(g.Seats)
	var out []*table.PlayerSeat
	for i := 0; i < n; i++ {
		idx := (g.DealerIndex + i) % n
		s := g.Seats[idx]
		if !s.SittingOut {
			out = append(out, s)
		}
	}
	return out
}

func indexOf(seats []*table.PlayerSeat, target *table.PlayerSeat) int {
	for i, s := range seats {
		if s == target {
			return i
		}
	}
	return -1
}

// PostBlind commits amount from seat, clamped to its stack (a short stack
// posts whatever it has and goes all-in).
func PostBlind(seat *table.PlayerSeat, amount int) int {
	return seat.Commit(amount)
}

// FirstToActPreflop returns the seat index that acts first preflop: the
// seat after the big blind.
func FirstToActPreflop(g *table.GameState, bb *table.PlayerSeat) int {
	return g.NextSeatIndex(bb.Seat)
}

// FirstToActPostflop returns the seat index that acts first on the flop,
// turn, and river: the first active seat clockwise from the dealer.
func FirstToActPostflop(g *table.GameState) int {
	return g.NextSeatIndex(g.DealerIndex)
}
