// Package table holds the shared game data model: seats, aggregate game
// state, and the per-recipient view used to redact opponent hole cards.
package table

import (
	"time"

	"github.com/ophis/holdem-engine/internal/deck"
)

// MaskedCard is the opaque token rendered for another player's hole card.
const MaskedCard = "??"

// PlayerSeat is one seat's per-hand state.
type PlayerSeat struct {
	PlayerID    string
	DisplayName string
	Chips       int
	HoleCards   []deck.Card // 0 or 2

	Bet      int // chips committed this street
	TotalBet int // chips committed this hand

	Folded     bool
	AllIn      bool
	SittingOut bool
	IsBot      bool
	Seat       int

	// Difficulty is the configured bot tier for this seat ("easy", "medium",
	// "hard"); meaningless when IsBot is false. Stored as a string rather
	// than the bot package's Difficulty type to avoid an import cycle.
	Difficulty string

	// DisconnectedAt is set when a human seat's connection drops; it is
	// advisory only, for an embedder that wants to auto-fold a stalled
	// seat. Core logic never reads it.
	DisconnectedAt *time.Time
}

// CanAct reports whether the seat is still in a position to act this hand:
// not folded, not all-in, and not sitting out.
func (s *PlayerSeat) CanAct() bool {
	return !s.Folded && !s.AllIn && !s.SittingOut
}

// ClearForNewHand resets every per-hand flag and amount, as step 1 of the
// orchestrator's phase sequence requires.
func (s *PlayerSeat) ClearForNewHand() {
	s.HoleCards = nil
	s.Bet = 0
	s.TotalBet = 0
	s.Folded = false
	s.AllIn = false
	s.SittingOut = s.Chips <= 0
}

// StartStreet clears the per-street bet so a new betting round can begin.
func (s *PlayerSeat) StartStreet() {
	s.Bet = 0
}

// Commit moves delta chips from the seat's stack into its bet/total_bet,
// marking all-in if it exhausts the stack. delta is clamped to the seat's
// remaining chips.
func (s *PlayerSeat) Commit(delta int) int {
	if delta > s.Chips {
		delta = s.Chips
	}
	s.Chips -= delta
	s.Bet += delta
	s.TotalBet += delta
	if s.Chips == 0 {
		s.AllIn = true
	}
	return delta
}

// Render returns a copy of this seat as seen by viewerID: opponent hole
// cards are masked unless revealHoleCards is true (post-showdown, for
// seats that reached showdown).
func (s *PlayerSeat) Render(viewerID string, revealHoleCards bool) PlayerSeatView {
	view := PlayerSeatView{
		PlayerID:    s.PlayerID,
		DisplayName: s.DisplayName,
		Chips:       s.Chips,
		Bet:         s.Bet,
		TotalBet:    s.TotalBet,
		Folded:      s.Folded,
		AllIn:       s.AllIn,
		SittingOut:  s.SittingOut,
		IsBot:       s.IsBot,
		Seat:        s.Seat,
	}
	if len(s.HoleCards) == 0 {
		return view
	}
	if viewerID == s.PlayerID || revealHoleCards {
		view.HoleCards = cardStrings(s.HoleCards)
		return view
	}
	view.HoleCards = []string{MaskedCard, MaskedCard}
	return view
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// PlayerSeatView is the redacted, wire-ready rendering of a seat.
type PlayerSeatView struct {
	PlayerID    string   `json:"player_id"`
	DisplayName string   `json:"display_name"`
	Chips       int      `json:"chips"`
	HoleCards   []string `json:"hole_cards,omitempty"`
	Bet         int      `json:"bet"`
	TotalBet    int      `json:"total_bet"`
	Folded      bool     `json:"folded"`
	AllIn       bool     `json:"all_in"`
	SittingOut  bool     `json:"sitting_out"`
	IsBot       bool     `json:"is_bot"`
	Seat        int      `json:"seat"`
}
