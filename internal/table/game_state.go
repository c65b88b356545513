package table

import (
	"fmt"
	"time"

	"github.com/ophis/holdem-engine/internal/deck"
)

// Variant is the betting structure a game is played under.
type Variant string

const (
	NoLimit    Variant = "no_limit"
	FixedLimit Variant = "fixed_limit"
)

// Phase is one stage of a hand's lifecycle.
type Phase string

const (
	Waiting  Phase = "waiting"
	Starting Phase = "starting"
	Preflop  Phase = "preflop"
	Flop     Phase = "flop"
	Turn     Phase = "turn"
	River    Phase = "river"
	Showdown Phase = "showdown"
	HandOver Phase = "hand_over"
	GameOver Phase = "game_over"
)

// GameState is the aggregate state of one table.
type GameState struct {
	GameID string
	HandID string

	Variant    Variant
	SmallBlind int
	BigBlind   int

	Seats     []*PlayerSeat
	Community []deck.Card

	DealerIndex int
	ActorIndex  int // -1 when no seat is expected to act
	HandNumber  int
	Phase       Phase

	CreatedAt time.Time
}

// NewGameState builds an empty game in the waiting phase.
func NewGameState(gameID string, variant Variant, smallBlind, bigBlind int) *GameState {
	return &GameState{
		GameID:      gameID,
		Variant:     variant,
		SmallBlind:  smallBlind,
		BigBlind:    bigBlind,
		DealerIndex: 0,
		ActorIndex:  -1,
		Phase:       Waiting,
		CreatedAt:   timeNow(),
	}
}

// timeNow exists so tests can observe a fixed clock without faking the
// standard library; production code always uses time.Now.
var timeNow = time.Now

// Pot is the sum of every seat's total_bet, per the data-model invariant
// that pot equals the sum of contributions between streets.
func (g *GameState) Pot() int {
	total := 0
	for _, s := range g.Seats {
		total += s.TotalBet
	}
	return total
}

// TotalChips sums every seat's remaining stack plus the pot; this is the
// quantity that must stay constant across a hand (testable property 1).
func (g *GameState) TotalChips() int {
	total := g.Pot()
	for _, s := range g.Seats {
		total += s.Chips
	}
	return total
}

// SeatByID returns the seat with the given player-id, or nil.
func (g *GameState) SeatByID(pid string) *PlayerSeat {
	for _, s := range g.Seats {
		if s.PlayerID == pid {
			return s
		}
	}
	return nil
}

// ActiveSeat returns the seat currently expected to act, or nil.
func (g *GameState) ActiveSeat() *PlayerSeat {
	if g.ActorIndex < 0 || g.ActorIndex >= len(g.Seats) {
		return nil
	}
	return g.Seats[g.ActorIndex]
}

// NonFolded returns every seat still in the hand (not folded).
func (g *GameState) NonFolded() []*PlayerSeat {
	var out []*PlayerSeat
	for _, s := range g.Seats {
		if !s.Folded {
			out = append(out, s)
		}
	}
	return out
}

// SeatsWithChips returns every seat with chips > 0, in seat order.
func (g *GameState) SeatsWithChips() []*PlayerSeat {
	var out []*PlayerSeat
	for _, s := range g.Seats {
		if s.Chips > 0 {
			out = append(out, s)
		}
	}
	return out
}

// NextSeatIndex returns the index of the next seat, clockwise from from,
// that can act, or -1 if none can.
func (g *GameState) NextSeatIndex(from int) int {
	n := len(g.Seats)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if g.Seats[idx].CanAct() {
			return idx
		}
	}
	return -1
}

// NextDealerIndex returns the index of the next seat with chips, clockwise
// from the current dealer.
func (g *GameState) NextDealerIndex() int {
	n := len(g.Seats)
	for i := 1; i <= n; i++ {
		idx := (g.DealerIndex + i) % n
		if g.Seats[idx].Chips > 0 {
			return idx
		}
	}
	return g.DealerIndex
}

// GameStateView is the redacted, per-recipient rendering of GameState used
// by game_state events.
type GameStateView struct {
	GameID            string           `json:"game_id"`
	Variant           Variant          `json:"variant"`
	Phase             Phase            `json:"phase"`
	Players           []PlayerSeatView `json:"players"`
	CommunityCards    []string         `json:"community_cards"`
	Pot               int              `json:"pot"`
	HandNumber        int              `json:"hand_number"`
	DealerIndex       int              `json:"dealer_index"`
	CurrentPlayerIdx  int              `json:"current_player_index"`
	SmallBlind        int              `json:"small_blind"`
	BigBlind          int              `json:"big_blind"`
}

// Render builds the per-recipient view for viewerID. revealShowdown, when
// true, reveals every non-folded seat's hole cards (post-showdown only);
// it must never be true for a snapshot taken during the SHOWDOWN phase
// itself, only for the winner event that follows it.
func (g *GameState) Render(viewerID string, revealShowdown bool) GameStateView {
	players := make([]PlayerSeatView, len(g.Seats))
	for i, s := range g.Seats {
		reveal := revealShowdown && !s.Folded
		players[i] = s.Render(viewerID, reveal)
	}
	community := make([]string, len(g.Community))
	for i, c := range g.Community {
		community[i] = c.String()
	}
	return GameStateView{
		GameID:           g.GameID,
		Variant:          g.Variant,
		Phase:            g.Phase,
		Players:          players,
		CommunityCards:   community,
		Pot:              g.Pot(),
		HandNumber:       g.HandNumber,
		DealerIndex:      g.DealerIndex,
		CurrentPlayerIdx: g.ActorIndex,
		SmallBlind:       g.SmallBlind,
		BigBlind:         g.BigBlind,
	}
}

func (g *GameState) String() string {
	return fmt.Sprintf("game %s hand #%d phase=%s pot=%d", g.GameID, g.HandNumber, g.Phase, g.Pot())
}
