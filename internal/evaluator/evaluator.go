// Package evaluator scores poker hands in constant time via three
// perfect-hash lookup tables built once at process start. A score is an
// integer in [1, 7462]; lower is strictly better. See HandClass for the
// half-open class boundaries.
package evaluator

import (
	"fmt"

	"github.com/ophis/holdem-engine/internal/deck"
)

// HandClass is one of the nine standard poker hand categories.
type HandClass int

const (
	StraightFlush HandClass = iota
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	OnePair
	HighCard
)

func (c HandClass) String() string {
	switch c {
	case StraightFlush:
		return "Straight Flush"
	case FourOfAKind:
		return "Four of a Kind"
	case FullHouse:
		return "Full House"
	case Flush:
		return "Flush"
	case Straight:
		return "Straight"
	case ThreeOfAKind:
		return "Three of a Kind"
	case TwoPair:
		return "Two Pair"
	case OnePair:
		return "One Pair"
	case HighCard:
		return "High Card"
	default:
		return "Unknown"
	}
}

// classBoundaries gives the inclusive upper bound of each class, in
// strength order. ClassOf uses these to find the half-open range a score
// falls in.
var classBoundaries = []struct {
	class HandClass
	upper int
}{
	{StraightFlush, 10},
	{FourOfAKind, 166},
	{FullHouse, 322},
	{Flush, 1599},
	{Straight, 1609},
	{ThreeOfAKind, 2467},
	{TwoPair, 3325},
	{OnePair, 6185},
	{HighCard, 7462},
}

// ClassOf returns the hand class for a score in [1, 7462].
func ClassOf(score int) HandClass {
	for _, b := range classBoundaries {
		if score <= b.upper {
			return b.class
		}
	}
	panic(fmt.Sprintf("evaluator: score %d out of range", score))
}

// Score5 scores exactly five distinct cards. A malformed input (a
// duplicate card) is a programming error, not a runtime condition, and is
// not separately guarded against here.
func Score5(cards [5]deck.Card) int {
	suitMask := uint8(0)
	for _, c := range cards {
		suitMask |= 1 << uint(c.Suit)
	}
	flush := (suitMask & (suitMask - 1)) == 0 // exactly one suit bit set

	ranks := make([]deck.Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}

	if flush {
		mask := rankBitmask(ranks)
		return int(flushTable.lookup(keyFromUint32(mask)))
	}

	product := primeProduct(ranks)
	if hasDistinctRanks(ranks) {
		return int(unique5Table.lookup(keyFromUint32(product)))
	}
	return int(pairsTable.lookup(keyFromUint32(product)))
}

// hasDistinctRanks reports whether all five ranks differ, the condition
// that routes a non-flush hand to unique5_table (straights and high cards)
// instead of pairs_table.
func hasDistinctRanks(ranks []deck.Rank) bool {
	seen := make(map[deck.Rank]bool, len(ranks))
	for _, r := range ranks {
		if seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

// Score evaluates 5, 6, or 7 cards, returning the best (minimum) score over
// every 5-card subset. A count outside [5,7] is a programming error.
func Score(cards []deck.Card) int {
	switch len(cards) {
	case 5:
		var hand [5]deck.Card
		copy(hand[:], cards)
		return Score5(hand)
	case 6, 7:
		best := -1
		for _, subset := range fiveCardSubsets(cards) {
			s := Score5(subset)
			if best == -1 || s < best {
				best = s
			}
		}
		return best
	default:
		panic(fmt.Sprintf("evaluator: cannot score %d cards", len(cards)))
	}
}

// fiveCardSubsets enumerates every 5-card combination of cards (21 for 7,
// 6 for 6).
func fiveCardSubsets(cards []deck.Card) [][5]deck.Card {
	n := len(cards)
	var out [][5]deck.Card
	var combo [5]int
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == 5 {
			var hand [5]deck.Card
			for i, idx := range combo {
				hand[i] = cards[idx]
			}
			out = append(out, hand)
			return
		}
		for i := start; i < n; i++ {
			combo[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
	return out
}
