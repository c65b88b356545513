package deck

import (
	"fmt"
	"math/rand"
	"time"
)

// Deck is a shufflable, deal-from-top sequence of 52 distinct cards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

func freshCards() []Card {
	cards := make([]Card, 0, 52)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// New builds a shuffled 52-card deck using rng. The caller owns rng; per
// the orchestrator's concurrency model each game owns one RNG and uses it
// for nothing else, so shuffles are reproducible given a seed.
func New(rng *rand.Rand) *Deck {
	d := &Deck{cards: freshCards(), rng: rng}
	d.Shuffle()
	return d
}

// NewDeck builds a shuffled deck seeded from the current time, for callers
// that don't need a reproducible shuffle (tests should use New with a seeded
// rng instead).
func NewDeck() *Deck {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// Shuffle randomizes the remaining cards in place (Fisher-Yates).
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card.
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN removes and returns the top n cards. It errors if fewer than n
// remain, leaving the deck untouched.
func (d *Deck) DealN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deck: deal %d cards: only %d remain", n, len(d.cards))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// CardsRemaining returns the number of undealt cards.
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// IsEmpty reports whether the deck has no cards left.
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Reset restores a full 52-card deck and reshuffles it.
func (d *Deck) Reset() {
	d.cards = freshCards()
	d.Shuffle()
}

// Peek returns the top card without removing it.
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	return d.cards[0], true
}
