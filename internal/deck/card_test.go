package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "As", NewCard(Ace, Spades).String())
	assert.Equal(t, "10h", NewCard(Ten, Hearts).String())
	assert.Equal(t, "2c", NewCard(Two, Clubs).String())
}

func TestParseCardRoundTrip(t *testing.T) {
	for _, s := range []string{"As", "Kd", "Qh", "Jc", "10s", "2c"} {
		card := ParseCard(s)
		assert.Equal(t, s, card.String())
	}
}

func TestParseCardMalformedPanics(t *testing.T) {
	assert.Panics(t, func() { ParseCard("Zz") })
	assert.Panics(t, func() { ParseCard("A") })
}

func TestPackEncodingIsUnique(t *testing.T) {
	seen := make(map[uint32]Card)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			c := NewCard(rank, suit)
			packed := c.Pack()
			if other, ok := seen[packed]; ok {
				t.Fatalf("pack collision between %v and %v", c, other)
			}
			seen[packed] = c
		}
	}
	require.Len(t, seen, 52)
}

func TestPackBitLayout(t *testing.T) {
	c := NewCard(Ace, Spades)
	packed := c.Pack()

	assert.NotZero(t, packed&(1<<(16+12)), "ace rank bit (bit 28) should be set")
	assert.NotZero(t, packed&(1<<15), "spades suit bit (bit 15) should be set")
	assert.Equal(t, uint32(12), (packed>>8)&0xF, "rank nibble should be 12 for ace")
	assert.Equal(t, uint32(41), packed&0x3F, "ace prime is 41")
}
