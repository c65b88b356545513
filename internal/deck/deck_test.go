package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHas52UniqueCards(t *testing.T) {
	d := New(rand.New(rand.NewSource(42)))
	require.Equal(t, 52, d.CardsRemaining())

	seen := make(map[Card]bool)
	for !d.IsEmpty() {
		c, ok := d.Deal()
		require.True(t, ok)
		assert.False(t, seen[c], "duplicate card dealt: %v", c)
		seen[c] = true
	}
	assert.Len(t, seen, 52)
	assert.True(t, d.IsEmpty())
}

func TestDealNErrorsWhenShort(t *testing.T) {
	d := New(rand.New(rand.NewSource(1)))
	_, err := d.DealN(52)
	require.NoError(t, err)

	_, err = d.DealN(1)
	assert.Error(t, err)
	assert.True(t, d.IsEmpty())
}

func TestResetRestoresFullDeck(t *testing.T) {
	d := New(rand.New(rand.NewSource(7)))
	_, err := d.DealN(52)
	require.NoError(t, err)
	require.True(t, d.IsEmpty())

	d.Reset()
	assert.Equal(t, 52, d.CardsRemaining())
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a := New(rand.New(rand.NewSource(99)))
	b := New(rand.New(rand.NewSource(99)))

	ca, _ := a.DealN(52)
	cb, _ := b.DealN(52)
	assert.Equal(t, ca, cb)
}
