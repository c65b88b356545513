package pot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allActive(pids ...string) map[string]bool {
	m := make(map[string]bool, len(pids))
	for _, p := range pids {
		m[p] = true
	}
	return m
}

// Scenario D from the end-to-end test list: two side pots plus a main pot.
func TestScenarioDTwoAllIns(t *testing.T) {
	m := NewManager()
	m.AddContribution("p0", 30, true)
	m.AddContribution("p1", 80, true)
	m.AddContribution("p2", 100, false)

	pots := m.ComputeSidePots(allActive("p0", "p1", "p2"))
	require.Len(t, pots, 3)

	assert.Equal(t, 90, pots[0].Amount)
	assert.ElementsMatch(t, []string{"p0", "p1", "p2"}, pots[0].Eligible)

	assert.Equal(t, 100, pots[1].Amount)
	assert.ElementsMatch(t, []string{"p1", "p2"}, pots[1].Eligible)

	assert.Equal(t, 20, pots[2].Amount)
	assert.ElementsMatch(t, []string{"p2"}, pots[2].Eligible)

	total := 0
	for _, p := range pots {
		total += p.Amount
	}
	assert.Equal(t, 210, total)
	assert.Equal(t, 210, m.Total())
}

func TestFoldedSeatKeepsContributionButNotEligibility(t *testing.T) {
	m := NewManager()
	m.AddContribution("p0", 50, false)
	m.AddContribution("p1", 50, false)
	m.AddContribution("p2", 50, false)

	// p1 folded: excluded from `active` but its chips stay in the pot.
	pots := m.ComputeSidePots(allActive("p0", "p2"))
	require.Len(t, pots, 1)
	assert.Equal(t, 150, pots[0].Amount)
	assert.ElementsMatch(t, []string{"p0", "p2"}, pots[0].Eligible)
}

func TestNoSidePotsWhenNobodyAllIn(t *testing.T) {
	m := NewManager()
	m.AddContribution("p0", 20, false)
	m.AddContribution("p1", 20, false)

	pots := m.ComputeSidePots(allActive("p0", "p1"))
	require.Len(t, pots, 1)
	assert.Equal(t, 40, pots[0].Amount)
}

func TestShortBlindPostAllIn(t *testing.T) {
	m := NewManager()
	m.AddContribution("short", 5, true)
	m.AddContribution("big", 20, false)

	assert.Equal(t, 5, m.ContributionOf("short"))
	pots := m.ComputeSidePots(allActive("short", "big"))
	require.Len(t, pots, 2)
	assert.Equal(t, 10, pots[0].Amount)
	assert.ElementsMatch(t, []string{"short", "big"}, pots[0].Eligible)
	assert.Equal(t, 15, pots[1].Amount)
	assert.ElementsMatch(t, []string{"big"}, pots[1].Eligible)
}

func TestResetClearsLedger(t *testing.T) {
	m := NewManager()
	m.AddContribution("p0", 10, false)
	m.Reset()
	assert.Equal(t, 0, m.Total())
	assert.Equal(t, 0, m.ContributionOf("p0"))
}
