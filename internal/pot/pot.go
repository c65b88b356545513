// Package pot tracks per-player chip contributions for a single hand and
// decomposes them into side pots when one or more players go all-in for
// less than the full bet.
package pot

import "sort"

// Contribution is one player's ledger entry: total chips committed this
// hand, and whether (and at what cap) they went all-in.
type Contribution struct {
	Total  int
	AllIn  bool
	AllInAt int
}

// Manager is the contribution ledger. It is private to a single hand and
// is reset at the start of each one.
type Manager struct {
	contributions map[string]*Contribution
	order         []string // insertion order, for deterministic iteration
}

// NewManager returns an empty ledger.
func NewManager() *Manager {
	return &Manager{contributions: make(map[string]*Contribution)}
}

// AddContribution accumulates delta (>=0) chips for pid. If allIn is true
// the player's current total becomes their all-in cap.
func (m *Manager) AddContribution(pid string, delta int, allIn bool) {
	if delta < 0 {
		panic("pot: negative contribution")
	}
	c, ok := m.contributions[pid]
	if !ok {
		c = &Contribution{}
		m.contributions[pid] = c
		m.order = append(m.order, pid)
	}
	c.Total += delta
	if allIn {
		c.AllIn = true
		c.AllInAt = c.Total
	}
}

// Total returns the sum of every contribution in the ledger.
func (m *Manager) Total() int {
	sum := 0
	for _, pid := range m.order {
		sum += m.contributions[pid].Total
	}
	return sum
}

// Reset clears the ledger for a new hand.
func (m *Manager) Reset() {
	m.contributions = make(map[string]*Contribution)
	m.order = nil
}

// SidePot is one side pot: a chip amount and the set of player-ids
// eligible to win it.
type SidePot struct {
	Amount   int
	Eligible []string
}

// ComputeSidePots decomposes the ledger into ordered side pots. active is
// the set of non-folded player-ids; a folded player's contribution stays
// in the ledger (and in every pot's amount) but never appears in any pot's
// eligible set.
//
// Algorithm: let K be the sorted ascending set of distinct all-in caps.
// For each cap k, carve a pot from min(contribution, k) minus whatever was
// already carved into a lower pot, for every contributor; mark each
// non-folded contributor whose total reaches k as eligible. A final pot
// collects whatever remains above the highest cap, eligible to non-folded
// contributors with no cap (or a cap above it). Zero-amount pots are
// dropped.
func (m *Manager) ComputeSidePots(active map[string]bool) []SidePot {
	if len(m.order) == 0 {
		return nil
	}

	caps := distinctAllInCaps(m.contributions)
	sort.Ints(caps)

	var pots []SidePot
	taken := make(map[string]int, len(m.order))
	prevCap := 0

	for _, cap := range caps {
		pot := carvePot(m, active, taken, prevCap, cap)
		if pot.Amount > 0 {
			pots = append(pots, pot)
		}
		prevCap = cap
	}

	// Final pot: whatever remains above the highest cap.
	final := SidePot{}
	for _, pid := range m.order {
		c := m.contributions[pid]
		remaining := c.Total - taken[pid]
		if remaining <= 0 {
			continue
		}
		final.Amount += remaining
		taken[pid] += remaining
		if active[pid] && c.Total > prevCap {
			final.Eligible = append(final.Eligible, pid)
		}
	}
	if final.Amount > 0 {
		pots = append(pots, final)
	}

	return pots
}

func carvePot(m *Manager, active map[string]bool, taken map[string]int, prevCap, cap int) SidePot {
	pot := SidePot{}
	for _, pid := range m.order {
		c := m.contributions[pid]
		upTo := c.Total
		if upTo > cap {
			upTo = cap
		}
		delta := upTo - prevCap
		if delta <= 0 {
			continue
		}
		pot.Amount += delta
		taken[pid] += delta
		if active[pid] && c.Total >= cap {
			pot.Eligible = append(pot.Eligible, pid)
		}
	}
	return pot
}

func distinctAllInCaps(contributions map[string]*Contribution) []int {
	seen := make(map[int]bool)
	var caps []int
	for _, c := range contributions {
		if c.AllIn && !seen[c.AllInAt] {
			seen[c.AllInAt] = true
			caps = append(caps, c.AllInAt)
		}
	}
	return caps
}

// ContributionOf returns the total chips pid has committed this hand.
func (m *Manager) ContributionOf(pid string) int {
	if c, ok := m.contributions[pid]; ok {
		return c.Total
	}
	return 0
}
