package evaluator

import (
	"sort"

	"github.com/ophis/holdem-engine/internal/deck"
)

// ranksDesc lists every rank from ace down to two.
var ranksDesc = []deck.Rank{
	deck.Ace, deck.King, deck.Queen, deck.Jack, deck.Ten,
	deck.Nine, deck.Eight, deck.Seven, deck.Six, deck.Five,
	deck.Four, deck.Three, deck.Two,
}

// straightHighs lists the ten straights' high card, ace-high down to the
// wheel (five-high), in strength order.
var straightHighs = []deck.Rank{
	deck.Ace, deck.King, deck.Queen, deck.Jack, deck.Ten,
	deck.Nine, deck.Eight, deck.Seven, deck.Six, deck.Five,
}

// straightRanks returns the five ranks making up the straight with the
// given high card. The wheel (high == Five) is A-2-3-4-5.
func straightRanks(high deck.Rank) []deck.Rank {
	if high == deck.Five {
		return []deck.Rank{deck.Ace, deck.Five, deck.Four, deck.Three, deck.Two}
	}
	ranks := make([]deck.Rank, 5)
	for i := 0; i < 5; i++ {
		ranks[i] = high - deck.Rank(i)
	}
	return ranks
}

func rankBitmask(ranks []deck.Rank) uint32 {
	var mask uint32
	for _, r := range ranks {
		mask |= 1 << uint32(r-deck.Two)
	}
	return mask
}

func primeProduct(ranks []deck.Rank) uint32 {
	product := uint32(1)
	for _, r := range ranks {
		product *= r.Prime()
	}
	return product
}

// combinations returns every k-length subsequence of items (which must
// already be sorted in the desired primary order), preserving relative
// order so the result is lexicographically ordered the same way items is.
func combinations(items []deck.Rank, k int) [][]deck.Rank {
	var result [][]deck.Rank
	combo := make([]deck.Rank, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(combo) == k {
			cp := make([]deck.Rank, k)
			copy(cp, combo)
			result = append(result, cp)
			return
		}
		for i := start; i < len(items); i++ {
			combo = append(combo, items[i])
			rec(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
	return result
}

func without(ranks []deck.Rank, exclude ...deck.Rank) []deck.Rank {
	excluded := make(map[deck.Rank]bool, len(exclude))
	for _, r := range exclude {
		excluded[r] = true
	}
	out := make([]deck.Rank, 0, len(ranks)-len(exclude))
	for _, r := range ranks {
		if !excluded[r] {
			out = append(out, r)
		}
	}
	return out
}

// tableBuilder accumulates (key, score) pairs for one of the three
// perfect-hash tables while a running score counter is assigned in
// category order.
type tableBuilder struct {
	keys   [][]byte
	values []int16
	next   int16
}

func newTableBuilder(start int) *tableBuilder {
	return &tableBuilder{next: int16(start)}
}

func (b *tableBuilder) add(key uint32) {
	b.keys = append(b.keys, keyFromUint32(key))
	b.values = append(b.values, b.next)
	b.next++
}

func (b *tableBuilder) build() *perfectIndex {
	return buildPerfectIndex(b.keys, b.values)
}

var (
	flushTable   *perfectIndex // keyed by rank bitmask: straight flushes (1-10) + flushes (323-1599)
	unique5Table *perfectIndex // keyed by prime product: straights (1600-1609) + high cards (6186-7462)
	pairsTable   *perfectIndex // keyed by prime product: quads, full house, trips, two pair, one pair
)

func init() {
	buildTables()
}

func buildTables() {
	straightSets := make([][]deck.Rank, len(straightHighs))
	straightMaskSet := make(map[uint32]bool, len(straightHighs))
	for i, high := range straightHighs {
		ranks := straightRanks(high)
		straightSets[i] = ranks
		straightMaskSet[rankBitmask(ranks)] = true
	}

	straightFlush := newTableBuilder(1)
	for _, ranks := range straightSets {
		straightFlush.add(rankBitmask(ranks))
	}

	unique5 := newTableBuilder(1600)
	for _, ranks := range straightSets {
		unique5.add(primeProduct(ranks))
	}

	// All C(13,5) five-distinct-rank combinations, descending lexicographic
	// order (ranksDesc is already ace-high-to-low).
	allFiveRankCombos := combinations(ranksDesc, 5)
	nonStraightCombos := make([][]deck.Rank, 0, len(allFiveRankCombos)-len(straightSets))
	for _, combo := range allFiveRankCombos {
		if straightMaskSet[rankBitmask(combo)] {
			continue
		}
		nonStraightCombos = append(nonStraightCombos, combo)
	}
	sortRankCombosDesc(nonStraightCombos)

	flush := newTableBuilder(323)
	for _, combo := range nonStraightCombos {
		flush.add(rankBitmask(combo))
	}

	pairs := newTableBuilder(11)

	// Four of a kind: quad rank desc, kicker desc. 13*12 = 156 -> 11..166.
	for _, quad := range ranksDesc {
		for _, kicker := range without(ranksDesc, quad) {
			pairs.add(primeProduct([]deck.Rank{quad, quad, quad, quad, kicker}))
		}
	}

	// Full house: trips rank desc, pair rank desc. 13*12 = 156 -> 167..322.
	for _, trips := range ranksDesc {
		for _, pair := range without(ranksDesc, trips) {
			pairs.add(primeProduct([]deck.Rank{trips, trips, trips, pair, pair}))
		}
	}

	// Three of a kind: trips rank desc, then two kickers desc. 13*C(12,2) = 858
	// -> 1610..2467. Not contiguous with full house (167-322): flush (323-1599)
	// and straight (1600-1609) occupy the gap in their own tables.
	pairs.next = 1610
	for _, trips := range ranksDesc {
		kickerPairs := combinations(without(ranksDesc, trips), 2)
		for _, kp := range kickerPairs {
			pairs.add(primeProduct([]deck.Rank{trips, trips, trips, kp[0], kp[1]}))
		}
	}

	// Two pair: high pair desc, low pair desc below it, kicker desc. C(13,2)*11 = 858
	// -> 2468..3325.
	for i, high := range ranksDesc {
		for _, low := range ranksDesc[i+1:] {
			for _, kicker := range without(ranksDesc, high, low) {
				pairs.add(primeProduct([]deck.Rank{high, high, low, low, kicker}))
			}
		}
	}

	// One pair: pair rank desc, three kickers desc. 13*C(12,3) = 2860 -> 3326..6185.
	for _, pair := range ranksDesc {
		kickerTriples := combinations(without(ranksDesc, pair), 3)
		for _, kt := range kickerTriples {
			pairs.add(primeProduct([]deck.Rank{pair, pair, kt[0], kt[1], kt[2]}))
		}
	}

	// High card: the same non-straight five-rank combos as the flush table,
	// reused here unscored by suit. 1277 -> 6186..7462.
	highCard := newTableBuilder(6186)
	for _, combo := range nonStraightCombos {
		highCard.add(primeProduct(combo))
	}

	flushTable = mergeTables(straightFlush, flush)
	unique5Table = mergeTables(unique5, highCard)
	pairsTable = pairs.build()
}

// mergeTables combines two builders with disjoint score ranges (e.g.
// straight-flush + flush, or straight + high-card) into a single
// perfect-hash table over their combined key set.
func mergeTables(a, b *tableBuilder) *perfectIndex {
	keys := append(append([][]byte{}, a.keys...), b.keys...)
	values := append(append([]int16{}, a.values...), b.values...)
	return buildPerfectIndex(keys, values)
}

// sortRankCombosDesc orders five-rank combinations from best (highest top
// card, tie-broken downward) to worst, matching standard high-card/flush
// ranking.
func sortRankCombosDesc(combos [][]deck.Rank) {
	sort.Slice(combos, func(i, j int) bool {
		for k := 0; k < 5; k++ {
			if combos[i][k] != combos[j][k] {
				return combos[i][k] > combos[j][k]
			}
		}
		return false
	})
}
