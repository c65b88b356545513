package evaluator

import (
	"encoding/binary"
	"fmt"

	"github.com/opencoff/go-chd"
)

// perfectIndex maps a fixed key set to dense indices [0,n) via a minimal
// perfect hash, then indexes a parallel value slice. Keys and values are
// supplied once at build time and never change afterward, matching the
// "constructed once, immutable thereafter" contract on the evaluator tables.
type perfectIndex struct {
	h      *chd.CHD
	values []int16
}

// buildPerfectIndex builds a minimal perfect hash over keys and attaches
// values (values[i] corresponds to keys[i]).
func buildPerfectIndex(keys [][]byte, values []int16) *perfectIndex {
	if len(keys) != len(values) {
		panic("evaluator: keys/values length mismatch")
	}
	h, err := chd.New(keys)
	if err != nil {
		panic(fmt.Errorf("evaluator: building perfect hash over %d keys: %w", len(keys), err))
	}

	// chd.New assigns each key a dense index in [0,len(keys)); re-home the
	// values into that order so lookups are a single slice index.
	ordered := make([]int16, len(keys))
	for i, key := range keys {
		ordered[h.Find(key)] = values[i]
	}
	return &perfectIndex{h: h, values: ordered}
}

func (p *perfectIndex) lookup(key []byte) int16 {
	return p.values[p.h.Find(key)]
}

func keyFromUint32(v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return buf[:]
}
