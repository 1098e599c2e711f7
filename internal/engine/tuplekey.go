// Package engine holds the small runtime support surface generated query
// code links against: the hash-join key type, the terminal sink, and the
// signature every compiled plugin exposes to its host.
package engine

import "github.com/imlabdb/imlabdb/internal/value"

// TupleKey packs a join's key columns into a github.com/imlabdb/imlabdb/internal/hashmap.Hashable.
type TupleKey []value.Value

// combineHash folds one more component hash into the running accumulator,
// the Fibonacci/tuple-hash combiner the original engine's IU hashing used:
// r + 0x9e3779b9 + (l<<6) + (l>>2), seed 0.
func combineHash(acc, h uint64) uint64 {
	return h + 0x9e3779b9 + (acc << 6) + (acc >> 2)
}

func (k TupleKey) Hash() uint64 {
	var acc uint64
	for _, v := range k {
		acc = combineHash(acc, v.Hash())
	}
	return acc
}

func (k TupleKey) Equal(other any) bool {
	o, ok := other.(TupleKey)
	if !ok || len(o) != len(k) {
		return false
	}
	for i := range k {
		if k[i].Compare(o[i]) != 0 {
			return false
		}
	}
	return true
}
