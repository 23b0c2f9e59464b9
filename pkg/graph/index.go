package graph

import (
	"cmp"
	"maps"
	"slices"
)

// Pair is an ordered (tail, head) pair of node ids. It is the key of the
// adjacency [Index]; (u, v) and (v, u) are distinct pairs.
type Pair struct {
	U NodeID
	V NodeID
}

// Reverse returns (V, U).
func (p Pair) Reverse() Pair { return Pair{U: p.V, V: p.U} }

func comparePairs(a, b Pair) int {
	if c := cmp.Compare(a.U, b.U); c != 0 {
		return c
	}
	return cmp.Compare(a.V, b.V)
}

// Index is the set of ordered pairs for which an edge exists.
// The zero value is an empty index. Index values are immutable: the
// unexported with/without helpers return new indexes.
//
// Lookups are O(1). Adding or removing a pair copies the set, so each edit
// costs O(edges), the price of keeping every earlier snapshot intact.
type Index struct {
	pairs map[Pair]struct{}
}

// Has reports whether an edge u→v exists.
func (ix Index) Has(u, v NodeID) bool {
	_, ok := ix.pairs[Pair{U: u, V: v}]
	return ok
}

// HasReverse reports whether the anti-parallel edge v→u exists.
// Renderers use it to draw u→v and v→u as two curves instead of one line.
func (ix Index) HasReverse(u, v NodeID) bool { return ix.Has(v, u) }

// Len returns the number of pairs.
func (ix Index) Len() int { return len(ix.pairs) }

// Pairs returns all pairs sorted by (U, V).
func (ix Index) Pairs() []Pair {
	return slices.SortedFunc(maps.Keys(ix.pairs), comparePairs)
}

// Equal reports whether both indexes hold the same pairs.
func (ix Index) Equal(other Index) bool {
	return maps.Equal(ix.pairs, other.pairs)
}

func (ix Index) with(p Pair) Index {
	next := make(map[Pair]struct{}, len(ix.pairs)+1)
	maps.Copy(next, ix.pairs)
	next[p] = struct{}{}
	return Index{pairs: next}
}

func (ix Index) without(p Pair) Index {
	if _, ok := ix.pairs[p]; !ok {
		return ix
	}
	next := maps.Clone(ix.pairs)
	delete(next, p)
	return Index{pairs: next}
}

// buildIndex derives the index from an edge set.
// It does not check for duplicates; validate does.
func buildIndex(edges map[EdgeID]Edge) Index {
	pairs := make(map[Pair]struct{}, len(edges))
	for _, e := range edges {
		pairs[e.Pair()] = struct{}{}
	}
	return Index{pairs: pairs}
}
