package instruction

import (
	"github.com/bits-and-blooms/bitset"
)

// SubtableIndices records which of the C lookup dimensions (chunks) of an
// instruction draw from a given subtable. It is scoped to one
// (instruction, subtable) pair; only set membership matters.
type SubtableIndices struct {
	b *bitset.BitSet
}

// NewSubtableIndices returns an empty set over [0, capacity)
func NewSubtableIndices(capacity uint) SubtableIndices {
	return SubtableIndices{b: bitset.New(capacity)}
}

// IndicesFromRange returns the set {begin, ..., end-1}
func IndicesFromRange(begin, end uint) SubtableIndices {
	s := NewSubtableIndices(end)
	for i := begin; i < end; i++ {
		s.b.Set(i)
	}
	return s
}

// Len returns the cardinality of the set; it sizes the value slice owned by
// the subtable within a concatenated lookup-value vector.
func (s SubtableIndices) Len() int {
	return int(s.b.Count())
}

// Contains reports whether chunk i reads from the subtable
func (s SubtableIndices) Contains(i uint) bool {
	return s.b.Test(i)
}

// UnionWith merges another instruction's chunk set into s
func (s *SubtableIndices) UnionWith(other SubtableIndices) {
	s.b.InPlaceUnion(other.b)
}

// Indices returns the chunk positions in ascending order
func (s SubtableIndices) Indices() []int {
	out := make([]int, 0, s.Len())
	for i, ok := s.b.NextSet(0); ok; i, ok = s.b.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}
