package instruction

import (
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/subtable"
)

// BEQ is branch-if-equal: 1 if x == y, else 0
type BEQ struct {
	operands
}

func (BEQ) Opcode() Opcode {
	return OpBEQ
}

func (s BEQ) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

func (BEQ) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewEQ(c, m), Indices: IndicesFromRange(0, uint(c))},
	}
}

// CombineLookups evaluates Π_i EQ_i: the words are equal iff every chunk
// pair is.
func (s BEQ) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	eq := SliceValues(s, vals, c, m)[0]
	var res fr.Element
	res.SetOne()
	for i := range eq {
		res.Mul(&res, &eq[i])
	}
	return res
}

func (BEQ) GPolyDegree(c int) int {
	return c
}

func (s BEQ) LookupEntry() uint64 {
	if s.x == s.y {
		return 1
	}
	return 0
}

func (BEQ) Random(rng *rand.Rand) Instruction {
	return BEQ{operands{rng.Uint64(), rng.Uint64()}}
}
