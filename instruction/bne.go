package instruction

import (
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/subtable"
)

// BNE is branch-if-not-equal: 1 if x != y, else 0
type BNE struct {
	operands
}

func (BNE) Opcode() Opcode {
	return OpBNE
}

func (s BNE) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

func (BNE) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewEQ(c, m), Indices: IndicesFromRange(0, uint(c))},
	}
}

// CombineLookups evaluates 1 - Π_i EQ_i
func (s BNE) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	eq := SliceValues(s, vals, c, m)[0]
	var prod fr.Element
	prod.SetOne()
	for i := range eq {
		prod.Mul(&prod, &eq[i])
	}
	var one fr.Element
	one.SetOne()
	prod.Sub(&one, &prod)
	return prod
}

func (BNE) GPolyDegree(c int) int {
	return c
}

func (s BNE) LookupEntry() uint64 {
	if s.x != s.y {
		return 1
	}
	return 0
}

func (BNE) Random(rng *rand.Rand) Instruction {
	return BNE{operands{rng.Uint64(), rng.Uint64()}}
}
