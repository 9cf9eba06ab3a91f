package instruction

import (
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/subtable"
)

// SLTU is unsigned set-less-than: 1 if x < y, else 0
type SLTU struct {
	operands
}

func (SLTU) Opcode() Opcode {
	return OpSLTU
}

func (s SLTU) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

// Subtables reads the LT table at every chunk and the EQ table at every
// chunk but the last; the recombination never needs equality of the least
// significant chunk.
func (SLTU) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewLT(c, m), Indices: IndicesFromRange(0, uint(c))},
		{Table: subtable.NewEQ(c, m), Indices: IndicesFromRange(0, uint(c-1))},
	}
}

// CombineLookups evaluates Σ_i LT_i · Π_{j<i} EQ_j: the first (most
// significant) chunk where the operands differ decides the comparison.
func (s SLTU) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	slices := SliceValues(s, vals, c, m)
	lt, eq := slices[0], slices[1]

	var res, term, eqProd fr.Element
	eqProd.SetOne()
	for i := 0; i < c; i++ {
		term.Mul(&lt[i], &eqProd)
		res.Add(&res, &term)
		if i < c-1 {
			eqProd.Mul(&eqProd, &eq[i])
		}
	}
	return res
}

func (SLTU) GPolyDegree(c int) int {
	return c
}

func (s SLTU) LookupEntry() uint64 {
	if s.x < s.y {
		return 1
	}
	return 0
}

func (SLTU) Random(rng *rand.Rand) Instruction {
	return SLTU{operands{rng.Uint64(), rng.Uint64()}}
}
