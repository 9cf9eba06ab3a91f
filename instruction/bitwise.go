package instruction

import (
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/subtable"
)

// The three bitwise variants share the same shape: one subtable read per
// chunk, recombined by positional concatenation. Only the table differs.

// ANDInstr is bitwise AND of the two operands
type ANDInstr struct {
	operands
}

func (ANDInstr) Opcode() Opcode {
	return OpAND
}

func (s ANDInstr) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

func (ANDInstr) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewAND(c, m), Indices: IndicesFromRange(0, uint(c))},
	}
}

func (s ANDInstr) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	return concatenateLookups(SliceValues(s, vals, c, m)[0], c, operandBits(m))
}

func (ANDInstr) GPolyDegree(c int) int {
	return 1
}

func (s ANDInstr) LookupEntry() uint64 {
	return s.x & s.y
}

func (ANDInstr) Random(rng *rand.Rand) Instruction {
	return ANDInstr{operands{rng.Uint64(), rng.Uint64()}}
}

// ORInstr is bitwise OR of the two operands
type ORInstr struct {
	operands
}

func (ORInstr) Opcode() Opcode {
	return OpOR
}

func (s ORInstr) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

func (ORInstr) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewOR(c, m), Indices: IndicesFromRange(0, uint(c))},
	}
}

func (s ORInstr) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	return concatenateLookups(SliceValues(s, vals, c, m)[0], c, operandBits(m))
}

func (ORInstr) GPolyDegree(c int) int {
	return 1
}

func (s ORInstr) LookupEntry() uint64 {
	return s.x | s.y
}

func (ORInstr) Random(rng *rand.Rand) Instruction {
	return ORInstr{operands{rng.Uint64(), rng.Uint64()}}
}

// XORInstr is bitwise XOR of the two operands
type XORInstr struct {
	operands
}

func (XORInstr) Opcode() Opcode {
	return OpXOR
}

func (s XORInstr) ToIndices(c, logM int) ([]int, error) {
	return indicesFromOperands(s, c, logM)
}

func (XORInstr) Subtables(c, m int) []Lookup {
	return []Lookup{
		{Table: subtable.NewXOR(c, m), Indices: IndicesFromRange(0, uint(c))},
	}
}

func (s XORInstr) CombineLookups(vals []fr.Element, c, m int) fr.Element {
	return concatenateLookups(SliceValues(s, vals, c, m)[0], c, operandBits(m))
}

func (XORInstr) GPolyDegree(c int) int {
	return 1
}

func (s XORInstr) LookupEntry() uint64 {
	return s.x ^ s.y
}

func (XORInstr) Random(rng *rand.Rand) Instruction {
	return XORInstr{operands{rng.Uint64(), rng.Uint64()}}
}
