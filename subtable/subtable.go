// Package subtable defines the small precomputed lookup tables instruction
// semantics decompose into. A subtable exposes two views of the same
// content: an explicit materialization over all 2^logM rows, and the unique
// multilinear extension agreeing with it on Boolean points, in closed form.
// Agreement of the two views on every Boolean point is a correctness law,
// tested exhaustively.
package subtable

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/common"
	"github.com/consensys/lasso/debug"
)

// Subtable is one lookup table shape. A table row index is interpreted as
// the concatenation of two equal-width sub-operands (left sub-operand in the
// high bits); the row's value is the table's semantic function of the two.
//
// EvaluateMLE takes a point of even length, split into the two sub-operands'
// bits, most significant first, and must agree with Materialize on all
// Boolean points.
type Subtable interface {
	Name() string
	Dimension() int
	MemorySize() int
	Materialize() []fr.Element
	EvaluateMLE(point []fr.Element) fr.Element
}

// splitBits splits a table row index into its two b-bit sub-operands
func splitBits(idx, b int) (uint64, uint64) {
	mask := uint64(1)<<b - 1
	return uint64(idx) >> b, uint64(idx) & mask
}

// operandBits returns the width of each sub-operand for a table of m rows
func operandBits(m int) int {
	logM := common.Log2Ceil(m)
	debug.Assert(logM%2 == 0, "table size must have an even number of index bits")
	return logM / 2
}

// eqKernel accumulates res *= 1 - x - y + 2xy, the single-bit equality kernel
func eqKernel(res, x, y *fr.Element) {
	var u, s, one fr.Element
	one.SetOne()
	u.Mul(x, y)
	u.Add(&u, &u)
	u.Add(&u, &one)
	s.Add(x, y)
	u.Sub(&u, &s)
	res.Mul(res, &u)
}
