package subtable

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/debug"
)

// EQ is the equality table: row (x, y) holds 1 iff x == y.
type EQ struct {
	c, m int
}

// NewEQ returns an equality subtable shared by c chunks, with m rows
func NewEQ(c, m int) EQ {
	return EQ{c: c, m: m}
}

func (t EQ) Name() string    { return "eq" }
func (t EQ) Dimension() int  { return t.c }
func (t EQ) MemorySize() int { return t.m }

func (t EQ) Materialize() []fr.Element {
	b := operandBits(t.m)
	entries := make([]fr.Element, t.m)

	for idx := range entries {
		lhs, rhs := splitBits(idx, b)
		if lhs == rhs {
			entries[idx].SetOne()
		}
	}
	return entries
}

// EvaluateMLE computes Π_i Eq(x_i, y_i)
func (t EQ) EvaluateMLE(point []fr.Element) fr.Element {
	debug.Assert(len(point)%2 == 0, "mle point must have even length")
	b := len(point) / 2
	x, y := point[:b], point[b:]

	var res fr.Element
	res.SetOne()
	for i := 0; i < b; i++ {
		eqKernel(&res, &x[i], &y[i])
	}
	return res
}
