package subtable

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/debug"
)

// LT is the strict unsigned less-than table: row (x, y) holds 1 iff x < y.
type LT struct {
	c, m int
}

// NewLT returns a less-than subtable shared by c chunks, with m rows
func NewLT(c, m int) LT {
	return LT{c: c, m: m}
}

func (t LT) Name() string    { return "lt" }
func (t LT) Dimension() int  { return t.c }
func (t LT) MemorySize() int { return t.m }

func (t LT) Materialize() []fr.Element {
	b := operandBits(t.m)
	entries := make([]fr.Element, t.m)

	// table in counting order, lhs | rhs counting from 0 to m
	for idx := range entries {
		lhs, rhs := splitBits(idx, b)
		if lhs < rhs {
			entries[idx].SetOne()
		}
	}
	return entries
}

// EvaluateMLE computes the bit-serial less-than form
//
//	Σ_i (1-x_i) y_i Π_{j<i} Eq(x_j, y_j)
//
// iterating from the most significant bit: chunk x is below chunk y exactly
// when some bit has x_i=0, y_i=1 and all more significant bits agree.
func (t LT) EvaluateMLE(point []fr.Element) fr.Element {
	debug.Assert(len(point)%2 == 0, "mle point must have even length")
	b := len(point) / 2
	x, y := point[:b], point[b:]

	var res, eqTerm, term, one fr.Element
	one.SetOne()
	eqTerm.SetOne()
	for i := 0; i < b; i++ {
		term.Sub(&one, &x[i])
		term.Mul(&term, &y[i])
		term.Mul(&term, &eqTerm)
		res.Add(&res, &term)
		eqKernel(&eqTerm, &x[i], &y[i])
	}
	return res
}
