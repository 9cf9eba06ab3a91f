package subtable

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/debug"
)

// The bitwise tables value row (x, y) as the b-bit integer produced by the
// corresponding bit operation. Their MLEs are weighted sums of per-bit
// kernels:
//
//	AND: x_i y_i
//	OR:  x_i + y_i - x_i y_i
//	XOR: x_i + y_i - 2 x_i y_i
//
// each weighted by 2^(b-1-i), bit 0 being the most significant.

// AND is the bitwise-and table.
type AND struct {
	c, m int
}

// NewAND returns a bitwise-and subtable shared by c chunks, with m rows
func NewAND(c, m int) AND {
	return AND{c: c, m: m}
}

func (t AND) Name() string    { return "and" }
func (t AND) Dimension() int  { return t.c }
func (t AND) MemorySize() int { return t.m }

func (t AND) Materialize() []fr.Element {
	b := operandBits(t.m)
	entries := make([]fr.Element, t.m)
	for idx := range entries {
		lhs, rhs := splitBits(idx, b)
		entries[idx].SetUint64(lhs & rhs)
	}
	return entries
}

func (t AND) EvaluateMLE(point []fr.Element) fr.Element {
	return bitwiseMLE(point, func(res, x, y *fr.Element) {
		res.Mul(x, y)
	})
}

// OR is the bitwise-or table.
type OR struct {
	c, m int
}

// NewOR returns a bitwise-or subtable shared by c chunks, with m rows
func NewOR(c, m int) OR {
	return OR{c: c, m: m}
}

func (t OR) Name() string    { return "or" }
func (t OR) Dimension() int  { return t.c }
func (t OR) MemorySize() int { return t.m }

func (t OR) Materialize() []fr.Element {
	b := operandBits(t.m)
	entries := make([]fr.Element, t.m)
	for idx := range entries {
		lhs, rhs := splitBits(idx, b)
		entries[idx].SetUint64(lhs | rhs)
	}
	return entries
}

func (t OR) EvaluateMLE(point []fr.Element) fr.Element {
	return bitwiseMLE(point, func(res, x, y *fr.Element) {
		var xy fr.Element
		xy.Mul(x, y)
		res.Add(x, y)
		res.Sub(res, &xy)
	})
}

// XOR is the bitwise-xor table.
type XOR struct {
	c, m int
}

// NewXOR returns a bitwise-xor subtable shared by c chunks, with m rows
func NewXOR(c, m int) XOR {
	return XOR{c: c, m: m}
}

func (t XOR) Name() string    { return "xor" }
func (t XOR) Dimension() int  { return t.c }
func (t XOR) MemorySize() int { return t.m }

func (t XOR) Materialize() []fr.Element {
	b := operandBits(t.m)
	entries := make([]fr.Element, t.m)
	for idx := range entries {
		lhs, rhs := splitBits(idx, b)
		entries[idx].SetUint64(lhs ^ rhs)
	}
	return entries
}

func (t XOR) EvaluateMLE(point []fr.Element) fr.Element {
	return bitwiseMLE(point, func(res, x, y *fr.Element) {
		var xy fr.Element
		xy.Mul(x, y)
		res.Add(x, y)
		res.Sub(res, &xy)
		res.Sub(res, &xy)
	})
}

func bitwiseMLE(point []fr.Element, kernel func(res, x, y *fr.Element)) fr.Element {
	debug.Assert(len(point)%2 == 0, "mle point must have even length")
	b := len(point) / 2
	x, y := point[:b], point[b:]

	var res, term, weight fr.Element
	for i := 0; i < b; i++ {
		kernel(&term, &x[i], &y[i])
		weight.SetUint64(uint64(1) << (b - 1 - i))
		term.Mul(&term, &weight)
		res.Add(&res, &term)
	}
	return res
}
