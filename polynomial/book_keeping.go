package polynomial

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// BookKeepingTable tracks the values of a (dense i.e. not sparse) multilinear polynomial
type BookKeepingTable struct {
	Table []fr.Element
}

// NewBookKeepingTable returns a new instance of bookkeeping table
func NewBookKeepingTable(table []fr.Element) BookKeepingTable {
	return BookKeepingTable{
		Table: table,
	}
}

// Fold folds the table on its first coordinate using the given value r
func (bkt *BookKeepingTable) Fold(r fr.Element) {
	mid := bkt.middleIndex()
	bottom, top := bkt.Table[:mid], bkt.Table[mid:]
	for i := range bottom {
		// table[i] <- table[i] + r (table[i + mid] - table[i])
		top[i].Sub(&top[i], &bottom[i])
		top[i].Mul(&top[i], &r)
		bottom[i].Add(&bottom[i], &top[i])
	}
	bkt.Table = bkt.Table[:mid]
}

// FunctionEvals returns the difference between the top and bottom halves of
// the table: for the first variable X, entry b holds P(1, b) - P(0, b), the
// increment per unit of X used when extrapolating the round polynomials.
func (bkt BookKeepingTable) FunctionEvals() []fr.Element {
	mid := bkt.middleIndex()
	fEvals := make([]fr.Element, mid)
	bottom, top := bkt.Table[:mid], bkt.Table[mid:]

	for i := range bottom {
		fEvals[i].Sub(&top[i], &bottom[i])
	}

	return fEvals
}

func (bkt BookKeepingTable) middleIndex() int {
	return len(bkt.Table) / 2
}

// NumVars returns the number of variables the table depends on
func (bkt BookKeepingTable) NumVars() int {
	n := 0
	for l := len(bkt.Table); l > 1; l >>= 1 {
		n++
	}
	return n
}

// DeepCopy creates a deep copy of a book-keeping table.
// Both multilinear interpolation and sumcheck require folding an underlying
// array, but folding changes the array. To do both one requires a deep copy
// of the book-keeping table.
func (bkt *BookKeepingTable) DeepCopy() BookKeepingTable {
	tableDeepCopy := make([]fr.Element, len(bkt.Table))
	copy(tableDeepCopy, bkt.Table)
	return NewBookKeepingTable(tableDeepCopy)
}

// Evaluate takes a dense book-keeping table, deep copies it, folds it along the
// variables on which the table depends by substituting the corresponding coordinate
// from coordinates. After folding, the copy is reduced to a one item slice
// containing the evaluation of the original table at coordinates. This is returned.
// Coordinates are ordered most significant variable first.
func (bkt *BookKeepingTable) Evaluate(coordinates []fr.Element) fr.Element {
	bkCopy := bkt.DeepCopy()
	for _, r := range coordinates {
		bkCopy.Fold(r)
	}

	return bkCopy.Table[0]
}
