package polynomial

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// EvalEq computes Eq(q1, ... , qn, h1, ... , hn) = Π_1^n Eq(qi, hi)
// where Eq(x,y) = xy + (1-x)(1-y) = 1 - x - y + 2xy interpolates
//
//	    _________________
//	    |       |       |
//	    |   0   |   1   |
//	    |_______|_______|
//	y   |       |       |
//	    |   1   |   0   |
//	    |_______|_______|
//
//	            x
func EvalEq(q, h []fr.Element) fr.Element {
	var res, nxt, one, sum fr.Element
	one.SetOne()
	res.SetOne()
	for i := 0; i < len(q); i++ {
		nxt.Mul(&q[i], &h[i]) // nxt <- qi * hi
		nxt.Add(&nxt, &nxt)   // nxt <- 2 * qi * hi
		nxt.Add(&nxt, &one)   // nxt <- 1 + 2 * qi * hi
		sum.Add(&q[i], &h[i]) // sum <- qi + hi
		nxt.Sub(&nxt, &sum)   // nxt <- 1 + 2 * qi * hi - qi - hi
		res.Mul(&res, &nxt)   // res <- res * nxt
	}
	return res
}

// GetFoldedEqTable ought to start life as a sparse bookkeeping table
// depending on 2n variables and containing 2^n ones only
// to be folded n times according to the values in q.
// The resulting table will no longer be sparse.
// Instead we directly compute the folded array of length 2^n
// containing the values of Eq(q1, ... , qn, *, ... , *)
// where q = [q1 ... qn], q1 being the most significant variable.
func GetFoldedEqTable(q []fr.Element) (eq BookKeepingTable) {
	n := len(q)
	foldedEqTable := make([]fr.Element, 1<<n)
	foldedEqTable[0].SetOne()

	for i := range q {
		for j := 0; j < (1 << i); j++ {
			J := j << (n - i)
			JNext := J + 1<<(n-1-i)
			foldedEqTable[JNext].Mul(&q[i], &foldedEqTable[J])
			foldedEqTable[J].Sub(&foldedEqTable[J], &foldedEqTable[JNext])
		}
	}

	return NewBookKeepingTable(foldedEqTable)
}
