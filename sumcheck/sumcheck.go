// Package sumcheck implements the sumcheck protocol for claims of the form
//
//	claim = Σ_{b ∈ {0,1}^n} combine(T_0[b], ..., T_k[b])
//
// where the T_i are dense multilinear book-keeping tables and combine is a
// low-degree polynomial in the table values. One round is run per variable,
// most significant first; each round's polynomial is sent by coefficients
// and bound into the Fiat-Shamir transcript before the round's challenge is
// derived.
package sumcheck

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/common"
	"github.com/consensys/lasso/polynomial"
)

// Combiner evaluates the summed polynomial given one value per table
type Combiner func(vals []fr.Element) fr.Element

// Transcript is the subset of the Fiat-Shamir transcript the protocol needs.
// Bind appends prover messages ahead of the next challenge; Challenge derives
// it. Identical message sequences must yield identical challenges.
type Transcript interface {
	Bind(data ...[]byte)
	Challenge() fr.Element
}

// Proof is the object produced by the prover
type Proof struct {
	PolyCoeffs [][]fr.Element
}

// Prove runs the sumcheck on the given tables. All tables must have the same
// power-of-two length; degree is an exact upper bound on the total degree of
// combine in the table values. The tables are folded in place: after the
// last round each holds a single entry, its evaluation at the challenge
// point. Returns the proof, the challenges (most significant variable first)
// and the final table values.
func Prove(tables []polynomial.BookKeepingTable, combine Combiner, degree int, tr Transcript) (Proof, []fr.Element, []fr.Element) {
	nVars := tables[0].NumVars()
	for i := range tables {
		if tables[i].NumVars() != nVars {
			panic("sumcheck: tables must have equal lengths")
		}
	}

	var proof Proof
	proof.PolyCoeffs = make([][]fr.Element, nVars)
	challenges := make([]fr.Element, nVars)

	for round := 0; round < nVars; round++ {
		evals := partialEvals(tables, combine, degree)
		proof.PolyCoeffs[round] = polynomial.InterpolateOnRange(evals)

		tr.Bind(marshalSlice(proof.PolyCoeffs[round])...)
		r := tr.Challenge()
		challenges[round] = r

		for i := range tables {
			tables[i].Fold(r)
		}
	}

	finalValues := make([]fr.Element, len(tables))
	for i := range tables {
		finalValues[i] = tables[i].Table[0]
	}

	return proof, challenges, finalValues
}

// partialEvals computes the current round's polynomial P(t) for
// t = 0, ..., degree, where P(t) = Σ_b combine(tables folded at t, entry b).
// The sum over b is chunked across cores; field addition is commutative so
// any chunking yields the same result.
func partialEvals(tables []polynomial.BookKeepingTable, combine Combiner, degree int) []fr.Element {
	nEvals := degree + 1
	mid := len(tables[0].Table) / 2

	chunks := common.IntoChunkRanges(common.NumCores(), mid)
	partials := make([][]fr.Element, len(chunks))

	done := make(chan int, len(chunks))
	for c := range chunks {
		go func(c int) {
			chunk := chunks[c]
			acc := make([]fr.Element, nEvals)
			vals := make([]fr.Element, len(tables))
			deltas := make([]fr.Element, len(tables))
			for b := chunk.Begin; b < chunk.End; b++ {
				for i := range tables {
					vals[i] = tables[i].Table[b]
					deltas[i].Sub(&tables[i].Table[b+mid], &tables[i].Table[b])
				}
				for t := 0; t < nEvals; t++ {
					v := combine(vals)
					acc[t].Add(&acc[t], &v)
					if t+1 < nEvals {
						for i := range vals {
							vals[i].Add(&vals[i], &deltas[i])
						}
					}
				}
			}
			partials[c] = acc
			done <- c
		}(c)
	}

	evals := make([]fr.Element, nEvals)
	for range chunks {
		c := <-done
		for t := range evals {
			evals[t].Add(&evals[t], &partials[c][t])
		}
	}
	return evals
}

// Verify checks the round-polynomial consistency chain against the claim.
// It returns the challenges and the final expected value, which the caller
// must confront with the combined opened evaluations.
func Verify(claim fr.Element, proof Proof, nVars, degree int, tr Transcript) ([]fr.Element, fr.Element, error) {
	if len(proof.PolyCoeffs) != nVars {
		return nil, fr.Element{}, fmt.Errorf("%w: sumcheck has %d rounds, expected %d", lasso.ErrVerificationFailed, len(proof.PolyCoeffs), nVars)
	}

	challenges := make([]fr.Element, nVars)
	expected := claim
	var zero, one fr.Element
	one.SetOne()

	for i := 0; i < nVars; i++ {
		coeffs := proof.PolyCoeffs[i]
		if len(coeffs) != degree+1 {
			return nil, fr.Element{}, fmt.Errorf("%w: round %d polynomial has %d coefficients, expected %d", lasso.ErrVerificationFailed, i, len(coeffs), degree+1)
		}

		// Check P_i(0) + P_i(1) == expected
		actual := polynomial.EvaluatePolynomial(coeffs, zero)
		evalAtOne := polynomial.EvaluatePolynomial(coeffs, one)
		actual.Add(&actual, &evalAtOne)
		if !actual.Equal(&expected) {
			return nil, fr.Element{}, fmt.Errorf("%w: sumcheck round %d inconsistent with previous claim", lasso.ErrVerificationFailed, i)
		}

		tr.Bind(marshalSlice(coeffs)...)
		r := tr.Challenge()
		challenges[i] = r
		expected = polynomial.EvaluatePolynomial(coeffs, r)
	}

	return challenges, expected, nil
}

func marshalSlice(elems []fr.Element) [][]byte {
	out := make([][]byte, len(elems))
	for i := range elems {
		out[i] = elems[i].Marshal()
	}
	return out
}
