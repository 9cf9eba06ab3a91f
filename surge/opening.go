package surge

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/debug"
)

// Columns are committed as univariate polynomials with the column entries as
// coefficients, so the multilinear evaluation of a column at a point z (most
// significant variable first) is proven by folding: with f_0 the column and
//
//	f_{j-1}(X) = e(X^2) + X * o(X^2)
//	f_j        = (1 - z_{k-j}) * e + z_{k-j} * o
//
// f_k is the constant claimed evaluation. Folding pairs adjacent
// coefficients, so fold j fixes the least significant remaining index bit,
// which is variable z_{k-j}. The prover commits every intermediate fold and
// the whole chain is checked at beta_j = beta^(2^j) for one transcript
// challenge beta, through
//
//	f_j(beta_j^2) = (1 - z_{k-j}) * (a + b) / 2 + z_{k-j} * (a - b) / (2 beta_j)
//
// where a, b are the openings of f_{j-1} at beta_j and -beta_j. Several
// columns opened at the same point are first batched into one with powers of
// a transcript challenge; the commitments batch the same way.

// OpeningProof ties the claimed multilinear evaluations of one or more
// committed columns at a shared point to their commitments. FoldCommitments
// holds f_1 .. f_{k-1}; Openings holds, per level, the univariate openings
// at beta_j and -beta_j.
type OpeningProof struct {
	FoldCommitments []kzg.Digest
	Openings        []kzg.OpeningProof
}

var twoInv fr.Element

func init() {
	twoInv.SetUint64(2)
	twoInv.Inverse(&twoInv)
}

// proveOpening opens the columns at z. The caller has already bound the
// claimed evaluations; the batching and fold challenges are drawn here.
func proveOpening(cols [][]fr.Element, z []fr.Element, gens *Generators, tr *transcript) (OpeningProof, error) {
	combined := batchColumns(cols, tr)
	k := len(z)
	if k == 0 {
		// single-entry columns: the commitment itself is checked against
		// the claim, no openings needed
		return OpeningProof{}, nil
	}

	levels := make([][]fr.Element, k)
	levels[0] = combined
	proof := OpeningProof{FoldCommitments: make([]kzg.Digest, k-1)}
	var err error
	for j := 1; j < k; j++ {
		levels[j] = foldLowBit(levels[j-1], z[k-j])
		if proof.FoldCommitments[j-1], err = kzg.Commit(levels[j], gens.SRS.Pk); err != nil {
			return OpeningProof{}, err
		}
		tr.Bind(proof.FoldCommitments[j-1].Marshal())
	}

	beta := tr.Challenge()
	proof.Openings = make([]kzg.OpeningProof, 0, 2*k)
	point := beta
	for j := 0; j < k; j++ {
		var neg fr.Element
		neg.Neg(&point)
		for _, at := range []fr.Element{point, neg} {
			op, err := kzg.Open(levels[j], at, gens.SRS.Pk)
			if err != nil {
				return OpeningProof{}, err
			}
			tr.Bind(op.H.Marshal(), op.ClaimedValue.Marshal())
			proof.Openings = append(proof.Openings, op)
		}
		point.Square(&point)
	}
	return proof, nil
}

// verifyOpening checks one opening instance against the column commitments
// and their claimed evaluations, mirroring the prover's transcript schedule.
func verifyOpening(coms []kzg.Digest, claims []fr.Element, z []fr.Element, proof OpeningProof, gens *Generators, tr *transcript) error {
	com, claim, err := batchDigests(coms, claims, tr)
	if err != nil {
		return err
	}

	k := len(z)
	if k == 0 {
		if len(proof.FoldCommitments) != 0 || len(proof.Openings) != 0 {
			return fmt.Errorf("%w: unexpected opening data for a single-entry column", lasso.ErrVerificationFailed)
		}
		var want curve.G1Affine
		var s big.Int
		want.ScalarMultiplication(&gens.SRS.Vk.G1, claim.BigInt(&s))
		if !want.Equal(&com) {
			return fmt.Errorf("%w: single-entry column does not match its commitment", lasso.ErrVerificationFailed)
		}
		return nil
	}
	if len(proof.FoldCommitments) != k-1 || len(proof.Openings) != 2*k {
		return fmt.Errorf("%w: opening proof has the wrong shape for %d variables", lasso.ErrVerificationFailed, k)
	}
	for j := range proof.FoldCommitments {
		tr.Bind(proof.FoldCommitments[j].Marshal())
	}

	beta := tr.Challenge()
	point := beta
	for j := 0; j < k; j++ {
		digest := &com
		if j > 0 {
			digest = &proof.FoldCommitments[j-1]
		}
		var neg fr.Element
		neg.Neg(&point)
		a, b := &proof.Openings[2*j], &proof.Openings[2*j+1]
		if err := kzg.Verify(digest, a, point, gens.SRS.Vk); err != nil {
			return fmt.Errorf("%w: fold %d opening: %v", lasso.ErrVerificationFailed, j, err)
		}
		if err := kzg.Verify(digest, b, neg, gens.SRS.Vk); err != nil {
			return fmt.Errorf("%w: fold %d opening: %v", lasso.ErrVerificationFailed, j, err)
		}
		tr.Bind(a.H.Marshal(), a.ClaimedValue.Marshal())
		tr.Bind(b.H.Marshal(), b.ClaimedValue.Marshal())

		// the next level's value at point^2: the even half moves straight
		// down, the odd half picks up 1/(2 beta_j) from the split
		next := claim
		if j < k-1 {
			next = proof.Openings[2*(j+1)].ClaimedValue
		}
		var even, odd, inv, want fr.Element
		even.Add(&a.ClaimedValue, &b.ClaimedValue)
		even.Mul(&even, &twoInv)
		inv.Double(&point)
		inv.Inverse(&inv)
		odd.Sub(&a.ClaimedValue, &b.ClaimedValue)
		odd.Mul(&odd, &inv)
		want.Sub(&odd, &even)
		want.Mul(&want, &z[k-1-j])
		want.Add(&want, &even)
		if !want.Equal(&next) {
			return fmt.Errorf("%w: fold chain breaks at level %d", lasso.ErrVerificationFailed, j)
		}
		point.Square(&point)
	}
	return nil
}

// batchColumns folds same-length columns into one with powers of a batching
// challenge; a single column passes through without drawing one.
func batchColumns(cols [][]fr.Element, tr *transcript) []fr.Element {
	combined := append([]fr.Element(nil), cols[0]...)
	if len(cols) == 1 {
		return combined
	}
	lambda := tr.Challenge()
	pow := lambda
	var term fr.Element
	for i := 1; i < len(cols); i++ {
		debug.Assert(len(cols[i]) == len(combined), "opening batch mixes column lengths")
		for t := range cols[i] {
			term.Mul(&cols[i][t], &pow)
			combined[t].Add(&combined[t], &term)
		}
		pow.Mul(&pow, &lambda)
	}
	return combined
}

func batchDigests(coms []kzg.Digest, claims []fr.Element, tr *transcript) (kzg.Digest, fr.Element, error) {
	debug.Assert(len(coms) == len(claims), "opening batch shape mismatch")
	if len(coms) == 1 {
		return coms[0], claims[0], nil
	}
	lambda := tr.Challenge()
	scalars := make([]fr.Element, len(coms))
	scalars[0].SetOne()
	for i := 1; i < len(scalars); i++ {
		scalars[i].Mul(&scalars[i-1], &lambda)
	}
	var com kzg.Digest
	if _, err := com.MultiExp(coms, scalars, ecc.MultiExpConfig{}); err != nil {
		return kzg.Digest{}, fr.Element{}, err
	}
	var claim, term fr.Element
	for i := range claims {
		term.Mul(&claims[i], &scalars[i])
		claim.Add(&claim, &term)
	}
	return com, claim, nil
}

func foldLowBit(v []fr.Element, x fr.Element) []fr.Element {
	half := len(v) / 2
	out := make([]fr.Element, half)
	var diff fr.Element
	for t := 0; t < half; t++ {
		diff.Sub(&v[2*t+1], &v[2*t])
		diff.Mul(&diff, &x)
		out[t].Add(&v[2*t], &diff)
	}
	return out
}
