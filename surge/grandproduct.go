package surge

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/debug"
	"github.com/consensys/lasso/polynomial"
	"github.com/consensys/lasso/sumcheck"
)

// Grand-product argument over a binary product tree. The prover shows that a
// vector of 2^k leaves multiplies to a bound product value. Levels are
// proven root first: the claim about level l reduces, through an l-variable
// degree-3 sumcheck of eq(rho, x)*bottom(x)*top(x), to two claims about
// level l+1, merged into one by a random lambda. After k levels the running
// claim is an evaluation of the leaf multilinear extension at a
// protocol-derived point; the caller confronts it with the fingerprint
// openings.

// LevelProof is one tree level: the reduction sumcheck and the two claimed
// evaluations of the next level's halves at the sumcheck point.
type LevelProof struct {
	Sumcheck    sumcheck.Proof
	BottomClaim fr.Element
	TopClaim    fr.Element
}

// ProductTreeProof proves one grand product, root level first
type ProductTreeProof struct {
	Levels []LevelProof
}

func mulCombiner(vals []fr.Element) fr.Element {
	var v fr.Element
	v.Mul(&vals[0], &vals[1])
	v.Mul(&v, &vals[2])
	return v
}

// proveProductTree proves the product of leaves, whose length must be a
// power of two. The leaf slice is consumed. Returns the proof, the final
// evaluation point (most significant variable first, length k) and the leaf
// extension's claimed value there.
func proveProductTree(leaves []fr.Element, tr *transcript) (ProductTreeProof, []fr.Element, fr.Element) {
	k := 0
	for l := len(leaves); l > 1; l >>= 1 {
		k++
	}
	debug.Assert(1<<k == len(leaves), "grand product leaf count is not a power of two")

	// pair on the most significant bit: parent[j] = cur[j] * cur[j+half]
	layers := make([][]fr.Element, k+1)
	layers[k] = leaves
	for l := k - 1; l >= 0; l-- {
		cur := layers[l+1]
		half := len(cur) / 2
		parent := make([]fr.Element, half)
		for j := 0; j < half; j++ {
			parent[j].Mul(&cur[j], &cur[j+half])
		}
		layers[l] = parent
	}

	proof := ProductTreeProof{Levels: make([]LevelProof, k)}
	var point []fr.Element
	claim := layers[0][0] // already the leaf evaluation when k == 0

	for l := 0; l < k; l++ {
		cur := layers[l+1]
		half := len(cur) / 2
		tables := []polynomial.BookKeepingTable{
			polynomial.GetFoldedEqTable(point),
			polynomial.NewBookKeepingTable(cur[:half]),
			polynomial.NewBookKeepingTable(cur[half:]),
		}
		scProof, challenges, finals := sumcheck.Prove(tables, mulCombiner, 3, tr)
		c0, c1 := finals[1], finals[2]
		tr.Bind(c0.Marshal(), c1.Marshal())
		lambda := tr.Challenge()

		proof.Levels[l] = LevelProof{Sumcheck: scProof, BottomClaim: c0, TopClaim: c1}

		// leaf_{l+1}(lambda, rho) = c0 + lambda (c1 - c0)
		claim.Sub(&c1, &c0)
		claim.Mul(&claim, &lambda)
		claim.Add(&claim, &c0)
		point = append([]fr.Element{lambda}, challenges...)
	}

	return proof, point, claim
}

// verifyProductTree checks a tree proof against the bound product value.
// Returns the final evaluation point and leaf claim for the caller's
// fingerprint check.
func verifyProductTree(product fr.Element, proof ProductTreeProof, k int, tr *transcript) ([]fr.Element, fr.Element, error) {
	if len(proof.Levels) != k {
		return nil, fr.Element{}, fmt.Errorf("%w: grand product has %d levels, expected %d", lasso.ErrVerificationFailed, len(proof.Levels), k)
	}

	claim := product
	var point []fr.Element
	for l := 0; l < k; l++ {
		lv := proof.Levels[l]
		challenges, expected, err := sumcheck.Verify(claim, lv.Sumcheck, l, 3, tr)
		if err != nil {
			return nil, fr.Element{}, fmt.Errorf("grand product level %d: %w", l, err)
		}

		var rhs fr.Element
		eq := polynomial.EvalEq(point, challenges)
		rhs.Mul(&lv.BottomClaim, &lv.TopClaim)
		rhs.Mul(&rhs, &eq)
		if !expected.Equal(&rhs) {
			return nil, fr.Element{}, fmt.Errorf("%w: grand product level %d claims do not match the sumcheck", lasso.ErrVerificationFailed, l)
		}

		tr.Bind(lv.BottomClaim.Marshal(), lv.TopClaim.Marshal())
		lambda := tr.Challenge()

		claim.Sub(&lv.TopClaim, &lv.BottomClaim)
		claim.Mul(&claim, &lambda)
		claim.Add(&claim, &lv.BottomClaim)
		point = append([]fr.Element{lambda}, challenges...)
	}

	return point, claim, nil
}
