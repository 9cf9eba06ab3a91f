package surge

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/polynomial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomLeaves(n int, rng *rand.Rand) []fr.Element {
	leaves := make([]fr.Element, n)
	for i := range leaves {
		leaves[i].SetUint64(rng.Uint64()%1000 + 1)
	}
	return leaves
}

func TestProductTreeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, k := range []int{0, 1, 3, 6} {
		leaves := randomLeaves(1<<k, rng)
		product := productOf(leaves)

		// the final claim must open the leaf extension
		leafTable := polynomial.NewBookKeepingTable(append([]fr.Element(nil), leaves...))

		proverTr := newTranscript(defaultHash(), treeChallenges(k))
		proof, point, claim := proveProductTree(leaves, proverTr)

		want := leafTable.Evaluate(point)
		assert.True(t, claim.Equal(&want), "k=%d: prover claim is not the leaf extension", k)

		verifierTr := newTranscript(defaultHash(), treeChallenges(k))
		vPoint, vClaim, err := verifyProductTree(product, proof, k, verifierTr)
		require.NoError(t, err, "k=%d", k)
		assert.Equal(t, point, vPoint, "k=%d", k)
		assert.True(t, vClaim.Equal(&claim), "k=%d", k)
	}
}

func TestProductTreeRejectsWrongProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	k := 4
	leaves := randomLeaves(1<<k, rng)
	product := productOf(leaves)

	proof, _, _ := proveProductTree(leaves, newTranscript(defaultHash(), treeChallenges(k)))

	var one, bad fr.Element
	one.SetOne()
	bad.Add(&product, &one)

	_, _, err := verifyProductTree(bad, proof, k, newTranscript(defaultHash(), treeChallenges(k)))
	assert.ErrorIs(t, err, lasso.ErrVerificationFailed)
}

func TestProductTreeRejectsTamperedClaim(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	k := 4
	leaves := randomLeaves(1<<k, rng)
	product := productOf(leaves)

	proof, _, _ := proveProductTree(leaves, newTranscript(defaultHash(), treeChallenges(k)))

	var one fr.Element
	one.SetOne()
	proof.Levels[2].BottomClaim.Add(&proof.Levels[2].BottomClaim, &one)

	_, _, err := verifyProductTree(product, proof, k, newTranscript(defaultHash(), treeChallenges(k)))
	assert.ErrorIs(t, err, lasso.ErrVerificationFailed)
}
