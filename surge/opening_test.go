package surge

import (
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/polynomial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomColumns(rng *rand.Rand, n, length int) [][]fr.Element {
	cols := make([][]fr.Element, n)
	for i := range cols {
		cols[i] = make([]fr.Element, length)
		for t := range cols[i] {
			cols[i][t].SetUint64(rng.Uint64())
		}
	}
	return cols
}

func openingFixture(t *testing.T, cols [][]fr.Element, z []fr.Element, gens *Generators) ([]kzg.Digest, []fr.Element) {
	t.Helper()
	coms := make([]kzg.Digest, len(cols))
	claims := make([]fr.Element, len(cols))
	for i := range cols {
		var err error
		coms[i], err = gens.commitColumn(cols[i])
		require.NoError(t, err)
		table := polynomial.NewBookKeepingTable(cols[i])
		claims[i] = table.Evaluate(z)
	}
	return coms, claims
}

func TestOpeningRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	gens, err := NewGenerators(8, 16)
	require.NoError(t, err)

	cols := randomColumns(rng, 3, 8)
	z := randomPoint(t, 3)
	coms, claims := openingFixture(t, cols, z, gens)

	tr := newTranscript(defaultHash(), instanceChallenges(3, 3))
	proof, err := proveOpening(cols, z, gens, tr)
	require.NoError(t, err)
	assert.Len(t, proof.FoldCommitments, 2)
	assert.Len(t, proof.Openings, 6)

	tr2 := newTranscript(defaultHash(), instanceChallenges(3, 3))
	assert.NoError(t, verifyOpening(coms, claims, z, proof, gens, tr2))
}

func TestOpeningSingleColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	gens, err := NewGenerators(4, 16)
	require.NoError(t, err)

	cols := randomColumns(rng, 1, 4)
	z := randomPoint(t, 2)
	coms, claims := openingFixture(t, cols, z, gens)

	tr := newTranscript(defaultHash(), instanceChallenges(1, 2))
	proof, err := proveOpening(cols, z, gens, tr)
	require.NoError(t, err)

	tr2 := newTranscript(defaultHash(), instanceChallenges(1, 2))
	assert.NoError(t, verifyOpening(coms, claims, z, proof, gens, tr2))
}

func TestOpeningRejectsWrongClaim(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	gens, err := NewGenerators(8, 16)
	require.NoError(t, err)

	cols := randomColumns(rng, 2, 8)
	z := randomPoint(t, 3)
	coms, claims := openingFixture(t, cols, z, gens)

	tr := newTranscript(defaultHash(), instanceChallenges(2, 3))
	proof, err := proveOpening(cols, z, gens, tr)
	require.NoError(t, err)

	var one fr.Element
	one.SetOne()
	claims[1].Add(&claims[1], &one)

	tr2 := newTranscript(defaultHash(), instanceChallenges(2, 3))
	assert.ErrorIs(t, verifyOpening(coms, claims, z, proof, gens, tr2), lasso.ErrVerificationFailed)
}

func TestOpeningRejectsWrongCommitment(t *testing.T) {
	rng := rand.New(rand.NewSource(24))
	gens, err := NewGenerators(8, 16)
	require.NoError(t, err)

	cols := randomColumns(rng, 1, 8)
	other := randomColumns(rng, 1, 8)
	z := randomPoint(t, 3)
	_, claims := openingFixture(t, cols, z, gens)
	otherComs, _ := openingFixture(t, other, z, gens)

	tr := newTranscript(defaultHash(), instanceChallenges(1, 3))
	proof, err := proveOpening(cols, z, gens, tr)
	require.NoError(t, err)

	// honest proof for one column checked against another's commitment
	tr2 := newTranscript(defaultHash(), instanceChallenges(1, 3))
	assert.ErrorIs(t, verifyOpening(otherComs, claims, z, proof, gens, tr2), lasso.ErrVerificationFailed)
}

func TestOpeningSingleEntryColumns(t *testing.T) {
	gens, err := NewGenerators(1, 16)
	require.NoError(t, err)

	cols := [][]fr.Element{
		make([]fr.Element, 1),
		make([]fr.Element, 1),
	}
	cols[0][0].SetUint64(5)
	cols[1][0].SetUint64(9)
	coms, claims := openingFixture(t, cols, nil, gens)

	tr := newTranscript(defaultHash(), instanceChallenges(2, 0))
	proof, err := proveOpening(cols, nil, gens, tr)
	require.NoError(t, err)
	assert.Empty(t, proof.FoldCommitments)
	assert.Empty(t, proof.Openings)

	tr2 := newTranscript(defaultHash(), instanceChallenges(2, 0))
	require.NoError(t, verifyOpening(coms, claims, nil, proof, gens, tr2))

	var one fr.Element
	one.SetOne()
	claims[0].Add(&claims[0], &one)
	tr3 := newTranscript(defaultHash(), instanceChallenges(2, 0))
	assert.ErrorIs(t, verifyOpening(coms, claims, nil, proof, gens, tr3), lasso.ErrVerificationFailed)
}
