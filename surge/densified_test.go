package surge

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLookupIndicesValidation(t *testing.T) {
	_, err := FromLookupIndices(nil, 2, 4)
	assert.ErrorIs(t, err, lasso.ErrInvalidParameter)

	_, err = FromLookupIndices([][]int{{1, 2, 3}}, 2, 4)
	assert.ErrorIs(t, err, lasso.ErrInvalidParameter, "ragged row")

	_, err = FromLookupIndices([][]int{{1, 16}}, 2, 4)
	assert.ErrorIs(t, err, lasso.ErrInvalidParameter, "index out of range")

	_, err = FromLookupIndices([][]int{{1, -1}}, 2, 4)
	assert.ErrorIs(t, err, lasso.ErrInvalidParameter, "negative index")

	_, err = FromLookupIndices([][]int{{1, 2}}, 2, 5)
	assert.ErrorIs(t, err, lasso.ErrInvalidParameter, "odd log_M")
}

func TestDensifiedColumns(t *testing.T) {
	// three lookups, padded to four rows; dimension 0 reads address 3 twice
	dense, err := FromLookupIndices([][]int{
		{3, 1},
		{3, 2},
		{5, 1},
	}, 2, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, dense.SPadded)
	assert.Equal(t, 3, dense.NumLookups)
	assert.Equal(t, 2, dense.LogSPadded())

	wantUint := func(e fr.Element, v uint64) bool {
		var w fr.Element
		w.SetUint64(v)
		return e.Equal(&w)
	}

	// flags: three real rows, one padding row
	assert.True(t, wantUint(dense.Flags[0], 1))
	assert.True(t, wantUint(dense.Flags[2], 1))
	assert.True(t, wantUint(dense.Flags[3], 0))

	// the padding row reads address 0
	assert.Equal(t, 0, dense.DimRaw[0][3])

	// read counters: second access of address 3 sees count 1
	assert.True(t, wantUint(dense.ReadTs[0][0], 0))
	assert.True(t, wantUint(dense.ReadTs[0][1], 1))
	assert.True(t, wantUint(dense.ReadTs[0][2], 0))

	// final counters include the padding row's read of address 0
	assert.True(t, wantUint(dense.FinalCts[0][3], 2))
	assert.True(t, wantUint(dense.FinalCts[0][5], 1))
	assert.True(t, wantUint(dense.FinalCts[0][0], 1))
	assert.True(t, wantUint(dense.FinalCts[0][7], 0))

	// dimension 1 counts independently
	assert.True(t, wantUint(dense.ReadTs[1][2], 1))
	assert.True(t, wantUint(dense.FinalCts[1][1], 2))
}
