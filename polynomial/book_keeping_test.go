package polynomial

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	// [0, 1, 2, 3]
	table := make([]fr.Element, 4)
	for i := 0; i < 4; i++ {
		table[i].SetUint64(uint64(i))
	}

	var r fr.Element
	r.SetUint64(uint64(5))

	bkt := NewBookKeepingTable(table)
	// Folding the most significant variable on 5 should yield [10, 11]
	bkt.Fold(r)

	var ten, eleven fr.Element
	ten.SetUint64(uint64(10))
	eleven.SetUint64(uint64(11))

	assert.Equal(t, ten, bkt.Table[0], "Mismatch on 0")
	assert.Equal(t, eleven, bkt.Table[1], "Mismatch on 1")
}

func TestFuncEval(t *testing.T) {
	// [0, 1, 2, 3]
	table := make([]fr.Element, 4)
	for i := 0; i < 4; i++ {
		table[i].SetUint64(uint64(i))
	}

	bkt := NewBookKeepingTable(table)
	evals := bkt.FunctionEvals()

	var two fr.Element
	two.SetUint64(uint64(2))

	assert.Equal(t, two, evals[0])
	assert.Equal(t, two, evals[1])
}

func TestEvaluateOnBooleanPoint(t *testing.T) {
	table := make([]fr.Element, 8)
	for i := range table {
		table[i].SetUint64(uint64(i * i))
	}
	bkt := NewBookKeepingTable(table)

	var zero, one fr.Element
	one.SetOne()

	// index 6 = 0b110, most significant variable first
	point := []fr.Element{one, one, zero}
	var expected fr.Element
	expected.SetUint64(36)
	assert.Equal(t, expected, bkt.Evaluate(point))
	assert.Equal(t, 3, bkt.NumVars())
}

func TestFoldedEqTable(t *testing.T) {
	q := randomPoint(t, 4)

	eq := GetFoldedEqTable(q)

	// entry h of the folded table must equal Eq(q, bits(h))
	for h := 0; h < 1<<4; h++ {
		hBits := make([]fr.Element, 4)
		for b := 0; b < 4; b++ {
			if h&(1<<(3-b)) != 0 {
				hBits[b].SetOne()
			}
		}
		expected := EvalEq(q, hBits)
		assert.Equal(t, expected, eq.Table[h], "mismatch at entry %d", h)
	}
}

func randomPoint(t *testing.T, n int) []fr.Element {
	t.Helper()
	point := make([]fr.Element, n)
	for i := range point {
		_, err := point[i].SetRandom()
		assert.NoError(t, err)
	}
	return point
}
