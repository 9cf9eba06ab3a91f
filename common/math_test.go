package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog2(t *testing.T) {
	assert.Equal(t, 0, Log2Floor(1))
	assert.Equal(t, 4, Log2Floor(16))
	assert.Equal(t, 4, Log2Floor(31))
	assert.Equal(t, 5, Log2Ceil(17))
	assert.Equal(t, 4, Log2Ceil(16))
	assert.Equal(t, 256, NextPowerOfTwo(129))
	assert.Equal(t, 128, NextPowerOfTwo(128))
}

func TestIntoChunkRanges(t *testing.T) {
	for _, n := range []int{1, 5, MinChunkSize, 3*MinChunkSize + 17} {
		chunks := IntoChunkRanges(4, n)
		covered := 0
		prevEnd := 0
		for _, c := range chunks {
			assert.Equal(t, prevEnd, c.Begin)
			assert.Greater(t, c.End, c.Begin)
			covered += c.End - c.Begin
			prevEnd = c.End
		}
		assert.Equal(t, n, covered, "chunks must cover the range exactly")
	}
}
