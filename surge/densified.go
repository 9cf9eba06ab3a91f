package surge

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/common"
	"golang.org/x/sync/errgroup"
)

// DensifiedRepresentation is the prover-side dense encoding of a lookup
// batch: per-dimension index columns, offline-memory-checking counters and a
// padding flag column, all padded to a power-of-two row count.
//
// Counters are per dimension, not per memory: two subtables read through the
// same chunk share one address sequence, hence one counter stream.
type DensifiedRepresentation struct {
	C       int
	LogM    int
	SPadded int
	// NumLookups is the real row count before padding
	NumLookups int

	// DimRaw[i] is dimension i's index column as machine integers, used to
	// materialize E columns; Dim[i] is the same column over the field.
	DimRaw [][]int
	Dim    [][]fr.Element
	// ReadTs[i][row] is how many times Dim[i][row] had been read before row
	ReadTs [][]fr.Element
	// FinalCts[i][addr] is the total read count of addr in dimension i,
	// length 2^LogM
	FinalCts [][]fr.Element
	// Flags is 1 on real rows and 0 on padding rows
	Flags []fr.Element
}

// FromLookupIndices densifies a batch of decomposed lookups. Every row must
// have exactly c indices, each in [0, 2^logM); logM must be even. Rows are
// padded with index-0 lookups to the next power of two; padding rows carry a
// zero flag and do not contribute to the proven aggregate, but their reads
// are counted like any other.
func FromLookupIndices(indices [][]int, c, logM int) (*DensifiedRepresentation, error) {
	if c < 1 {
		return nil, fmt.Errorf("%w: need at least one dimension, got %d", lasso.ErrInvalidParameter, c)
	}
	if logM < 2 || logM%2 != 0 {
		return nil, fmt.Errorf("%w: log_M must be even and positive, got %d", lasso.ErrInvalidParameter, logM)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: empty lookup batch", lasso.ErrInvalidParameter)
	}
	m := 1 << logM
	for row := range indices {
		if len(indices[row]) != c {
			return nil, fmt.Errorf("%w: row %d has %d indices, expected %d", lasso.ErrInvalidParameter, row, len(indices[row]), c)
		}
	}

	s := len(indices)
	sPadded := common.NextPowerOfTwo(s)

	dense := &DensifiedRepresentation{
		C:          c,
		LogM:       logM,
		SPadded:    sPadded,
		NumLookups: s,
		DimRaw:     make([][]int, c),
		Dim:        make([][]fr.Element, c),
		ReadTs:     make([][]fr.Element, c),
		FinalCts:   make([][]fr.Element, c),
		Flags:      make([]fr.Element, sPadded),
	}
	for row := 0; row < s; row++ {
		dense.Flags[row].SetOne()
	}

	var g errgroup.Group
	for i := 0; i < c; i++ {
		i := i
		g.Go(func() error {
			raw := make([]int, sPadded)
			for row := 0; row < s; row++ {
				idx := indices[row][i]
				if idx < 0 || idx >= m {
					return fmt.Errorf("%w: row %d dimension %d index %d out of range [0, %d)", lasso.ErrInvalidParameter, row, i, idx, m)
				}
				raw[row] = idx
			}

			dim := make([]fr.Element, sPadded)
			readTs := make([]fr.Element, sPadded)
			cts := make([]uint64, m)
			for row := 0; row < sPadded; row++ {
				addr := raw[row]
				dim[row].SetUint64(uint64(addr))
				readTs[row].SetUint64(cts[addr])
				cts[addr]++
			}

			finalCts := make([]fr.Element, m)
			for addr := range cts {
				if cts[addr] != 0 {
					finalCts[addr].SetUint64(cts[addr])
				}
			}

			dense.DimRaw[i] = raw
			dense.Dim[i] = dim
			dense.ReadTs[i] = readTs
			dense.FinalCts[i] = finalCts
			return nil
		})
	}
	// column builders only share disjoint slots
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return dense, nil
}

// LogSPadded returns the number of row variables
func (d *DensifiedRepresentation) LogSPadded() int {
	return common.Log2Ceil(d.SPadded)
}
