package surge

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/logger"
)

// Generators is the public commitment setup shared by prover and verifier: a
// KZG structured reference string sized for both the row-indexed columns
// (dimension, read-counter, flag and E columns) and the table-indexed
// columns (final counters).
type Generators struct {
	SPadded int
	M       int

	SRS *kzg.SRS
}

// NewGenerators runs the KZG setup for the given shape. The setup scalar is
// drawn from crypto/rand and discarded; a production deployment loads the
// reference string from a ceremony instead of rerunning the setup.
func NewGenerators(sPadded, m int) (*Generators, error) {
	if sPadded < 1 || sPadded&(sPadded-1) != 0 {
		return nil, fmt.Errorf("%w: row count %d is not a power of two", lasso.ErrInvalidParameter, sPadded)
	}
	if m < 2 || m&(m-1) != 0 {
		return nil, fmt.Errorf("%w: table size %d is not a power of two", lasso.ErrInvalidParameter, m)
	}
	log := logger.Logger().With().Str("protocol", "surge").Int("sPadded", sPadded).Int("m", m).Logger()
	start := time.Now()

	alpha, err := rand.Int(rand.Reader, ecc.BN254.ScalarField())
	if err != nil {
		return nil, err
	}
	srs, err := kzg.NewSRS(uint64(max(sPadded, m)), alpha)
	if err != nil {
		return nil, err
	}

	log.Debug().Dur("took", time.Since(start)).Msg("generators setup done")
	return &Generators{
		SPadded: sPadded,
		M:       m,
		SRS:     srs,
	}, nil
}

// commitColumn commits a column as a univariate polynomial with the column
// entries as coefficients. Commitments are deterministic.
func (g *Generators) commitColumn(values []fr.Element) (kzg.Digest, error) {
	return kzg.Commit(values, g.SRS.Pk)
}
