package surge

import (
	"encoding/binary"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
)

// Commitment is the public commitment to a densified lookup batch: one KZG
// digest per column. Commitments are deterministic given the generators and
// the columns; evaluation claims against them are settled by the opening
// argument, not taken on trust.
type Commitment struct {
	C       int
	LogM    int
	SPadded int

	Dim      []kzg.Digest
	ReadTs   []kzg.Digest
	FinalCts []kzg.Digest
	Flags    kzg.Digest
}

// Commit commits every column of the densified representation
func (d *DensifiedRepresentation) Commit(gens *Generators) (*Commitment, error) {
	if gens.SPadded != d.SPadded || gens.M != 1<<d.LogM {
		return nil, fmt.Errorf("%w: generators sized for (%d, %d), batch needs (%d, %d)",
			lasso.ErrInvalidParameter, gens.SPadded, gens.M, d.SPadded, 1<<d.LogM)
	}

	com := &Commitment{
		C:        d.C,
		LogM:     d.LogM,
		SPadded:  d.SPadded,
		Dim:      make([]kzg.Digest, d.C),
		ReadTs:   make([]kzg.Digest, d.C),
		FinalCts: make([]kzg.Digest, d.C),
	}

	var err error
	for i := 0; i < d.C; i++ {
		if com.Dim[i], err = gens.commitColumn(d.Dim[i]); err != nil {
			return nil, err
		}
		if com.ReadTs[i], err = gens.commitColumn(d.ReadTs[i]); err != nil {
			return nil, err
		}
		if com.FinalCts[i], err = gens.commitColumn(d.FinalCts[i]); err != nil {
			return nil, err
		}
	}
	if com.Flags, err = gens.commitColumn(d.Flags); err != nil {
		return nil, err
	}
	return com, nil
}

// bind absorbs the commitment, including its shape, into the transcript
func (c *Commitment) bind(tr *transcript) {
	var shape [24]byte
	binary.BigEndian.PutUint64(shape[0:], uint64(c.C))
	binary.BigEndian.PutUint64(shape[8:], uint64(c.LogM))
	binary.BigEndian.PutUint64(shape[16:], uint64(c.SPadded))
	tr.Bind(shape[:])

	for i := range c.Dim {
		tr.Bind(c.Dim[i].Marshal(), c.ReadTs[i].Marshal(), c.FinalCts[i].Marshal())
	}
	tr.Bind(c.Flags.Marshal())
}

// wellFormed checks the advertised shape against the column counts
func (c *Commitment) wellFormed() error {
	if c.C < 1 || c.LogM < 2 || c.LogM%2 != 0 {
		return fmt.Errorf("%w: commitment has invalid shape (C=%d, logM=%d)", lasso.ErrInvalidParameter, c.C, c.LogM)
	}
	if c.SPadded < 1 || c.SPadded&(c.SPadded-1) != 0 {
		return fmt.Errorf("%w: committed row count %d is not a power of two", lasso.ErrInvalidParameter, c.SPadded)
	}
	if len(c.Dim) != c.C || len(c.ReadTs) != c.C || len(c.FinalCts) != c.C {
		return fmt.Errorf("%w: commitment column counts do not match C=%d", lasso.ErrInvalidParameter, c.C)
	}
	return nil
}
