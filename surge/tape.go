package surge

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// RandomTape is the prover's private randomness source, part of the prover
// interface so hiding commitment instantiations can draw blinders from it;
// the KZG scheme commits deterministically and leaves it untouched. It is
// deterministic in its seed so prover runs can be replayed under test; it
// never feeds the Fiat-Shamir transcript.
type RandomTape struct {
	seed    []byte
	counter uint64
}

func NewRandomTape(seed []byte) *RandomTape {
	return &RandomTape{seed: append([]byte(nil), seed...)}
}

// Draw returns the next field element on the tape
func (t *RandomTape) Draw() fr.Element {
	h := sha256.New()
	h.Write(t.seed)
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], t.counter)
	h.Write(ctr[:])
	t.counter++

	var r fr.Element
	r.SetBytes(h.Sum(nil))
	return r
}
