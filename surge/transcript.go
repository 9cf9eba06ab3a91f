package surge

import (
	"crypto/sha256"
	"hash"
	"strconv"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"
)

// transcript is a cursor over a Fiat-Shamir transcript with a precomputed
// challenge schedule. Prover and verifier derive the schedule length from
// the same public parameters, so identical message sequences yield identical
// challenges. Bind and Challenge panic on schedule misuse; the schedule is a
// protocol constant, not an input.
type transcript struct {
	fs   *fiatshamir.Transcript
	ids  []string
	next int
}

func newTranscript(h hash.Hash, numChallenges int) *transcript {
	// one trailing id absorbs messages bound after the last challenge
	ids := make([]string, numChallenges+1)
	for i := range ids {
		ids[i] = "surge." + strconv.Itoa(i)
	}
	return &transcript{
		fs:  fiatshamir.NewTranscript(h, ids...),
		ids: ids,
	}
}

func defaultHash() hash.Hash {
	return sha256.New()
}

func (t *transcript) Bind(data ...[]byte) {
	for _, d := range data {
		if err := t.fs.Bind(t.ids[t.next], d); err != nil {
			panic("surge: transcript bind: " + err.Error())
		}
	}
}

func (t *transcript) Challenge() fr.Element {
	b, err := t.fs.ComputeChallenge(t.ids[t.next])
	if err != nil {
		panic("surge: transcript challenge: " + err.Error())
	}
	t.next++
	var r fr.Element
	r.SetBytes(b)
	return r
}

// treeChallenges is the challenge budget of one grand-product tree over 2^k
// leaves: level l runs an l-variable sumcheck and one claim-merging challenge.
func treeChallenges(k int) int {
	return k * (k + 1) / 2
}

// instanceChallenges is the challenge budget of one opening instance: a
// batching challenge when several columns share the point, and a fold
// challenge unless the columns have a single entry.
func instanceChallenges(numCols, numVars int) int {
	n := 0
	if numCols > 1 {
		n++
	}
	if numVars > 0 {
		n++
	}
	return n
}

// numChallenges is the schedule length of one evaluation proof
func numChallenges(logS, logM, numMemories int) int {
	n := logS // primary sumcheck
	n += instanceChallenges(1+numMemories, logS) // flag and E openings
	n += 2 // tau, gamma
	// per memory: four trees, then the read, write and final counter
	// opening instances
	n += numMemories * (2*treeChallenges(logS) + 2*treeChallenges(logM))
	n += numMemories * (2*instanceChallenges(3, logS) + instanceChallenges(1, logM))
	return n
}
