package surge

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/common"
	"github.com/consensys/lasso/instruction"
	"github.com/consensys/lasso/logger"
	"github.com/consensys/lasso/polynomial"
	"github.com/consensys/lasso/sumcheck"
)

// Verify checks an evaluation proof against the commitment and the point r.
// It recomputes every challenge from the transcript, so any deviation from
// the prover's message sequence surfaces as a failed check, and every
// claimed column evaluation is verified against its commitment through the
// opening argument. All failures return ErrVerificationFailed; nothing is
// accepted partially.
func Verify(instr instruction.Instruction, com *Commitment, r []fr.Element, proof *EvaluationProof, gens *Generators) error {
	if err := com.wellFormed(); err != nil {
		return err
	}
	c, logM := com.C, com.LogM
	m := 1 << logM
	logS := common.Log2Ceil(com.SPadded)
	if len(r) != logS {
		return fmt.Errorf("%w: evaluation point has %d coordinates, commitment has %d row variables", lasso.ErrInvalidParameter, len(r), logS)
	}
	if gens.SPadded != com.SPadded || gens.M != m {
		return fmt.Errorf("%w: generators sized for (%d, %d), commitment needs (%d, %d)", lasso.ErrInvalidParameter, gens.SPadded, gens.M, com.SPadded, m)
	}

	mems := enumerateMemories(instr, c, m)
	nMem := len(mems)
	if len(proof.ECommitments) != nMem || len(proof.EOpenings) != nMem || len(proof.Memories) != nMem {
		return fmt.Errorf("%w: proof covers %d memories, instruction has %d", lasso.ErrVerificationFailed, len(proof.Memories), nMem)
	}

	log := logger.Logger().With().Str("protocol", "surge").
		Str("instruction", instr.Opcode().String()).Logger()
	start := time.Now()

	tr := newTranscript(defaultHash(), numChallenges(logS, logM, nMem))
	com.bind(tr)
	for i := range r {
		tr.Bind(r[i].Marshal())
	}
	for j := range proof.ECommitments {
		tr.Bind(proof.ECommitments[j].Marshal())
	}
	tr.Bind(proof.ClaimedEvaluation.Marshal())

	// primary sumcheck
	degree := instr.GPolyDegree(c) + 2
	rho, expected, err := sumcheck.Verify(proof.ClaimedEvaluation, proof.Primary, logS, degree, tr)
	if err != nil {
		return fmt.Errorf("primary sumcheck: %w", err)
	}
	combined := instr.CombineLookups(proof.EOpenings, c, m)
	combined.Mul(&combined, &proof.FlagOpening)
	eqEval := polynomial.EvalEq(r, rho)
	combined.Mul(&combined, &eqEval)
	if !combined.Equal(&expected) {
		return fmt.Errorf("%w: primary sumcheck openings do not match the final claim", lasso.ErrVerificationFailed)
	}
	tr.Bind(proof.FlagOpening.Marshal())
	for j := range proof.EOpenings {
		tr.Bind(proof.EOpenings[j].Marshal())
	}

	primaryComs := make([]kzg.Digest, 0, 1+nMem)
	primaryComs = append(primaryComs, com.Flags)
	primaryComs = append(primaryComs, proof.ECommitments...)
	primaryClaims := make([]fr.Element, 0, 1+nMem)
	primaryClaims = append(primaryClaims, proof.FlagOpening)
	primaryClaims = append(primaryClaims, proof.EOpenings...)
	if err := verifyOpening(primaryComs, primaryClaims, rho, proof.PrimaryOpening, gens, tr); err != nil {
		return fmt.Errorf("primary openings: %w", err)
	}

	tau := tr.Challenge()
	gamma := tr.Challenge()
	fp := newFingerprinter(gamma, tau)

	for j, mem := range mems {
		mp := &proof.Memories[j]
		if err := verifyMemory(mp, mem, fp, logS, logM, com, proof.ECommitments[j], gens, tr); err != nil {
			return fmt.Errorf("memory %d (%s, dimension %d): %w", j, mem.table.Name(), mem.dim, err)
		}
	}

	log.Debug().Dur("took", time.Since(start)).Msg("evaluation proof verified")
	return nil
}

func verifyMemory(mp *MemoryProof, mem memory, fp fingerprinter, logS, logM int, com *Commitment, eCom kzg.Digest, gens *Generators, tr *transcript) error {
	// multiset balance: init * write == read * final
	var lhs, rhs fr.Element
	lhs.Mul(&mp.InitProduct, &mp.WriteProduct)
	rhs.Mul(&mp.ReadProduct, &mp.FinalProduct)
	if !lhs.Equal(&rhs) {
		return fmt.Errorf("%w: multiset products do not balance", lasso.ErrVerificationFailed)
	}
	tr.Bind(mp.InitProduct.Marshal(), mp.ReadProduct.Marshal(),
		mp.WriteProduct.Marshal(), mp.FinalProduct.Marshal())

	// init: both leaf components are closed forms
	zInit, initClaim, err := verifyProductTree(mp.InitProduct, mp.InitTree, logM, tr)
	if err != nil {
		return fmt.Errorf("init tree: %w", err)
	}
	want := tableFingerprint(mem, fp, zInit, fr.Element{})
	if !want.Equal(&initClaim) {
		return fmt.Errorf("%w: init leaves do not match the table", lasso.ErrVerificationFailed)
	}

	rowComs := []kzg.Digest{com.Dim[mem.dim], eCom, com.ReadTs[mem.dim]}

	zRead, readClaim, err := verifyProductTree(mp.ReadProduct, mp.ReadTree, logS, tr)
	if err != nil {
		return fmt.Errorf("read tree: %w", err)
	}
	want = fp.hash(mp.ReadOpenings.Dim, mp.ReadOpenings.E, mp.ReadOpenings.ReadTs)
	if !want.Equal(&readClaim) {
		return fmt.Errorf("%w: read leaves do not match the column openings", lasso.ErrVerificationFailed)
	}
	bindOpenings(tr, mp.ReadOpenings)
	readClaims := []fr.Element{mp.ReadOpenings.Dim, mp.ReadOpenings.E, mp.ReadOpenings.ReadTs}
	if err := verifyOpening(rowComs, readClaims, zRead, mp.ReadProof, gens, tr); err != nil {
		return fmt.Errorf("read openings: %w", err)
	}

	zWrite, writeClaim, err := verifyProductTree(mp.WriteProduct, mp.WriteTree, logS, tr)
	if err != nil {
		return fmt.Errorf("write tree: %w", err)
	}
	var one fr.Element
	one.SetOne()
	want = fp.hash(mp.WriteOpenings.Dim, mp.WriteOpenings.E, mp.WriteOpenings.ReadTs)
	want.Add(&want, &one)
	if !want.Equal(&writeClaim) {
		return fmt.Errorf("%w: write leaves do not match the column openings", lasso.ErrVerificationFailed)
	}
	bindOpenings(tr, mp.WriteOpenings)
	writeClaims := []fr.Element{mp.WriteOpenings.Dim, mp.WriteOpenings.E, mp.WriteOpenings.ReadTs}
	if err := verifyOpening(rowComs, writeClaims, zWrite, mp.WriteProof, gens, tr); err != nil {
		return fmt.Errorf("write openings: %w", err)
	}

	zFinal, finalClaim, err := verifyProductTree(mp.FinalProduct, mp.FinalTree, logM, tr)
	if err != nil {
		return fmt.Errorf("final tree: %w", err)
	}
	want = tableFingerprint(mem, fp, zFinal, mp.FinalCtsOpening)
	if !want.Equal(&finalClaim) {
		return fmt.Errorf("%w: final leaves do not match the table and counter opening", lasso.ErrVerificationFailed)
	}
	tr.Bind(mp.FinalCtsOpening.Marshal())
	finalComs := []kzg.Digest{com.FinalCts[mem.dim]}
	finalClaims := []fr.Element{mp.FinalCtsOpening}
	if err := verifyOpening(finalComs, finalClaims, zFinal, mp.FinalCtsProof, gens, tr); err != nil {
		return fmt.Errorf("final counter opening: %w", err)
	}

	return nil
}

// tableFingerprint evaluates the table-side leaf extension at z using the
// identity and subtable closed forms: id(z) gamma^2 + T(z) gamma + t - tau.
func tableFingerprint(mem memory, fp fingerprinter, z []fr.Element, t fr.Element) fr.Element {
	return fp.hash(identityEval(z), mem.table.EvaluateMLE(z), t)
}
