package surge

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/instruction"
	"github.com/consensys/lasso/logger"
	"github.com/consensys/lasso/polynomial"
	"github.com/consensys/lasso/sumcheck"
)

// EvaluationProof shows that the committed batch's aggregate
//
//	v = sum_row eq(r, row) * flags(row) * g(E_0(row), ..., E_{n-1}(row))
//
// equals ClaimedEvaluation, with every E column consistent with its
// subtable. Every claimed column evaluation carries an opening proof
// against the corresponding commitment.
type EvaluationProof struct {
	ClaimedEvaluation fr.Element

	ECommitments []kzg.Digest

	Primary        sumcheck.Proof
	FlagOpening    fr.Element
	EOpenings      []fr.Element
	PrimaryOpening OpeningProof

	Memories []MemoryProof
}

// Prove produces the evaluation proof for a committed batch at the point r,
// which must have one coordinate per row variable (most significant first).
// The tape is reserved for hiding commitment instantiations; the KZG scheme
// used here commits deterministically and draws nothing from it.
func Prove(instr instruction.Instruction, dense *DensifiedRepresentation, com *Commitment, r []fr.Element, gens *Generators, tape *RandomTape) (*EvaluationProof, error) {
	c, logM := dense.C, dense.LogM
	m := 1 << logM
	logS := dense.LogSPadded()
	if len(r) != logS {
		return nil, fmt.Errorf("%w: evaluation point has %d coordinates, batch has %d row variables", lasso.ErrInvalidParameter, len(r), logS)
	}

	log := logger.Logger().With().Str("protocol", "surge").
		Str("instruction", instr.Opcode().String()).
		Int("lookups", dense.NumLookups).Logger()
	start := time.Now()

	mems := enumerateMemories(instr, c, m)
	nMem := len(mems)
	tr := newTranscript(defaultHash(), numChallenges(logS, logM, nMem))

	com.bind(tr)
	for i := range r {
		tr.Bind(r[i].Marshal())
	}

	// E columns: looked-up table entries per memory
	entries := materializeTables(mems)
	eCols := make([][]fr.Element, nMem)
	for j, mem := range mems {
		col := make([]fr.Element, dense.SPadded)
		tab := entries[mem.table.Name()]
		for row := 0; row < dense.SPadded; row++ {
			col[row] = tab[dense.DimRaw[mem.dim][row]]
		}
		eCols[j] = col
	}

	proof := &EvaluationProof{
		ECommitments: make([]kzg.Digest, nMem),
		Memories:     make([]MemoryProof, nMem),
	}
	var err error
	for j := range eCols {
		if proof.ECommitments[j], err = gens.commitColumn(eCols[j]); err != nil {
			return nil, err
		}
		tr.Bind(proof.ECommitments[j].Marshal())
	}

	// claimed aggregate evaluation
	eqTable := polynomial.GetFoldedEqTable(r)
	vals := make([]fr.Element, nMem)
	var v, term fr.Element
	for row := 0; row < dense.SPadded; row++ {
		if dense.Flags[row].IsZero() {
			continue
		}
		for j := range eCols {
			vals[j] = eCols[j][row]
		}
		term = instr.CombineLookups(vals, c, m)
		term.Mul(&term, &eqTable.Table[row])
		v.Add(&v, &term)
	}
	proof.ClaimedEvaluation = v
	tr.Bind(v.Marshal())

	// primary sumcheck over [eq, flags, E_0, ..., E_{n-1}]
	tables := make([]polynomial.BookKeepingTable, 2+nMem)
	tables[0] = eqTable
	flagsTable := polynomial.NewBookKeepingTable(dense.Flags)
	tables[1] = flagsTable.DeepCopy()
	for j := range eCols {
		t := polynomial.NewBookKeepingTable(eCols[j])
		tables[2+j] = t.DeepCopy()
	}
	combine := func(in []fr.Element) fr.Element {
		g := instr.CombineLookups(in[2:], c, m)
		g.Mul(&g, &in[1])
		g.Mul(&g, &in[0])
		return g
	}
	degree := instr.GPolyDegree(c) + 2

	primary, rho, finals := sumcheck.Prove(tables, combine, degree, tr)
	proof.Primary = primary
	proof.FlagOpening = finals[1]
	proof.EOpenings = append([]fr.Element(nil), finals[2:]...)
	tr.Bind(proof.FlagOpening.Marshal())
	for j := range proof.EOpenings {
		tr.Bind(proof.EOpenings[j].Marshal())
	}

	primaryCols := make([][]fr.Element, 0, 1+nMem)
	primaryCols = append(primaryCols, dense.Flags)
	primaryCols = append(primaryCols, eCols...)
	if proof.PrimaryOpening, err = proveOpening(primaryCols, rho, gens, tr); err != nil {
		return nil, err
	}

	tau := tr.Challenge()
	gamma := tr.Challenge()
	fp := newFingerprinter(gamma, tau)

	for j, mem := range mems {
		mp := &proof.Memories[j]
		tab := entries[mem.table.Name()]

		read := readLeaves(dense, eCols[j], mem.dim, fp)
		write := writeLeaves(read)
		init := initLeaves(tab, fp)
		final := finalLeaves(tab, dense.FinalCts[mem.dim], fp)

		mp.InitProduct = productOf(init)
		mp.ReadProduct = productOf(read)
		mp.WriteProduct = productOf(write)
		mp.FinalProduct = productOf(final)
		tr.Bind(mp.InitProduct.Marshal(), mp.ReadProduct.Marshal(),
			mp.WriteProduct.Marshal(), mp.FinalProduct.Marshal())

		mp.InitTree, _, _ = proveProductTree(init, tr)

		rowCols := [][]fr.Element{dense.Dim[mem.dim], eCols[j], dense.ReadTs[mem.dim]}

		var zRead, zWrite, zFinal []fr.Element
		mp.ReadTree, zRead, _ = proveProductTree(read, tr)
		mp.ReadOpenings = openColumns(dense, eCols[j], mem.dim, zRead)
		bindOpenings(tr, mp.ReadOpenings)
		if mp.ReadProof, err = proveOpening(rowCols, zRead, gens, tr); err != nil {
			return nil, err
		}

		mp.WriteTree, zWrite, _ = proveProductTree(write, tr)
		mp.WriteOpenings = openColumns(dense, eCols[j], mem.dim, zWrite)
		bindOpenings(tr, mp.WriteOpenings)
		if mp.WriteProof, err = proveOpening(rowCols, zWrite, gens, tr); err != nil {
			return nil, err
		}

		mp.FinalTree, zFinal, _ = proveProductTree(final, tr)
		finalCtsTable := polynomial.NewBookKeepingTable(dense.FinalCts[mem.dim])
		mp.FinalCtsOpening = finalCtsTable.Evaluate(zFinal)
		tr.Bind(mp.FinalCtsOpening.Marshal())
		if mp.FinalCtsProof, err = proveOpening([][]fr.Element{dense.FinalCts[mem.dim]}, zFinal, gens, tr); err != nil {
			return nil, err
		}
	}

	log.Debug().Dur("took", time.Since(start)).Int("memories", nMem).Msg("evaluation proof done")
	return proof, nil
}

// materializeTables materializes each distinct subtable once
func materializeTables(mems []memory) map[string][]fr.Element {
	entries := make(map[string][]fr.Element)
	for _, mem := range mems {
		if _, ok := entries[mem.table.Name()]; !ok {
			entries[mem.table.Name()] = mem.table.Materialize()
		}
	}
	return entries
}

func productOf(leaves []fr.Element) fr.Element {
	var p fr.Element
	p.SetOne()
	for i := range leaves {
		p.Mul(&p, &leaves[i])
	}
	return p
}

func openColumns(dense *DensifiedRepresentation, eCol []fr.Element, dim int, z []fr.Element) ColumnOpenings {
	dimT := polynomial.NewBookKeepingTable(dense.Dim[dim])
	eT := polynomial.NewBookKeepingTable(eCol)
	tsT := polynomial.NewBookKeepingTable(dense.ReadTs[dim])
	return ColumnOpenings{
		Dim:    dimT.Evaluate(z),
		E:      eT.Evaluate(z),
		ReadTs: tsT.Evaluate(z),
	}
}

func bindOpenings(tr *transcript, o ColumnOpenings) {
	tr.Bind(o.Dim.Marshal(), o.E.Marshal(), o.ReadTs.Marshal())
}
