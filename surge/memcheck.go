package surge

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso/instruction"
	"github.com/consensys/lasso/subtable"
)

// Offline memory checking ties every E column to its subtable. Each memory
// (one subtable read through one dimension) yields four multisets of
// fingerprints h(a, v, t) = a gamma^2 + v gamma + t - tau over (address,
// value, counter) triples; honest reads satisfy the multiset equation
// init * write == read * final, proven product by product with grand-product
// trees. h is affine in its triple, so the multilinear extension of a
// fingerprint vector is the fingerprint of the column extensions; final leaf
// claims therefore reduce to column openings, and on the table side to the
// identity and subtable extensions the verifier evaluates itself.

// memory identifies one (subtable, dimension) pair. Enumeration order
// matches the value layout CombineLookups consumes.
type memory struct {
	table subtable.Subtable
	dim   int
}

func enumerateMemories(instr instruction.Instruction, c, m int) []memory {
	var mems []memory
	for _, lk := range instr.Subtables(c, m) {
		for _, i := range lk.Indices.Indices() {
			mems = append(mems, memory{table: lk.Table, dim: i})
		}
	}
	return mems
}

// fingerprinter folds (address, value, counter) triples with fixed
// challenges
type fingerprinter struct {
	gamma, gammaSq, tau fr.Element
}

func newFingerprinter(gamma, tau fr.Element) fingerprinter {
	var gammaSq fr.Element
	gammaSq.Square(&gamma)
	return fingerprinter{gamma: gamma, gammaSq: gammaSq, tau: tau}
}

// hash computes a gamma^2 + v gamma + t - tau
func (f fingerprinter) hash(a, v, t fr.Element) fr.Element {
	var res, term fr.Element
	res.Mul(&a, &f.gammaSq)
	term.Mul(&v, &f.gamma)
	res.Add(&res, &term)
	res.Add(&res, &t)
	res.Sub(&res, &f.tau)
	return res
}

// readLeaves fingerprints the read multiset of one memory: one triple per
// row, counter as of before the row's access.
func readLeaves(d *DensifiedRepresentation, eCol []fr.Element, dim int, f fingerprinter) []fr.Element {
	leaves := make([]fr.Element, d.SPadded)
	for row := 0; row < d.SPadded; row++ {
		leaves[row] = f.hash(d.Dim[dim][row], eCol[row], d.ReadTs[dim][row])
	}
	return leaves
}

// writeLeaves is the write multiset: same triples with counters advanced by
// one, so each leaf is the read leaf plus one.
func writeLeaves(read []fr.Element) []fr.Element {
	var one fr.Element
	one.SetOne()
	leaves := make([]fr.Element, len(read))
	for i := range read {
		leaves[i].Add(&read[i], &one)
	}
	return leaves
}

// initLeaves fingerprints the untouched table: (addr, T[addr], 0)
func initLeaves(entries []fr.Element, f fingerprinter) []fr.Element {
	leaves := make([]fr.Element, len(entries))
	var addr fr.Element
	for a := range entries {
		addr.SetUint64(uint64(a))
		leaves[a] = f.hash(addr, entries[a], fr.Element{})
	}
	return leaves
}

// finalLeaves fingerprints the table after all reads: (addr, T[addr],
// final count)
func finalLeaves(entries, finalCts []fr.Element, f fingerprinter) []fr.Element {
	leaves := make([]fr.Element, len(entries))
	var addr fr.Element
	for a := range entries {
		addr.SetUint64(uint64(a))
		leaves[a] = f.hash(addr, entries[a], finalCts[a])
	}
	return leaves
}

// identityEval evaluates the extension of addr -> addr at a point over the
// address variables, most significant first: sum of 2^(n-1-i) point[i].
func identityEval(point []fr.Element) fr.Element {
	n := len(point)
	var res, term, weight fr.Element
	for i := 0; i < n; i++ {
		weight.SetUint64(uint64(1) << (n - 1 - i))
		term.Mul(&point[i], &weight)
		res.Add(&res, &term)
	}
	return res
}

// ColumnOpenings are the claimed evaluations of one memory's row columns at
// a tree's final point
type ColumnOpenings struct {
	Dim    fr.Element
	E      fr.Element
	ReadTs fr.Element
}

// MemoryProof is the consistency argument for one memory: the four product
// values, their tree proofs, and the column openings closing the leaf
// claims, each tied to its column commitment by an opening proof. The init
// tree needs no openings; both its leaf components are verifier-computable.
type MemoryProof struct {
	InitProduct  fr.Element
	ReadProduct  fr.Element
	WriteProduct fr.Element
	FinalProduct fr.Element

	InitTree  ProductTreeProof
	ReadTree  ProductTreeProof
	WriteTree ProductTreeProof
	FinalTree ProductTreeProof

	ReadOpenings    ColumnOpenings
	WriteOpenings   ColumnOpenings
	FinalCtsOpening fr.Element

	ReadProof     OpeningProof
	WriteProof    OpeningProof
	FinalCtsProof OpeningProof
}
