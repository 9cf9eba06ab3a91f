// Package instruction defines the closed set of instruction variants the
// lookup engine supports, and how each variant's two machine-word operands
// decompose into subtable lookups.
//
// A variant knows how to split its operands into C table-row indices, which
// subtables those indices address, how to recombine the retrieved table
// values into the instruction's scalar result (its g polynomial), and the
// ground-truth result computed from native 64-bit semantics. The
// decomposition is faithful, i.e. recombination of materialized table
// entries equals the ground truth, when C·(log_M/2) covers the word size.
package instruction

import (
	"fmt"
	"math/rand"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/lasso"
	"github.com/consensys/lasso/common"
	"github.com/consensys/lasso/debug"
	"github.com/consensys/lasso/subtable"
)

// Opcode is the dense, contiguous ordinal of an instruction variant. It is
// stable and usable as an array offset for variant-keyed tables.
type Opcode uint8

const (
	OpSLTU Opcode = iota
	OpBEQ
	OpBNE
	OpAND
	OpOR
	OpXOR

	opcodeCount
)

// Count returns the number of instruction variants
func Count() int {
	return int(opcodeCount)
}

// Opcodes enumerates all variants in ordinal order
func Opcodes() []Opcode {
	out := make([]Opcode, Count())
	for i := range out {
		out[i] = Opcode(i)
	}
	return out
}

func (op Opcode) String() string {
	switch op {
	case OpSLTU:
		return "sltu"
	case OpBEQ:
		return "beq"
	case OpBNE:
		return "bne"
	case OpAND:
		return "and"
	case OpOR:
		return "or"
	case OpXOR:
		return "xor"
	default:
		return fmt.Sprintf("opcode(%d)", uint8(op))
	}
}

// Lookup pairs a subtable with the set of chunk positions reading from it
type Lookup struct {
	Table   subtable.Subtable
	Indices SubtableIndices
}

// Instruction is one decoded instruction instance: a variant tag plus its
// two operand words. Implementations are immutable values.
type Instruction interface {
	// Opcode returns the variant's dense ordinal
	Opcode() Opcode
	// Operands returns the two operand words
	Operands() (uint64, uint64)
	// ToIndices splits the operand pair into c table-row indices, each in
	// [0, 2^logM). logM must be even.
	ToIndices(c, logM int) ([]int, error)
	// Subtables lists the subtables the variant reads, with the chunk
	// positions addressing each. The order fixes the layout of the
	// concatenated value vector consumed by CombineLookups.
	Subtables(c, m int) []Lookup
	// CombineLookups evaluates the recombination polynomial g on a vector of
	// looked-up (or MLE-evaluated) values laid out per Subtables.
	CombineLookups(vals []fr.Element, c, m int) fr.Element
	// GPolyDegree returns an exact upper bound on the total degree of g in
	// the subtable values. Underestimating it breaks soundness.
	GPolyDegree(c int) int
	// LookupEntry computes the instruction's result directly from its
	// operands' native semantics, independent of the table decomposition.
	LookupEntry() uint64
	// Random returns an instance of the same variant with uniformly random
	// operands, for property testing.
	Random(rng *rand.Rand) Instruction
}

// New constructs the variant with ordinal op over the given operands
func New(op Opcode, x, y uint64) (Instruction, error) {
	switch op {
	case OpSLTU:
		return SLTU{operands{x, y}}, nil
	case OpBEQ:
		return BEQ{operands{x, y}}, nil
	case OpBNE:
		return BNE{operands{x, y}}, nil
	case OpAND:
		return ANDInstr{operands{x, y}}, nil
	case OpOR:
		return ORInstr{operands{x, y}}, nil
	case OpXOR:
		return XORInstr{operands{x, y}}, nil
	default:
		return nil, fmt.Errorf("%w: unknown opcode %d", lasso.ErrInvalidParameter, op)
	}
}

type operands struct {
	x, y uint64
}

func (o operands) Operands() (uint64, uint64) {
	return o.x, o.y
}

// chunkOperand splits the low c·b bits of an operand into c chunks of b bits
// each, most significant chunk first.
func chunkOperand(v uint64, c, b int) []uint64 {
	mask := uint64(1)<<b - 1
	chunks := make([]uint64, c)
	for i := 0; i < c; i++ {
		chunks[i] = (v >> (b * (c - 1 - i))) & mask
	}
	return chunks
}

// OperandChunks splits each of the two operand words independently into c
// chunks of logM/2 bits each. logM must be even.
func OperandChunks(ins Instruction, c, logM int) ([2][]uint64, error) {
	if logM%2 != 0 {
		return [2][]uint64{}, fmt.Errorf("%w: log_M must be even, got %d", lasso.ErrInvalidParameter, logM)
	}
	x, y := ins.Operands()
	b := logM / 2
	return [2][]uint64{chunkOperand(x, c, b), chunkOperand(y, c, b)}, nil
}

// indicesFromOperands interleaves the two operands' chunks into table-row
// indices: index i is x_chunk_i in the high bits and y_chunk_i in the low
// bits, matching the subtables' row layout.
func indicesFromOperands(ins Instruction, c, logM int) ([]int, error) {
	chunks, err := OperandChunks(ins, c, logM)
	if err != nil {
		return nil, err
	}
	b := logM / 2
	indices := make([]int, c)
	for i := 0; i < c; i++ {
		indices[i] = int(chunks[0][i]<<b | chunks[1][i])
	}
	return indices, nil
}

// SliceValues partitions a flat value vector into per-subtable slices using
// each lookup's chunk-set cardinality. The partition must consume the input
// exactly; a remainder is an internal invariant violation.
func SliceValues(ins Instruction, vals []fr.Element, c, m int) [][]fr.Element {
	offset := 0
	var slices [][]fr.Element
	for _, lk := range ins.Subtables(c, m) {
		n := lk.Indices.Len()
		slices = append(slices, vals[offset:offset+n])
		offset += n
	}
	debug.Assert(offset == len(vals), "lookup value vector length does not match subtable layout")
	return slices
}

// concatWeight returns 2^(b(c-1-i)), the positional weight of chunk i when
// reassembling a word from per-chunk table values.
func concatWeight(i, c, b int) fr.Element {
	shift := b * (c - 1 - i)
	debug.Assert(shift < 64, "chunk weight overflows a word")
	var w fr.Element
	w.SetUint64(uint64(1) << shift)
	return w
}

// concatenateLookups combines per-chunk values as Σ_i 2^(b(c-1-i)) vals[i]
func concatenateLookups(vals []fr.Element, c, b int) fr.Element {
	debug.Assert(len(vals) == c, "lookup value vector length does not match chunk count")
	var res, term fr.Element
	for i := 0; i < c; i++ {
		w := concatWeight(i, c, b)
		term.Mul(&vals[i], &w)
		res.Add(&res, &term)
	}
	return res
}

func operandBits(m int) int {
	return common.Log2Ceil(m) / 2
}
