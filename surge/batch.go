package surge

import (
	"github.com/consensys/lasso/instruction"
)

// Batch is the slice of a decoded trace sharing one instruction variant. A
// proof instance always covers a single variant, so mixed traces are split
// into per-opcode batches first; trace order is preserved within a batch.
type Batch struct {
	Op           instruction.Opcode
	Instructions []instruction.Instruction
}

// SplitTrace groups a trace by opcode, in ordinal order, dropping variants
// the trace never uses.
func SplitTrace(trace []instruction.Instruction) []Batch {
	byOp := make([][]instruction.Instruction, instruction.Count())
	for _, ins := range trace {
		op := ins.Opcode()
		byOp[op] = append(byOp[op], ins)
	}

	var batches []Batch
	for op := range byOp {
		if len(byOp[op]) > 0 {
			batches = append(batches, Batch{
				Op:           instruction.Opcode(op),
				Instructions: byOp[op],
			})
		}
	}
	return batches
}

// Densify decomposes every instruction of the batch and builds the dense
// prover representation.
func (b *Batch) Densify(c, logM int) (*DensifiedRepresentation, error) {
	indices := make([][]int, len(b.Instructions))
	for i, ins := range b.Instructions {
		row, err := ins.ToIndices(c, logM)
		if err != nil {
			return nil, err
		}
		indices[i] = row
	}
	return FromLookupIndices(indices, c, logM)
}

// LookupEntries returns the native result of every lookup in the batch
func (b *Batch) LookupEntries() []uint64 {
	out := make([]uint64, len(b.Instructions))
	for i, ins := range b.Instructions {
		out[i] = ins.LookupEntry()
	}
	return out
}
