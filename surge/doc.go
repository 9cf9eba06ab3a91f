// Package surge proves and verifies batched table lookups.
//
// A batch of instructions of one variant is densified into index, counter
// and flag columns, committed column by column under KZG, and proven against
// a claimed aggregate evaluation with a primary sumcheck plus offline
// memory checking: every looked-up value is tied to the subtables' closed
// form multilinear extensions through grand-product fingerprint arguments,
// and every claimed column evaluation is opened against its commitment.
//
// Mixed traces are handled by SplitTrace, which groups a decoded trace by
// opcode; a proof instance always covers a single variant.
package surge
