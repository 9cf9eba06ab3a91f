// Package lasso implements a lookup-argument engine for zero-knowledge
// virtual machines: instruction semantics are decomposed into lookups in
// small precomputed subtables, and the correctness of a batch of lookups is
// proven with a sumcheck-based evaluation proof over a committed sparse
// polynomial.
//
// The repository is organized as follows:
//   - subtable: lookup table shapes, materializations and closed-form
//     multilinear extensions
//   - instruction: the closed set of instruction variants and their
//     subtable decompositions
//   - surge: densification, commitment and the evaluation proof itself
//
// All field arithmetic is over the BN254 scalar field.
package lasso
