// Package transposer implements the three transposition primitives —
// Simple, RailFence and Vertical — behind a single Transposer interface: one
// interface, no inheritance ladder of block/pad/unpad traits.
package transposer

import "github.com/permutecrypt/transpose/permutation"

// Transposer is anything with a fixed block size and an index permutation
// for that block. It knows nothing about padding or symbol domains — those
// are the concerns of the block and domain packages respectively.
type Transposer interface {
	// BlockSize reports the number of symbols one block consumes/produces.
	BlockSize() int
	// EncryptPermutation returns the permutation applied on encrypt.
	EncryptPermutation() *permutation.Permutation
	// DecryptPermutation returns the inverse of EncryptPermutation.
	DecryptPermutation() *permutation.Permutation
}
