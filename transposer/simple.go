package transposer

import "github.com/permutecrypt/transpose/permutation"

// Simple is a transposer defined directly by its encrypt permutation.
type Simple struct {
	perm *permutation.Permutation
}

// NewSimple validates indices as a permutation and wraps it as a Simple transposer.
func NewSimple(indices []int) (*Simple, error) {
	perm, err := permutation.New(indices)
	if err != nil {
		return nil, err
	}
	return &Simple{perm: perm}, nil
}

// TrivialSimple returns the identity Simple transposer of the given block size.
func TrivialSimple(size int) *Simple {
	return &Simple{perm: permutation.Trivial(size)}
}

func (s *Simple) BlockSize() int {
	return s.perm.Len()
}

func (s *Simple) EncryptPermutation() *permutation.Permutation {
	return s.perm
}

func (s *Simple) DecryptPermutation() *permutation.Permutation {
	return s.perm.Inverse()
}

// Indices exposes the underlying permutation's destination indices, needed
// by the serializer to write the wire form's embedded array.
func (s *Simple) Indices() []int {
	return s.perm.Indices()
}
