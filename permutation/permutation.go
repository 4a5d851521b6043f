// Package permutation implements the index-permutation primitive: a
// validated bijection on {0..n} and the pure, allocation-once apply/inverse
// operations built on top of it.
package permutation

import (
	"github.com/permutecrypt/transpose/xerr"
)

// Permutation is a validated bijection on {0..n-1}. Indices[i] is the
// destination slot that position i moves to when the permutation is applied.
type Permutation struct {
	indices []int
}

// New validates indices as a permutation of {0..len(indices)-1} and returns
// it, or ErrInvalidPermutation if the value set is not exactly that range.
func New(indices []int) (*Permutation, error) {
	n := len(indices)
	if n == 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidPermutation, "permutation must have at least one element")
	}

	seen := make([]bool, n)
	for _, idx := range indices {
		if idx < 0 || idx >= n || seen[idx] {
			return nil, xerr.Wrap(xerr.ErrInvalidPermutation, "index %d is out of range or duplicated for size %d", idx, n)
		}
		seen[idx] = true
	}

	cp := make([]int, n)
	copy(cp, indices)
	return &Permutation{indices: cp}, nil
}

// Trivial returns the identity permutation of the given size.
func Trivial(size int) *Permutation {
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	p, err := New(indices)
	if err != nil {
		// size > 0 and sequential indices are always a valid permutation.
		panic(err)
	}
	return p
}

// Len reports the permutation's size.
func (p *Permutation) Len() int {
	return len(p.indices)
}

// Indices returns the permutation's destination indices. Callers must treat
// the returned slice as read-only.
func (p *Permutation) Indices() []int {
	return p.indices
}

// Inverse returns the permutation P⁻¹ satisfying P⁻¹[P[i]] = i.
func (p *Permutation) Inverse() *Permutation {
	inverse := make([]int, len(p.indices))
	for i, target := range p.indices {
		inverse[target] = i
	}
	// p.indices is already validated, so inverse is guaranteed valid too.
	inv, _ := New(inverse)
	return inv
}

// Apply moves each element of data to the position its index maps to:
// result[indices[i]] = data[i]. len(data) must equal p.Len().
func Apply[T any](p *Permutation, data []T) ([]T, error) {
	if len(data) != p.Len() {
		return nil, xerr.Wrap(xerr.ErrInvalidPermutation, "data length %d does not match permutation size %d", len(data), p.Len())
	}

	result := make([]T, len(data))
	for i, target := range p.indices {
		result[target] = data[i]
	}
	return result, nil
}
