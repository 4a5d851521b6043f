package transposer

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"

	"github.com/permutecrypt/transpose/xerr"
)

// rng is seeded once from crypto/rand at package init so repeated calls
// within a process don't repeat the same sequence. The random factories
// below are for shuffling block shapes, never for key material.
var rng = newSeededRand()

func newSeededRand() *mathrand.Rand {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		panic(xerr.Wrap(err, "failed to seed random transposer generator"))
	}
	return mathrand.New(mathrand.NewSource(int64(binary.LittleEndian.Uint64(seed[:]))))
}

func shuffledIndices(size int) []int {
	indices := make([]int, size)
	for i := range indices {
		indices[i] = i
	}
	rng.Shuffle(size, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})
	return indices
}

// randomShape picks a random column count in [4, 16] and a random row
// count in [2, columns-2], the shape rail fence and vertical transposers
// are drawn from.
func randomShape() (rows, columns int) {
	columns = 4 + rng.Intn(16-4+1)
	rows = 2 + rng.Intn(columns-2-2+1)
	return rows, columns
}

// RandomSimple returns a Simple transposer over a uniformly shuffled
// permutation of the given size.
func RandomSimple(size int) (*Simple, error) {
	if size <= 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "size of permutation must be greater than zero")
	}
	return NewSimple(shuffledIndices(size))
}

// RandomRailFence draws a random fence shape: columns uniform in [4, 16],
// rows uniform in [2, columns-2].
func RandomRailFence() (*RailFence, error) {
	rows, columns := randomShape()
	return NewRailFence(rows, columns)
}

// RandomVertical draws a random shape the same way RandomRailFence does,
// plus an independently shuffled column permutation.
func RandomVertical() (*Vertical, error) {
	rows, columns := randomShape()
	columnOrder, err := NewSimple(shuffledIndices(columns))
	if err != nil {
		return nil, err
	}
	return NewVertical(rows, columns, columnOrder)
}
