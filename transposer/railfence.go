package transposer

import (
	"github.com/permutecrypt/transpose/permutation"
	"github.com/permutecrypt/transpose/xerr"
)

// RailFence zig-zags the block across a fence of the given row count and
// reads it back row-major, skipping empty cells, to produce its permutation.
type RailFence struct {
	rows, columns int
}

// NewRailFence validates rows/columns and builds a RailFence transposer.
// Rows and columns must both be positive and rows must be strictly less
// than columns, or ErrInvalidConfig is returned.
func NewRailFence(rows, columns int) (*RailFence, error) {
	if rows <= 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "number of rows must be greater than zero in rail fence")
	}
	if columns <= 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "number of columns must be greater than zero in rail fence")
	}
	if rows >= columns {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "number of columns (%d) must be greater than number of rows (%d)", columns, rows)
	}
	return &RailFence{rows: rows, columns: columns}, nil
}

func (r *RailFence) BlockSize() int {
	return r.columns
}

func (r *RailFence) Rows() int {
	return r.rows
}

func (r *RailFence) Columns() int {
	return r.columns
}

// readOrder returns the source index written to each cell of the fence, in
// fence row-major reading order (empty cells skipped).
func (r *RailFence) readOrder() []int {
	matrix := make([]int, r.columns*r.rows)
	written := make([]bool, len(matrix))

	row := 0
	down := true
	for col := 0; col < r.columns; col++ {
		cell := row*r.columns + col
		matrix[cell] = col
		written[cell] = true

		if r.rows == 1 {
			continue
		}
		if down {
			row++
		} else {
			row--
		}
		if row == 0 || row == r.rows-1 {
			down = !down
		}
	}

	order := make([]int, 0, r.columns)
	for i, ok := range written {
		if ok {
			order = append(order, matrix[i])
		}
	}
	return order
}

// EncryptPermutation returns σ⁻¹, where σ is the fence's row-major read
// order of source indices: for each source position i, the destination is
// the rank at which i appears in that read order.
func (r *RailFence) EncryptPermutation() *permutation.Permutation {
	order := r.readOrder()
	// order[rank] = source index; invert to get source index -> rank.
	destinations := make([]int, len(order))
	for rank, source := range order {
		destinations[source] = rank
	}
	perm, err := permutation.New(destinations)
	if err != nil {
		// readOrder always yields a permutation of {0..columns-1}.
		panic(err)
	}
	return perm
}

func (r *RailFence) DecryptPermutation() *permutation.Permutation {
	return r.EncryptPermutation().Inverse()
}
