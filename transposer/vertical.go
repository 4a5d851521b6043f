package transposer

import (
	"github.com/permutecrypt/transpose/permutation"
	"github.com/permutecrypt/transpose/xerr"
)

// Vertical reshapes a block of rows*columns symbols row-major into an
// r x c matrix, permutes the columns by π, then reads the result
// column-major.
type Vertical struct {
	rows, columns int
	columnOrder   *Simple
}

// NewVertical validates rows, columns and the column permutation's size and
// builds a Vertical transposer. columnOrder must have exactly `columns`
// elements, or ErrInvalidConfig is returned.
func NewVertical(rows, columns int, columnOrder *Simple) (*Vertical, error) {
	if rows <= 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "number of rows must be greater than zero in vertical transposer")
	}
	if columns <= 0 {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "number of columns must be greater than zero in vertical transposer")
	}
	if columnOrder.BlockSize() != columns {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "permutation size %d must match number of columns %d", columnOrder.BlockSize(), columns)
	}
	return &Vertical{rows: rows, columns: columns, columnOrder: columnOrder}, nil
}

func (v *Vertical) BlockSize() int {
	return v.rows * v.columns
}

func (v *Vertical) Rows() int {
	return v.rows
}

func (v *Vertical) Columns() int {
	return v.columns
}

func (v *Vertical) ColumnPermutation() *Simple {
	return v.columnOrder
}

// run reshapes data (length rows*columns) row-major into column buckets of
// size rows, reorders the buckets per the column permutation, and
// concatenates the reordered buckets back into a flat sequence.
func run[T any](v *Vertical, data []T) ([]T, error) {
	if len(data) != v.BlockSize() {
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "data length %d does not match block size %d", len(data), v.BlockSize())
	}

	buckets := make([][]T, v.columns)
	for i := range buckets {
		buckets[i] = make([]T, 0, v.rows)
	}
	for i, item := range data {
		col := i % v.columns
		buckets[col] = append(buckets[col], item)
	}

	reordered, err := permutation.Apply(v.columnOrder.EncryptPermutation(), buckets)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, v.BlockSize())
	for _, bucket := range reordered {
		result = append(result, bucket...)
	}
	return result, nil
}

// EncryptPermutation derives the block-sized index permutation by running
// the reshape-permute-flatten procedure over the identity sequence
// {0..BlockSize()-1}: the resulting sequence is itself the encrypt
// permutation, used directly as the destination-index array.
func (v *Vertical) EncryptPermutation() *permutation.Permutation {
	identity := make([]int, v.BlockSize())
	for i := range identity {
		identity[i] = i
	}

	indices, err := run(v, identity)
	if err != nil {
		// identity always has the correct length, run cannot fail here.
		panic(err)
	}

	perm, err := permutation.New(indices)
	if err != nil {
		panic(err)
	}
	return perm
}

func (v *Vertical) DecryptPermutation() *permutation.Permutation {
	return v.EncryptPermutation().Inverse()
}
