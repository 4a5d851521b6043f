package transposer

import "testing"

func TestRandomSimpleRejectsZeroSize(t *testing.T) {
	if _, err := RandomSimple(0); err == nil {
		t.Fatal("RandomSimple(0) expected an error, got nil")
	}
}

func TestRandomSimpleProducesValidPermutation(t *testing.T) {
	for i := 0; i < 50; i++ {
		s, err := RandomSimple(10)
		if err != nil {
			t.Fatalf("RandomSimple returned error: %v", err)
		}
		if s.BlockSize() != 10 {
			t.Fatalf("BlockSize = %d, expected 10", s.BlockSize())
		}
	}
}

func TestRandomRailFenceShapeInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		r, err := RandomRailFence()
		if err != nil {
			t.Fatalf("RandomRailFence returned error: %v", err)
		}
		if r.Columns() < 4 || r.Columns() > 16 {
			t.Fatalf("columns = %d, expected [4,16]", r.Columns())
		}
		if r.Rows() < 2 || r.Rows() > r.Columns()-2 {
			t.Fatalf("rows = %d out of range for columns %d", r.Rows(), r.Columns())
		}
	}
}

func TestRandomVerticalShapeInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		v, err := RandomVertical()
		if err != nil {
			t.Fatalf("RandomVertical returned error: %v", err)
		}
		if v.Columns() < 4 || v.Columns() > 16 {
			t.Fatalf("columns = %d, expected [4,16]", v.Columns())
		}
		if v.Rows() < 2 || v.Rows() > v.Columns()-2 {
			t.Fatalf("rows = %d out of range for columns %d", v.Rows(), v.Columns())
		}
		if v.ColumnPermutation().BlockSize() != v.Columns() {
			t.Fatalf("column permutation size %d != columns %d", v.ColumnPermutation().BlockSize(), v.Columns())
		}
	}
}
