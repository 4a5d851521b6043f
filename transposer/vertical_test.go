package transposer

import (
	"testing"

	"github.com/permutecrypt/transpose/permutation"
)

func TestNewVerticalRejectsBadShape(t *testing.T) {
	simple, err := NewSimple([]int{1, 3, 0, 2})
	if err != nil {
		t.Fatalf("NewSimple returned error: %v", err)
	}

	cases := []struct{ rows, columns int }{
		{0, 4},
		{2, 0},
	}
	for _, c := range cases {
		if _, err := NewVertical(c.rows, c.columns, simple); err == nil {
			t.Errorf("NewVertical(%d, %d, _) expected an error, got nil", c.rows, c.columns)
		}
	}

	if _, err := NewVertical(2, 3, simple); err == nil {
		t.Fatal("NewVertical with mismatched column permutation size expected an error, got nil")
	}
}

func TestVerticalEncryptsKnownBlock(t *testing.T) {
	columnOrder, err := NewSimple([]int{1, 3, 0, 2})
	if err != nil {
		t.Fatalf("NewSimple returned error: %v", err)
	}
	v, err := NewVertical(2, 4, columnOrder)
	if err != nil {
		t.Fatalf("NewVertical returned error: %v", err)
	}

	data := []rune("abcdefgh")
	encrypted, err := permutation.Apply(v.EncryptPermutation(), data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	if string(encrypted) != "cgaedhbf" {
		t.Fatalf("encrypted = %q, expected %q", string(encrypted), "cgaedhbf")
	}

	decrypted, err := permutation.Apply(v.DecryptPermutation(), encrypted)
	if err != nil {
		t.Fatalf("Apply(decrypt) returned error: %v", err)
	}
	if string(decrypted) != "abcdefgh" {
		t.Fatalf("round trip = %q, expected %q", string(decrypted), "abcdefgh")
	}
}

func TestVerticalBlockSize(t *testing.T) {
	columnOrder := TrivialSimple(5)
	v, err := NewVertical(3, 5, columnOrder)
	if err != nil {
		t.Fatalf("NewVertical returned error: %v", err)
	}
	if v.BlockSize() != 15 {
		t.Fatalf("BlockSize = %d, expected 15", v.BlockSize())
	}
}
