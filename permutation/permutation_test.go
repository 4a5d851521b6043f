package permutation

import (
	"reflect"
	"testing"
)

func TestNewRejectsInvalidIndices(t *testing.T) {
	cases := [][]int{
		{},
		{0, 0},
		{1, 2},
		{-1, 0},
		{0, 1, 3},
	}

	for _, indices := range cases {
		if _, err := New(indices); err == nil {
			t.Errorf("New(%v) expected an error, got nil", indices)
		}
	}
}

func TestApplyMatchesSpecDefinition(t *testing.T) {
	p, err := New([]int{1, 2, 0, 3})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data := []rune{'a', 'b', 'c', 'd'}
	encrypted, err := Apply(p, data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	expected := []rune{'c', 'a', 'b', 'd'}
	if !reflect.DeepEqual(encrypted, expected) {
		t.Fatalf("Apply = %q, expected %q", string(encrypted), string(expected))
	}
}

func TestInverseUndoesApply(t *testing.T) {
	p, err := New([]int{3, 2, 0, 1})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data := []int{10, 20, 30, 40}
	encrypted, err := Apply(p, data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	decrypted, err := Apply(p.Inverse(), encrypted)
	if err != nil {
		t.Fatalf("Apply(inverse) returned error: %v", err)
	}

	if !reflect.DeepEqual(decrypted, data) {
		t.Fatalf("round trip = %v, expected %v", decrypted, data)
	}
}

func TestTrivialIsIdentity(t *testing.T) {
	p := Trivial(5)
	data := []int{1, 2, 3, 4, 5}
	result, err := Apply(p, data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if !reflect.DeepEqual(result, data) {
		t.Fatalf("Trivial(5) apply = %v, expected identity %v", result, data)
	}
}

func TestPermutationOfSizeOneIsIdentity(t *testing.T) {
	p, err := New([]int{0})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := Apply(p, []int{42})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if result[0] != 42 {
		t.Fatalf("size-1 apply = %v, expected [42]", result)
	}
}

func TestApplyRejectsLengthMismatch(t *testing.T) {
	p := Trivial(3)
	if _, err := Apply(p, []int{1, 2}); err == nil {
		t.Fatal("Apply expected an error for mismatched length")
	}
}
