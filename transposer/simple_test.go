package transposer

import (
	"testing"

	"github.com/permutecrypt/transpose/permutation"
)

func TestSimpleEncryptDecryptRoundTrip(t *testing.T) {
	s, err := NewSimple([]int{2, 0, 3, 1})
	if err != nil {
		t.Fatalf("NewSimple returned error: %v", err)
	}

	data := []rune("abcd")
	encrypted, err := permutation.Apply(s.EncryptPermutation(), data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	decrypted, err := permutation.Apply(s.DecryptPermutation(), encrypted)
	if err != nil {
		t.Fatalf("Apply(decrypt) returned error: %v", err)
	}
	if string(decrypted) != "abcd" {
		t.Fatalf("round trip = %q, expected %q", string(decrypted), "abcd")
	}
}

func TestTrivialSimpleIsIdentity(t *testing.T) {
	s := TrivialSimple(4)
	data := []rune("abcd")
	encrypted, err := permutation.Apply(s.EncryptPermutation(), data)
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if string(encrypted) != "abcd" {
		t.Fatalf("trivial encrypt = %q, expected %q", string(encrypted), "abcd")
	}
}

func TestNewSimpleRejectsInvalidIndices(t *testing.T) {
	if _, err := NewSimple([]int{0, 0}); err == nil {
		t.Fatal("NewSimple expected an error for duplicate indices")
	}
}
