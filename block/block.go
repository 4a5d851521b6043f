// Package block wraps a transposer with one of two padding disciplines and
// exposes one-shot encrypt/decrypt over arbitrary-length symbol sequences:
// one interface (Symbol) plus two free functions, not a ladder of
// PadEncrypt/UnpadEncrypt/PadCypher types.
package block

import (
	"github.com/permutecrypt/transpose/permutation"
	"github.com/permutecrypt/transpose/transposer"
	"github.com/permutecrypt/transpose/xerr"
)

// Symbol is any value a block layer can shuffle. Fill reports the value
// used to pad a short final block; most symbol types return their zero
// value regardless of the receiver.
type Symbol[T any] interface {
	Fill() T
}

// PadMode selects which of the two length disciplines a layer uses.
type PadMode int

const (
	Padding PadMode = iota
	Unpadding
)

func (m PadMode) String() string {
	switch m {
	case Padding:
		return "padding"
	case Unpadding:
		return "unpadding"
	default:
		return "unknown"
	}
}

// EncryptWithPad encrypts symbols under the given mode, returning the size
// token decrypt will need and the ciphertext symbols.
func EncryptWithPad[T Symbol[T]](t transposer.Transposer, mode PadMode, symbols []T) (int, []T, error) {
	switch mode {
	case Padding:
		token, ciphertext := padEncrypt(t, symbols)
		return token, ciphertext, nil
	case Unpadding:
		ciphertext := unpadEncrypt(t, symbols)
		return len(symbols), ciphertext, nil
	default:
		return 0, nil, xerr.Wrap(xerr.ErrInvalidConfig, "unknown pad mode %d", mode)
	}
}

// DecryptWithPad inverts EncryptWithPad given the size token it produced.
func DecryptWithPad[T Symbol[T]](t transposer.Transposer, mode PadMode, symbols []T, token int) ([]T, error) {
	switch mode {
	case Padding:
		return padDecrypt(t, symbols, token)
	case Unpadding:
		return unpadDecrypt(t, symbols, token)
	default:
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "unknown pad mode %d", mode)
	}
}

func roundUpToBlock(n, blockSize int) int {
	if n%blockSize == 0 {
		return n
	}
	return n + (blockSize - n%blockSize)
}

// padEncrypt rounds symbols up to a multiple of the block size by repeating
// the final block's own fill value, then encrypts block by block.
func padEncrypt[T Symbol[T]](t transposer.Transposer, symbols []T) (int, []T) {
	blockSize := t.BlockSize()
	perm := t.EncryptPermutation()

	result := make([]T, 0, roundUpToBlock(len(symbols), blockSize))
	for start := 0; start < len(symbols); start += blockSize {
		end := start + blockSize
		block := make([]T, blockSize)
		if end <= len(symbols) {
			copy(block, symbols[start:end])
		} else {
			copy(block, symbols[start:])
			fill := block[0].Fill()
			for i := len(symbols) - start; i < blockSize; i++ {
				block[i] = fill
			}
		}

		encrypted, err := permutation.Apply(perm, block)
		if err != nil {
			// block is always exactly blockSize long.
			panic(err)
		}
		result = append(result, encrypted...)
	}
	return len(symbols), result
}

func padDecrypt[T Symbol[T]](t transposer.Transposer, ciphertext []T, originalLength int) ([]T, error) {
	blockSize := t.BlockSize()
	if len(ciphertext)%blockSize != 0 {
		return nil, xerr.Wrap(xerr.ErrMalformedCiphertext, "ciphertext length %d is not a multiple of block size %d", len(ciphertext), blockSize)
	}
	if originalLength > len(ciphertext) {
		return nil, xerr.Wrap(xerr.ErrMalformedCiphertext, "size token %d exceeds ciphertext length %d", originalLength, len(ciphertext))
	}

	perm := t.DecryptPermutation()
	result := make([]T, 0, len(ciphertext))
	for start := 0; start < len(ciphertext); start += blockSize {
		decrypted, err := permutation.Apply(perm, ciphertext[start:start+blockSize])
		if err != nil {
			return nil, err
		}
		result = append(result, decrypted...)
	}
	return result[:originalLength], nil
}

// indexSymbol lets padEncrypt compute the permuted-position mapping used by
// the unpadding regime: feeding the identity sequence through padEncrypt
// yields, at each ciphertext position, the source index that landed there.
type indexSymbol int

func (indexSymbol) Fill() indexSymbol { return 0 }

func permutedIndices(t transposer.Transposer, size int) []int {
	blockSize := t.BlockSize()
	padded := roundUpToBlock(size, blockSize)

	identity := make([]indexSymbol, padded)
	for i := range identity {
		identity[i] = indexSymbol(i)
	}

	_, permuted := padEncrypt(t, identity)
	result := make([]int, len(permuted))
	for i, v := range permuted {
		result[i] = int(v)
	}
	return result
}

// unpadEncrypt keeps ciphertext length exactly equal to len(symbols): it
// pad-encrypts the conceptual extension to a block multiple and drops the
// virtual hole positions from the result.
func unpadEncrypt[T Symbol[T]](t transposer.Transposer, symbols []T) []T {
	indices := permutedIndices(t, len(symbols))

	result := make([]T, 0, len(symbols))
	for _, source := range indices {
		if source < len(symbols) {
			result = append(result, symbols[source])
		}
	}
	return result
}

func unpadDecrypt[T Symbol[T]](t transposer.Transposer, ciphertext []T, originalLength int) ([]T, error) {
	if len(ciphertext) != originalLength {
		return nil, xerr.Wrap(xerr.ErrMalformedCiphertext, "ciphertext length %d does not match size token %d", len(ciphertext), originalLength)
	}

	indices := permutedIndices(t, originalLength)

	var fill T
	if originalLength > 0 {
		fill = ciphertext[0].Fill()
	}

	padded := make([]T, len(indices))
	next := 0
	for k, source := range indices {
		if source < originalLength {
			padded[k] = ciphertext[next]
			next++
		} else {
			padded[k] = fill
		}
	}

	decrypted, err := padDecrypt(t, padded, len(padded))
	if err != nil {
		return nil, err
	}
	return decrypted[:originalLength], nil
}
